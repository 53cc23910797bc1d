package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Wikid82/snare/internal/models"
)

func newListenerCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listener",
		Short: "Manage listeners",
	}
	cmd.AddCommand(
		&cobra.Command{Use: "list", Short: "List all listeners", Args: cobra.NoArgs, RunE: a.listListeners},
		&cobra.Command{Use: "view [id]", Short: "View listener details", Args: cobra.ExactArgs(1), RunE: a.viewListener},
		&cobra.Command{Use: "delete [id]", Short: "Delete a listener", Args: cobra.ExactArgs(1), RunE: a.deleteListener},
	)
	return cmd
}

func (a *app) listListeners(cmd *cobra.Command, args []string) error {
	rows, err := a.listeners.List(cmd.Context())
	if err != nil {
		return backendError("list listeners", err)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tTARGET\tUPDATED")
	for _, l := range rows {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", l.ID, l.Name, l.TypeName, orDash(l.Target), formatTime(l.UpdatedAt))
	}
	w.Flush()
	fmt.Fprintf(cmd.OutOrStdout(), "\nTotal: %d listeners\n", len(rows))
	return nil
}

func (a *app) viewListener(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	l, err := a.listeners.Get(cmd.Context(), id)
	if err != nil {
		return backendError(fmt.Sprintf("view listener %d", id), err)
	}

	targetLabel, target := "URL:", l.URL()
	if l.Type == models.ListenerTypeSocial {
		targetLabel, target = "Email:", l.Email()
	}
	fmt.Fprintf(cmd.OutOrStdout(), `
Listener #%d
============
Name:      %s
Type:      %s
%-10s %s
Updated:   %s
`, l.ID, l.Name, l.Type, targetLabel, orDash(target), formatTime(l.UpdatedAt))
	return nil
}

func (a *app) deleteListener(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := a.listeners.Delete(cmd.Context(), id); err != nil {
		return backendError(fmt.Sprintf("delete listener %d", id), err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Listener %d deleted\n", id)
	return nil
}
