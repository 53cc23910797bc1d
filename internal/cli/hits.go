package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newHitCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hit",
		Short: "Inspect captured hits",
	}
	cmd.AddCommand(
		&cobra.Command{Use: "list", Short: "List all hits", Args: cobra.NoArgs, RunE: a.listHits},
		&cobra.Command{Use: "view [id]", Short: "View hit details", Args: cobra.ExactArgs(1), RunE: a.viewHit},
		&cobra.Command{Use: "delete [id]", Short: "Delete a hit", Args: cobra.ExactArgs(1), RunE: a.deleteHit},
	)
	return cmd
}

func (a *app) listHits(cmd *cobra.Command, args []string) error {
	rows, err := a.hits.List(cmd.Context())
	if err != nil {
		return backendError("list hits", err)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCREATED\tIP ADDRESS\tTYPE\tSOURCE\tCAMPAIGN\tHONEYPOT")
	for _, h := range rows {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			h.ID, formatTime(&h.CreatedAt), h.IPAddress, h.TypeName, orDash(h.Source), orDash(h.Campaign), orDash(h.Honeypot))
	}
	w.Flush()
	fmt.Fprintf(cmd.OutOrStdout(), "\nTotal: %d hits\n", len(rows))
	return nil
}

func (a *app) viewHit(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	h, err := a.hits.Get(cmd.Context(), id)
	if err != nil {
		return backendError(fmt.Sprintf("view hit %d", id), err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), `
Hit #%d
=======
Created:     %s
IP Address:  %s
Email:       %s
Type:        %s
Source:      %s
Campaign:    %s
Honeypot:    %s
`, h.ID, formatTime(&h.CreatedAt), h.IPAddress, orDash(h.Email), h.TypeName, orDash(h.Source), orDash(h.Campaign), orDash(h.Honeypot))
	return nil
}

func (a *app) deleteHit(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := a.hits.Delete(cmd.Context(), id); err != nil {
		return backendError(fmt.Sprintf("delete hit %d", id), err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Hit %d deleted\n", id)
	return nil
}
