package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Wikid82/snare/internal/models"
	"github.com/Wikid82/snare/internal/util"
)

func newSourceCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "source",
		Short: "Manage sources",
	}
	cmd.AddCommand(
		&cobra.Command{Use: "list", Short: "List all sources", Args: cobra.NoArgs, RunE: a.listSources},
		&cobra.Command{Use: "view [id]", Short: "View source details", Args: cobra.ExactArgs(1), RunE: a.viewSource},
		&cobra.Command{Use: "delete [id]", Short: "Delete a source", Args: cobra.ExactArgs(1), RunE: a.deleteSource},
	)
	return cmd
}

func (a *app) listSources(cmd *cobra.Command, args []string) error {
	rows, err := a.sources.List(cmd.Context())
	if err != nil {
		return backendError("list sources", err)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tEMAIL\tAPI KEY")
	for _, s := range rows {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", s.ID, s.Name, s.TypeName, orDash(s.Email), orDash(s.APIKey))
	}
	w.Flush()
	fmt.Fprintf(cmd.OutOrStdout(), "\nTotal: %d sources\n", len(rows))
	return nil
}

func (a *app) viewSource(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	s, err := a.sources.Get(cmd.Context(), id)
	if err != nil {
		return backendError(fmt.Sprintf("view source %d", id), err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nSource #%d\n==========\nName:      %s\nType:      %s\n", s.ID, s.Name, s.Type)
	switch settings := s.Settings.(type) {
	case models.SocialAccount:
		fmt.Fprintf(out, "Email:     %s\n", orDash(settings.Email))
	case models.PastebinFeed:
		fmt.Fprintf(out, "API Key:   %s\n", orDash(util.MaskSecret(settings.APIKey)))
		fmt.Fprintf(out, "URLs:      %s\n", orDash(strings.Join(settings.URLs, ", ")))
	}
	return nil
}

func (a *app) deleteSource(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := a.sources.Delete(cmd.Context(), id); err != nil {
		return backendError(fmt.Sprintf("delete source %d", id), err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Source %d deleted\n", id)
	return nil
}
