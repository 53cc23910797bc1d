package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newCampaignCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "campaign",
		Short: "Manage campaigns",
	}
	cmd.AddCommand(
		&cobra.Command{Use: "list", Short: "List all campaigns", Args: cobra.NoArgs, RunE: a.listCampaigns},
		&cobra.Command{Use: "view [id]", Short: "View a campaign and its honeypots", Args: cobra.ExactArgs(1), RunE: a.viewCampaign},
		&cobra.Command{Use: "delete [id]", Short: "Delete a campaign", Args: cobra.ExactArgs(1), RunE: a.deleteCampaign},
	)
	return cmd
}

func (a *app) listCampaigns(cmd *cobra.Command, args []string) error {
	rows, err := a.campaigns.List(cmd.Context())
	if err != nil {
		return backendError("list campaigns", err)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tHONEYPOTS\tUPDATED")
	for _, c := range rows {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", c.ID, c.Name, c.Honeypots, formatTime(c.UpdatedAt))
	}
	w.Flush()
	fmt.Fprintf(cmd.OutOrStdout(), "\nTotal: %d campaigns\n", len(rows))
	return nil
}

func (a *app) viewCampaign(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	detail, err := a.campaigns.Get(cmd.Context(), id)
	if err != nil {
		return backendError(fmt.Sprintf("view campaign %d", id), err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nCampaign #%d: %s\nUpdated: %s\n\n", detail.Campaign.ID, detail.Campaign.Name, formatTime(detail.Campaign.UpdatedAt))
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "HONEYPOT\tLISTENER\tSOURCE")
	for _, hp := range detail.Honeypots {
		fmt.Fprintf(w, "%s\t%s\t%s\n", hp.Name, orDash(hp.Listener), orDash(hp.Source))
	}
	return w.Flush()
}

func (a *app) deleteCampaign(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := a.campaigns.Delete(cmd.Context(), id); err != nil {
		return backendError(fmt.Sprintf("delete campaign %d", id), err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Campaign %d deleted\n", id)
	return nil
}
