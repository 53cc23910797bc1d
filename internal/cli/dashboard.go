package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newDashboardCommand(a *app) *cobra.Command {
	var pdfPath string
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show hit statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if pdfPath != "" {
				f, err := os.Create(pdfPath)
				if err != nil {
					return fmt.Errorf("create %s: %w", pdfPath, err)
				}
				if err := a.dashboard.WritePDF(ctx, f); err != nil {
					f.Close()
					_ = os.Remove(pdfPath)
					return backendError("render report", err)
				}
				if err := f.Close(); err != nil {
					return err
				}
				fmt.Fprintf(out, "Report written to %s\n", pdfPath)
				return nil
			}

			view, err := a.dashboard.Build(ctx)
			r := view.Report

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "HIT TYPE\tCOUNT")
			for _, e := range r.HitsByType {
				fmt.Fprintf(w, "%s\t%d\n", e.Type, e.Count)
			}
			fmt.Fprintln(w, "\nTOP IP\tHITS")
			for _, e := range r.TopIPs {
				fmt.Fprintf(w, "%s\t%d\n", e.IPAddress, e.Count)
			}
			fmt.Fprintln(w, "\nTOP SOURCE\tHITS")
			for _, e := range r.TopSources {
				fmt.Fprintf(w, "%s\t%d\n", e.SourceName, e.Count)
			}
			fmt.Fprintln(w, "\nTOP CAMPAIGN\tHONEYPOTS")
			for _, e := range r.TopCampaigns {
				fmt.Fprintf(w, "%s\t%d\n", e.CampaignName, e.Count)
			}
			w.Flush()

			if err != nil {
				return fmt.Errorf("dashboard incomplete: %s", view.Error)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "write the report as a PDF file instead")
	return cmd
}
