// Package cli implements snarectl, the operator command line for the
// honeypot backend.
package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/Wikid82/snare/internal/backend"
	"github.com/Wikid82/snare/internal/config"
	"github.com/Wikid82/snare/internal/services"
	"github.com/Wikid82/snare/internal/version"
)

// app holds the services every subcommand talks through. It is built once
// the flags are parsed.
type app struct {
	client    *backend.Client
	dashboard *services.DashboardService
	campaigns *services.CampaignService
	hits      *services.HitService
	listeners *services.ListenerService
	sources   *services.SourceService
}

func newApp(backendURL string, timeout time.Duration) *app {
	client := backend.NewClient(backendURL, backend.WithTimeout(timeout))
	return &app{
		client:    client,
		dashboard: services.NewDashboardService(client),
		campaigns: services.NewCampaignService(client),
		hits:      services.NewHitService(client),
		listeners: services.NewListenerService(client),
		sources:   services.NewSourceService(client),
	}
}

// NewRootCommand builds the snarectl command tree. --backend and --timeout
// default to the console config (SNARE_CONFIG file, then SNARE_* env).
func NewRootCommand() *cobra.Command {
	defaults := config.Defaults()
	backendURL := defaults.BackendURL
	timeout := defaults.BackendTimeout

	a := &app{}
	rootCmd := &cobra.Command{
		Use:     "snarectl",
		Short:   "Snare CLI - honeypot campaign management",
		Long:    `snarectl reads and manages the honeypot backend: the dashboard, hits, campaigns, listeners and sources.`,
		Version: version.Full(),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Read()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if !cmd.Flags().Changed("backend") {
				backendURL = cfg.BackendURL
			}
			if !cmd.Flags().Changed("timeout") {
				timeout = cfg.BackendTimeout
			}
			*a = *newApp(backendURL, timeout)
			return nil
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&backendURL, "backend", backendURL, "honeypot backend base URL (default from config)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", timeout, "per-request backend timeout (default from config)")

	rootCmd.AddCommand(
		newDashboardCommand(a),
		newHitCommand(a),
		newCampaignCommand(a),
		newListenerCommand(a),
		newSourceCommand(a),
	)
	return rootCmd
}

// backendError turns a failed backend call into the message shown to the
// operator.
func backendError(action string, err error) error {
	if backend.IsNotFound(err) {
		return fmt.Errorf("%s: not found", action)
	}
	return fmt.Errorf("%s: %s", action, backend.DisplayMessage(err))
}

func parseID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return uint(id), nil
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
