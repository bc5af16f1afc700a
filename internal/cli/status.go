package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scanpulse/scanpulse/internal/apiclient"
	"github.com/scanpulse/scanpulse/internal/logging"
	"github.com/scanpulse/scanpulse/internal/reporter"
)

var (
	statusFormat string
	statusRepo   string
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show pipeline stats without opening the dashboard",
	Long: `Status fetches one stats snapshot from the pipeline API and prints it.

With --repo the snapshot is scoped to a single project, the same way
selecting a project in the dashboard scopes it.

Example:
  scanpulse status
  scanpulse status --repo org/api --format json`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&statusFormat, "format", "",
		"output format: text or json (default from config)")
	statusCmd.Flags().StringVar(&statusRepo, "repo", "",
		"scope the snapshot to one project")
}

func runStatus(cmd *cobra.Command, args []string) error {
	if _, err := logging.Setup(logging.Options{Verbose: cfg.Verbose, Debug: cfg.Debug}); err != nil {
		return err
	}

	format := cfg.Format
	if statusFormat != "" {
		format = statusFormat
	}

	client := apiclient.New(cfg.APIURL, cfg.HTTPTimeout)
	snap, err := client.Stats(context.Background(), statusRepo)
	if err != nil {
		return fmt.Errorf("fetch stats: %s", apiclient.ServerMessage(err))
	}

	if format == "json" {
		return reporter.NewJSONReporter(os.Stdout, true).Generate(snap)
	}
	return reporter.NewTextReporter(os.Stdout).Stats(snap, statusRepo)
}
