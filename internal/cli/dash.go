package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scanpulse/scanpulse/internal/apiclient"
	"github.com/scanpulse/scanpulse/internal/logging"
	"github.com/scanpulse/scanpulse/internal/tui"
)

var dashLogFile string

var dashCmd = &cobra.Command{
	Use:   "dash",
	Short: "Open the live dashboard",
	Long: `Dash opens the full-screen live dashboard. It polls the pipeline API on
three cadences (stats and projects every 5s, findings and filters every 15s,
scan progress every 2s by default) and keeps the view consistent when
responses arrive out of order.

Keys:
  tab        switch between findings table and project strip
  r/t/s      filter by repo, tool, or severity
  left/right page the findings table (or move the project cursor)
  enter      open a finding / scope stats to a project
  g          return to the global scope
  d          delete the selected project (with confirmation)
  q          quit

Example:
  scanpulse dash
  scanpulse dash --log-file /tmp/scanpulse.log --debug`,
	RunE: runDash,
}

func init() {
	dashCmd.Flags().StringVar(&dashLogFile, "log-file", "",
		"session log file (overrides config; empty discards logs)")
}

func runDash(cmd *cobra.Command, args []string) error {
	logFile := cfg.LogFile
	if dashLogFile != "" {
		logFile = dashLogFile
	}

	// The dashboard owns the terminal, so logs must never hit stdout.
	closer, err := logging.Setup(logging.Options{
		File:    logFile,
		ToFile:  true,
		Verbose: cfg.Verbose,
		Debug:   cfg.Debug,
	})
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	client := apiclient.New(cfg.APIURL, cfg.HTTPTimeout)

	if err := tui.Run(client, tui.Options{
		PerPage:      cfg.PerPage,
		PollFast:     cfg.PollFast,
		PollSlow:     cfg.PollSlow,
		PollProgress: cfg.PollProgress,
	}); err != nil {
		return fmt.Errorf("dashboard session failed: %w", err)
	}
	return nil
}
