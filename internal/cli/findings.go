package cli

import (
	"context"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/scanpulse/scanpulse/internal/apiclient"
	"github.com/scanpulse/scanpulse/internal/logging"
	"github.com/scanpulse/scanpulse/internal/reporter"
)

var (
	findingsFormat   string
	findingsRepo     string
	findingsTool     string
	findingsSeverity string
	findingsPage     int
	findingsPerPage  int
)

var findingsCmd = &cobra.Command{
	Use:   "findings",
	Short: "List one page of findings",
	Long: `Findings fetches one page of the findings table and prints it, applying
the same filters the dashboard offers.

If the paginated endpoint is unavailable, the flat endpoint is used and the
whole result is printed as a single page.

Example:
  scanpulse findings --severity Critical --tool semgrep
  scanpulse findings --repo org/api --page 2 --format json`,
	RunE: runFindings,
}

func init() {
	findingsCmd.Flags().StringVar(&findingsFormat, "format", "",
		"output format: text or json (default from config)")
	findingsCmd.Flags().StringVar(&findingsRepo, "repo", "", "filter by repo")
	findingsCmd.Flags().StringVar(&findingsTool, "tool", "", "filter by tool")
	findingsCmd.Flags().StringVar(&findingsSeverity, "severity", "", "filter by severity")
	findingsCmd.Flags().IntVar(&findingsPage, "page", 1, "page number")
	findingsCmd.Flags().IntVar(&findingsPerPage, "per-page", 0,
		"page size (default from config)")
}

func runFindings(cmd *cobra.Command, args []string) error {
	if _, err := logging.Setup(logging.Options{Verbose: cfg.Verbose, Debug: cfg.Debug}); err != nil {
		return err
	}

	if findingsPage < 1 {
		return fmt.Errorf("--page must be at least 1")
	}
	perPage := cfg.PerPage
	if findingsPerPage > 0 {
		perPage = findingsPerPage
	}
	format := cfg.Format
	if findingsFormat != "" {
		format = findingsFormat
	}

	client := apiclient.New(cfg.APIURL, cfg.HTTPTimeout)
	ctx := context.Background()

	page, err := client.Findings(ctx, apiclient.FindingsQuery{
		Page:     findingsPage,
		PerPage:  perPage,
		Repo:     findingsRepo,
		Tool:     findingsTool,
		Severity: findingsSeverity,
	})
	if err != nil {
		log.WithError(err).Warn("paged findings endpoint failed, using fallback")
		page, err = client.FindingsFallback(ctx, findingsRepo)
		if err != nil {
			return fmt.Errorf("fetch findings: %s", apiclient.ServerMessage(err))
		}
	}

	if format == "json" {
		return reporter.NewJSONReporter(os.Stdout, true).Generate(page)
	}
	return reporter.NewTextReporter(os.Stdout).Findings(page)
}
