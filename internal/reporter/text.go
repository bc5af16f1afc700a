package reporter

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/scanpulse/scanpulse/internal/models"
)

// TextReporter generates human-readable output for the one-shot commands
type TextReporter struct {
	writer io.Writer
}

// NewTextReporter creates a new text reporter
func NewTextReporter(writer io.Writer) *TextReporter {
	return &TextReporter{
		writer: writer,
	}
}

// Stats prints an aggregate statistics snapshot
func (r *TextReporter) Stats(snap *models.StatsSnapshot, scope string) error {
	r.printHeader()

	if scope != "" {
		r.printf("Scope: %s\n\n", scope)
	}

	r.printf("Findings: %d across %d repos (%d scans)\n",
		snap.TotalFindings, snap.TotalRepos, snap.TotalScans)
	r.printf("Severity: critical=%d high=%d medium=%d low=%d\n",
		snap.Severity.Critical, snap.Severity.High, snap.Severity.Medium, snap.Severity.Low)
	r.printf("AI triage: auto-fixed=%d false-positives=%d efficacy=%.1f%% confidence=%.1f%%\n",
		snap.AIMetrics.AutoFixed, snap.AIMetrics.FalsePositives,
		snap.AIMetrics.EfficacyPct, snap.AIMetrics.ConfidenceAvg)
	r.printf("MTTF: %.2fh (ai %.2fh / manual %.2fh)\n",
		snap.DevSecOps.MTTFHours, snap.DevSecOps.MTTFAIHours, snap.DevSecOps.MTTFManualHours)

	if len(snap.DevSecOps.ToolDistribution) > 0 {
		r.printf("\nFindings by tool:\n")
		r.printDistribution(snap.DevSecOps.ToolDistribution)
	}

	if len(snap.DevSecOps.RiskPerRepo) > 0 {
		r.printf("\nRiskiest repos:\n")
		for _, rr := range snap.DevSecOps.RiskPerRepo {
			r.printf("  %-40s %8.1f\n", rr.Repo, rr.Risk)
		}
	}

	r.printf("\nSystem health: %s (db=%s redis=%s)\n",
		snap.SystemHealth.Status, snap.SystemHealth.Database, snap.SystemHealth.Redis)
	return nil
}

// Findings prints one page of the findings table
func (r *TextReporter) Findings(page *models.FindingsPage) error {
	if len(page.Findings) == 0 {
		r.printf("No findings.\n")
		return nil
	}

	r.printf("%-6s %-10s %-12s %-6s %-30s %s\n",
		"ID", "Severity", "Tool", "Risk", "Project", "Location")
	r.printf("%s\n", strings.Repeat("-", 90))

	for _, f := range page.Findings {
		r.printf("%-6d %-10s %-12s %-6.1f %-30s %s\n",
			f.ID, f.Severity, f.Tool, f.RiskScore, f.Project, f.Location)
	}

	totalPages := (page.Total + page.PerPage - 1) / page.PerPage
	if totalPages < 1 {
		totalPages = 1
	}
	r.printf("\nPage %d/%d (%d total)\n", page.Page, totalPages, page.Total)
	return nil
}

func (r *TextReporter) printHeader() {
	r.printf("╔════════════════════════════════════════════╗\n")
	r.printf("║        scanpulse — pipeline snapshot        ║\n")
	r.printf("╚════════════════════════════════════════════╝\n\n")
}

func (r *TextReporter) printDistribution(dist map[string]int) {
	keys := sortedByCount(dist)
	for _, k := range keys {
		r.printf("  %-20s %d\n", k, dist[k])
	}
}

func (r *TextReporter) printf(format string, args ...interface{}) {
	fmt.Fprintf(r.writer, format, args...)
}

// sortedByCount returns keys ordered by descending count, ties alphabetical.
func sortedByCount(dist map[string]int) []string {
	keys := make([]string, 0, len(dist))
	for k := range dist {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if dist[keys[i]] != dist[keys[j]] {
			return dist[keys[i]] > dist[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}
