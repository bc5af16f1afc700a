package tui

import (
	"fmt"
	"strings"

	"github.com/scanpulse/scanpulse/internal/models"
)

// renderHeader produces the stats summary panel.
func renderHeader(snap *models.StatsSnapshot, scope string, width int) string {
	var b strings.Builder

	// Line 1: title, scope, system health
	b.WriteString("scanpulse")
	if scope != "" {
		b.WriteString("  Scope: " + styleScope.Render(scope))
	} else {
		b.WriteString("  Scope: " + styleMutedText.Render("global"))
	}
	if snap != nil && snap.SystemHealth.Status != "" {
		b.WriteString("  Health: " + healthLabel(snap.SystemHealth.Status))
	}
	b.WriteString("\n")

	if snap == nil {
		b.WriteString(styleMutedText.Render("waiting for stats..."))
		return styleHeader.Width(width).Render(b.String())
	}

	// Line 2: totals
	b.WriteString(fmt.Sprintf("Findings: %d  Repos: %d  Scans: %d",
		snap.TotalFindings, snap.TotalRepos, snap.TotalScans))
	b.WriteString("\n")

	// Line 3: severity breakdown
	sevParts := []string{
		severityStyle("Critical").Render(fmt.Sprintf("C:%d", snap.Severity.Critical)),
		severityStyle("High").Render(fmt.Sprintf("H:%d", snap.Severity.High)),
		severityStyle("Medium").Render(fmt.Sprintf("M:%d", snap.Severity.Medium)),
		severityStyle("Low").Render(fmt.Sprintf("L:%d", snap.Severity.Low)),
	}
	b.WriteString(strings.Join(sevParts, "  "))
	b.WriteString("\n")

	// Line 4: AI metrics
	b.WriteString(fmt.Sprintf("AI: auto-fixed %d  false-positives %d  efficacy %.1f%%  MTTF %.1fh",
		snap.AIMetrics.AutoFixed, snap.AIMetrics.FalsePositives,
		snap.AIMetrics.EfficacyPct, snap.DevSecOps.MTTFHours))

	return styleHeader.Width(width).Render(b.String())
}

func healthLabel(status string) string {
	switch status {
	case "operational":
		return styleActive.Render("OPERATIONAL")
	case "degraded":
		return severityStyle("Medium").Render("DEGRADED")
	default:
		return severityStyle("Critical").Render(strings.ToUpper(status))
	}
}
