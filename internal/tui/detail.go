package tui

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/scanpulse/scanpulse/internal/models"
)

// detailContent produces the scrollable body of the finding overlay.
func detailContent(rec *models.FindingDetail) string {
	var b strings.Builder

	sev := severityStyle(rec.Severity).Render(strings.ToUpper(rec.Severity))
	fmt.Fprintf(&b, "#%d  %s  %s / %s  risk %.1f\n", rec.ID, sev, rec.Tool, rec.RuleID, rec.RiskScore)
	fmt.Fprintf(&b, "Project: %s  File: %s:%d\n", rec.Project, rec.File, rec.Line)

	if rec.Message != "" {
		fmt.Fprintf(&b, "\n%s\n", rec.Message)
	}
	if rec.Snippet != "" {
		fmt.Fprintf(&b, "\nSnippet:\n%s\n", styleMutedText.Render(rec.Snippet))
	}
	if rec.AIVerdict != "" {
		fmt.Fprintf(&b, "\nAI verdict: %s (%.0f%% confidence)\n", rec.AIVerdict, rec.AIConfidence*100)
	}
	if rec.AIReasoning != "" {
		fmt.Fprintf(&b, "%s\n", rec.AIReasoning)
	}
	if rec.RemediationPatch != "" {
		fmt.Fprintf(&b, "\nRemediation patch (c to copy):\n%s\n", rec.RemediationPatch)
	}
	if rec.PRURL != "" {
		fmt.Fprintf(&b, "\nPR: %s\n", rec.PRURL)
	}

	return b.String()
}

// renderDetailOverlay draws the detail viewport, or a loading line while the
// fetch is still in flight.
func (m *Model) renderDetailOverlay() string {
	if m.view.Detail == nil {
		return styleOverlay.Width(m.width - 2).Render("Loading finding...")
	}
	body := m.detailView.View() + "\n" + styleMutedText.Render("↑/↓ scroll  c copy  esc close")
	return styleOverlay.Width(m.width - 2).Render(body)
}

// copyPatch writes the loaded record's remediation patch to the clipboard
// via OSC 52, without re-fetching the record.
func (m *Model) copyPatch() {
	rec := m.view.Detail
	if rec == nil || rec.RemediationPatch == "" {
		m.statusMsg = "No patch to copy"
		return
	}
	m.clipboard = rec.RemediationPatch
	m.statusMsg = "Patch copied!"
	// OSC 52 clipboard escape: works in most modern terminals
	fmt.Printf("\033]52;c;%s\a", base64.StdEncoding.EncodeToString([]byte(rec.RemediationPatch)))
}
