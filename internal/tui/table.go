package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/scanpulse/scanpulse/internal/engine"
	"github.com/scanpulse/scanpulse/internal/models"
)

var tableColumns = []table.Column{
	{Title: "ID", Width: 6},
	{Title: "Severity", Width: 10},
	{Title: "Tool", Width: 12},
	{Title: "Risk", Width: 6},
	{Title: "Verdict", Width: 8},
	{Title: "Fix", Width: 4},
	{Title: "Project", Width: 24},
	{Title: "Location", Width: 30},
}

// buildRows converts finding summaries to table rows.
func buildRows(findings []models.FindingSummary) []table.Row {
	rows := make([]table.Row, 0, len(findings))
	for _, f := range findings {
		fix := ""
		if f.HasFix {
			fix = "✓"
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", f.ID),
			f.Severity,
			f.Tool,
			fmt.Sprintf("%.1f", f.RiskScore),
			f.AIVerdict,
			fix,
			truncate(f.Project, tableColumns[6].Width),
			truncate(f.Location, tableColumns[7].Width),
		})
	}
	return rows
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	const ellipsis = "..."
	if maxLen <= len(ellipsis) {
		return s[:maxLen]
	}
	return s[:maxLen-len(ellipsis)] + ellipsis
}

// newTable creates a bubbles table with standard columns and styling.
func newTable(height int) table.Model {
	t := table.New(
		table.WithColumns(tableColumns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorBorder).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(colorAccent).
		Bold(false)
	t.SetStyles(s)

	return t
}

// paginationFooter renders "page X/Y (N total)" plus the active filters, or
// a fallback notice when pagination is disabled for this cycle.
func paginationFooter(pager *engine.Pager, disabled bool) string {
	if disabled {
		return styleMutedText.Render("pagination unavailable (fallback data)")
	}

	s := fmt.Sprintf("page %d/%d (%d total)", pager.Page(), pager.TotalPages(), pager.Total())
	f := pager.Filters()
	if f.Repo != "" {
		s += "  repo=" + f.Repo
	}
	if f.Tool != "" {
		s += "  tool=" + f.Tool
	}
	if f.Severity != "" {
		s += "  severity=" + f.Severity
	}
	return styleMutedText.Render(s)
}
