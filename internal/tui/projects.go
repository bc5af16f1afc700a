package tui

import (
	"fmt"
	"strings"

	"github.com/scanpulse/scanpulse/internal/engine"
)

// renderProjects draws the project strip: one cell per project with its
// provider/branch, activity marker, and — for active projects — the last
// known scan progress.
func (m *Model) renderProjects(width int) string {
	if len(m.view.Projects) == 0 {
		return styleProjects.Width(width).Render(styleMutedText.Render("no projects"))
	}

	var cells []string
	for i, p := range m.view.Projects {
		var b strings.Builder

		name := p.Name
		if m.focus == focusProjects && i == m.projectCursor {
			name = "> " + name
		} else {
			name = "  " + name
		}
		if p.Name == m.view.SelectedScope {
			b.WriteString(styleScope.Render(name))
		} else {
			b.WriteString(name)
		}
		b.WriteString("\n")

		b.WriteString("  " + styleMutedText.Render(fmt.Sprintf("%s/%s", p.Provider, p.Branch)))
		b.WriteString("\n")

		if p.IsActive {
			b.WriteString("  " + m.renderScanProgress(p.Name))
		} else {
			b.WriteString("  " + styleMutedText.Render("idle"))
		}

		cells = append(cells, b.String())
	}

	return styleProjects.Width(width).Render(strings.Join(cells, "\n"))
}

// renderScanProgress shows the last known stage and percentage for an
// active project. When no progress has arrived yet the project is shown as
// running without a bar; a previously shown value is never reset to zero
// just because the activity feed momentarily dropped the scan.
func (m *Model) renderScanProgress(project string) string {
	prog, ok := m.view.ProgressFor(project)
	if !ok {
		return styleActive.Render("scanning") + styleMutedText.Render(" (starting...)")
	}

	bar := m.progBar.ViewAs(float64(prog.ProgressPct) / 100)
	stage := prog.Stage
	if stage == "" {
		stage = "Processing"
	}
	return fmt.Sprintf("%s %s %d%%", styleActive.Render(stage), bar, prog.ProgressPct)
}

// scanTargets derives which progress fetches to issue for the current tick.
func (m *Model) scanTargets() []engine.ActiveScan {
	return engine.CorrelateScans(m.view.Projects, m.view.Activity)
}
