package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Named poll cadences. Each cadence is an independent repeating timer on the
// program's single logical thread: a tick dispatches its fetch commands and
// immediately re-arms, regardless of whether earlier fetches have resolved.
// Overlap is permitted; the staleness guard, not serialization, keeps the
// view consistent.
const (
	cadenceFast     = "fast"     // stats + projects
	cadenceSlow     = "slow"     // findings table + filter facets
	cadenceProgress = "progress" // activity feed, then per-project progress
)

// tickMsg fires one named cadence.
type tickMsg struct {
	cadence string
}

// tick arms a single shot of the named cadence.
func tick(cadence string, every time.Duration) tea.Cmd {
	return tea.Tick(every, func(time.Time) tea.Msg {
		return tickMsg{cadence: cadence}
	})
}

// dispatch returns the fetch commands a cadence tick issues, plus its
// re-arm. Returns nil after teardown so no timer outlives the session.
func (m *Model) dispatch(cadence string) tea.Cmd {
	if m.stopped {
		return nil
	}

	var cmds []tea.Cmd
	switch cadence {
	case cadenceFast:
		cmds = append(cmds, m.fetchStats(), m.fetchProjects())
		cmds = append(cmds, tick(cadenceFast, m.pollFast))
	case cadenceSlow:
		cmds = append(cmds, m.fetchFindings(), m.fetchFilters())
		cmds = append(cmds, tick(cadenceSlow, m.pollSlow))
	case cadenceProgress:
		// No-op when nothing is active; the cadence stays armed so a scan
		// that starts later is picked up on the next tick.
		if m.hasActiveProjects() {
			cmds = append(cmds, m.fetchActivity())
		}
		cmds = append(cmds, tick(cadenceProgress, m.pollProgress))
	}
	return tea.Batch(cmds...)
}

func (m *Model) hasActiveProjects() bool {
	for _, p := range m.view.Projects {
		if p.IsActive {
			return true
		}
	}
	return false
}
