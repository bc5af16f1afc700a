// Package tui is the live dashboard session. Polling, reconciliation, and
// user input all run on the Bubble Tea update loop's single logical thread;
// fetches resolve asynchronously and re-enter the loop as messages, where
// the staleness guard decides whether they still apply.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	log "github.com/sirupsen/logrus"

	"github.com/scanpulse/scanpulse/internal/apiclient"
	"github.com/scanpulse/scanpulse/internal/charts"
	"github.com/scanpulse/scanpulse/internal/engine"
)

// uiMode represents the current UI interaction mode.
type uiMode int

const (
	modeNormal uiMode = iota
	modeFilterMenu
	modeDetail
	modeConfirmDelete
	modeDeleting
)

// focusArea selects which panel receives navigation keys.
type focusArea int

const (
	focusFindings focusArea = iota
	focusProjects
)

// filterKind selects which facet a filter menu edits.
type filterKind int

const (
	filterRepo filterKind = iota
	filterTool
	filterSeverity
)

const defaultTableHeight = 12

// Options configures a dashboard session.
type Options struct {
	PerPage      int
	PollFast     time.Duration
	PollSlow     time.Duration
	PollProgress time.Duration
}

// Model is the top-level Bubble Tea model for the live dashboard.
type Model struct {
	client *apiclient.Client
	view   *engine.View

	pollFast     time.Duration
	pollSlow     time.Duration
	pollProgress time.Duration

	trendChart *charts.TrendChart
	toolChart  *charts.DistChart
	fixChart   *charts.DistChart

	table      table.Model
	spin       spinner.Model
	progBar    progress.Model
	detailView viewport.Model

	uiMode      uiMode
	focus       focusArea
	filterKind  filterKind
	menuChoices []string
	menuCursor  int

	projectCursor int
	confirmRepo   string

	width     int
	height    int
	loaded    bool
	stopped   bool
	statusMsg string
	// clipboard is captured here for testing instead of writing to stdout
	clipboard string
}

// New creates a dashboard session model.
func New(client *apiclient.Client, opts Options) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		client:       client,
		view:         engine.NewView(opts.PerPage),
		pollFast:     opts.PollFast,
		pollSlow:     opts.PollSlow,
		pollProgress: opts.PollProgress,
		trendChart:   &charts.TrendChart{},
		toolChart:    charts.NewDistChart("Tool Distribution"),
		fixChart:     charts.NewDistChart("Fix Availability"),
		table:        newTable(defaultTableHeight),
		detailView:   viewport.New(96, 16),
		spin:         sp,
		progBar:      progress.New(progress.WithDefaultGradient(), progress.WithWidth(14)),
		width:        100,
		height:       32,
	}
}

// Init arms all poll cadences and issues the initial fetch round.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.fetchStats(),
		m.fetchProjects(),
		m.fetchFilters(),
		m.fetchFindings(),
		m.fetchActivity(),
		tick(cadenceFast, m.pollFast),
		tick(cadenceSlow, m.pollSlow),
		tick(cadenceProgress, m.pollProgress),
		m.spin.Tick,
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetWidth(msg.Width)
		m.detailView.Width = msg.Width - 4
		m.detailView.Height = msg.Height / 2
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		return m, m.dispatch(msg.cadence)

	case statsMsg:
		if m.view.CommitStats(msg.seq, msg.snap) {
			m.loaded = true
			m.applyCharts()
		} else {
			log.WithField("resource", "stats").Debug("discarded stale response")
		}
		return m, nil

	case projectsMsg:
		if !m.view.CommitProjects(msg.seq, msg.projects) {
			log.WithField("resource", "projects").Debug("discarded stale response")
			return m, nil
		}
		if m.projectCursor >= len(m.view.Projects) {
			m.projectCursor = 0
		}
		return m, nil

	case filtersMsg:
		m.view.CommitFacets(msg.seq, msg.opts)
		return m, nil

	case findingsMsg:
		if m.view.CommitFindings(msg.seq, msg.page) {
			m.table.SetRows(buildRows(m.view.Findings))
		} else {
			log.WithField("resource", "findings").Debug("discarded stale response")
		}
		return m, nil

	case activityMsg:
		if !m.view.CommitActivity(msg.seq, msg.feed) {
			return m, nil
		}
		// Join projects × activity and fan out per-project progress
		// fetches; one failing project never blocks the others.
		var cmds []tea.Cmd
		for _, scan := range m.scanTargets() {
			cmds = append(cmds, m.fetchProgress(scan))
		}
		return m, tea.Batch(cmds...)

	case progressMsg:
		m.view.SetProgress(msg.project, *msg.prog)
		return m, nil

	case progressErrMsg:
		log.WithField("project", msg.project).WithError(msg.err).Warn("progress fetch failed")
		return m, nil

	case detailMsg:
		if !m.view.CommitDetail(msg.seq, msg.rec) {
			log.WithField("resource", "detail").Debug("discarded superseded detail response")
			return m, nil
		}
		m.detailView.SetContent(detailContent(msg.rec))
		m.detailView.GotoTop()
		return m, nil

	case fetchErrMsg:
		// Skip this cycle's update; the cadence stays armed.
		log.WithFields(log.Fields{
			"resource": msg.resource.String(),
			"kind":     apiclient.KindOf(msg.err).String(),
		}).WithError(msg.err).Warn("fetch failed")
		return m, nil

	case deleteDoneMsg:
		return m.finishDelete(msg)

	case spinner.TickMsg:
		if m.loaded {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// applyCharts fans the committed stats snapshot out to the chart layer.
func (m *Model) applyCharts() {
	snap := m.view.Stats
	if snap == nil {
		return
	}

	if rebuilt := m.trendChart.Apply(snap.DevSecOps.TrendData); rebuilt {
		log.WithField("mode", string(snap.DevSecOps.TrendData.Mode)).Debug("trend chart rebuilt")
	}

	m.toolChart.Update(snap.DevSecOps.ToolDistribution)

	open := snap.TotalFindings - snap.AIMetrics.AutoFixed
	if open < 0 {
		open = 0
	}
	m.fixChart.Update(map[string]int{
		"auto-fixed": snap.AIMetrics.AutoFixed,
		"open":       open,
	})
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.uiMode {
	case modeFilterMenu:
		return m.handleMenuKey(msg)
	case modeDetail:
		return m.handleDetailKey(msg)
	case modeConfirmDelete:
		return m.handleConfirmKey(msg)
	case modeDeleting:
		// Only quit is honored while a delete is in flight.
		if key.Matches(msg, keys.Quit) {
			m.stopped = true
			return m, tea.Quit
		}
		return m, nil
	default:
		return m.handleNormalKey(msg)
	}
}

func (m Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.stopped = true
		return m, tea.Quit

	case key.Matches(msg, keys.Focus):
		if m.focus == focusFindings {
			m.focus = focusProjects
		} else {
			m.focus = focusFindings
		}
		return m, nil

	case key.Matches(msg, keys.FilterRepo):
		return m.openMenu(filterRepo, m.view.Facets.Repos), nil
	case key.Matches(msg, keys.FilterTool):
		return m.openMenu(filterTool, m.view.Facets.Tools), nil
	case key.Matches(msg, keys.FilterSev):
		return m.openMenu(filterSeverity, m.view.Facets.Severities), nil

	case key.Matches(msg, keys.ClearFilter):
		m.view.Pager.Clear()
		m.statusMsg = ""
		return m, m.fetchFindings()

	case key.Matches(msg, keys.GlobalScope):
		if m.view.SelectedScope != "" {
			m.view.SetScope("")
			return m, m.fetchStats()
		}
		return m, nil
	}

	if m.focus == focusProjects {
		return m.handleProjectsKey(msg)
	}
	return m.handleFindingsKey(msg)
}

func (m Model) handleFindingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.PrevPage):
		if !m.view.PagingDisabled && m.view.Pager.ChangePage(-1) {
			return m, m.fetchFindings()
		}
		return m, nil

	case key.Matches(msg, keys.NextPage):
		if !m.view.PagingDisabled && m.view.Pager.ChangePage(1) {
			return m, m.fetchFindings()
		}
		return m, nil

	case key.Matches(msg, keys.Open):
		cursor := m.table.Cursor()
		if cursor < 0 || cursor >= len(m.view.Findings) {
			return m, nil
		}
		m.uiMode = modeDetail
		m.view.Detail = nil
		return m, m.fetchDetail(m.view.Findings[cursor].ID)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) handleProjectsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		if m.projectCursor > 0 {
			m.projectCursor--
		}
		return m, nil
	case "right", "l":
		if m.projectCursor < len(m.view.Projects)-1 {
			m.projectCursor++
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Open):
		if p := m.cursorProject(); p != "" {
			m.view.SetScope(p)
			return m, m.fetchStats()
		}
		return m, nil

	case key.Matches(msg, keys.Delete):
		if p := m.cursorProject(); p != "" {
			m.uiMode = modeConfirmDelete
			m.confirmRepo = p
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.menuCursor > 0 {
			m.menuCursor--
		}
	case "down", "j":
		if m.menuCursor < len(m.menuChoices) {
			m.menuCursor++
		}
	case "enter":
		choice := "" // cursor 0 is "All"
		if m.menuCursor > 0 && m.menuCursor <= len(m.menuChoices) {
			choice = m.menuChoices[m.menuCursor-1]
		}
		m.uiMode = modeNormal
		m.applyFilterChoice(choice)
		// Filter changes reset to page 1 inside the pager; poll now rather
		// than waiting out the slow cadence.
		return m, m.fetchFindings()
	case "esc":
		m.uiMode = modeNormal
	}
	return m, nil
}

func (m *Model) applyFilterChoice(choice string) {
	switch m.filterKind {
	case filterRepo:
		m.view.Pager.SetRepo(choice)
	case filterTool:
		m.view.Pager.SetTool(choice)
	case filterSeverity:
		m.view.Pager.SetSeverity(choice)
	}
	if choice != "" {
		m.statusMsg = "Filter: " + choice
	} else {
		m.statusMsg = ""
	}
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.stopped = true
		return m, tea.Quit
	case key.Matches(msg, keys.Copy):
		m.copyPatch()
		return m, nil
	case key.Matches(msg, keys.ClearFilter):
		m.uiMode = modeNormal
		return m, nil
	}

	var cmd tea.Cmd
	m.detailView, cmd = m.detailView.Update(msg)
	return m, cmd
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.uiMode = modeDeleting
		return m, m.deleteProject(m.confirmRepo)
	case "n", "N", "esc":
		m.uiMode = modeNormal
		m.confirmRepo = ""
		return m, nil
	}
	return m, nil
}

// finishDelete resolves the delete flow. On success the project is removed
// optimistically and a projects refetch reconciles; on failure the list is
// left untouched and the server's message is surfaced. The confirmation
// state returns to idle either way.
func (m Model) finishDelete(msg deleteDoneMsg) (tea.Model, tea.Cmd) {
	m.uiMode = modeNormal
	m.confirmRepo = ""

	if msg.err != nil {
		m.statusMsg = "Delete failed: " + apiclient.ServerMessage(msg.err)
		log.WithField("repo", msg.repo).WithError(msg.err).Warn("project delete failed")
		return m, nil
	}

	scopeWasDeleted := m.view.SelectedScope == msg.repo
	m.view.RemoveProject(msg.repo)
	if m.projectCursor >= len(m.view.Projects) && m.projectCursor > 0 {
		m.projectCursor--
	}
	m.statusMsg = "Deleted " + msg.repo
	log.WithField("repo", msg.repo).Info("project deleted")

	cmds := []tea.Cmd{m.fetchProjects()}
	if scopeWasDeleted {
		cmds = append(cmds, m.fetchStats())
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) cursorProject() string {
	if m.projectCursor < 0 || m.projectCursor >= len(m.view.Projects) {
		return ""
	}
	return m.view.Projects[m.projectCursor].Name
}

func (m *Model) openMenu(kind filterKind, choices []string) Model {
	m.uiMode = modeFilterMenu
	m.filterKind = kind
	m.menuChoices = choices
	m.menuCursor = 0
	return *m
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.loaded {
		return fmt.Sprintf("\n  %s fetching pipeline state...\n", m.spin.View())
	}

	var b strings.Builder

	b.WriteString(renderHeader(m.view.Stats, m.view.SelectedScope, m.width))
	b.WriteString("\n")

	b.WriteString(m.renderChartsRow())
	b.WriteString("\n")

	b.WriteString(m.renderProjects(m.width))
	b.WriteString("\n")

	switch m.uiMode {
	case modeFilterMenu:
		b.WriteString(m.renderFilterMenu())
		b.WriteString("\n")
	case modeDetail:
		b.WriteString(m.renderDetailOverlay())
		b.WriteString("\n")
	case modeConfirmDelete:
		b.WriteString(styleConfirm.Render(fmt.Sprintf("Delete %s and all its scans? (y/n)", m.confirmRepo)))
		b.WriteString("\n")
	case modeDeleting:
		b.WriteString(styleConfirm.Render(fmt.Sprintf("Deleting %s...", m.confirmRepo)))
		b.WriteString("\n")
	}

	if len(m.view.Findings) == 0 {
		b.WriteString(styleMutedText.Render("No findings match the current filters."))
		b.WriteString("\n")
	} else {
		b.WriteString(m.table.View())
		b.WriteString("\n")
	}
	b.WriteString(paginationFooter(&m.view.Pager, m.view.PagingDisabled))
	b.WriteString("\n")

	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderChartsRow() string {
	third := m.width/3 - 2
	if third < 20 {
		third = 20
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.trendChart.Render(third),
		m.toolChart.Render(third),
		m.fixChart.Render(third),
	)
}

func (m Model) renderFilterMenu() string {
	var b strings.Builder

	switch m.filterKind {
	case filterRepo:
		b.WriteString("Filter by repo:\n")
	case filterTool:
		b.WriteString("Filter by tool:\n")
	case filterSeverity:
		b.WriteString("Filter by severity:\n")
	}

	options := append([]string{"All"}, m.menuChoices...)
	for i, opt := range options {
		cursor := "  "
		if i == m.menuCursor {
			cursor = "> "
		}
		b.WriteString(fmt.Sprintf("%s%s\n", cursor, opt))
	}
	return styleOverlay.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderFooter() string {
	left := "q:quit  tab:panel  r/t/s:filter  ←/→:page  enter:open  g:global  esc:clear"
	if m.focus == focusProjects {
		left = "q:quit  tab:panel  ←/→:select  enter:scope  d:delete  g:global"
	}

	right := ""
	if m.statusMsg != "" {
		right = m.statusMsg
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return styleFooter.Render(left + strings.Repeat(" ", gap) + right)
}

// Run starts the dashboard session and blocks until it exits.
func Run(client *apiclient.Client, opts Options) error {
	m := New(client, opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
