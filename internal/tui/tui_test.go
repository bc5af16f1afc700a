package tui

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/scanpulse/scanpulse/internal/apiclient"
	"github.com/scanpulse/scanpulse/internal/engine"
	"github.com/scanpulse/scanpulse/internal/models"
)

func testModel() Model {
	client := apiclient.New("http://127.0.0.1:1", time.Second)
	return New(client, Options{
		PerPage:      15,
		PollFast:     5 * time.Second,
		PollSlow:     15 * time.Second,
		PollProgress: 2 * time.Second,
	})
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	typed, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return typed, cmd
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// --- staleness guard through the update loop ---

func TestStaleFindingsResponseDiscarded(t *testing.T) {
	m := testModel()

	// Two overlapping findings requests; the older response arrives last.
	oldSeq := m.view.Begin(engine.ResourceFindings)
	newSeq := m.view.Begin(engine.ResourceFindings)

	newPage := &models.FindingsPage{
		Findings: []models.FindingSummary{{ID: 1, Severity: "Critical"}},
		Total:    30, Page: 1, PerPage: 15,
	}
	oldPage := &models.FindingsPage{
		Findings: []models.FindingSummary{{ID: 16, Severity: "Low"}},
		Total:    30, Page: 2, PerPage: 15,
	}

	m, _ = update(t, m, findingsMsg{newSeq, newPage})
	m, _ = update(t, m, findingsMsg{oldSeq, oldPage})

	if len(m.view.Findings) != 1 || m.view.Findings[0].ID != 1 {
		t.Errorf("findings = %+v, want the newer request's rows", m.view.Findings)
	}
	if m.view.Pager.Page() != 1 {
		t.Errorf("page = %d, want 1", m.view.Pager.Page())
	}
}

func TestStaleDetailResponseDiscarded(t *testing.T) {
	m := testModel()

	firstSeq := m.view.Begin(engine.ResourceDetail)
	secondSeq := m.view.Begin(engine.ResourceDetail)

	m, _ = update(t, m, detailMsg{firstSeq, &models.FindingDetail{ID: 7}})
	if m.view.Detail != nil {
		t.Error("superseded detail response repopulated the overlay")
	}

	m, _ = update(t, m, detailMsg{secondSeq, &models.FindingDetail{ID: 8, Severity: "High", Tool: "semgrep"}})
	if m.view.Detail == nil || m.view.Detail.ID != 8 {
		t.Errorf("detail = %+v, want record 8", m.view.Detail)
	}
	if !strings.Contains(m.detailView.View(), "#8") {
		t.Error("detail viewport content not set from the admitted response")
	}
}

// --- scheduler ---

func TestTickDispatchesAndRearms(t *testing.T) {
	m := testModel()

	before := m.view.Begin(engine.ResourceStats)
	_, cmd := update(t, m, tickMsg{cadenceFast})
	if cmd == nil {
		t.Fatal("fast tick must dispatch fetches and re-arm")
	}
	// Dispatching issued a newer stats request.
	if m.view.Admits(engine.ResourceStats, before) {
		t.Error("fast tick did not issue a new stats request")
	}
}

func TestTickAfterTeardownIsInert(t *testing.T) {
	m := testModel()

	m, cmd := update(t, m, keyMsg("q"))
	if cmd == nil {
		t.Fatal("quit must return a command")
	}

	_, cmd = update(t, m, tickMsg{cadenceFast})
	if cmd != nil {
		t.Error("ticks must stop dispatching after teardown")
	}
}

func TestFetchErrorDoesNotStopSchedule(t *testing.T) {
	m := testModel()

	m, _ = update(t, m, fetchErrMsg{engine.ResourceStats, 1, fmt.Errorf("boom")})
	_, cmd := update(t, m, tickMsg{cadenceFast})
	if cmd == nil {
		t.Error("a failed fetch must not cancel the cadence")
	}
}

func TestProgressCadenceIdleWithoutActiveProjects(t *testing.T) {
	m := testModel()

	seq := m.view.Begin(engine.ResourceProjects)
	m, _ = update(t, m, projectsMsg{seq, []models.Project{{Name: "org/api", IsActive: false}}})

	before := m.view.Begin(engine.ResourceActivity)
	m, cmd := update(t, m, tickMsg{cadenceProgress})
	if cmd == nil {
		t.Fatal("progress tick must still re-arm")
	}
	if !m.view.Admits(engine.ResourceActivity, before) {
		t.Error("no activity fetch should be issued while nothing is active")
	}
}

// --- progress correlation ---

func TestActivityFansOutProgressFetches(t *testing.T) {
	m := testModel()

	seq := m.view.Begin(engine.ResourceProjects)
	m, _ = update(t, m, projectsMsg{seq, []models.Project{
		{Name: "org/api", IsActive: true},
		{Name: "org/web", IsActive: false},
	}})

	actSeq := m.view.Begin(engine.ResourceActivity)
	m, cmd := update(t, m, activityMsg{actSeq, []models.ActivityEntry{{ID: 42, Project: "org/api"}}})
	if cmd == nil {
		t.Error("matching activity must fan out progress fetches")
	}

	m, _ = update(t, m, progressMsg{"org/api", &models.ScanProgress{Stage: "Scanning", ProgressPct: 40}})
	prog, ok := m.view.ProgressFor("org/api")
	if !ok || prog.ProgressPct != 40 {
		t.Errorf("progress = %+v", prog)
	}

	// Activity no longer lists the scan: last displayed value is retained.
	actSeq = m.view.Begin(engine.ResourceActivity)
	m, _ = update(t, m, activityMsg{actSeq, nil})
	prog, ok = m.view.ProgressFor("org/api")
	if !ok || prog.ProgressPct != 40 || prog.Stage != "Scanning" {
		t.Errorf("progress reset instead of retained: %+v", prog)
	}
}

func TestProgressErrorIsolated(t *testing.T) {
	m := testModel()
	m.view.SetProgress("org/web", models.ScanProgress{ProgressPct: 70})

	m, _ = update(t, m, progressErrMsg{"org/api", fmt.Errorf("timeout")})
	m, _ = update(t, m, progressMsg{"org/web", &models.ScanProgress{ProgressPct: 80}})

	if prog, _ := m.view.ProgressFor("org/web"); prog.ProgressPct != 80 {
		t.Errorf("one project's failure blocked another's update: %+v", prog)
	}
}

// --- filters and pagination ---

func TestFilterMenuSelectionResetsPage(t *testing.T) {
	m := testModel()
	m.loaded = true

	facetSeq := m.view.Begin(engine.ResourceFilters)
	m, _ = update(t, m, filtersMsg{facetSeq, &models.FilterOptions{Severities: []string{"Critical", "High"}}})

	m.view.Pager.SetResult(1, 15, 90)
	m.view.Pager.ChangePage(2)

	m, _ = update(t, m, keyMsg("s"))
	if m.uiMode != modeFilterMenu {
		t.Fatalf("uiMode = %d, want filter menu", m.uiMode)
	}

	m, _ = update(t, m, keyMsg("j")) // cursor to "Critical"
	m, cmd := update(t, m, keyMsg("enter"))

	if m.view.Pager.Filters().Severity != "Critical" {
		t.Errorf("severity = %q", m.view.Pager.Filters().Severity)
	}
	if m.view.Pager.Page() != 1 {
		t.Errorf("page = %d, want 1 after filter change", m.view.Pager.Page())
	}
	if cmd == nil {
		t.Error("filter change must trigger an immediate findings fetch")
	}
}

func TestPageKeysClampedAndDisabledOnFallback(t *testing.T) {
	m := testModel()
	m.view.Pager.SetResult(1, 15, 45)

	m, cmd := update(t, m, keyMsg("left"))
	if cmd != nil {
		t.Error("moving below page 1 must not issue a fetch")
	}

	m, cmd = update(t, m, keyMsg("right"))
	if cmd == nil {
		t.Error("valid page move must issue a fetch")
	}
	if m.view.Pager.Page() != 2 {
		t.Errorf("page = %d, want 2", m.view.Pager.Page())
	}

	m.view.PagingDisabled = true
	m, cmd = update(t, m, keyMsg("right"))
	if cmd != nil {
		t.Error("paging keys must be inert during a fallback render cycle")
	}
}

// --- delete flow ---

func deletingModel(t *testing.T) Model {
	t.Helper()
	m := testModel()
	seq := m.view.Begin(engine.ResourceProjects)
	m, _ = update(t, m, projectsMsg{seq, []models.Project{
		{Name: "org/api"}, {Name: "org/web"},
	}})
	m, _ = update(t, m, keyMsg("tab")) // focus the project strip
	return m
}

func TestDeleteFlowCancelled(t *testing.T) {
	m := deletingModel(t)

	m, _ = update(t, m, keyMsg("d"))
	if m.uiMode != modeConfirmDelete || m.confirmRepo != "org/api" {
		t.Fatalf("uiMode=%d confirmRepo=%q", m.uiMode, m.confirmRepo)
	}

	m, _ = update(t, m, keyMsg("n"))
	if m.uiMode != modeNormal || m.confirmRepo != "" {
		t.Errorf("cancel must return to idle: uiMode=%d confirmRepo=%q", m.uiMode, m.confirmRepo)
	}
	if len(m.view.Projects) != 2 {
		t.Errorf("cancelled delete must not touch the list")
	}
}

func TestDeleteSuccessRemovesOptimistically(t *testing.T) {
	m := deletingModel(t)
	m.view.SetScope("org/api")

	m, _ = update(t, m, keyMsg("d"))
	m, cmd := update(t, m, keyMsg("y"))
	if m.uiMode != modeDeleting || cmd == nil {
		t.Fatalf("confirm must start the delete: uiMode=%d", m.uiMode)
	}

	m, cmd = update(t, m, deleteDoneMsg{repo: "org/api"})
	if m.uiMode != modeNormal {
		t.Errorf("uiMode = %d, want idle", m.uiMode)
	}
	if len(m.view.Projects) != 1 || m.view.Projects[0].Name != "org/web" {
		t.Errorf("projects = %+v, want optimistic removal", m.view.Projects)
	}
	if m.view.SelectedScope != "" {
		t.Errorf("scope = %q, want reset to global", m.view.SelectedScope)
	}
	if cmd == nil {
		t.Error("successful delete must trigger a reconciling refetch")
	}
}

func TestDeleteFailureLeavesListUntouched(t *testing.T) {
	m := deletingModel(t)

	m, _ = update(t, m, keyMsg("d"))
	m, _ = update(t, m, keyMsg("y"))

	serverErr := &apiclient.Error{Kind: apiclient.KindServer, Op: "delete-project", Err: fmt.Errorf("not found")}
	m, _ = update(t, m, deleteDoneMsg{repo: "org/api", err: serverErr})

	if len(m.view.Projects) != 2 {
		t.Errorf("failed delete must not remove the project: %+v", m.view.Projects)
	}
	if !strings.Contains(m.statusMsg, "not found") {
		t.Errorf("statusMsg = %q, want the server's message", m.statusMsg)
	}
	if m.uiMode != modeNormal {
		t.Errorf("uiMode = %d, want idle after failure", m.uiMode)
	}
}

// --- charts wiring ---

func TestStatsCommitDrivesChartModeSwitch(t *testing.T) {
	m := testModel()

	global := &models.StatsSnapshot{}
	global.DevSecOps.TrendData = models.TrendData{
		Mode:   models.TrendGlobal,
		Global: models.GlobalTrend{Labels: []string{"org/api"}, Critical: []int{1}, High: []int{0}, Medium: []int{2}},
	}
	seq := m.view.Begin(engine.ResourceStats)
	m, _ = update(t, m, statsMsg{seq, global})

	if m.trendChart.Generation() != 1 {
		t.Fatalf("generation = %d, want 1", m.trendChart.Generation())
	}

	// Same mode again: in-place update.
	seq = m.view.Begin(engine.ResourceStats)
	m, _ = update(t, m, statsMsg{seq, global})
	if m.trendChart.Generation() != 1 {
		t.Errorf("same-mode snapshot rebuilt the chart")
	}

	scoped := &models.StatsSnapshot{}
	scoped.DevSecOps.TrendData = models.TrendData{
		Mode:   models.TrendScoped,
		Scoped: models.ScopedTrend{Labels: []string{"Critical", "High", "Medium"}, Values: []int{5, 2, 1}},
	}
	seq = m.view.Begin(engine.ResourceStats)
	m, _ = update(t, m, statsMsg{seq, scoped})
	if m.trendChart.Generation() != 2 {
		t.Errorf("generation = %d, want 2 after mode switch", m.trendChart.Generation())
	}
	if m.trendChart.Mode() != models.TrendScoped {
		t.Errorf("mode = %q, want scoped", m.trendChart.Mode())
	}
}

// --- view rendering ---

func TestViewShowsEmptyFindingsMessage(t *testing.T) {
	m := testModel()
	m.loaded = true

	seq := m.view.Begin(engine.ResourceStats)
	m, _ = update(t, m, statsMsg{seq, &models.StatsSnapshot{}})

	out := m.View()
	if !strings.Contains(out, "No findings match") {
		t.Errorf("empty table message missing:\n%s", out)
	}
	if !strings.Contains(out, "page 1/1 (0 total)") {
		t.Errorf("pagination footer for total=0 missing:\n%s", out)
	}
}

func TestCopyPatchCapturesClipboard(t *testing.T) {
	m := testModel()
	m.view.Detail = &models.FindingDetail{ID: 3, RemediationPatch: "--- a/main.go\n+++ b/main.go"}
	m.uiMode = modeDetail

	m, _ = update(t, m, keyMsg("c"))
	if !strings.Contains(m.clipboard, "+++ b/main.go") {
		t.Errorf("clipboard = %q", m.clipboard)
	}
}
