package engine

import "github.com/scanpulse/scanpulse/internal/models"

// View is the shared view-model for one dashboard session. It is mutated
// only through its commit methods (reconciliation) and the embedded pager
// (user input), all on the session's single logical thread. Every commit is
// gated by the staleness guard: a response to a superseded request is
// dropped and the method returns false.
type View struct {
	guard Guard

	Pager         Pager
	SelectedScope string // empty = global

	Stats    *models.StatsSnapshot
	Projects []models.Project
	Findings []models.FindingSummary
	Facets   models.FilterOptions
	Activity []models.ActivityEntry
	Detail   *models.FindingDetail

	// PagingDisabled marks a render cycle whose findings page came from the
	// fallback endpoint.
	PagingDisabled bool

	// progress retains the last known progress per project name. Entries are
	// kept when a project briefly disappears from the activity feed to avoid
	// flicker; they become unreachable once the project stops being active.
	progress map[string]models.ScanProgress
}

// NewView creates a view-model with the given findings page size.
func NewView(perPage int) *View {
	return &View{
		Pager:    NewPager(perPage),
		progress: make(map[string]models.ScanProgress),
	}
}

// Begin registers a new in-flight fetch for r and returns its sequence tag.
func (v *View) Begin(r Resource) uint64 {
	return v.guard.Issue(r)
}

// Admits reports whether seq is still the current request for r.
func (v *View) Admits(r Resource, seq uint64) bool {
	return v.guard.Admit(r, seq)
}

// CommitStats replaces the stats snapshot wholesale.
func (v *View) CommitStats(seq uint64, snap *models.StatsSnapshot) bool {
	if !v.guard.Admit(ResourceStats, seq) {
		return false
	}
	v.Stats = snap
	return true
}

// CommitProjects replaces the project list.
func (v *View) CommitProjects(seq uint64, projects []models.Project) bool {
	if !v.guard.Admit(ResourceProjects, seq) {
		return false
	}
	v.Projects = projects
	return true
}

// CommitFindings replaces the findings page and reconciles pagination state
// from the server's response. Fallback pages are synthesized client-side, so
// their pagination fields never reach the composer: paging is disabled for
// that render cycle and the configured page size survives for the next
// successful paged fetch.
func (v *View) CommitFindings(seq uint64, page *models.FindingsPage) bool {
	if !v.guard.Admit(ResourceFindings, seq) {
		return false
	}
	v.Findings = page.Findings
	v.PagingDisabled = page.Fallback
	if !page.Fallback {
		v.Pager.SetResult(page.Page, page.PerPage, page.Total)
	}
	return true
}

// CommitFacets replaces the filter menu options.
func (v *View) CommitFacets(seq uint64, opts *models.FilterOptions) bool {
	if !v.guard.Admit(ResourceFilters, seq) {
		return false
	}
	v.Facets = *opts
	return true
}

// CommitActivity replaces the activity feed snapshot.
func (v *View) CommitActivity(seq uint64, feed []models.ActivityEntry) bool {
	if !v.guard.Admit(ResourceActivity, seq) {
		return false
	}
	v.Activity = feed
	return true
}

// CommitDetail replaces the loaded finding detail. Detail fetches share the
// guard so that a late response for a superseded lookup cannot repopulate
// the overlay with the wrong record.
func (v *View) CommitDetail(seq uint64, rec *models.FindingDetail) bool {
	if !v.guard.Admit(ResourceDetail, seq) {
		return false
	}
	v.Detail = rec
	return true
}

// SetProgress records per-project progress. Progress is keyed by project so
// one project's failed fetch never blocks another's update, and values are
// retained until superseded.
func (v *View) SetProgress(project string, prog models.ScanProgress) {
	v.progress[project] = prog
}

// ProgressFor returns the last known progress for a project.
func (v *View) ProgressFor(project string) (models.ScanProgress, bool) {
	prog, ok := v.progress[project]
	return prog, ok
}

// SetScope selects the single-project scope; empty returns to global.
func (v *View) SetScope(repo string) {
	v.SelectedScope = repo
}

// RemoveProject optimistically drops a project from the rendered list after
// a confirmed delete. If the project was the selected scope, the scope
// resets to global. The next projects refetch reconciles the real state.
func (v *View) RemoveProject(name string) {
	kept := v.Projects[:0]
	for _, p := range v.Projects {
		if p.Name != name {
			kept = append(kept, p)
		}
	}
	v.Projects = kept
	delete(v.progress, name)
	if v.SelectedScope == name {
		v.SelectedScope = ""
	}
}
