package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/scanpulse/scanpulse/internal/apiclient"
	"github.com/scanpulse/scanpulse/internal/engine"
)

// Fetch command constructors. Sequence tags are issued here, on the update
// loop's thread, before the command's goroutine starts; the closures only
// carry immutable copies of the parameters they were built with.

func (m *Model) fetchStats() tea.Cmd {
	seq := m.view.Begin(engine.ResourceStats)
	scope := m.view.SelectedScope
	client := m.client
	return func() tea.Msg {
		snap, err := client.Stats(context.Background(), scope)
		if err != nil {
			return fetchErrMsg{engine.ResourceStats, seq, err}
		}
		return statsMsg{seq, snap}
	}
}

func (m *Model) fetchProjects() tea.Cmd {
	seq := m.view.Begin(engine.ResourceProjects)
	client := m.client
	return func() tea.Msg {
		projects, err := client.Projects(context.Background())
		if err != nil {
			return fetchErrMsg{engine.ResourceProjects, seq, err}
		}
		return projectsMsg{seq, projects}
	}
}

func (m *Model) fetchFilters() tea.Cmd {
	seq := m.view.Begin(engine.ResourceFilters)
	client := m.client
	return func() tea.Msg {
		opts, err := client.Filters(context.Background())
		if err != nil {
			return fetchErrMsg{engine.ResourceFilters, seq, err}
		}
		return filtersMsg{seq, opts}
	}
}

// fetchFindings tries the paginated endpoint first and falls back to the
// flat endpoint, synthesizing a single page, when the primary fails.
func (m *Model) fetchFindings() tea.Cmd {
	seq := m.view.Begin(engine.ResourceFindings)
	filters := m.view.Pager.Filters()
	fq := apiclient.FindingsQuery{
		Page:     m.view.Pager.Page(),
		PerPage:  m.view.Pager.PerPage(),
		Repo:     filters.Repo,
		Tool:     filters.Tool,
		Severity: filters.Severity,
	}
	client := m.client
	return func() tea.Msg {
		page, err := client.Findings(context.Background(), fq)
		if err == nil {
			return findingsMsg{seq, page}
		}

		log.WithError(err).Warn("paged findings fetch failed, trying fallback")
		page, ferr := client.FindingsFallback(context.Background(), fq.Repo)
		if ferr != nil {
			return fetchErrMsg{engine.ResourceFindings, seq, ferr}
		}
		return findingsMsg{seq, page}
	}
}

func (m *Model) fetchActivity() tea.Cmd {
	seq := m.view.Begin(engine.ResourceActivity)
	client := m.client
	return func() tea.Msg {
		feed, err := client.Activity(context.Background())
		if err != nil {
			return fetchErrMsg{engine.ResourceActivity, seq, err}
		}
		return activityMsg{seq, feed}
	}
}

// fetchProgress loads one scan's progress. Not sequence-guarded: results
// are keyed by project and retained until superseded.
func (m *Model) fetchProgress(scan engine.ActiveScan) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		prog, err := client.Progress(context.Background(), scan.ScanID)
		if err != nil {
			return progressErrMsg{scan.Project, err}
		}
		return progressMsg{scan.Project, prog}
	}
}

func (m *Model) fetchDetail(id int) tea.Cmd {
	seq := m.view.Begin(engine.ResourceDetail)
	client := m.client
	return func() tea.Msg {
		rec, err := client.FindingDetail(context.Background(), id)
		if err != nil {
			return fetchErrMsg{engine.ResourceDetail, seq, err}
		}
		return detailMsg{seq, rec}
	}
}

func (m *Model) deleteProject(repo string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		err := client.DeleteProject(context.Background(), repo)
		return deleteDoneMsg{repo, err}
	}
}
