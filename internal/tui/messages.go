package tui

import (
	"github.com/scanpulse/scanpulse/internal/engine"
	"github.com/scanpulse/scanpulse/internal/models"
)

// Resource snapshot messages. Each carries the sequence tag its request was
// issued with; the update loop applies it only if the staleness guard still
// admits that tag.

type statsMsg struct {
	seq  uint64
	snap *models.StatsSnapshot
}

type projectsMsg struct {
	seq      uint64
	projects []models.Project
}

type filtersMsg struct {
	seq  uint64
	opts *models.FilterOptions
}

type findingsMsg struct {
	seq  uint64
	page *models.FindingsPage
}

type activityMsg struct {
	seq  uint64
	feed []models.ActivityEntry
}

type detailMsg struct {
	seq uint64
	rec *models.FindingDetail
}

// progressMsg is keyed by project rather than sequence-guarded: progress is
// retained per project and a failure for one project never affects others.
type progressMsg struct {
	project string
	prog    *models.ScanProgress
}

type progressErrMsg struct {
	project string
	err     error
}

// fetchErrMsg reports a failed fetch for one resource. The tick that issued
// it continues on schedule; the failure only skips that cycle's update.
type fetchErrMsg struct {
	resource engine.Resource
	seq      uint64
	err      error
}

// deleteDoneMsg resolves the delete flow for one repo.
type deleteDoneMsg struct {
	repo string
	err  error
}
