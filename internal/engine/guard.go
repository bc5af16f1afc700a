// Package engine is the live-view synchronization core: the staleness
// guard, the shared view-model, the pagination/filter composer, and the
// progress correlator. It has no UI or transport dependencies; everything
// here runs on the dashboard session's single logical thread, so no locking
// is needed.
package engine

// Resource identifies one independently polled resource type.
type Resource int

const (
	ResourceStats Resource = iota
	ResourceProjects
	ResourceFilters
	ResourceFindings
	ResourceActivity
	ResourceDetail

	resourceCount
)

// String returns the resource's log label.
func (r Resource) String() string {
	switch r {
	case ResourceStats:
		return "stats"
	case ResourceProjects:
		return "projects"
	case ResourceFilters:
		return "filters"
	case ResourceFindings:
		return "findings"
	case ResourceActivity:
		return "activity"
	case ResourceDetail:
		return "detail"
	default:
		return "unknown"
	}
}

// Guard implements last-request-wins sequencing. Each resource type owns a
// counter; issuing a request tags it with the incremented value, and a
// response is admitted only if no newer request has been issued since.
// Fetches themselves are never serialized — out-of-order completions are
// discarded here instead.
type Guard struct {
	seq [resourceCount]uint64
}

// Issue registers a new in-flight request for r and returns its tag.
func (g *Guard) Issue(r Resource) uint64 {
	g.seq[r]++
	return g.seq[r]
}

// Admit reports whether a response tagged with seq is still current for r.
func (g *Guard) Admit(r Resource, seq uint64) bool {
	return g.seq[r] == seq
}

// Current returns the latest issued tag for r.
func (g *Guard) Current(r Resource) uint64 {
	return g.seq[r]
}
