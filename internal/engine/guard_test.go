package engine

import "testing"

func TestGuardAdmitsLatestRequest(t *testing.T) {
	var g Guard
	first := g.Issue(ResourceFindings)
	second := g.Issue(ResourceFindings)

	if g.Admit(ResourceFindings, first) {
		t.Error("superseded request should not be admitted")
	}
	if !g.Admit(ResourceFindings, second) {
		t.Error("latest request should be admitted")
	}
}

func TestGuardLastRequestWinsRegardlessOfArrivalOrder(t *testing.T) {
	// Issue three requests, then resolve them in every possible order. The
	// view must always end up with the highest-numbered resolved result.
	orders := [][]int{
		{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0},
	}

	for _, order := range orders {
		var g Guard
		seqs := []uint64{
			g.Issue(ResourceStats),
			g.Issue(ResourceStats),
			g.Issue(ResourceStats),
		}

		applied := uint64(0)
		for _, idx := range order {
			if g.Admit(ResourceStats, seqs[idx]) {
				applied = seqs[idx]
			}
		}

		if applied != seqs[2] {
			t.Errorf("order %v: applied seq %d, want %d", order, applied, seqs[2])
		}
	}
}

func TestGuardResourcesAreIndependent(t *testing.T) {
	var g Guard
	statsSeq := g.Issue(ResourceStats)
	g.Issue(ResourceFindings)
	g.Issue(ResourceFindings)

	if !g.Admit(ResourceStats, statsSeq) {
		t.Error("findings requests must not invalidate the stats request")
	}
}

func TestResourceString(t *testing.T) {
	names := map[Resource]string{
		ResourceStats:    "stats",
		ResourceProjects: "projects",
		ResourceFilters:  "filters",
		ResourceFindings: "findings",
		ResourceActivity: "activity",
		ResourceDetail:   "detail",
	}
	for r, want := range names {
		if r.String() != want {
			t.Errorf("Resource(%d).String() = %q, want %q", r, r.String(), want)
		}
	}
}
