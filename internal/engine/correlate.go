package engine

import "github.com/scanpulse/scanpulse/internal/models"

// ActiveScan pairs an active project with its in-flight scan id. The record
// is transient: it is derived fresh from two snapshots on every progress
// tick and never stored across ticks.
type ActiveScan struct {
	Project string
	ScanID  int
}

// CorrelateScans joins the project list with the activity feed by project
// name and returns one ActiveScan per active project that the feed still
// lists. Projects missing from the feed (scan finished, or not yet
// registered) are simply omitted; callers keep the last displayed progress
// for those rather than resetting it.
func CorrelateScans(projects []models.Project, feed []models.ActivityEntry) []ActiveScan {
	byProject := make(map[string]int, len(feed))
	for _, entry := range feed {
		if _, seen := byProject[entry.Project]; !seen {
			byProject[entry.Project] = entry.ID
		}
	}

	var scans []ActiveScan
	for _, p := range projects {
		if !p.IsActive {
			continue
		}
		if id, ok := byProject[p.Name]; ok {
			scans = append(scans, ActiveScan{Project: p.Name, ScanID: id})
		}
	}
	return scans
}
