package models

import "encoding/json"

// TrendMode discriminates the two shapes a trend payload can take.
type TrendMode string

const (
	// TrendGlobal is a per-project time-bucketed view: one label per project,
	// three parallel severity series.
	TrendGlobal TrendMode = "global"
	// TrendScoped is a single-project breakdown: fixed severity labels, one
	// series of three counts.
	TrendScoped TrendMode = "scoped"
)

// scopedLabels is the fixed category axis for scoped trend charts.
var scopedLabels = []string{"Critical", "High", "Medium"}

// TrendData is a tagged variant: exactly one of Global or Scoped is
// meaningful, selected by Mode. Consumers match on the tag and must never
// mix datasets from the two shapes in one render.
type TrendData struct {
	Mode   TrendMode
	Global GlobalTrend
	Scoped ScopedTrend
}

// GlobalTrend holds three stacked severity series across project labels.
type GlobalTrend struct {
	Labels   []string
	Critical []int
	High     []int
	Medium   []int
}

// ScopedTrend holds one series of severity counts over a fixed label axis.
type ScopedTrend struct {
	Labels []string
	Values []int
}

// rawTrend mirrors the wire format. The backend reuses the "critical" field
// to carry the [critical, high, medium] value triple in scoped mode.
type rawTrend struct {
	Mode     string   `json:"mode"`
	Labels   []string `json:"labels"`
	Critical []int    `json:"critical"`
	High     []int    `json:"high"`
	Medium   []int    `json:"medium"`
}

// UnmarshalJSON normalizes the wire payload into the tagged variant. The
// backend names the scoped mode "repo"; both spellings are accepted. Missing
// or short series are zero-padded rather than rejected.
func (t *TrendData) UnmarshalJSON(data []byte) error {
	var raw rawTrend
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch raw.Mode {
	case "repo", string(TrendScoped):
		labels := raw.Labels
		if len(labels) == 0 {
			labels = scopedLabels
		}
		t.Mode = TrendScoped
		t.Scoped = ScopedTrend{
			Labels: labels,
			Values: padSeries(raw.Critical, len(labels)),
		}
		t.Global = GlobalTrend{}
	default:
		n := len(raw.Labels)
		t.Mode = TrendGlobal
		t.Global = GlobalTrend{
			Labels:   append([]string{}, raw.Labels...),
			Critical: padSeries(raw.Critical, n),
			High:     padSeries(raw.High, n),
			Medium:   padSeries(raw.Medium, n),
		}
		t.Scoped = ScopedTrend{}
	}
	return nil
}

// padSeries returns a copy of s truncated or zero-padded to length n.
func padSeries(s []int, n int) []int {
	out := make([]int, n)
	copy(out, s)
	return out
}
