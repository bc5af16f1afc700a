// Package charts renders the dashboard's terminal charts. The trend chart
// is mode-aware: its dataset structure is entirely determined by the trend
// payload's mode tag, and a payload of a different mode tears the rendering
// handle down and builds a fresh one. The distribution charts are
// mode-independent and only ever update in place.
package charts

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/scanpulse/scanpulse/internal/models"
)

// trendHandle is the rendering handle for the trend chart, configured for
// exactly one mode. Feeding it data of the other mode is illegal; the chart
// replaces the handle instead.
type trendHandle struct {
	mode   models.TrendMode
	legend bool

	// global-mode datasets: three parallel severity series.
	labels   []string
	critical []int
	high     []int
	medium   []int

	// scoped-mode dataset: one series over a fixed category axis.
	values []int
}

func newTrendHandle(t models.TrendData) *trendHandle {
	h := &trendHandle{mode: t.Mode, legend: t.Mode == models.TrendGlobal}
	h.setData(t)
	return h
}

// setData replaces the handle's datasets. Callers guarantee the payload
// mode matches the handle mode.
func (h *trendHandle) setData(t models.TrendData) {
	switch t.Mode {
	case models.TrendScoped:
		h.labels = t.Scoped.Labels
		h.values = t.Scoped.Values
		h.critical, h.high, h.medium = nil, nil, nil
	default:
		h.labels = t.Global.Labels
		h.critical = t.Global.Critical
		h.high = t.Global.High
		h.medium = t.Global.Medium
		h.values = nil
	}
}

// TrendChart is the severity trend panel. It holds at most one live handle
// at a time.
type TrendChart struct {
	handle     *trendHandle
	generation int
}

// Apply feeds a new trend payload to the chart. It reports true when the
// handle was destroyed and recreated (first payload, or mode switch) and
// false for an in-place dataset update. A single frame never mixes the two
// dataset shapes.
func (c *TrendChart) Apply(t models.TrendData) bool {
	if c.handle == nil || c.handle.mode != t.Mode {
		c.handle = newTrendHandle(t)
		c.generation++
		return true
	}
	c.handle.setData(t)
	return false
}

// Mode returns the live handle's mode, or empty when no payload has been
// applied yet.
func (c *TrendChart) Mode() models.TrendMode {
	if c.handle == nil {
		return ""
	}
	return c.handle.mode
}

// Generation counts handle rebuilds.
func (c *TrendChart) Generation() int {
	return c.generation
}

// Render draws the chart into a panel of the given width.
func (c *TrendChart) Render(width int) string {
	if c.handle == nil {
		return stylePanel.Width(width).Render("Severity Trend\n" + styleMuted.Render("waiting for data..."))
	}

	var b strings.Builder
	switch c.handle.mode {
	case models.TrendScoped:
		b.WriteString("Severity Breakdown\n")
		c.renderScoped(&b, width)
	default:
		b.WriteString("Severity Trend\n")
		c.renderGlobal(&b, width)
	}
	return stylePanel.Width(width).Render(strings.TrimRight(b.String(), "\n"))
}

// renderGlobal draws one stacked severity bar per project label plus a
// shared legend.
func (c *TrendChart) renderGlobal(b *strings.Builder, width int) {
	h := c.handle
	if len(h.labels) == 0 {
		b.WriteString(styleMuted.Render("no projects yet"))
		return
	}

	labelW := maxLabelWidth(h.labels, width/3)
	barW := width - labelW - 10
	if barW < 8 {
		barW = 8
	}

	peak := 0
	for i := range h.labels {
		if sum := h.critical[i] + h.high[i] + h.medium[i]; sum > peak {
			peak = sum
		}
	}

	for i, label := range h.labels {
		total := h.critical[i] + h.high[i] + h.medium[i]
		bar := stackedBar(barW, peak, []segment{
			{h.critical[i], styleCritical},
			{h.high[i], styleHigh},
			{h.medium[i], styleMedium},
		})
		fmt.Fprintf(b, "%-*s %s %d\n", labelW, truncateLabel(label, labelW), bar, total)
	}

	if h.legend {
		b.WriteString(legendLine())
	}
}

// renderScoped draws one individually colored bar per severity category,
// legend suppressed.
func (c *TrendChart) renderScoped(b *strings.Builder, width int) {
	h := c.handle
	labelW := maxLabelWidth(h.labels, 10)
	barW := width - labelW - 10
	if barW < 8 {
		barW = 8
	}

	peak := 0
	for _, v := range h.values {
		if v > peak {
			peak = v
		}
	}

	for i, label := range h.labels {
		v := 0
		if i < len(h.values) {
			v = h.values[i]
		}
		style := severityBarStyle(label)
		fmt.Fprintf(b, "%-*s %s %d\n", labelW, label, style.Render(solidBar(barW, peak, v)), v)
	}
}

// segment is one colored run of a stacked bar.
type segment struct {
	value int
	style lipgloss.Style
}

// stackedBar renders segments proportionally into barW cells against peak.
func stackedBar(barW, peak int, segs []segment) string {
	if peak <= 0 {
		return styleMuted.Render(strings.Repeat("·", barW))
	}
	var b strings.Builder
	used := 0
	for _, s := range segs {
		cells := s.value * barW / peak
		if s.value > 0 && cells == 0 {
			cells = 1
		}
		if used+cells > barW {
			cells = barW - used
		}
		if cells > 0 {
			b.WriteString(s.style.Render(strings.Repeat("█", cells)))
			used += cells
		}
	}
	if used < barW {
		b.WriteString(styleMuted.Render(strings.Repeat("·", barW-used)))
	}
	return b.String()
}

// solidBar renders a single-series bar scaled against peak.
func solidBar(barW, peak, value int) string {
	if peak <= 0 {
		return strings.Repeat("·", barW)
	}
	cells := value * barW / peak
	if value > 0 && cells == 0 {
		cells = 1
	}
	return strings.Repeat("█", cells)
}

func legendLine() string {
	return strings.Join([]string{
		styleCritical.Render("█ critical"),
		styleHigh.Render("█ high"),
		styleMedium.Render("█ medium"),
	}, "  ")
}

func maxLabelWidth(labels []string, cap int) int {
	w := 0
	for _, l := range labels {
		if len(l) > w {
			w = len(l)
		}
	}
	if cap > 0 && w > cap {
		w = cap
	}
	if w < 4 {
		w = 4
	}
	return w
}

func truncateLabel(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
