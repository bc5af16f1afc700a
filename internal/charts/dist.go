package charts

import (
	"fmt"
	"sort"
	"strings"
)

// maxDistRows limits distribution charts to the largest buckets.
const maxDistRows = 5

// distHandle is the rendering handle for a distribution chart. Distribution
// data never changes shape, so the handle is created once and only its
// dataset mutates.
type distHandle struct {
	keys   []string
	counts []int
}

// DistChart is a mode-independent horizontal bar chart over a string→count
// mapping, used for the tool-distribution and fix-availability panels.
type DistChart struct {
	title  string
	handle *distHandle
}

// NewDistChart creates an empty distribution chart.
func NewDistChart(title string) *DistChart {
	return &DistChart{title: title}
}

// Update replaces the chart's dataset in place. The handle survives across
// updates.
func (c *DistChart) Update(data map[string]int) {
	if c.handle == nil {
		c.handle = &distHandle{}
	}

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if data[keys[i]] != data[keys[j]] {
			return data[keys[i]] > data[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > maxDistRows {
		keys = keys[:maxDistRows]
	}

	c.handle.keys = keys
	c.handle.counts = c.handle.counts[:0]
	for _, k := range keys {
		c.handle.counts = append(c.handle.counts, data[k])
	}
}

// HasHandle reports whether the chart has received data.
func (c *DistChart) HasHandle() bool {
	return c.handle != nil
}

// Render draws the chart into a panel of the given width.
func (c *DistChart) Render(width int) string {
	var b strings.Builder
	b.WriteString(c.title)
	b.WriteString("\n")

	if c.handle == nil || len(c.handle.keys) == 0 {
		b.WriteString(styleMuted.Render("no data"))
		return stylePanel.Width(width).Render(b.String())
	}

	labelW := maxLabelWidth(c.handle.keys, width/2)
	barW := width - labelW - 10
	if barW < 6 {
		barW = 6
	}

	peak := 0
	for _, v := range c.handle.counts {
		if v > peak {
			peak = v
		}
	}

	for i, k := range c.handle.keys {
		v := c.handle.counts[i]
		fmt.Fprintf(&b, "%-*s %s %d\n", labelW, truncateLabel(k, labelW),
			styleAccent.Render(solidBar(barW, peak, v)), v)
	}
	return stylePanel.Width(width).Render(strings.TrimRight(b.String(), "\n"))
}
