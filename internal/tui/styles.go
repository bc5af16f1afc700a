package tui

import "github.com/charmbracelet/lipgloss"

// Severity colors
var (
	colorCritical = lipgloss.Color("#FF0000")
	colorHigh     = lipgloss.Color("#FF8800")
	colorMedium   = lipgloss.Color("#FFFF00")
	colorLow      = lipgloss.Color("#00FF00")
	colorMuted    = lipgloss.Color("#888888")
	colorAccent   = lipgloss.Color("#7B68EE")
	colorBorder   = lipgloss.Color("#444444")
	colorDanger   = lipgloss.Color("#FF5555")
)

// Panel styles
var (
	styleHeader = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder)

	styleProjects = lipgloss.NewStyle().
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(colorBorder)

	styleOverlay = lipgloss.NewStyle().
			Padding(0, 1).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent)

	styleConfirm = lipgloss.NewStyle().
			Padding(0, 1).
			Bold(true).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorDanger)

	styleFooter = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	styleMutedText = lipgloss.NewStyle().Foreground(colorMuted)
	styleScope     = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	styleActive    = lipgloss.NewStyle().Foreground(colorLow).Bold(true)
)

// severityStyle returns the lipgloss style for a severity level.
func severityStyle(severity string) lipgloss.Style {
	switch severity {
	case "Critical", "critical":
		return lipgloss.NewStyle().Foreground(colorCritical).Bold(true)
	case "High", "high":
		return lipgloss.NewStyle().Foreground(colorHigh).Bold(true)
	case "Medium", "medium":
		return lipgloss.NewStyle().Foreground(colorMedium)
	case "Low", "low":
		return lipgloss.NewStyle().Foreground(colorLow)
	default:
		return lipgloss.NewStyle()
	}
}
