package charts

import "github.com/charmbracelet/lipgloss"

var (
	styleCritical = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
	styleHigh     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8800"))
	styleMedium   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFF00"))
	styleAccent   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7B68EE"))
	styleMuted    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))

	stylePanel = lipgloss.NewStyle().
			Padding(0, 1).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444"))
)

// severityBarStyle colors a scoped-mode bar by its category label.
func severityBarStyle(label string) lipgloss.Style {
	switch label {
	case "Critical":
		return styleCritical
	case "High":
		return styleHigh
	case "Medium":
		return styleMedium
	default:
		return styleAccent
	}
}
