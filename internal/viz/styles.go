package viz

import "github.com/charmbracelet/lipgloss"

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#ffb454"))

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444466")).
		Padding(0, 1)

	StatusRunning = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff88"))

	StatusDone = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ccff"))

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)
)

// rampColors runs cold to hot.
var rampColors = []string{
	"#1a1a3a", "#20306a", "#2a5599", "#3a80b0",
	"#4eb3a0", "#8fc76a", "#d9d048", "#f2a83b",
	"#ef6a32", "#e23225", "#ffffff",
}

// HeatStyle returns the ramp style for a normalized value in [0,1].
func HeatStyle(v float64) lipgloss.Style {
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	idx := int(v * float64(len(rampColors)-1))
	return lipgloss.NewStyle().Foreground(lipgloss.Color(rampColors[idx]))
}
