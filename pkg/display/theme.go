package display

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines colors and symbols for terminal output using lipgloss
type Theme struct {
	Title  lipgloss.Style
	Bold   lipgloss.Style
	Cyan   lipgloss.Style
	Green  lipgloss.Style
	Yellow lipgloss.Style
	Dim    lipgloss.Style
	Red    lipgloss.Style
	Card   lipgloss.Style

	Bullet  string
	Arrow   string
	BoxTree string
	BoxLast string
}

func DefaultTheme() *Theme {
	return &Theme{
		Title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Bold:   lipgloss.NewStyle().Bold(true),
		Cyan:   lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		Green:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Yellow: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		Dim:    lipgloss.NewStyle().Faint(true),
		Red:    lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(1, 2),

		Bullet:  "•",
		Arrow:   "→",
		BoxTree: "├──",
		BoxLast: "└──",
	}
}
