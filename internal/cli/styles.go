package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/felipeleveke/gym-sub000/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	colorGreen  = lipgloss.Color("#8ec07c")
	colorYellow = lipgloss.Color("#fabd2f")
	colorRed    = lipgloss.Color("#fb4934")
	colorBlue   = lipgloss.Color("#83a598")
	colorDim    = lipgloss.Color("#928374")
	colorFg     = lipgloss.Color("#ebdbb2")
	colorHeader = lipgloss.Color("#fe8019")
)

var (
	styleGreen  = lipgloss.NewStyle().Foreground(colorGreen)
	styleYellow = lipgloss.NewStyle().Foreground(colorYellow)
	styleRed    = lipgloss.NewStyle().Foreground(colorRed)
	styleBlue   = lipgloss.NewStyle().Foreground(colorBlue)
	styleDim    = lipgloss.NewStyle().Foreground(colorDim)
	styleFg     = lipgloss.NewStyle().Foreground(colorFg)
	styleHeader = lipgloss.NewStyle().Foreground(colorHeader).Bold(true)
	styleBold   = lipgloss.NewStyle().Foreground(colorFg).Bold(true)

	styleOverlay = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBlue).
			Padding(0, 1)

	styleCursor = lipgloss.NewStyle().Foreground(colorHeader).Bold(true)
)

// stateStyle maps a set's lifecycle state to its display style.
func stateStyle(s domain.SetState) lipgloss.Style {
	switch s {
	case domain.SetExercising, domain.SetTUTCountdown:
		return styleGreen
	case domain.SetResting:
		return styleYellow
	case domain.SetCompleted:
		return styleDim
	default:
		return styleFg
	}
}

// stateLabel is the short indicator shown next to each set.
func stateLabel(s domain.SetState) string {
	switch s {
	case domain.SetTUTCountdown:
		return "▶ TUT"
	case domain.SetExercising:
		return "▶ live"
	case domain.SetResting:
		return "… rest"
	case domain.SetCompleted:
		return "✔ done"
	default:
		return "· idle"
	}
}
