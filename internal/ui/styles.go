package ui

import "github.com/charmbracelet/lipgloss"

// Palette. Adaptive colors render on light and dark terminals.
var (
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#00704A", Dark: "#3FB97F"}
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#008000", Dark: "#3FB950"}
	ColorError   = lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#F85149"}
	ColorWarning = lipgloss.AdaptiveColor{Light: "#B35900", Dark: "#E3A008"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#8B949E"}
)

const (
	SymbolSuccess = "✓"
	SymbolError   = "✗"
	SymbolWarning = "!"
	SymbolPending = "○"
)

var (
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleMuted   = lipgloss.NewStyle().Foreground(ColorMuted)
	StyleValue   = lipgloss.NewStyle().Bold(true)

	// StyleHeader frames the command banner.
	StyleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 2)

	// StyleSummaryTitle and StyleSummaryBox frame the end-of-run summary.
	StyleSummaryTitle = lipgloss.NewStyle().Bold(true).Foreground(ColorSuccess)
	StyleSummaryBox   = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(ColorSuccess).
				Padding(0, 1)
)

// keyStyle renders a muted label padded to width.
func keyStyle(width int) lipgloss.Style {
	return StyleMuted.Width(width)
}
