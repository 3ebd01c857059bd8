package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// This file centralizes the lipgloss styles used for console output.

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFF")).
			Background(lipgloss.Color("63")). // Purple
			Bold(true).
			Padding(0, 1)

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("46")). // Green
		Bold(true)

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")). // Red
			Bold(true)

	targetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // Cyan/Teal

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")) // Gray

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			MarginTop(1)
)

// DisableColor forces plain ASCII output for every style, for --no-color
// and non-TTY destinations.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}
