package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rileyhilliard/beacon/internal/status"
)

// Semantic colors for status indication
const (
	ColorSuccess lipgloss.Color = "2" // Green
	ColorError   lipgloss.Color = "1" // Red
	ColorWarning lipgloss.Color = "3" // Yellow
	ColorInfo    lipgloss.Color = "6" // Cyan
)

// Text colors for content hierarchy
const (
	ColorPrimary   lipgloss.Color = "7" // White/default
	ColorSecondary lipgloss.Color = "4" // Blue
	ColorMuted     lipgloss.Color = "8" // Gray (bright black)
)

// Status colors
const (
	ColorUp       = ColorSuccess
	ColorDegraded = ColorWarning
	ColorDown     = ColorError
	ColorNoData   = ColorMuted
)

// SetColorMode applies an output.color value: "always" forces ANSI colors,
// "never" disables them, anything else follows the terminal.
func SetColorMode(mode string) {
	switch mode {
	case "always":
		lipgloss.SetColorProfile(termenv.ANSI256)
	case "never":
		lipgloss.SetColorProfile(termenv.Ascii)
	default:
		lipgloss.SetColorProfile(termenv.NewOutput(os.Stdout).EnvColorProfile())
	}
}

// StatusColor returns the color for s.
func StatusColor(s status.Status) lipgloss.Color {
	switch s {
	case status.StatusUp:
		return ColorUp
	case status.StatusDegraded:
		return ColorDegraded
	case status.StatusDown:
		return ColorDown
	default:
		return ColorNoData
	}
}

// StatusStyle returns a foreground style for s.
func StatusStyle(s status.Status) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(StatusColor(s))
}
