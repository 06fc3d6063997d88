package dashboard

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/beacon/internal/ui"
)

// Dashboard color palette
const (
	ColorSurfaceBg = lipgloss.Color("#12121A")
	ColorBorder    = lipgloss.Color("#2A2A4A")

	ColorTextPrimary   = lipgloss.Color("#FFFFFF")
	ColorTextSecondary = lipgloss.Color("#B4B4D0")
	ColorTextMuted     = lipgloss.Color("#6B6B8D")

	ColorAccent = lipgloss.Color("#00D7FF")
)

// Base styles for the dashboard
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Background(ColorSurfaceBg).
			Bold(true).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	MonitorNameStyle = lipgloss.NewStyle().
				Foreground(ColorTextPrimary)

	SelectedNameStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	StaleStyle = lipgloss.NewStyle().
			Foreground(ui.ColorWarning)

	TooltipStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	TooltipTitleStyle = lipgloss.NewStyle().
				Foreground(ColorTextPrimary).
				Bold(true)
)

// Row layout widths in cells.
const (
	cursorWidth   = 2
	nameWidth     = 18
	uptimeWidth   = 8
	symbolWidth   = 2
	intervalWidth = 6
)

// stripPrefixWidth is the number of cells before the strip on each row.
const stripPrefixWidth = cursorWidth + nameWidth + uptimeWidth + symbolWidth
