package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/beacon/internal/status"
)

// StripGap is the number of blank cells after each glyph.
const StripGap = 1

// StripOptions controls RenderStrip.
type StripOptions struct {
	// Hovered is the index of the highlighted item, or -1.
	Hovered int
	// Offset shifts the strip left by -Offset cells. It is zero or negative.
	Offset float64
	// Width clips the output to this many cells. Zero means no clipping.
	// The oldest cells are dropped, except while Sliding, when the incoming
	// tail is cut off until the offset reveals it.
	Width int
	// Sliding marks a window in the middle of a slide.
	Sliding bool
}

// ItemWidth returns the rendered cell width of one strip item including its
// gap.
func ItemWidth() int {
	return lipgloss.Width(GlyphUp) + StripGap
}

// RenderStrip renders items as colored glyphs.
func RenderStrip(items []status.Item, opts StripOptions) string {
	cells := make([]string, 0, len(items)*(1+StripGap))

	for i, it := range items {
		style := StatusStyle(it.Status)
		if i == opts.Hovered {
			style = style.Reverse(true)
		}
		cells = append(cells, style.Render(StatusGlyph(it.Status)))
		for g := 0; g < StripGap; g++ {
			cells = append(cells, " ")
		}
	}

	if drop := int(math.Round(-opts.Offset)); drop > 0 {
		if drop > len(cells) {
			drop = len(cells)
		}
		cells = cells[drop:]
	}
	if opts.Width > 0 && len(cells) > opts.Width {
		if opts.Sliding {
			cells = cells[:opts.Width]
		} else {
			cells = cells[len(cells)-opts.Width:]
		}
	}
	return strings.Join(cells, "")
}
