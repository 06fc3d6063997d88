package ui

import "github.com/rileyhilliard/beacon/internal/status"

// Unicode symbols for status indicators.
const (
	SymbolSuccess = "✓"
	SymbolFail    = "✗"
	SymbolPending = "○"
	SymbolWarning = "▲"
)

// Strip glyphs. Heights differ so strips stay readable without color.
const (
	GlyphUp       = "█"
	GlyphDegraded = "▆"
	GlyphDown     = "▂"
	GlyphNoData   = "·"
)

// StatusGlyph returns the strip glyph for s.
func StatusGlyph(s status.Status) string {
	switch s {
	case status.StatusUp:
		return GlyphUp
	case status.StatusDegraded:
		return GlyphDegraded
	case status.StatusDown:
		return GlyphDown
	default:
		return GlyphNoData
	}
}

// StatusSymbol returns the single-character summary symbol for s.
func StatusSymbol(s status.Status) string {
	switch s {
	case status.StatusUp:
		return SymbolSuccess
	case status.StatusDegraded:
		return SymbolWarning
	case status.StatusDown:
		return SymbolFail
	default:
		return SymbolPending
	}
}
