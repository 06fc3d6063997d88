// Package ui provides the shared terminal styling for beacon's CLI output and
// dashboard.
//
// # Color Scheme
//
// Colors are defined as ANSI codes for broad terminal compatibility:
//
//	ColorUp       (green)  - Operational items
//	ColorDegraded (yellow) - Slow or partially failing items
//	ColorDown     (red)    - Failed items
//	ColorNoData   (gray)   - Buckets without samples
//
// Use SetColorMode to honour output.color and --no-color.
//
// # Strips
//
// RenderStrip draws a sequence of status items as one glyph per item with a
// one-cell gap. Items are rendered cell by cell so a fractional slide offset
// can drop leading cells without cutting an ANSI sequence in half.
package ui
