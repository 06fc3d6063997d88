package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Sparkline block characters representing 8 vertical levels (lowest to highest).
const sparklineBlocks = "▁▂▃▄▅▆▇█"

// sparklineBlockRunes provides indexed access to block characters.
var sparklineBlockRunes = []rune(sparklineBlocks)

// RenderLatencySparkline draws response times in milliseconds as a sparkline.
// The width parameter determines how many of the most recent points are shown.
// The color follows the last value: red at or above twice degradedMs, yellow
// above degradedMs, green otherwise.
func RenderLatencySparkline(data []float64, width int, degradedMs float64) string {
	if len(data) == 0 || width <= 0 {
		return ""
	}

	if len(data) > width {
		data = data[len(data)-width:]
	}

	minVal, maxVal := data[0], data[0]
	for _, v := range data {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}

	var sb strings.Builder
	sb.Grow(len(data) * 4)

	numLevels := len(sparklineBlockRunes)
	valueRange := maxVal - minVal

	for _, v := range data {
		var level int
		if valueRange == 0 {
			level = numLevels / 2
		} else {
			level = int((v - minVal) / valueRange * float64(numLevels-1))
			if level < 0 {
				level = 0
			} else if level >= numLevels {
				level = numLevels - 1
			}
		}
		sb.WriteRune(sparklineBlockRunes[level])
	}

	color := latencyColor(data[len(data)-1], degradedMs)
	return lipgloss.NewStyle().Foreground(color).Render(sb.String())
}

func latencyColor(ms, degradedMs float64) lipgloss.Color {
	switch {
	case degradedMs > 0 && ms >= 2*degradedMs:
		return ColorError
	case ms > degradedMs:
		return ColorWarning
	default:
		return ColorSuccess
	}
}
