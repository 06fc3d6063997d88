package strip

import (
	"math"

	"github.com/rileyhilliard/beacon/internal/status"
)

const (
	// MinBaseCapacity is the smallest base capacity for any viewport.
	MinBaseCapacity = 10

	maxStripWidth = 800.0
	stripShare    = 0.175
	itemFootprint = 4.0
	minCapacity   = 1
)

// intervalScale shrinks coarser resolutions so their wider labels still fit.
var intervalScale = map[status.Interval]float64{
	status.IntervalAll:  1.0,
	status.IntervalHour: 0.8,
	status.IntervalDay:  0.667,
	status.IntervalWeek: 0.571,
}

// BaseCapacity returns how many items fit in a viewport of the given width.
func BaseCapacity(viewportWidth float64) int {
	if viewportWidth < 0 {
		viewportWidth = 0
	}
	n := int(math.Floor(math.Min(viewportWidth*stripShare, maxStripWidth) / itemFootprint))
	if n < MinBaseCapacity {
		return MinBaseCapacity
	}
	return n
}

// ScaleCapacity scales base for interval. The result is never below one.
func ScaleCapacity(base int, interval status.Interval) int {
	scale, ok := intervalScale[interval]
	if !ok {
		scale = 1.0
	}
	n := int(math.Floor(float64(base) * scale))
	if n < minCapacity {
		return minCapacity
	}
	return n
}
