package strip

import (
	"time"

	"github.com/rileyhilliard/beacon/internal/status"
)

// State is the animation state of a window.
type State int

const (
	// Idle windows hold at most capacity items and have zero offset.
	Idle State = iota
	// Sliding windows hold one extra item until the trim timer fires.
	Sliding
)

func (s State) String() string {
	if s == Sliding {
		return "sliding"
	}
	return "idle"
}

// Window is the visible slice of one monitor's series.
type Window struct {
	Monitor  string
	Interval status.Interval
	Items    []status.Item
	Offset   float64
	State    State

	capacity     int
	observed     int
	itemWidth    float64
	slideStart   time.Time
	timer        Timer
	generation   uint64
	forceReplace bool
	aggregated   bool
}

// Frame is a render snapshot of a window.
type Frame struct {
	Items    []status.Item
	Offset   float64
	Sliding  bool
	Capacity int
	Interval status.Interval
}

func (w *Window) frame() Frame {
	items := make([]status.Item, len(w.Items))
	copy(items, w.Items)
	return Frame{
		Items:    items,
		Offset:   w.Offset,
		Sliding:  w.State == Sliding,
		Capacity: w.capacity,
		Interval: w.Interval,
	}
}

// cancel stops the pending trim timer, if any.
func (w *Window) cancel() {
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

// trim drops head items beyond capacity and returns the window to Idle.
func (w *Window) trim() {
	if over := len(w.Items) - w.capacity; over > 0 {
		w.Items = append([]status.Item(nil), w.Items[over:]...)
	}
	w.Offset = 0
	w.State = Idle
	w.timer = nil
}

// lastN returns a copy of the final n items of items.
func lastN(items []status.Item, n int) []status.Item {
	if n >= 0 && len(items) > n {
		items = items[len(items)-n:]
	}
	return append([]status.Item(nil), items...)
}
