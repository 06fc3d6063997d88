package strip

import (
	"time"

	"github.com/rileyhilliard/beacon/internal/logger"
	"github.com/rileyhilliard/beacon/internal/status"
)

// SlideDuration is how long a one-item slide takes before the trim.
const SlideDuration = 400 * time.Millisecond

// Transition describes what Sync did to a window.
type Transition int

const (
	// TransitionNone leaves the window length unchanged.
	TransitionNone Transition = iota
	// TransitionReplace rebuilds the window from the tail of the series.
	TransitionReplace
	// TransitionAppend adds one item to a window that is not yet full.
	TransitionAppend
	// TransitionSlide adds one item to a full window and starts a slide.
	TransitionSlide
)

func (t Transition) String() string {
	switch t {
	case TransitionReplace:
		return "replace"
	case TransitionAppend:
		return "append"
	case TransitionSlide:
		return "slide"
	default:
		return "none"
	}
}

// Animator owns one window per monitor.
type Animator struct {
	sched      Scheduler
	base       int
	windows    map[string]*Window
	generation uint64
	log        logger.Logger
}

// Option configures an Animator.
type Option func(*Animator)

// WithLogger sets the logger used for transition tracing.
func WithLogger(l logger.Logger) Option {
	return func(a *Animator) {
		a.log = l
	}
}

// NewAnimator creates an animator for a viewport of the given width.
func NewAnimator(sched Scheduler, viewportWidth float64, opts ...Option) *Animator {
	a := &Animator{
		sched:   sched,
		base:    BaseCapacity(viewportWidth),
		windows: make(map[string]*Window),
		log:     logger.Noop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// BaseCapacity returns the capacity for the current viewport before scaling.
func (a *Animator) BaseCapacity() int {
	return a.base
}

// Capacity returns the window capacity for interval at the current viewport.
func (a *Animator) Capacity(interval status.Interval) int {
	return ScaleCapacity(a.base, interval)
}

// Sync reconciles the monitor's window with the latest display series. A
// switch between raw history and bucket series always replaces the window.
func (a *Animator) Sync(monitor string, interval status.Interval, items []status.Item, capacity int) Transition {
	if capacity < minCapacity {
		capacity = minCapacity
	}

	w, ok := a.windows[monitor]
	if !ok {
		w = &Window{Monitor: monitor}
		a.windows[monitor] = w
		a.replace(w, interval, items, capacity)
		return TransitionReplace
	}
	if w.Interval != interval || w.capacity != capacity || w.forceReplace || w.aggregated != aggregated(items) {
		a.replace(w, interval, items, capacity)
		return TransitionReplace
	}

	n := len(items)
	switch {
	case n == w.observed:
		if w.State == Idle {
			w.Items = lastN(items, capacity)
		}
		return TransitionNone

	case n == w.observed+1:
		if w.State == Sliding {
			w.cancel()
			w.trim()
		}
		w.Items = append(w.Items, items[n-1])
		w.observed = n
		if len(w.Items) > capacity {
			a.startSlide(w)
			return TransitionSlide
		}
		a.log.Debug("%s append, %d/%d items", monitor, len(w.Items), capacity)
		return TransitionAppend

	default:
		a.replace(w, interval, items, capacity)
		return TransitionReplace
	}
}

func (a *Animator) replace(w *Window, interval status.Interval, items []status.Item, capacity int) {
	w.cancel()
	a.generation++
	w.generation = a.generation
	w.Interval = interval
	w.capacity = capacity
	w.Items = lastN(items, capacity)
	w.observed = len(items)
	w.Offset = 0
	w.State = Idle
	w.forceReplace = false
	w.aggregated = aggregated(items)
	a.log.Debug("%s replace (%s), %d items", w.Monitor, interval, len(w.Items))
}

// aggregated reports whether items is a bucket series. An empty series counts
// as raw history.
func aggregated(items []status.Item) bool {
	return len(items) > 0 && items[0].Aggregated()
}

func (a *Animator) startSlide(w *Window) {
	a.generation++
	gen := a.generation
	monitor := w.Monitor

	w.generation = gen
	w.State = Sliding
	w.Offset = 0
	w.slideStart = a.sched.Now()
	w.timer = a.sched.AfterFunc(SlideDuration, func() {
		a.finishSlide(monitor, gen)
	})
	a.log.Debug("%s slide started", monitor)
}

// finishSlide is the trim callback. Callbacks from cancelled slides are
// ignored.
func (a *Animator) finishSlide(monitor string, gen uint64) {
	w, ok := a.windows[monitor]
	if !ok || w.generation != gen || w.State != Sliding {
		return
	}
	w.trim()
}

// Advance updates the offset of every sliding window for time now. It reports
// whether any window is still sliding.
func (a *Animator) Advance(now time.Time) bool {
	sliding := false
	for _, w := range a.windows {
		if w.State != Sliding {
			continue
		}
		sliding = true
		if w.itemWidth <= 0 {
			w.Offset = 0
			continue
		}
		progress := float64(now.Sub(w.slideStart)) / float64(SlideDuration)
		if progress > 1 {
			progress = 1
		}
		if progress < 0 {
			progress = 0
		}
		w.Offset = -w.itemWidth * progress
	}
	return sliding
}

// Sliding reports whether any window is mid-slide.
func (a *Animator) Sliding() bool {
	for _, w := range a.windows {
		if w.State == Sliding {
			return true
		}
	}
	return false
}

// Measure records the rendered width of one item, including the gap.
func (a *Animator) Measure(monitor string, width float64) {
	if w, ok := a.windows[monitor]; ok && width > 0 {
		w.itemWidth = width
	}
}

// Resize recomputes the base capacity. When it changes, every window is
// replaced on its next Sync. It reports whether the capacity changed.
func (a *Animator) Resize(viewportWidth float64) bool {
	base := BaseCapacity(viewportWidth)
	if base == a.base {
		return false
	}
	a.base = base
	for _, w := range a.windows {
		w.forceReplace = true
	}
	a.log.Debug("resize, base capacity %d", base)
	return true
}

// Remove cancels the monitor's timer and discards its window.
func (a *Animator) Remove(monitor string) {
	if w, ok := a.windows[monitor]; ok {
		w.cancel()
		delete(a.windows, monitor)
	}
}

// Retain removes the windows of monitors not in names.
func (a *Animator) Retain(names []string) {
	keep := make(map[string]bool, len(names))
	for _, n := range names {
		keep[n] = true
	}
	for monitor := range a.windows {
		if !keep[monitor] {
			a.Remove(monitor)
		}
	}
}

// Window returns a snapshot of the monitor's window if it currently shows
// interval.
func (a *Animator) Window(monitor string, interval status.Interval) (Frame, bool) {
	w, ok := a.windows[monitor]
	if !ok || w.Interval != interval {
		return Frame{}, false
	}
	return w.frame(), true
}

// Len returns the number of windows.
func (a *Animator) Len() int {
	return len(a.windows)
}
