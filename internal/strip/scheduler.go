package strip

import (
	"sort"
	"sync"
	"time"
)

// Timer is a pending callback that can be cancelled.
type Timer interface {
	// Stop cancels the callback. It reports false if the callback already
	// ran or was stopped before.
	Stop() bool
}

// Scheduler provides the clock and one-shot timers used by the Animator.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
	Now() time.Time
}

// LoopScheduler fires callbacks on wall-clock timers but hands each one to
// post instead of running it on the timer goroutine. Callbacks that fire
// before a post function is bound are discarded.
type LoopScheduler struct {
	mu   sync.RWMutex
	post func(func())
}

// NewLoopScheduler creates a scheduler that delivers callbacks through post.
// post may be nil and bound later with Bind.
func NewLoopScheduler(post func(func())) *LoopScheduler {
	return &LoopScheduler{post: post}
}

// Bind sets the function used to deliver callbacks.
func (s *LoopScheduler) Bind(post func(func())) {
	s.mu.Lock()
	s.post = post
	s.mu.Unlock()
}

// Now returns the wall-clock time.
func (s *LoopScheduler) Now() time.Time {
	return time.Now()
}

// AfterFunc schedules f to be posted after d.
func (s *LoopScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, func() {
		s.mu.RLock()
		post := s.post
		s.mu.RUnlock()
		if post != nil {
			post(f)
		}
	})
}

// ManualScheduler is a Scheduler driven by an explicit clock. Callbacks run
// synchronously inside Advance, in deadline order.
type ManualScheduler struct {
	mu      sync.Mutex
	now     time.Time
	seq     int
	pending []*manualTimer
}

type manualTimer struct {
	s    *ManualScheduler
	at   time.Time
	seq  int
	f    func()
	done bool
}

// NewManualScheduler creates a scheduler whose clock starts at start.
func NewManualScheduler(start time.Time) *ManualScheduler {
	return &ManualScheduler{now: start}
}

// Now returns the current manual time.
func (m *ManualScheduler) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// AfterFunc registers f to run once the clock has advanced by d.
func (m *ManualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	t := &manualTimer{s: m, at: m.now.Add(d), seq: m.seq, f: f}
	m.pending = append(m.pending, t)
	return t
}

// Advance moves the clock forward by d and runs every callback that is due.
func (m *ManualScheduler) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	now := m.now
	m.mu.Unlock()

	for {
		t := m.nextDue(now)
		if t == nil {
			return
		}
		t.f()
	}
}

// Pending returns the number of callbacks that have not run or been stopped.
func (m *ManualScheduler) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

func (m *ManualScheduler) nextDue(now time.Time) *manualTimer {
	m.mu.Lock()
	defer m.mu.Unlock()

	sort.SliceStable(m.pending, func(i, j int) bool {
		if m.pending[i].at.Equal(m.pending[j].at) {
			return m.pending[i].seq < m.pending[j].seq
		}
		return m.pending[i].at.Before(m.pending[j].at)
	})
	if len(m.pending) == 0 || m.pending[0].at.After(now) {
		return nil
	}
	t := m.pending[0]
	m.pending = m.pending[1:]
	t.done = true
	return t
}

func (t *manualTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	for i, p := range t.s.pending {
		if p == t {
			t.s.pending = append(t.s.pending[:i], t.s.pending[i+1:]...)
			break
		}
	}
	return true
}
