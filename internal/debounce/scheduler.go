// Package debounce collapses bursts of per-category threshold edits into a
// single commit per quiescence window.
package debounce

import (
	"log/slog"
	"sync"
	"time"
)

// DefaultWindow is the quiescence window between the last edit and the
// commit firing.
const DefaultWindow = 500 * time.Millisecond

// armed tracks one scheduled commit. The sequence number distinguishes a
// live timer from one that already fired and was superseded before its
// callback ran.
type armed struct {
	timer *time.Timer
	seq   uint64
}

// Scheduler arms one timer per category ID. Re-triggering a key cancels its
// previous timer and restarts the window; keys never interfere with each
// other. This is a debounce, not a throttle: nothing fires until input has
// been quiet for the full window.
type Scheduler struct {
	timers map[int64]armed
	fire   func(id int64)
	logger *slog.Logger
	window time.Duration
	seq    uint64
	closed bool
	mu     sync.Mutex
}

// NewScheduler creates a scheduler that invokes fire with the category ID
// once that ID has been quiet for the given window. The fire callback runs
// on the timer goroutine; it should read the value to commit at fire time,
// not capture it at schedule time.
func NewScheduler(window time.Duration, fire func(id int64)) *Scheduler {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Scheduler{
		timers: make(map[int64]armed),
		fire:   fire,
		window: window,
		logger: slog.Default().With("component", "debounce"),
	}
}

// Trigger restarts the quiescence window for a category. Any previously
// scheduled commit for the same category is cancelled first.
func (s *Scheduler) Trigger(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	if prev, ok := s.timers[id]; ok {
		prev.timer.Stop()
	}

	s.seq++
	seq := s.seq
	s.timers[id] = armed{
		seq:   seq,
		timer: time.AfterFunc(s.window, func() { s.fired(id, seq) }),
	}
}

// fired runs on the timer goroutine. A fire is stale when the key was
// re-triggered after this timer expired but before we got the lock, or when
// the scheduler was closed; stale fires commit nothing.
func (s *Scheduler) fired(id int64, seq uint64) {
	s.mu.Lock()
	current, ok := s.timers[id]
	if s.closed || !ok || current.seq != seq {
		s.mu.Unlock()
		return
	}
	delete(s.timers, id)
	s.mu.Unlock()

	s.fire(id)
}

// Cancel drops any scheduled commit for a category without firing it.
func (s *Scheduler) Cancel(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.timers[id]; ok {
		prev.timer.Stop()
		delete(s.timers, id)
	}
}

// Pending returns the number of categories with a live timer.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Close cancels all outstanding timers. No commit fires after Close
// returns; it is safe to call more than once.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true

	for id, a := range s.timers {
		a.timer.Stop()
		delete(s.timers, id)
	}
	s.logger.Debug("scheduler closed")
}
