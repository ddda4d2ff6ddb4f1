package debounce

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fireRecorder collects fired IDs in order.
type fireRecorder struct {
	mu    sync.Mutex
	fired []int64
}

func (r *fireRecorder) record(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fired = append(r.fired, id)
}

func (r *fireRecorder) snapshot() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]int64, len(r.fired))
	copy(out, r.fired)
	return out
}

func TestRapidTriggersCollapseToOneFire(t *testing.T) {
	rec := &fireRecorder{}
	s := NewScheduler(30*time.Millisecond, rec.record)
	defer s.Close()

	// Four rapid edits well inside the window.
	for i := 0; i < 4; i++ {
		s.Trigger(2)
		time.Sleep(5 * time.Millisecond)
	}

	// Nothing may fire before the window elapses from the last trigger.
	time.Sleep(15 * time.Millisecond)
	assert.Empty(t, rec.snapshot())

	require.Eventually(t, func() bool {
		return len(rec.snapshot()) == 1
	}, time.Second, 5*time.Millisecond)

	// And exactly one, even after waiting longer.
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, []int64{2}, rec.snapshot())
	assert.Equal(t, 0, s.Pending())
}

func TestPerCategoryIndependence(t *testing.T) {
	rec := &fireRecorder{}
	s := NewScheduler(25*time.Millisecond, rec.record)
	defer s.Close()

	// Interleaved edits to two IDs; re-triggering one must not disturb the
	// other's schedule.
	s.Trigger(1)
	s.Trigger(2)
	time.Sleep(10 * time.Millisecond)
	s.Trigger(1)

	assert.Equal(t, 2, s.Pending())

	require.Eventually(t, func() bool {
		return len(rec.snapshot()) == 2
	}, time.Second, 5*time.Millisecond)

	got := rec.snapshot()
	assert.ElementsMatch(t, []int64{1, 2}, got)
	// ID 2's window started earlier and was never restarted.
	assert.Equal(t, int64(2), got[0])
}

func TestCancelDropsScheduledFire(t *testing.T) {
	rec := &fireRecorder{}
	s := NewScheduler(20*time.Millisecond, rec.record)
	defer s.Close()

	s.Trigger(5)
	s.Cancel(5)

	time.Sleep(60 * time.Millisecond)
	assert.Empty(t, rec.snapshot())
	assert.Equal(t, 0, s.Pending())
}

func TestCloseCancelsAllTimers(t *testing.T) {
	rec := &fireRecorder{}
	s := NewScheduler(20*time.Millisecond, rec.record)

	s.Trigger(1)
	s.Trigger(2)
	s.Trigger(3)
	s.Close()

	time.Sleep(60 * time.Millisecond)
	assert.Empty(t, rec.snapshot())
	assert.Equal(t, 0, s.Pending())

	// Triggers after Close are no-ops, and Close is idempotent.
	s.Trigger(4)
	s.Close()
	time.Sleep(40 * time.Millisecond)
	assert.Empty(t, rec.snapshot())
}

func TestRetriggerRestartsWindow(t *testing.T) {
	rec := &fireRecorder{}
	s := NewScheduler(40*time.Millisecond, rec.record)
	defer s.Close()

	s.Trigger(7)
	time.Sleep(25 * time.Millisecond)
	s.Trigger(7)
	time.Sleep(25 * time.Millisecond)

	// 50ms after the first trigger, but only 25ms after the second: the
	// restarted window must still be open.
	assert.Empty(t, rec.snapshot())

	require.Eventually(t, func() bool {
		return len(rec.snapshot()) == 1
	}, time.Second, 5*time.Millisecond)
}
