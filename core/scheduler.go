package core

import (
	"sort"
	"sync"
	"time"
)

// CancelFunc cancels a scheduled callback. Calling it more than once is safe.
type CancelFunc func()

// Scheduler runs a callback after a duration and returns a cancellation handle.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) CancelFunc
}

// TimerScheduler schedules callbacks on the runtime timer.
type TimerScheduler struct{}

var _ Scheduler = TimerScheduler{} // Compile-time check

// Schedule implements the Scheduler interface with time.AfterFunc.
func (TimerScheduler) Schedule(d time.Duration, fn func()) CancelFunc {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// ManualScheduler fires callbacks only when its clock is advanced.
// It is used by tests to drive timelines deterministically.
type ManualScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	nextID int
	tasks  map[int]manualTask
}

type manualTask struct {
	at  time.Duration
	seq int
	fn  func()
}

var _ Scheduler = (*ManualScheduler)(nil) // Compile-time check

// NewManualScheduler returns a scheduler with its clock at zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{tasks: make(map[int]manualTask)}
}

// Schedule implements the Scheduler interface.
func (m *ManualScheduler) Schedule(d time.Duration, fn func()) CancelFunc {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	m.tasks[id] = manualTask{at: m.now + d, seq: id, fn: fn}
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.tasks, id)
	}
}

// Pending returns the number of callbacks not yet fired or cancelled.
func (m *ManualScheduler) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

// Advance moves the clock forward and fires every due callback in time order.
// Callbacks scheduled by fired callbacks run too if they fall due in the window.
// It returns the number of callbacks fired.
func (m *ManualScheduler) Advance(d time.Duration) int {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	fired := 0
	for {
		m.mu.Lock()
		id, task, ok := m.nextDue(target)
		if !ok {
			m.now = target
			m.mu.Unlock()
			return fired
		}
		delete(m.tasks, id)
		m.now = task.at
		m.mu.Unlock()

		task.fn()
		fired++
	}
}

// nextDue returns the earliest task due by target. Callers hold m.mu.
func (m *ManualScheduler) nextDue(target time.Duration) (int, manualTask, bool) {
	ids := make([]int, 0, len(m.tasks))
	for id, t := range m.tasks {
		if t.at <= target {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return 0, manualTask{}, false
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := m.tasks[ids[i]], m.tasks[ids[j]]
		if a.at != b.at {
			return a.at < b.at
		}
		return a.seq < b.seq
	})
	return ids[0], m.tasks[ids[0]], true
}
