package core

import (
	"context"
	"sync"
	"time"
)

// Size is a measured viewport size in pixels.
type Size struct {
	Width  float64
	Height float64
}

// Resizer receives viewport size changes.
type Resizer interface {
	Resize(width, height float64)
}

// ResizeAdapter forwards observed container sizes to a Resizer.
// Repeated identical sizes are dropped. With a zero debounce every change
// redraws immediately, which keeps the chart in step with the container at
// the cost of one scale recompute per observation. A positive debounce
// coalesces a burst into a single redraw of the final size.
type ResizeAdapter struct {
	mu       sync.Mutex
	target   Resizer
	sched    Scheduler
	debounce time.Duration
	last     Size // Last size forwarded to the target
	queued   Size // Size waiting for the debounce window
	pending  CancelFunc
	stopped  bool
}

// NewResizeAdapter creates an adapter. A nil scheduler uses the runtime timer.
func NewResizeAdapter(target Resizer, sched Scheduler, debounce time.Duration) *ResizeAdapter {
	if sched == nil {
		sched = TimerScheduler{}
	}
	return &ResizeAdapter{target: target, sched: sched, debounce: debounce, last: Size{-1, -1}}
}

// Observe records a measured size.
func (a *ResizeAdapter) Observe(size Size) {
	a.mu.Lock()
	if a.stopped {
		a.mu.Unlock()
		return
	}
	if a.debounce <= 0 {
		if size == a.last {
			a.mu.Unlock()
			return
		}
		a.last = size
		a.mu.Unlock()
		a.target.Resize(size.Width, size.Height)
		return
	}

	a.queued = size
	if a.pending == nil {
		a.pending = a.sched.Schedule(a.debounce, a.flush)
	}
	a.mu.Unlock()
}

// flush forwards the queued size once the debounce window closes.
func (a *ResizeAdapter) flush() {
	a.mu.Lock()
	a.pending = nil
	if a.stopped || a.queued == a.last {
		a.mu.Unlock()
		return
	}
	size := a.queued
	a.last = size
	a.mu.Unlock()
	a.target.Resize(size.Width, size.Height)
}

// Run observes sizes from the channel until it closes or ctx is done.
func (a *ResizeAdapter) Run(ctx context.Context, sizes <-chan Size) {
	for {
		select {
		case <-ctx.Done():
			a.Stop()
			return
		case s, ok := <-sizes:
			if !ok {
				return
			}
			a.Observe(s)
		}
	}
}

// Stop cancels any pending debounced resize and ignores later observations.
func (a *ResizeAdapter) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopped = true
	if a.pending != nil {
		a.pending()
		a.pending = nil
	}
}
