package core

import (
	"time"

	"github.com/huangsam/motionchart/schema"
)

// DefaultTickInterval is the autoplay step duration.
const DefaultTickInterval = 300 * time.Millisecond

// Controller is the playback state machine and the sole owner of the tick timer.
// It is not safe for concurrent use; the owning Engine serialises access.
type Controller struct {
	sched    Scheduler
	interval time.Duration
	fire     func(gen uint64) // Called from the scheduler when a tick is due
	pending  CancelFunc       // Non-nil while exactly one tick is scheduled
	gen      uint64           // Identifies the pending tick; bumped on every schedule and cancel
}

// NewController creates a controller. fire is invoked with the tick's
// generation and must hand it back through Fired under the owner's lock.
func NewController(sched Scheduler, interval time.Duration, fire func(gen uint64)) *Controller {
	if sched == nil {
		sched = TimerScheduler{}
	}
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Controller{sched: sched, interval: interval, fire: fire}
}

// Apply reduces the action and then reconciles the timer with the result:
// Playing keeps exactly one tick pending, every other state keeps none.
func (c *Controller) Apply(state schema.ViewState, action Action, lastIndex int) schema.ViewState {
	next := Reduce(state, action, lastIndex)
	c.sync(next)
	return next
}

// Fired accepts a tick delivered by the scheduler. It returns false for ticks
// that were cancelled or superseded, which must then be ignored.
func (c *Controller) Fired(gen uint64) bool {
	if c.pending == nil || gen != c.gen {
		return false
	}
	c.pending = nil
	return true
}

// Pending reports whether a tick is scheduled.
func (c *Controller) Pending() bool {
	return c.pending != nil
}

// Interval returns the tick interval.
func (c *Controller) Interval() time.Duration {
	return c.interval
}

// Stop cancels any pending tick.
func (c *Controller) Stop() {
	if c.pending != nil {
		c.pending()
		c.pending = nil
	}
	c.gen++
}

func (c *Controller) sync(state schema.ViewState) {
	if state.Playback != schema.Playing {
		c.Stop()
		return
	}
	if c.pending != nil {
		return
	}
	c.gen++
	gen := c.gen
	c.pending = c.sched.Schedule(c.interval, func() { c.fire(gen) })
}
