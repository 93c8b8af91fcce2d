// Package clock provides the destructive-read elapsed-time clock driving
// live simulation steps.
package clock

import "time"

// Clock tracks elapsed time since its last consumption. Consume is a
// destructive read and callers must serialize access; the step scheduler
// guarantees this by only consuming from the single worker it owns.
type Clock struct {
	now  func() time.Time
	last time.Time
}

func New() *Clock {
	return NewWithSource(time.Now)
}

// NewWithSource constructs a clock over an injected time source.
func NewWithSource(now func() time.Time) *Clock {
	return &Clock{now: now, last: now()}
}

// Consume returns the time elapsed since the previous call (or since
// construction for the first call) and resets the reference point.
func (c *Clock) Consume() time.Duration {
	t := c.now()
	d := t.Sub(c.last)
	c.last = t
	return d
}
