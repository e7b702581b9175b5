package tokenengine

import "time"

// ClockProvider describes a type which provides the current time. It must be
// safe for concurrent reads.
type ClockProvider interface {
	Now() time.Time
}

// NewRealClock returns a new RealClock.
func NewRealClock() *RealClock {
	return &RealClock{}
}

// RealClock is the implementation of a ClockProvider for production.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// NewFixedClock returns a new clock with an initial time.
func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{now: t}
}

// FixedClock implementation of ClockProvider for tests.
type FixedClock struct {
	now time.Time
}

// Now returns the fixed time.
func (c *FixedClock) Now() time.Time {
	return c.now
}

// Set the time of the clock.
func (c *FixedClock) Set(now time.Time) {
	c.now = now
}

var (
	_ ClockProvider = (*RealClock)(nil)
	_ ClockProvider = (*FixedClock)(nil)
)
