package testutil

import "time"

// FakeClock is a manually advanced media.Clock.
type FakeClock struct {
	now time.Time
}

// NewFakeClock creates a clock frozen at start.
func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{now: start}
}

// Now implements media.Clock.
func (c *FakeClock) Now() time.Time {
	return c.now
}

// Since implements media.Clock.
func (c *FakeClock) Since(t time.Time) time.Duration {
	return c.now.Sub(t)
}

// Advance moves the clock forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}
