package media

import "time"

// Clock supplies time to renderers so tests and simulations can substitute
// a controlled source.
type Clock interface {
	Now() time.Time
	Since(t time.Time) time.Duration
}

type systemClock struct{}

func (systemClock) Now() time.Time                  { return time.Now() }
func (systemClock) Since(t time.Time) time.Duration { return time.Since(t) }

// SystemClock is the wall clock.
var SystemClock Clock = systemClock{}
