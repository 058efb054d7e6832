package notify

import "time"

// Clock abstracts timer creation so tests can drive the poll loop with a
// fake clock instead of sleeping.
type Clock interface {
	NewTimer(d time.Duration) Timer
}

// Timer is the subset of time.Timer the poller needs.
type Timer interface {
	C() <-chan time.Time
	Stop() bool
}

// RealClock is the production Clock backed by the time package.
type RealClock struct{}

// NewTimer returns a timer firing after d.
func (RealClock) NewTimer(d time.Duration) Timer {
	return realTimer{time.NewTimer(d)}
}

type realTimer struct {
	t *time.Timer
}

func (r realTimer) C() <-chan time.Time { return r.t.C }
func (r realTimer) Stop() bool          { return r.t.Stop() }
