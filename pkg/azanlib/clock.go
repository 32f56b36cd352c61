package azanlib

import "time"

// Timer is the handle of a single armed deferred callback.
type Timer interface {
	// Stop cancels the timer. Cancellation is best-effort: a callback that
	// has already been dispatched may still run, so callbacks must carry
	// their own identity guard.
	Stop() bool
}

// Clock abstracts wall-clock reads and deferred callbacks so the schedule
// core can be driven by a fake clock in tests.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SystemClock returns the real time.Now / time.AfterFunc backed clock.
func SystemClock() Clock { return systemClock{} }
