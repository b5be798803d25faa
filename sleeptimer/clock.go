package sleeptimer

import "time"

// Stopper cancels a scheduled callback. Stop reports whether the call prevented it from running.
type Stopper interface {
	Stop() bool
}

// Clock schedules callbacks. Tests swap in a manual clock.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Stopper
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) Stopper { return time.AfterFunc(d, f) }

// RealClock is backed by the time package.
var RealClock Clock = realClock{}
