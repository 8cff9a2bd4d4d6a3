package domain

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// clock stamps rows with their fetch time and times runs. Tests freeze it via SetClock.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source used for row timestamps. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// Now returns the current time from the domain clock.
func Now() time.Time {
	return clock.Now()
}
