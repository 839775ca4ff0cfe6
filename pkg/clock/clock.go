// Package clock narrows clockwork to what the services use: wall time in UTC
// and tickers that tests can drive.
package clock

import (
	"time"

	"github.com/jonboulle/clockwork"
)

type Clock = clockwork.Clock

// Mock is a fake clock for tests. Advance fires its tickers.
type Mock = clockwork.FakeClock

type utcClock struct {
	clockwork.Clock
}

func (c utcClock) Now() time.Time {
	return c.Clock.Now().UTC()
}

// Real reports wall time in UTC.
func Real() Clock {
	return utcClock{Clock: clockwork.NewRealClock()}
}

func NewMock(t time.Time) *Mock {
	return clockwork.NewFakeClockAt(t)
}
