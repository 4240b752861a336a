package testutil

import (
	"time"

	"github.com/benbjohnson/clock"
)

// FixedTime is the instant mock clocks start at. It carries a non-UTC offset
// and sub-microsecond digits so tests see both the zone and the truncation.
var FixedTime = time.Date(2026, time.October, 19, 10, 30, 0, 123456789,
	time.FixedZone("EDT", -4*60*60))

// NewMockClock returns a mock clock pinned at FixedTime.
//
// The mock only moves when Add or Set is called, so timestamps written through
// it are reproducible across runs.
func NewMockClock() *clock.Mock {
	return NewMockClockAt(FixedTime)
}

// NewMockClockAt returns a mock clock pinned at t.
func NewMockClockAt(t time.Time) *clock.Mock {
	c := clock.NewMock()
	c.Set(t)
	return c
}
