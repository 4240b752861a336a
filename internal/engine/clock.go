package engine

import "github.com/benbjohnson/clock"

// Clock is the engine's wall-clock source for engine-assigned timestamps
// (boot epoch and history entry created_at). Ordering never depends on it:
// identifiers come from the store.
//
// Production code uses clock.New(); tests pass clock.NewMock() to pin time.
type Clock = clock.Clock
