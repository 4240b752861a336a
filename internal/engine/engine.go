package engine

import (
	"context"

	"github.com/benbjohnson/clock"

	"github.com/roach88/histdb/internal/record"
)

// Store is the persistence the engine writes through. Each method must run in
// its own transaction and return the new row's ID only after commit.
// Implemented by *store.Store.
type Store interface {
	WriteSession(ctx context.Context, sess record.Session) (int64, error)
	WriteBootEpoch(ctx context.Context, epoch record.BootEpoch) (int64, error)
	WriteHistoryEntry(ctx context.Context, entry record.HistoryEntry) (int64, error)
}

// Engine allocates identifiers and commits history entries.
// An Engine holds no state between calls and is safe for concurrent use if
// its Store is.
type Engine struct {
	store Store
	clock Clock
}

// EngineOption allows configuration of engine parameters.
type EngineOption func(*Engine)

// WithClock sets the time source for engine-assigned timestamps.
func WithClock(c Clock) EngineOption {
	return func(e *Engine) {
		e.clock = c
	}
}

// New creates an Engine writing to s.
func New(s Store, opts ...EngineOption) *Engine {
	e := &Engine{
		store: s,
		clock: clock.New(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}
