package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/roach88/histdb/internal/record"
)

// CreateSession allocates a new session for the process ppid, associated
// with the boot epoch that started at bootTime.
//
// The returned ID is durable: it is returned only after the insert commits.
// Calling this N times yields N distinct, increasing IDs.
//
// Errors: StoreUnavailable.
func (e *Engine) CreateSession(ctx context.Context, ppid int, bootTime time.Time) (int64, error) {
	id, err := e.store.WriteSession(ctx, record.Session{
		PPID:     ppid,
		BootTime: bootTime,
	})
	if err != nil {
		return 0, storeUnavailable("create session", err)
	}

	slog.Debug("session allocated", "session_id", id, "ppid", ppid)
	return id, nil
}

// CreateBootEpoch allocates a new boot epoch stamped with the current time.
// Allocation is unconditional; deduplicating per physical boot is left to
// the caller.
//
// Errors: StoreUnavailable.
func (e *Engine) CreateBootEpoch(ctx context.Context) (int64, error) {
	id, err := e.store.WriteBootEpoch(ctx, record.BootEpoch{
		CreatedAt: e.clock.Now(),
	})
	if err != nil {
		return 0, storeUnavailable("create boot epoch", err)
	}

	slog.Debug("boot epoch allocated", "boot_id", id)
	return id, nil
}
