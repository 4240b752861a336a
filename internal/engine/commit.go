package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/roach88/histdb/internal/record"
	"github.com/roach88/histdb/internal/store"
)

// Commit writes rec as a new history entry and returns its global ID.
//
// The session check and the insert run in one store transaction: a missing
// session aborts it with UnknownSession and nothing is written. created_at
// is taken from the engine clock, never from the caller.
//
// Commit is not idempotent. Each successful call adds exactly one row.
//
// Errors: UnknownSession, StoreUnavailable.
func (e *Engine) Commit(ctx context.Context, rec ValidatedRecord) (int64, error) {
	entry := record.HistoryEntry{
		SessionID:  rec.SessionID,
		HistoryID:  rec.HistoryID,
		PPID:       rec.PPID,
		StatusCode: rec.StatusCode,
		CreatedAt:  e.clock.Now(),
		Username:   rec.Username,
		Directory:  rec.Directory,
		Raw:        rec.Raw,
	}

	id, err := e.store.WriteHistoryEntry(ctx, entry)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return 0, &Error{
				Kind:    KindUnknownSession,
				Message: fmt.Sprintf("no such session: %d", rec.SessionID),
				Err:     err,
			}
		}
		return 0, storeUnavailable("commit history entry", err)
	}

	slog.Debug("history entry committed",
		"id", id,
		"session_id", rec.SessionID,
		"history_id", rec.HistoryID,
	)
	return id, nil
}

// InsertHistory validates req and commits it.
//
// Errors: InvalidSessionId, InvalidHistoryId, EmptyCommand, UnknownSession,
// StoreUnavailable.
func (e *Engine) InsertHistory(ctx context.Context, req InsertRequest) (int64, error) {
	rec, err := ParseAndValidate(req)
	if err != nil {
		return 0, err
	}
	return e.Commit(ctx, rec)
}
