package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/histdb/internal/record"
)

// ErrSessionNotFound is returned by WriteHistoryEntry when the entry's session
// does not exist at commit time.
var ErrSessionNotFound = errors.New("session not found")

// WriteSession inserts a session row and returns its store-assigned ID.
// The ID is returned only after the transaction has committed. sess.ID is ignored.
func (s *Store) WriteSession(ctx context.Context, sess record.Session) (int64, error) {
	var id int64
	err := s.withTx(ctx, "write session", func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			INSERT INTO session_ids (ppid, boot_time)
			VALUES (?, ?)
		`,
			sess.PPID,
			record.FormatTimestamp(sess.BootTime),
		)
		if err != nil {
			return fmt.Errorf("write session: insert: %w", err)
		}

		id, err = result.LastInsertId()
		if err != nil {
			return fmt.Errorf("write session: last insert id: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// WriteBootEpoch inserts a boot epoch row and returns its store-assigned ID.
// Allocation is unconditional: every call produces a new row.
func (s *Store) WriteBootEpoch(ctx context.Context, epoch record.BootEpoch) (int64, error) {
	var id int64
	err := s.withTx(ctx, "write boot epoch", func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			INSERT INTO boot_ids (created_at)
			VALUES (?)
		`, record.FormatTimestamp(epoch.CreatedAt))
		if err != nil {
			return fmt.Errorf("write boot epoch: insert: %w", err)
		}

		id, err = result.LastInsertId()
		if err != nil {
			return fmt.Errorf("write boot epoch: last insert id: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// WriteHistoryEntry atomically verifies the entry's session exists and inserts
// the entry, in a single transaction. entry.ID is ignored.
//
// Returns ErrSessionNotFound (and writes nothing) when the session is missing.
// The transaction holds the write lock from BEGIN, so no other writer can act
// between the existence check and the insert.
func (s *Store) WriteHistoryEntry(ctx context.Context, entry record.HistoryEntry) (int64, error) {
	var id int64
	err := s.withTx(ctx, "write history entry", func(tx *sql.Tx) error {
		// Step 1: Referential check
		exists, err := sessionExists(ctx, tx, entry.SessionID)
		if err != nil {
			return fmt.Errorf("write history entry: %w", err)
		}
		if !exists {
			return fmt.Errorf("write history entry: session %d: %w", entry.SessionID, ErrSessionNotFound)
		}

		// Step 2: Insert row
		result, err := tx.ExecContext(ctx, `
			INSERT INTO history
			(session_id, history_id, ppid, status_code, created_at, username, directory, raw)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`,
			entry.SessionID,
			entry.HistoryID,
			entry.PPID,
			entry.StatusCode,
			record.FormatTimestamp(entry.CreatedAt),
			entry.Username,
			entry.Directory,
			entry.Raw,
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("write history entry: session %d: %w", entry.SessionID, ErrSessionNotFound)
			}
			return fmt.Errorf("write history entry: insert: %w", err)
		}

		id, err = result.LastInsertId()
		if err != nil {
			return fmt.Errorf("write history entry: last insert id: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func sessionExists(ctx context.Context, q queryRower, id int64) (bool, error) {
	var exists bool
	err := q.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM session_ids WHERE id = ?)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check session: %w", err)
	}
	return exists, nil
}
