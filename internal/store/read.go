package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/roach88/histdb/internal/record"
)

// ReadSession retrieves a single session by ID.
// Returns sql.ErrNoRows if not found.
func (s *Store) ReadSession(ctx context.Context, id int64) (record.Session, error) {
	var sess record.Session
	err := s.db.QueryRowContext(ctx, `
		SELECT id, ppid, boot_time
		FROM session_ids
		WHERE id = ?
	`, id).Scan(&sess.ID, &sess.PPID, &sess.BootTime)
	if err != nil {
		return record.Session{}, err
	}
	return sess, nil
}

// ReadBootEpoch retrieves a single boot epoch by ID.
// Returns sql.ErrNoRows if not found.
func (s *Store) ReadBootEpoch(ctx context.Context, id int64) (record.BootEpoch, error) {
	var epoch record.BootEpoch
	err := s.db.QueryRowContext(ctx, `
		SELECT id, created_at
		FROM boot_ids
		WHERE id = ?
	`, id).Scan(&epoch.ID, &epoch.CreatedAt)
	if err != nil {
		return record.BootEpoch{}, err
	}
	return epoch, nil
}

// ReadHistoryEntry retrieves a single history entry by ID.
// Returns sql.ErrNoRows if not found.
func (s *Store) ReadHistoryEntry(ctx context.Context, id int64) (record.HistoryEntry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, session_id, history_id, ppid, status_code, created_at, username, directory, raw
		FROM history
		WHERE id = ?
	`, id)

	return scanHistoryEntry(row)
}

// ReadSessionHistory returns all history entries of a session in commit order.
// Returns an empty slice (not nil) if the session has no entries.
func (s *Store) ReadSessionHistory(ctx context.Context, sessionID int64) ([]record.HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, history_id, ppid, status_code, created_at, username, directory, raw
		FROM history
		WHERE session_id = ?
		ORDER BY id ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	entries := []record.HistoryEntry{}
	for rows.Next() {
		entry, err := scanHistoryEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}

	return entries, nil
}

// Stats summarizes the store's contents.
type Stats struct {
	SchemaVersion  int   `json:"schema_version" yaml:"schema_version"`
	Sessions       int64 `json:"sessions" yaml:"sessions"`
	LastSessionID  int64 `json:"last_session_id" yaml:"last_session_id"`
	BootEpochs     int64 `json:"boot_epochs" yaml:"boot_epochs"`
	LastBootID     int64 `json:"last_boot_id" yaml:"last_boot_id"`
	HistoryEntries int64 `json:"history_entries" yaml:"history_entries"`
	LastHistoryID  int64 `json:"last_history_id" yaml:"last_history_id"`

	// LastCommand and LastCommandAt describe the newest history entry.
	// Both are empty if there is none.
	LastCommand   string     `json:"last_command,omitempty" yaml:"last_command,omitempty"`
	LastCommandAt *time.Time `json:"last_command_at,omitempty" yaml:"last_command_at,omitempty"`
}

// Stats returns row counts and the newest identifiers of every table.
//
// Everything is read by one SELECT, which SQLite runs against a single
// snapshot. No transaction is opened, so Stats never takes the write lock
// and never waits on writers in WAL mode.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var (
		st        Stats
		lastRaw   sql.NullString
		lastAtRaw sql.NullString
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COALESCE(MAX(version), 0) FROM schema_migrations),
			(SELECT COUNT(*) FROM session_ids),
			(SELECT COALESCE(MAX(id), 0) FROM session_ids),
			(SELECT COUNT(*) FROM boot_ids),
			(SELECT COALESCE(MAX(id), 0) FROM boot_ids),
			(SELECT COUNT(*) FROM history),
			(SELECT COALESCE(MAX(id), 0) FROM history),
			(SELECT raw FROM history ORDER BY id DESC LIMIT 1),
			(SELECT CAST(created_at AS TEXT) FROM history ORDER BY id DESC LIMIT 1)
	`).Scan(
		&st.SchemaVersion,
		&st.Sessions, &st.LastSessionID,
		&st.BootEpochs, &st.LastBootID,
		&st.HistoryEntries, &st.LastHistoryID,
		&lastRaw, &lastAtRaw,
	)
	if err != nil {
		return Stats{}, fmt.Errorf("stats: %w", err)
	}

	if lastRaw.Valid {
		st.LastCommand = lastRaw.String
	}
	if lastAtRaw.Valid {
		at, err := record.ParseTimestamp(lastAtRaw.String)
		if err != nil {
			return Stats{}, fmt.Errorf("stats: last command: %w", err)
		}
		st.LastCommandAt = &at
	}

	return st, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanHistoryEntry(row scanner) (record.HistoryEntry, error) {
	var entry record.HistoryEntry
	err := row.Scan(
		&entry.ID,
		&entry.SessionID,
		&entry.HistoryID,
		&entry.PPID,
		&entry.StatusCode,
		&entry.CreatedAt,
		&entry.Username,
		&entry.Directory,
		&entry.Raw,
	)
	if err != nil {
		return record.HistoryEntry{}, err
	}
	return entry, nil
}
