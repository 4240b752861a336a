package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 1 - session_ids, history
// 2 - Added boot_ids and an index on history.session_id
const currentSchemaVersion = 2

// migration upgrades a database from version-1 to version.
type migration struct {
	version int
	apply   func(ctx context.Context, tx *sql.Tx) error
}

var migrations = []migration{
	{version: 1, apply: migrateToV1},
	{version: 2, apply: migrateToV2},
}

// migrate brings the database up to currentSchemaVersion in one transaction.
// Each applied version is recorded in schema_migrations. The version is read
// inside the write transaction so concurrent openers serialize cleanly.
//
// A database recording a newer version than this binary knows is rejected
// without being modified.
func (s *Store) migrate(ctx context.Context) error {
	return s.withTx(ctx, "migrate", func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS schema_migrations (
				version INTEGER PRIMARY KEY
			)
		`); err != nil {
			return fmt.Errorf("create schema_migrations: %w", err)
		}

		version, err := schemaVersionTx(ctx, tx)
		if err != nil {
			return err
		}
		if version > currentSchemaVersion {
			return fmt.Errorf(
				"database schema (%d) exceeds our version (%d)",
				version, currentSchemaVersion,
			)
		}

		for _, m := range migrations {
			if m.version <= version {
				continue
			}
			if err := m.apply(ctx, tx); err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO schema_migrations (version) VALUES (?)`, m.version,
			); err != nil {
				return fmt.Errorf("record schema version %d: %w", m.version, err)
			}
			slog.Debug("applied schema migration", "version", m.version)
		}
		return nil
	})
}

// SchemaVersion returns the highest applied schema version.
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`,
	).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("get schema version: %w", err)
	}
	return version, nil
}

func schemaVersionTx(ctx context.Context, tx *sql.Tx) (int, error) {
	var version int
	err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`,
	).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("get schema version: %w", err)
	}
	return version, nil
}

// migrateToV1 creates the session and history tables.
func migrateToV1(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("migrate to v1: %w", err)
	}
	return nil
}

// migrateToV2 adds boot epoch allocation and speeds up per-session reads.
func migrateToV2(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS boot_ids (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at TIMESTAMP NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_history_session_id
		ON history(session_id, id);
	`)
	if err != nil {
		return fmt.Errorf("migrate to v2: %w", err)
	}
	return nil
}
