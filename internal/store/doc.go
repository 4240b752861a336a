// Package store provides SQLite-backed durable storage for shell history.
//
// The store holds three append-only tables:
//   - session_ids: one row per allocated shell session
//   - boot_ids: one row per allocated boot epoch
//   - history: one row per recorded command, referencing session_ids
//
// # Identifier allocation
//
// Every identifier is an AUTOINCREMENT primary key assigned by SQLite inside a
// committed write transaction. Independent processes coordinate only through
// the database file: the store keeps no counters, caches or lock files.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=FULL: A returned identifier has been made durable
//   - busy_timeout (default 5000ms): Wait for the write lock
//   - foreign_keys=ON: Enforce referential integrity
//   - _txlock=immediate: Write transactions take the write lock at BEGIN
//
// Write transactions that still fail with SQLITE_BUSY or SQLITE_LOCKED are
// re-run from the start a bounded number of times before the error is returned.
package store
