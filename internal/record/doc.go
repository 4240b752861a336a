// Package record defines the rows histdb persists: shell sessions, boot epochs
// and history entries.
//
// All identifiers named ID are assigned by the store's autoincrement primary
// keys. HistoryEntry.HistoryID is the caller's own shell-local counter and is
// stored verbatim; it is never generated or renumbered by histdb.
package record
