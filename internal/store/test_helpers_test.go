package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/roach88/histdb/internal/record"
)

var testBootTime = time.Date(2026, 10, 19, 6, 0, 0, 0, time.FixedZone("", -4*60*60))

// createTestStore creates a new file-backed store in a temp dir.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.sqlite3")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestSession writes a session and returns its ID.
func createTestSession(t *testing.T, s *Store, ppid int) int64 {
	t.Helper()
	id, err := s.WriteSession(context.Background(), record.Session{PPID: ppid, BootTime: testBootTime})
	if err != nil {
		t.Fatalf("WriteSession() failed: %v", err)
	}
	return id
}

// createTestEntry builds a history entry with minimal required fields.
func createTestEntry(sessionID, historyID int64, raw string) record.HistoryEntry {
	return record.HistoryEntry{
		SessionID:  sessionID,
		HistoryID:  historyID,
		PPID:       4242,
		StatusCode: 0,
		CreatedAt:  time.Now(),
		Username:   "tester",
		Directory:  "/tmp",
		Raw:        raw,
	}
}

// countRows returns the number of rows in table.
func countRows(t *testing.T, s *Store, table string) int {
	t.Helper()
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

// sessionAt builds a session for ppid under the test boot time.
func sessionAt(ppid int) record.Session {
	return record.Session{PPID: ppid, BootTime: testBootTime}
}

// epochAt builds a boot epoch created n minutes after the test boot time.
func epochAt(n int) record.BootEpoch {
	return record.BootEpoch{CreatedAt: testBootTime.Add(time.Duration(n) * time.Minute)}
}
