package store

import (
	"context"
	"path/filepath"
	"sort"
	"sync"
	"testing"
)

// Each worker opens its own Store, standing in for a separate shell process
// that shares nothing with the others but the database file.
func TestConcurrentAllocation_UniqueDenseIDs(t *testing.T) {
	const workers = 8
	const perWorker = 10

	path := filepath.Join(t.TempDir(), "shared.sqlite3")
	seed, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	seed.Close()

	ctx := context.Background()
	var (
		mu         sync.Mutex
		sessionIDs []int64
		bootIDs    []int64
		wg         sync.WaitGroup
		errs       = make(chan error, workers)
	)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(ppid int) {
			defer wg.Done()
			s, err := Open(path)
			if err != nil {
				errs <- err
				return
			}
			defer s.Close()

			for i := 0; i < perWorker; i++ {
				sid, err := s.WriteSession(ctx, sessionAt(ppid))
				if err != nil {
					errs <- err
					return
				}
				bid, err := s.WriteBootEpoch(ctx, epochAt(i))
				if err != nil {
					errs <- err
					return
				}
				mu.Lock()
				sessionIDs = append(sessionIDs, sid)
				bootIDs = append(bootIDs, bid)
				mu.Unlock()
			}
		}(1000 + w)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("worker failed: %v", err)
	}

	for name, ids := range map[string][]int64{"session": sessionIDs, "boot": bootIDs} {
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		if len(ids) != workers*perWorker {
			t.Fatalf("%s: got %d ids, want %d", name, len(ids), workers*perWorker)
		}
		for i, id := range ids {
			if id != int64(i+1) {
				t.Fatalf("%s: ids not dense from 1: position %d holds %d", name, i, id)
			}
		}
	}
}

func TestConcurrentHistoryWrites_StrictlyIncreasingPerWriter(t *testing.T) {
	const workers = 4
	const perWorker = 15

	path := filepath.Join(t.TempDir(), "shared.sqlite3")
	seed, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer seed.Close()

	sessions := make([]int64, workers)
	for i := range sessions {
		sessions[i] = createTestSession(t, seed, i+1)
	}

	ctx := context.Background()
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(sessionID int64) {
			defer wg.Done()
			s, err := Open(path)
			if err != nil {
				errs <- err
				return
			}
			defer s.Close()

			var last int64
			for i := 1; i <= perWorker; i++ {
				id, err := s.WriteHistoryEntry(ctx, createTestEntry(sessionID, int64(i), "echo"))
				if err != nil {
					errs <- err
					return
				}
				if id <= last {
					t.Errorf("session %d: id %d after %d", sessionID, id, last)
				}
				last = id
			}
		}(sessions[w])
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("worker failed: %v", err)
	}

	if n := countRows(t, seed, "history"); n != workers*perWorker {
		t.Errorf("history has %d rows, want %d", n, workers*perWorker)
	}
	var distinct int
	if err := seed.db.QueryRow(`SELECT COUNT(DISTINCT id) FROM history`).Scan(&distinct); err != nil {
		t.Fatal(err)
	}
	if distinct != workers*perWorker {
		t.Errorf("history has %d distinct ids, want %d", distinct, workers*perWorker)
	}
}
