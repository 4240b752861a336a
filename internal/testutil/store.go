package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/histdb/internal/store"
)

// OpenStore opens a fresh store in a per-test temp directory and closes it
// when the test ends.
func OpenStore(t testing.TB, opts ...store.Option) *store.Store {
	t.Helper()
	return OpenStoreAt(t, DBPath(t), opts...)
}

// OpenStoreAt opens (or reopens) the store at path and closes it when the
// test ends. Several handles on one path behave like separate processes.
func OpenStoreAt(t testing.TB, path string, opts ...store.Option) *store.Store {
	t.Helper()
	s, err := store.Open(path, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// DBPath returns a database path inside a per-test temp directory.
// The file does not exist yet.
func DBPath(t testing.TB) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "histdb.sqlite3")
}
