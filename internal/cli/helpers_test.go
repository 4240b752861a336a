package cli

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// testEnv isolates config and data directories and returns a database path
// inside a per-test temp directory.
func testEnv(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("HOME", root)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	t.Setenv("USER", "tester")
	t.Setenv("PWD", "/home/tester/src")
	for _, key := range []string{"HISTDB_DB", "HISTDB_LOG_LEVEL", "HISTDB_BUSY_TIMEOUT_MS", "HISTDB_BUSY_RETRIES", "HISTDB_SESSION_ID", "HISTDB_BOOT_ID"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	return filepath.Join(root, "histdb.sqlite3")
}

// runCLI executes the root command with args and captures its output.
func runCLI(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	outBuf := &bytes.Buffer{}
	errBuf := &bytes.Buffer{}

	cmd := NewRootCommand()
	cmd.SetOut(outBuf)
	cmd.SetErr(errBuf)
	cmd.SetArgs(args)

	err = cmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

func newGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}
