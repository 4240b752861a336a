package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestInfoCommand_EmptyDatabase(t *testing.T) {
	db := testEnv(t)

	out, _, err := runCLI(t, "--db", db, "info")
	require.NoError(t, err)
	assert.Contains(t, out, "Database:        "+db)
	assert.Contains(t, out, "Schema version:  2")
	assert.Contains(t, out, "Sessions:        0 (last id 0)")
	assert.Contains(t, out, "History entries: 0 (last id 0)")
	assert.Contains(t, out, "Last command:    never")
	assert.NotContains(t, out, "Last boot epoch:")
	assert.NotContains(t, out, "Session ")
}

func TestInfoCommand_LastCommandText(t *testing.T) {
	db := testEnv(t)
	newSession(t, db)
	_, _, err := runCLI(t, "--db", db, "boot-id")
	require.NoError(t, err)
	_, _, err = runCLI(t, "--db", db, "insert", "-s", "1", "-c", "0", "1 ./configure")
	require.NoError(t, err)
	_, _, err = runCLI(t, "--db", db, "insert", "-s", "1", "-c", "2", "2   make -j8  ")
	require.NoError(t, err)

	out, _, err := runCLI(t, "--db", db, "info")
	require.NoError(t, err)
	assert.Contains(t, out, "Boot epochs:     1 (last id 1)")
	assert.Contains(t, out, "Last boot epoch: ")
	assert.Contains(t, out, "History entries: 2 (last id 2)")
	assert.Contains(t, out, "Last command:    make -j8\n")
	assert.Contains(t, out, "Last command at: ")
}

func TestInfoCommand_CountsRows(t *testing.T) {
	db := testEnv(t)
	newSession(t, db)
	newSession(t, db)
	_, _, err := runCLI(t, "--db", db, "boot-id")
	require.NoError(t, err)
	_, _, err = runCLI(t, "--db", db, "insert", "-s", "2", "-c", "0", "1 ls")
	require.NoError(t, err)

	out, _, err := runCLI(t, "--db", db, "--format", "json", "info")
	require.NoError(t, err)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Database       string  `json:"database"`
			SchemaVersion  int     `json:"schema_version"`
			Sessions       int64   `json:"sessions"`
			LastSessionID  int64   `json:"last_session_id"`
			BootEpochs     int64   `json:"boot_epochs"`
			HistoryEntries int64   `json:"history_entries"`
			LastCommand    string  `json:"last_command"`
			LastCommandAt  *string `json:"last_command_at"`
			LastBootAt     *string `json:"last_boot_at"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, db, resp.Data.Database)
	assert.Equal(t, 2, resp.Data.SchemaVersion)
	assert.Equal(t, int64(2), resp.Data.Sessions)
	assert.Equal(t, int64(2), resp.Data.LastSessionID)
	assert.Equal(t, int64(1), resp.Data.BootEpochs)
	assert.Equal(t, int64(1), resp.Data.HistoryEntries)
	assert.Equal(t, "ls", resp.Data.LastCommand)
	assert.NotNil(t, resp.Data.LastCommandAt)
	assert.NotNil(t, resp.Data.LastBootAt)
}

func TestInfoCommand_Session(t *testing.T) {
	db := testEnv(t)
	newSession(t, db)
	newSession(t, db)
	for _, field := range []string{"1 git status", "2 git diff"} {
		_, _, err := runCLI(t, "--db", db, "insert", "-s", "2", "-c", "0", field)
		require.NoError(t, err)
	}
	_, _, err := runCLI(t, "--db", db, "insert", "-s", "1", "-c", "0", "1 ls")
	require.NoError(t, err)

	out, _, err := runCLI(t, "--db", db, "info", "--session", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Session 2:\n")
	assert.Contains(t, out, fmt.Sprintf("  ppid:          %d\n", os.Getppid()))
	assert.Contains(t, out, "  entries:       2\n")
	assert.Contains(t, out, "  last command:  git diff\n")
	assert.Contains(t, out, "Last command:    ls\n")
}

func TestInfoCommand_SessionFromEnvironment(t *testing.T) {
	db := testEnv(t)
	newSession(t, db)
	t.Setenv("HISTDB_SESSION_ID", "1")

	out, _, err := runCLI(t, "--db", db, "--format", "json", "info")
	require.NoError(t, err)

	var resp struct {
		Data struct {
			Session *struct {
				ID          int64  `json:"id"`
				Entries     int    `json:"entries"`
				LastCommand string `json:"last_command"`
			} `json:"session"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.NotNil(t, resp.Data.Session)
	assert.Equal(t, int64(1), resp.Data.Session.ID)
	assert.Equal(t, 0, resp.Data.Session.Entries)
	assert.Empty(t, resp.Data.Session.LastCommand)
}

func TestInfoCommand_InvalidSessionEnvironmentIgnored(t *testing.T) {
	db := testEnv(t)
	t.Setenv("HISTDB_SESSION_ID", "not-a-number")

	out, _, err := runCLI(t, "--db", db, "info")
	require.NoError(t, err)
	assert.NotContains(t, out, "Session ")
}

func TestInfoCommand_UnknownSession(t *testing.T) {
	db := testEnv(t)
	newSession(t, db)

	_, _, err := runCLI(t, "--db", db, "info", "--session", "9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no such session: 9")
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestInfoCommand_YAML(t *testing.T) {
	db := testEnv(t)
	newSession(t, db)

	out, _, err := runCLI(t, "--db", db, "--format", "yaml", "info")
	require.NoError(t, err)

	var resp struct {
		Status string `yaml:"status"`
		Data   struct {
			Database string `yaml:"database"`
			Sessions int64  `yaml:"sessions"`
		} `yaml:"data"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, db, resp.Data.Database)
	assert.Equal(t, int64(1), resp.Data.Sessions)
}
