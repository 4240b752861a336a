package cli

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/histdb/internal/record"
	"github.com/roach88/histdb/internal/store"
)

// InfoOptions holds flags for the info command.
type InfoOptions struct {
	*RootOptions
	Session int64
}

// InfoResult is the structured output of the info command.
type InfoResult struct {
	Database    string `json:"database" yaml:"database"`
	store.Stats `yaml:",inline"`

	// LastBootAt is when the newest boot epoch was allocated, nil if none.
	LastBootAt *time.Time `json:"last_boot_at,omitempty" yaml:"last_boot_at,omitempty"`

	Session *SessionInfo `json:"session,omitempty" yaml:"session,omitempty"`
}

// SessionInfo describes one session and its history.
type SessionInfo struct {
	ID          int64     `json:"id" yaml:"id"`
	PPID        int       `json:"ppid" yaml:"ppid"`
	BootTime    time.Time `json:"boot_time" yaml:"boot_time"`
	Entries     int       `json:"entries" yaml:"entries"`
	LastCommand string    `json:"last_command,omitempty" yaml:"last_command,omitempty"`
}

// NewInfoCommand creates the info command.
func NewInfoCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InfoOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Print information about the histdb environment",
		Long: `Print the database path, schema version, and the number of rows and
latest id of sessions, boot epochs and history entries, along with the most
recent command.

When --session is given, or $HISTDB_SESSION_ID is set, the session's shell
pid, boot time and entry count are printed too.

Examples:
  histdb info
  histdb info --session 12
  histdb info --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(opts, cmd)
		},
	}

	cmd.Flags().Int64VarP(&opts.Session, "session", "s", 0, "session to describe (default $HISTDB_SESSION_ID)")

	return cmd
}

func runInfo(opts *InfoOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()

	st, err := opts.openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	stats, err := st.Stats(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read database stats", err)
	}
	result := InfoResult{Database: st.Path(), Stats: stats}

	if stats.LastBootID > 0 {
		epoch, err := st.ReadBootEpoch(ctx, stats.LastBootID)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read latest boot epoch", err)
		}
		result.LastBootAt = &epoch.CreatedAt
	}

	if id := infoSessionID(opts); id > 0 {
		info, err := readSessionInfo(cmd, st, id)
		if err != nil {
			return err
		}
		result.Session = info
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return formatter.Success(result, func(w io.Writer) error {
		return writeInfoText(w, result)
	})
}

// infoSessionID returns the --session flag, else a valid $HISTDB_SESSION_ID,
// else 0.
func infoSessionID(opts *InfoOptions) int64 {
	if opts.Session != 0 {
		return opts.Session
	}
	env := os.Getenv("HISTDB_SESSION_ID")
	if env == "" {
		return 0
	}
	id, err := strconv.ParseInt(env, 10, 64)
	if err != nil || id <= 0 {
		slog.Debug("ignoring invalid HISTDB_SESSION_ID", "value", env)
		return 0
	}
	return id
}

func readSessionInfo(cmd *cobra.Command, st *store.Store, id int64) (*SessionInfo, error) {
	ctx := cmd.Context()

	sess, err := st.ReadSession(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NewExitError(ExitFailure, fmt.Sprintf("no such session: %d", id))
	}
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to read session", err)
	}

	entries, err := st.ReadSessionHistory(ctx, id)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to read session history", err)
	}

	info := &SessionInfo{
		ID:       sess.ID,
		PPID:     sess.PPID,
		BootTime: sess.BootTime,
		Entries:  len(entries),
	}
	if len(entries) > 0 {
		info.LastCommand = entries[len(entries)-1].Raw
	}
	return info, nil
}

func writeInfoText(w io.Writer, r InfoResult) error {
	fmt.Fprintf(w, "Database:        %s\n", r.Database)
	fmt.Fprintf(w, "Schema version:  %d\n", r.SchemaVersion)
	fmt.Fprintf(w, "Sessions:        %d (last id %d)\n", r.Sessions, r.LastSessionID)
	fmt.Fprintf(w, "Boot epochs:     %d (last id %d)\n", r.BootEpochs, r.LastBootID)
	if r.LastBootAt != nil {
		fmt.Fprintf(w, "Last boot epoch: %s\n", record.FormatTimestamp(*r.LastBootAt))
	}
	fmt.Fprintf(w, "History entries: %d (last id %d)\n", r.HistoryEntries, r.LastHistoryID)

	if r.LastCommandAt == nil {
		fmt.Fprintln(w, "Last command:    never")
	} else {
		fmt.Fprintf(w, "Last command:    %s\n", r.LastCommand)
		fmt.Fprintf(w, "Last command at: %s\n", record.FormatTimestamp(*r.LastCommandAt))
	}

	if s := r.Session; s != nil {
		fmt.Fprintf(w, "Session %d:\n", s.ID)
		fmt.Fprintf(w, "  ppid:          %d\n", s.PPID)
		fmt.Fprintf(w, "  boot time:     %s\n", record.FormatTimestamp(s.BootTime))
		fmt.Fprintf(w, "  entries:       %d\n", s.Entries)
		if s.LastCommand != "" {
			fmt.Fprintf(w, "  last command:  %s\n", s.LastCommand)
		}
	}
	return nil
}
