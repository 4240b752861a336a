package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/histdb/internal/engine"
)

// InsertOptions holds flags for the insert command.
type InsertOptions struct {
	*RootOptions
	Session    int64
	StatusCode int
	DryRun     bool
}

// InsertResult is the structured output of the insert command.
type InsertResult struct {
	ID         int64  `json:"id,omitempty" yaml:"id,omitempty"` // zero on --dry-run
	DryRun     bool   `json:"dry_run,omitempty" yaml:"dry_run,omitempty"`
	SessionID  int64  `json:"session_id" yaml:"session_id"`
	HistoryID  int64  `json:"history_id" yaml:"history_id"`
	StatusCode int    `json:"status_code" yaml:"status_code"`
	PPID       int    `json:"ppid" yaml:"ppid"`
	Username   string `json:"username" yaml:"username"`
	Directory  string `json:"directory" yaml:"directory"`
	Raw        string `json:"raw" yaml:"raw"`
}

// NewInsertCommand creates the insert command.
func NewInsertCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InsertOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "insert <history-entry>",
		Short: "Insert a history entry",
		Long: `Insert a shell command into the history database.

The argument is the shell's history line: a positive history number,
whitespace, then the command text, as printed by "history 1".

The user comes from $USER and the directory from $PWD.

Examples:
  histdb insert -s "$HISTDB_SESSION_ID" -c "$?" "$(history 1)"
  histdb insert -s 12 -c 0 --dry-run "42 make test"`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInsert(opts, args[0], cmd)
		},
	}

	cmd.Flags().Int64VarP(&opts.Session, "session", "s", 0, "session id (required)")
	_ = cmd.MarkFlagRequired("session")
	cmd.Flags().IntVarP(&opts.StatusCode, "status-code", "c", 0, "command exit status (required)")
	_ = cmd.MarkFlagRequired("status-code")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "validate and print the entry without writing it")

	return cmd
}

func runInsert(opts *InsertOptions, field string, cmd *cobra.Command) error {
	req := engine.InsertRequest{
		SessionID:  opts.Session,
		StatusCode: opts.StatusCode,
		PPID:       os.Getppid(),
		Username:   currentUsername(),
		Directory:  currentDirectory(),
		Field:      field,
	}

	rec, err := engine.ParseAndValidate(req)
	if err != nil {
		return engineExitError("invalid history entry", err)
	}

	result := InsertResult{
		SessionID:  rec.SessionID,
		HistoryID:  rec.HistoryID,
		StatusCode: rec.StatusCode,
		PPID:       rec.PPID,
		Username:   rec.Username,
		Directory:  rec.Directory,
		Raw:        rec.Raw,
	}
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	if opts.DryRun {
		slog.Debug("dry run, not committing", "session_id", rec.SessionID, "history_id", rec.HistoryID)
		result.DryRun = true
		return formatter.Success(result, func(w io.Writer) error {
			return writeInsertText(w, result)
		})
	}

	eng, st, err := opts.openEngine()
	if err != nil {
		return err
	}
	defer closeStore(st)

	id, err := eng.Commit(cmd.Context(), rec)
	if err != nil {
		return engineExitError("failed to insert history entry", err)
	}
	result.ID = id

	// Shell hooks run on every prompt, so text mode stays silent on success.
	if opts.Verbose {
		return formatter.Success(result, func(w io.Writer) error {
			return writeInsertText(w, result)
		})
	}
	return formatter.Success(result, nil)
}

func writeInsertText(w io.Writer, r InsertResult) error {
	if r.DryRun {
		fmt.Fprintln(w, "Dry run: entry is valid and was not written")
	} else {
		fmt.Fprintf(w, "Inserted history entry %d\n", r.ID)
	}
	fmt.Fprintf(w, "  session:     %d\n", r.SessionID)
	fmt.Fprintf(w, "  history id:  %d\n", r.HistoryID)
	fmt.Fprintf(w, "  status code: %d\n", r.StatusCode)
	fmt.Fprintf(w, "  ppid:        %d\n", r.PPID)
	fmt.Fprintf(w, "  user:        %s\n", r.Username)
	fmt.Fprintf(w, "  directory:   %s\n", r.Directory)
	_, err := fmt.Fprintf(w, "  command:     %s\n", r.Raw)
	return err
}
