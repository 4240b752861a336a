package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/histdb/internal/sysinfo"
)

// SessionOptions holds flags for the session command.
type SessionOptions struct {
	*RootOptions
	Eval bool

	// bootTime reports the host boot time; replaced in tests.
	bootTime func() (time.Time, error)
}

// SessionResult is the structured output of the session command.
type SessionResult struct {
	SessionID int64 `json:"session_id" yaml:"session_id"`
}

// NewSessionCommand creates the session command.
func NewSessionCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SessionOptions{RootOptions: rootOpts, bootTime: sysinfo.BootTime}

	cmd := &cobra.Command{
		Use:   "session",
		Short: "Allocate a new session id",
		Long: `Allocate a new session id for the calling shell.

The session records the shell's process id (this command's parent) and the
host boot time. Call it once when the shell starts.

Examples:
  histdb session
  eval "$(histdb session --eval)"`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(opts, cmd)
		},
	}

	cmd.Flags().BoolVarP(&opts.Eval, "eval", "e", false, "print the id as a shell statement for eval")

	return cmd
}

func runSession(opts *SessionOptions, cmd *cobra.Command) error {
	boot, err := opts.bootTime()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read boot time", err)
	}

	eng, st, err := opts.openEngine()
	if err != nil {
		return err
	}
	defer closeStore(st)

	id, err := eng.CreateSession(cmd.Context(), os.Getppid(), boot)
	if err != nil {
		return engineExitError("failed to create session", err)
	}

	return writeAllocated(cmd.OutOrStdout(), opts.RootOptions, opts.Eval,
		"HISTDB_SESSION_ID", id, SessionResult{SessionID: id})
}

// writeAllocated prints a newly allocated id. --eval output is always the
// shell statement, whatever the format.
func writeAllocated(w io.Writer, opts *RootOptions, eval bool, envVar string, id int64, data any) error {
	if eval {
		_, err := fmt.Fprintf(w, "export %s=%d;\n", envVar, id)
		return err
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: w}
	return formatter.Success(data, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, id)
		return err
	})
}
