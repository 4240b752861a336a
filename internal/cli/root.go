package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/roach88/histdb/internal/config"
	"github.com/roach88/histdb/internal/engine"
	"github.com/roach88/histdb/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "text" | "json" | "yaml"
	Database   string // overrides the configured db path when set
	ConfigFile string

	cfg *config.Config
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "yaml"}

// NewRootCommand creates the root command for the histdb CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "histdb",
		Short: "histdb - shell history database",
		Long: `Record every shell command, with its session, exit status, user and
directory, in a SQLite database shared by all shells on the host.

Shell hooks call "histdb session" once per shell and "histdb insert"
after every command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !lo.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			return setupLogging(cmd.ErrOrStderr(), cfg, opts.Verbose)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite database (default from config)")
	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "config file (default $XDG_CONFIG_HOME/histdb/config.yaml)")

	// Add subcommands
	cmd.AddCommand(NewSessionCommand(opts))
	cmd.AddCommand(NewBootIDCommand(opts))
	cmd.AddCommand(NewInsertCommand(opts))
	cmd.AddCommand(NewInfoCommand(opts))

	return cmd
}

// config loads the configuration once and applies flag overrides.
func (o *RootOptions) config() (*config.Config, error) {
	if o.cfg != nil {
		return o.cfg, nil
	}

	var (
		cfg *config.Config
		err error
	)
	if o.ConfigFile != "" {
		cfg, err = config.LoadFromFile(o.ConfigFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}

	if o.Database != "" {
		cfg.DB = o.Database
	}
	o.cfg = cfg
	return cfg, nil
}

// openStore opens the configured database. The caller must close it.
func (o *RootOptions) openStore() (*store.Store, error) {
	cfg, err := o.config()
	if err != nil {
		return nil, err
	}

	slog.Debug("opening database", "path", cfg.DB)
	st, err := store.Open(cfg.DB,
		store.WithBusyTimeout(cfg.BusyTimeout()),
		store.WithBusyRetries(cfg.BusyRetries),
	)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, nil
}

// openEngine opens the configured store and returns an engine writing to it.
// The caller must close the returned store.
func (o *RootOptions) openEngine() (*engine.Engine, *store.Store, error) {
	st, err := o.openStore()
	if err != nil {
		return nil, nil, err
	}
	return engine.New(st), st, nil
}

// setupLogging installs the default slog logger. Shell hooks run on every
// prompt, so anything below the configured level stays silent.
func setupLogging(w io.Writer, cfg *config.Config, verbose bool) error {
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid log level", err)
	}
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler).With("invocation", newInvocationID()))
	return nil
}

func newInvocationID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func closeStore(st *store.Store) {
	if err := st.Close(); err != nil {
		slog.Error("error closing database", "error", err)
	}
}
