package cli

import (
	"github.com/spf13/cobra"
)

// BootIDOptions holds flags for the boot-id command.
type BootIDOptions struct {
	*RootOptions
	Eval bool
}

// BootIDResult is the structured output of the boot-id command.
type BootIDResult struct {
	BootID int64 `json:"boot_id" yaml:"boot_id"`
}

// NewBootIDCommand creates the boot-id command.
func NewBootIDCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BootIDOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "boot-id",
		Short: "Allocate a new boot epoch id",
		Long: `Allocate a new boot epoch id.

Every call allocates a new epoch. Run it once per boot, for example from a
login script guarded by a marker file.

Examples:
  histdb boot-id
  eval "$(histdb boot-id --eval)"`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBootID(opts, cmd)
		},
	}

	cmd.Flags().BoolVarP(&opts.Eval, "eval", "e", false, "print the id as a shell statement for eval")

	return cmd
}

func runBootID(opts *BootIDOptions, cmd *cobra.Command) error {
	eng, st, err := opts.openEngine()
	if err != nil {
		return err
	}
	defer closeStore(st)

	id, err := eng.CreateBootEpoch(cmd.Context())
	if err != nil {
		return engineExitError("failed to create boot epoch", err)
	}

	return writeAllocated(cmd.OutOrStdout(), opts.RootOptions, opts.Eval,
		"HISTDB_BOOT_ID", id, BootIDResult{BootID: id})
}
