// Command histdb records shell history in a shared SQLite database.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/histdb/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
