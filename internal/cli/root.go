// Package cli provides the command-line interface for reviewcli.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rewind/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	return 0
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "reviewcli",
		Short: "Parse coach match-review reports offline",
		Long: `reviewcli runs the match-review report parser against local files.

Point it at a report text file and a roster YAML file and it prints the
parsed timeline (frames, events, per-minute states) or the role map,
exactly as the worker would compute them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewParseCommand())
	rootCmd.AddCommand(commands.NewRolesCommand())
	return rootCmd
}
