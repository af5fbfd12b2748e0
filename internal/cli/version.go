package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version metadata, overridable at build time via -ldflags.
var (
	Version = "dev"
	Commit  = "unknown"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{
				Format: rootOpts.Format,
				Writer: cmd.OutOrStdout(),
			}
			if rootOpts.Format == "json" {
				return formatter.Success(map[string]string{
					"version": Version,
					"commit":  Commit,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "budgetparse %s (%s)\n", Version, Commit)
			return nil
		},
	}
}
