package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/mkealoha/budgetparse/internal/extract"
)

// ExtractOptions holds flags for the extract command.
type ExtractOptions struct {
	*RootOptions
	Output string
}

// NewExtractCommand creates the extract command.
func NewExtractCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExtractOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "extract <budget.pdf>",
		Short: "Extract parseable text from a budget PDF",
		Long: `Extract line-oriented text from a published budget PDF so it can be
fed to the parse and process commands.

Example:
  budgetparse extract budget.pdf --output budget.txt`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output text path (default: input name with .txt)")

	return cmd
}

func runExtract(opts *ExtractOptions, path string, cmd *cobra.Command) error {
	out := opts.Output
	if out == "" {
		out = strings.TrimSuffix(path, ".pdf") + ".txt"
	}
	if err := extract.TextToFile(path, out); err != nil {
		return WrapExitError(ExitCommandError, "failed to extract text", err)
	}

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	return formatter.Success("extracted " + path + " -> " + out)
}
