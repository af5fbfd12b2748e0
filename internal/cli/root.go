package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the budgetparse CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

// Execute runs the CLI with the given arguments, rendering any failure
// through the output formatter so JSON mode emits the structured error
// shape. Returns the process exit code.
func Execute(args []string, out, errOut io.Writer) int {
	opts := &RootOptions{}
	cmd := newRootCommand(opts)
	cmd.SetArgs(args)
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	if err := cmd.Execute(); err != nil {
		format := opts.Format
		if !isValidFormat(format) {
			format = "text"
		}
		f := &OutputFormatter{Format: format, Writer: out, ErrWriter: errOut, Verbose: opts.Verbose}
		_ = f.Error(exitCodeLabel(err), err.Error(), nil)
		return GetExitCode(err)
	}
	return ExitSuccess
}

// exitCodeLabel maps an error's exit code onto the stable E-codes used
// in structured error output.
func exitCodeLabel(err error) string {
	return fmt.Sprintf("E%03d", GetExitCode(err))
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budgetparse",
		Short: "Parse appropriations documents and apply line-item vetoes",
		Long: `budgetparse turns fixed-layout budget worksheets into structured
allocation tables and reconciles them against line-item veto changes,
producing pre- and post-veto datasets plus a data-quality summary.`,
		// Errors are rendered once, by Execute's formatter.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			configureLogging(opts.Verbose)
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewParseCommand(opts))
	cmd.AddCommand(NewProcessCommand(opts))
	cmd.AddCommand(NewExtractCommand(opts))
	cmd.AddCommand(NewVersionCommand(opts))

	return cmd
}

// configureLogging routes structured logs to stderr so stdout stays
// clean for command output.
func configureLogging(verbose bool) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
