package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mkealoha/budgetparse/internal/budget"
	"github.com/mkealoha/budgetparse/internal/parser"
	"github.com/mkealoha/budgetparse/internal/report"
)

// ParseOptions holds flags for the parse command.
type ParseOptions struct {
	*RootOptions
	Output     string
	ConfigPath string
	FiscalYear int
	Section    string
}

// NewParseCommand creates the parse command.
func NewParseCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ParseOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "parse <budget.txt>",
		Short: "Parse a budget document into an allocation CSV",
		Long: `Parse a fixed-layout budget document into structured allocation
records, one row per program, fund type and fiscal year.

Example:
  budgetparse parse budget.txt --output allocations.csv
  budgetparse parse budget.txt --fiscal-year 2026 --section operating`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "allocations.csv", "output CSV path")
	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "YAML run configuration")
	cmd.Flags().IntVar(&opts.FiscalYear, "fiscal-year", 0, "emit only one fiscal year (0 = all)")
	cmd.Flags().StringVar(&opts.Section, "section", "all", "emit only one section (operating|capital|all)")

	return cmd
}

func runParse(opts *ParseOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	section, err := sectionFilter(opts.Section)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --section", err)
	}

	cfg, err := LoadConfig(opts.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}

	res, err := parser.New(cfg.ParserOptions()).ParseFile(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to parse budget document", err)
	}

	records := report.Filter(res.Records, opts.FiscalYear, section)
	if err := report.WriteCSVFile(opts.Output, records); err != nil {
		return WrapExitError(ExitFailure, "failed to write output", err)
	}
	formatter.VerboseLog("wrote %d records to %s", len(records), opts.Output)

	summary := report.Summarize(records, res.Diagnostics)
	return writeSummary(formatter, summary)
}

// writeSummary renders the run summary in the configured format.
func writeSummary(f *OutputFormatter, s report.Summary) error {
	if f.Format == "json" {
		return f.Success(s)
	}
	return s.WriteText(f.Writer)
}

// sectionFilter maps the --section flag onto a section value; empty
// means no filtering.
func sectionFilter(flag string) (budget.Section, error) {
	switch strings.ToLower(flag) {
	case "", "all":
		return "", nil
	case "operating":
		return budget.SectionOperating, nil
	case "capital":
		return budget.SectionCapital, nil
	default:
		return "", fmt.Errorf("unknown section %q (operating|capital|all)", flag)
	}
}
