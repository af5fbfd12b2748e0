package cli

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mkealoha/budgetparse/internal/parser"
	"github.com/mkealoha/budgetparse/internal/report"
	"github.com/mkealoha/budgetparse/internal/store"
	"github.com/mkealoha/budgetparse/internal/veto"
)

// ProcessOptions holds flags for the process command.
type ProcessOptions struct {
	*RootOptions
	VetoPath   string
	OutDir     string
	Database   string
	XLSXPath   string
	ConfigPath string
}

// Output file names written into --out-dir.
const (
	PreVetoCSV  = "allocations_pre_veto.csv"
	PostVetoCSV = "allocations_post_veto.csv"
)

// NewProcessCommand creates the process command.
func NewProcessCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ProcessOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "process <budget.txt>",
		Short: "Parse a budget document and reconcile line-item vetoes",
		Long: `Parse a budget document, apply line-item veto changes from a CSV,
and write matched pre- and post-veto allocation tables.

The two tables always have the same number of rows: vetoes replace
amounts in place and never add or remove allocations.

Example:
  budgetparse process budget.txt --veto vetoes.csv --out-dir ./out
  budgetparse process budget.txt --veto vetoes.csv --db runs.db --xlsx budget.xlsx`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.VetoPath, "veto", "", "veto changes CSV")
	cmd.Flags().StringVar(&opts.OutDir, "out-dir", ".", "directory for output CSVs")
	cmd.Flags().StringVar(&opts.Database, "db", "", "persist the run to a SQLite database")
	cmd.Flags().StringVar(&opts.XLSXPath, "xlsx", "", "also write a two-sheet XLSX workbook")
	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "YAML run configuration")

	return cmd
}

func runProcess(opts *ProcessOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	cfg, err := LoadConfig(opts.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	firstYear := cfg.FirstFiscalYear
	if firstYear == 0 {
		firstYear = parser.DefaultFirstFiscalYear
	}

	res, err := parser.New(cfg.ParserOptions()).ParseFile(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to parse budget document", err)
	}
	diags := res.Diagnostics

	vetoes := veto.Map{}
	if opts.VetoPath != "" {
		m, vetoDiags, err := veto.LoadFile(opts.VetoPath, firstYear)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load veto changes", err)
		}
		vetoes = m
		diags.Merge(vetoDiags)
	}

	runID := uuid.NewString()
	applied := veto.Apply(res.Records, vetoes)
	diags.Merge(applied.Diagnostics)

	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return WrapExitError(ExitCommandError, "failed to create output directory", err)
	}
	prePath := filepath.Join(opts.OutDir, PreVetoCSV)
	postPath := filepath.Join(opts.OutDir, PostVetoCSV)
	if err := report.WriteCSVFile(prePath, applied.Pre); err != nil {
		return WrapExitError(ExitFailure, "failed to write pre-veto table", err)
	}
	if err := report.WriteCSVFile(postPath, applied.Post); err != nil {
		return WrapExitError(ExitFailure, "failed to write post-veto table", err)
	}
	formatter.VerboseLog("wrote %s and %s (%d rows each)", prePath, postPath, len(applied.Post))

	if opts.XLSXPath != "" {
		if err := report.WriteXLSX(opts.XLSXPath, applied.Pre, applied.Post); err != nil {
			return WrapExitError(ExitFailure, "failed to write workbook", err)
		}
		formatter.VerboseLog("wrote workbook %s", opts.XLSXPath)
	}

	if opts.Database != "" {
		st, err := store.Open(opts.Database)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open database", err)
		}
		defer st.Close()

		run := store.Run{
			ID:              runID,
			SourceFile:      path,
			VetoFile:        opts.VetoPath,
			FirstFiscalYear: firstYear,
		}
		if err := st.SaveRun(cmd.Context(), run, applied.Pre, applied.Post); err != nil {
			return WrapExitError(ExitFailure, "failed to persist run", err)
		}
		formatter.VerboseLog("persisted run %s to %s", run.ID, opts.Database)
	}

	summary := report.Summarize(applied.Post, diags)
	summary.RunID = runID
	return writeSummary(formatter, summary)
}
