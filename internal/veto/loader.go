package veto

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"github.com/mkealoha/budgetparse/internal/budget"
	"github.com/mkealoha/budgetparse/internal/parser"
)

// Key identifies one veto target: a program in one fiscal year.
type Key struct {
	ProgramID  string
	FiscalYear int
}

// Change is one actionable replacement: the new amount and the fund
// type parsed from the veto amount string.
type Change struct {
	Amount decimal.Decimal
	Fund   budget.FundType
	Row    int // source row in the veto CSV, for diagnostics
}

// Map holds all actionable veto changes keyed by (program id, fiscal
// year). Blank amounts in the source CSV never produce an entry:
// blank means "no change for that year", not zero.
type Map map[Key]Change

// LoadFile reads the veto CSV at path.
func LoadFile(path string, firstFiscalYear int) (Map, budget.Diagnostics, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, budget.Diagnostics{}, fmt.Errorf("open veto file: %w", err)
	}
	defer f.Close()
	m, diags, err := Load(f, firstFiscalYear)
	if err != nil {
		return nil, diags, fmt.Errorf("load vetoes from %s: %w", path, err)
	}
	return m, diags, nil
}

// Load parses veto rows from r. Rows with a blank program id are
// skipped; malformed amount strings are treated as blank (no-op) with
// a diagnostic. A later row for the same (program, year) overwrites an
// earlier one, matching sequential application order.
func Load(r io.Reader, firstFiscalYear int) (Map, budget.Diagnostics, error) {
	var diags budget.Diagnostics

	var rows []*budget.VetoChange
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, diags, fmt.Errorf("parse veto csv: %w", err)
	}

	m := make(Map)
	for i, row := range rows {
		program := strings.TrimSpace(row.Program)
		if program == "" {
			continue
		}
		// +2: 1-indexed plus the header row.
		csvRow := i + 2
		addChange(m, &diags, program, firstFiscalYear, row.FY2026, csvRow)
		addChange(m, &diags, program, firstFiscalYear+1, row.FY2027, csvRow)
	}

	slog.Info("veto changes loaded", "rows", len(rows), "changes", len(m))
	return m, diags, nil
}

// addChange parses one amount cell and records the change. Blank cells
// are a deliberate no-op, distinct from an explicit zero.
func addChange(m Map, diags *budget.Diagnostics, program string, year int, raw string, csvRow int) {
	if strings.TrimSpace(raw) == "" {
		return
	}
	af, err := parser.ParseAmount(raw)
	if err != nil {
		diags.Add(budget.DiagMalformedVetoAmount, csvRow,
			"veto amount %q for %s FY%d unparseable, treated as no change", raw, program, year)
		return
	}
	m[Key{ProgramID: program, FiscalYear: year}] = Change{
		Amount: af.Amount,
		Fund:   af.Fund,
		Row:    csvRow,
	}
}
