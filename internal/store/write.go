package store

import (
	"context"
	"fmt"

	"github.com/mkealoha/budgetparse/internal/budget"
)

// Phases of an allocation table within a run.
const (
	PhasePre  = "pre"
	PhasePost = "post"
)

// Run describes one processing run to be persisted.
type Run struct {
	ID              string
	SourceFile      string
	VetoFile        string
	FirstFiscalYear int
}

// SaveRun writes the run header and both allocation tables in a single
// transaction. Either the whole run lands or none of it does.
func (s *Store) SaveRun(ctx context.Context, run Run, pre, post []budget.AllocationRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save run: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, source_file, veto_file, first_fiscal_year, record_count)
		VALUES (?, ?, ?, ?, ?)
	`,
		run.ID,
		run.SourceFile,
		run.VetoFile,
		run.FirstFiscalYear,
		len(post),
	)
	if err != nil {
		return fmt.Errorf("save run: insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO allocations
		(run_id, phase, ordinal, department_code, department_name, category,
		 program_number, program_code, program_name, section, fund_type,
		 fiscal_year, amount, positions_permanent, positions_temporary,
		 is_duplicate, source_line)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("save run: prepare insert: %w", err)
	}
	defer stmt.Close()

	phases := []struct {
		name    string
		records []budget.AllocationRecord
	}{
		{PhasePre, pre},
		{PhasePost, post},
	}
	for _, p := range phases {
		phase := p.name
		for i, rec := range p.records {
			_, err := stmt.ExecContext(ctx,
				run.ID, phase, i,
				rec.DepartmentCode, rec.DepartmentName, rec.Category,
				rec.ProgramNumber, rec.ProgramCode, rec.ProgramName,
				string(rec.Section), string(rec.FundType),
				rec.FiscalYear, rec.Amount.IntPart(),
				rec.PositionsPermanent, rec.PositionsTemporary,
				rec.IsDuplicate, rec.SourceLine,
			)
			if err != nil {
				return fmt.Errorf("save run: insert %s allocation %d: %w", phase, i, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save run: commit: %w", err)
	}

	return nil
}
