package store

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mkealoha/budgetparse/internal/budget"
)

// SectionTotal is one aggregate row: the summed amount for a section
// within one phase of a run.
type SectionTotal struct {
	Phase   string
	Section string
	Total   decimal.Decimal
}

// TotalsBySection returns phase/section totals for a run with
// deterministic ordering.
func (s *Store) TotalsBySection(ctx context.Context, runID string) ([]SectionTotal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT phase, section, SUM(amount)
		FROM allocations
		WHERE run_id = ?
		GROUP BY phase, section
		ORDER BY phase ASC, section ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query section totals: %w", err)
	}
	defer rows.Close()

	totals := []SectionTotal{}
	for rows.Next() {
		var t SectionTotal
		var sum int64
		if err := rows.Scan(&t.Phase, &t.Section, &sum); err != nil {
			return nil, fmt.Errorf("scan section total: %w", err)
		}
		t.Total = decimal.NewFromInt(sum)
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate section totals: %w", err)
	}

	return totals, nil
}

// ReadAllocations returns one phase of a run's allocation table in
// insertion order. Returns an empty slice (not nil) when the run or
// phase has no rows.
func (s *Store) ReadAllocations(ctx context.Context, runID, phase string) ([]budget.AllocationRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT department_code, department_name, category, program_number,
		       program_code, program_name, section, fund_type, fiscal_year,
		       amount, positions_permanent, positions_temporary,
		       is_duplicate, source_line
		FROM allocations
		WHERE run_id = ? AND phase = ?
		ORDER BY ordinal ASC
	`, runID, phase)
	if err != nil {
		return nil, fmt.Errorf("query allocations: %w", err)
	}
	defer rows.Close()

	records := []budget.AllocationRecord{}
	for rows.Next() {
		var rec budget.AllocationRecord
		var section, fund string
		var amount int64
		err := rows.Scan(
			&rec.DepartmentCode, &rec.DepartmentName, &rec.Category,
			&rec.ProgramNumber, &rec.ProgramCode, &rec.ProgramName,
			&section, &fund, &rec.FiscalYear,
			&amount, &rec.PositionsPermanent, &rec.PositionsTemporary,
			&rec.IsDuplicate, &rec.SourceLine,
		)
		if err != nil {
			return nil, fmt.Errorf("scan allocation: %w", err)
		}
		rec.Section = budget.Section(section)
		if fund != "" {
			rec.FundType = budget.FundType(fund[0])
		}
		rec.Amount = decimal.NewFromInt(amount)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate allocations: %w", err)
	}

	return records, nil
}

// RunCount returns the number of persisted runs.
func (s *Store) RunCount(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count runs: %w", err)
	}
	return count, nil
}
