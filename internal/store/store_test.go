package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkealoha/budgetparse/internal/budget"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testRecords() (pre, post []budget.AllocationRecord) {
	pre = []budget.AllocationRecord{
		{
			DepartmentCode: "AGR", DepartmentName: "AGRICULTURE",
			Category: "Economic Development", ProgramNumber: 1,
			ProgramCode: "101", ProgramName: "AGRICULTURAL LOAN DIVISION",
			Section: budget.SectionOperating, FundType: 'A',
			FiscalYear: 2026, Amount: decimal.NewFromInt(1500000),
			PositionsPermanent: 25, PositionsTemporary: 2, SourceLine: 6,
		},
		{
			DepartmentCode: "AGR", DepartmentName: "AGRICULTURE",
			Category: "Economic Development", ProgramNumber: 1,
			ProgramCode: "101", ProgramName: "AGRICULTURAL LOAN DIVISION",
			Section: budget.SectionCapital, FundType: 'C',
			FiscalYear: 2026, Amount: decimal.NewFromInt(500000),
			PositionsPermanent: 25, PositionsTemporary: 2, SourceLine: 7,
		},
	}
	post = make([]budget.AllocationRecord, len(pre))
	copy(post, pre)
	post[0].Amount = decimal.NewFromInt(1200000)
	post[0].IsDuplicate = false
	return pre, post
}

func TestOpenAppliesPragmas(t *testing.T) {
	s := openTestStore(t)
	assert.NoError(t, s.verifyPragma("journal_mode", "wal"))
	assert.NoError(t, s.verifyPragma("foreign_keys", "1"))
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s2.Close())
}

func TestSaveAndReadRun(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	pre, post := testRecords()

	run := Run{
		ID:              "run-1",
		SourceFile:      "budget.txt",
		VetoFile:        "vetoes.csv",
		FirstFiscalYear: 2026,
	}
	require.NoError(t, s.SaveRun(ctx, run, pre, post))

	count, err := s.RunCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	gotPre, err := s.ReadAllocations(ctx, "run-1", PhasePre)
	require.NoError(t, err)
	require.Len(t, gotPre, 2)
	assert.Equal(t, "AGR", gotPre[0].DepartmentCode)
	assert.Equal(t, budget.FundType('A'), gotPre[0].FundType)
	assert.True(t, gotPre[0].Amount.Equal(decimal.NewFromInt(1500000)))
	assert.Equal(t, 25.0, gotPre[0].PositionsPermanent)

	gotPost, err := s.ReadAllocations(ctx, "run-1", PhasePost)
	require.NoError(t, err)
	require.Len(t, gotPost, 2)
	assert.True(t, gotPost[0].Amount.Equal(decimal.NewFromInt(1200000)))
}

func TestReadAllocationsEmpty(t *testing.T) {
	s := openTestStore(t)
	got, err := s.ReadAllocations(context.Background(), "no-such-run", PhasePre)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSaveRunDuplicateIDFails(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	pre, post := testRecords()

	run := Run{ID: "run-1", SourceFile: "budget.txt", FirstFiscalYear: 2026}
	require.NoError(t, s.SaveRun(ctx, run, pre, post))
	assert.Error(t, s.SaveRun(ctx, run, pre, post))

	// The failed second save must not leave partial rows behind.
	got, err := s.ReadAllocations(ctx, "run-1", PhasePre)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestTotalsBySection(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	pre, post := testRecords()

	run := Run{ID: "run-1", SourceFile: "budget.txt", FirstFiscalYear: 2026}
	require.NoError(t, s.SaveRun(ctx, run, pre, post))

	totals, err := s.TotalsBySection(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, totals, 4) // two phases x two sections

	byKey := map[string]decimal.Decimal{}
	for _, tot := range totals {
		byKey[tot.Phase+"/"+tot.Section] = tot.Total
	}
	assert.True(t, byKey["pre/Operating"].Equal(decimal.NewFromInt(1500000)))
	assert.True(t, byKey["post/Operating"].Equal(decimal.NewFromInt(1200000)))
	assert.True(t, byKey["pre/Capital Improvement"].Equal(decimal.NewFromInt(500000)))
	assert.True(t, byKey["post/Capital Improvement"].Equal(decimal.NewFromInt(500000)))
}
