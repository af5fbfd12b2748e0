package parser

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkealoha/budgetparse/internal/budget"
)

const sampleDoc = `A. AGRICULTURE

1.   AGR101 - AGRICULTURAL LOAN DIVISION
        25.00*          25.00*
         2.00#           2.00#
OPERATING          AGR     1,500,000A      1,520,000A
INVESTMENT CAPITAL AGR       500,000C        250,000C

2.   AGR201 - PEST CONTROL
OPERATING          AGR       300,000B        310,000B

E. HEALTH

1.   HTH420 - COMMUNITY HEALTH
OPERATING          HTH     2,701,795A      2,701,795A
`

func parseString(t *testing.T, doc string, opts Options) *Result {
	t.Helper()
	res, err := New(opts).Parse(strings.NewReader(doc))
	require.NoError(t, err)
	return res
}

func TestParseSampleDocument(t *testing.T) {
	res := parseString(t, sampleDoc, Options{})

	require.Len(t, res.Records, 8)

	first := res.Records[0]
	assert.Equal(t, "AGR", first.DepartmentCode)
	assert.Equal(t, "AGRICULTURE", first.DepartmentName)
	assert.Equal(t, "Economic Development", first.Category)
	assert.Equal(t, 1, first.ProgramNumber)
	assert.Equal(t, "101", first.ProgramCode)
	assert.Equal(t, "AGR101", first.ProgramID())
	assert.Equal(t, "AGRICULTURAL LOAN DIVISION", first.ProgramName)
	assert.Equal(t, budget.SectionOperating, first.Section)
	assert.Equal(t, budget.FundType('A'), first.FundType)
	assert.Equal(t, 2026, first.FiscalYear)
	assert.True(t, first.Amount.Equal(decimal.NewFromInt(1500000)))
	assert.Equal(t, 25.0, first.PositionsPermanent)
	assert.Equal(t, 2.0, first.PositionsTemporary)

	// Second column of the same line is the next fiscal year.
	second := res.Records[1]
	assert.Equal(t, 2027, second.FiscalYear)
	assert.True(t, second.Amount.Equal(decimal.NewFromInt(1520000)))
	assert.Equal(t, first.SourceLine, second.SourceLine)

	// Capital rows keep program context and positions.
	capital := res.Records[2]
	assert.Equal(t, budget.SectionCapital, capital.Section)
	assert.Equal(t, budget.FundType('C'), capital.FundType)
	assert.Equal(t, 25.0, capital.PositionsPermanent)

	// Position counts never leak into the next program.
	pest := res.Records[4]
	assert.Equal(t, "AGR201", pest.ProgramID())
	assert.Equal(t, 0.0, pest.PositionsPermanent)
	assert.Equal(t, 0.0, pest.PositionsTemporary)

	// Category follows the department header letter.
	health := res.Records[6]
	assert.Equal(t, "HTH420", health.ProgramID())
	assert.Equal(t, "Health", health.Category)

	assert.Equal(t, 0, res.Diagnostics.Len(), "clean document should have no diagnostics: %v", res.Diagnostics.Entries)
}

func TestParseFirstFiscalYearOption(t *testing.T) {
	res := parseString(t, sampleDoc, Options{FirstFiscalYear: 2030})
	assert.Equal(t, 2030, res.Records[0].FiscalYear)
	assert.Equal(t, 2031, res.Records[1].FiscalYear)
}

func TestParseNameOverrides(t *testing.T) {
	res := parseString(t, sampleDoc, Options{
		Departments: map[string]string{"AGR": "Department of Agriculture"},
		Categories:  map[string]string{"A": "Ag and Land"},
	})
	assert.Equal(t, "Department of Agriculture", res.Records[0].DepartmentName)
	assert.Equal(t, "Ag and Land", res.Records[0].Category)
	// Unmapped departments keep the header name.
	assert.Equal(t, "HEALTH", res.Records[6].DepartmentName)
}

func TestParseOrphanAllocation(t *testing.T) {
	doc := "OPERATING   AGR   1,000,000A   1,000,000A\n"
	res := parseString(t, doc, Options{})

	// Orphans are still emitted so totals reconcile.
	require.Len(t, res.Records, 2)
	assert.True(t, res.Records[0].Orphan())
	assert.Empty(t, res.Records[0].DepartmentCode)
	assert.True(t, res.Records[0].Amount.Equal(decimal.NewFromInt(1000000)))
	assert.Equal(t, 1, res.Diagnostics.Count(budget.DiagOrphanAllocation))
}

func TestParseUnrecognizedLines(t *testing.T) {
	doc := sampleDoc + "\nThe sums herein appropriated shall be expended.\nPAGE 14\n"
	res := parseString(t, doc, Options{})

	require.Len(t, res.Records, 8)
	// Prose is skipped outright; "PAGE 14" opens like an appropriation
	// row inside a section, so it lands in the no-amount bucket.
	assert.Equal(t, 1, res.Diagnostics.Count(budget.DiagUnrecognizedLine))
	assert.Equal(t, 1, res.Diagnostics.Count(budget.DiagNoAmountFound))
}

func TestParseAmountlessAllocationRow(t *testing.T) {
	doc := `A. AGRICULTURE
1.   AGR101 - AGRICULTURAL LOAN DIVISION
OPERATING
AGR   see appendix for amounts
`
	res := parseString(t, doc, Options{})

	assert.Empty(t, res.Records)
	assert.Equal(t, 1, res.Diagnostics.Count(budget.DiagNoAmountFound))
}

func TestParseEmptyInput(t *testing.T) {
	_, err := New(Options{}).Parse(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestParseFileMissing(t *testing.T) {
	_, err := New(Options{}).ParseFile("testdata/does-not-exist.txt")
	assert.Error(t, err)
}

func TestParseDepartmentHeaderWithCode(t *testing.T) {
	doc := `A. AGRICULTURE (AGR)
1.   AGR101 - AGRICULTURAL LOAN DIVISION
OPERATING          AGR     1,000,000A
`
	res := parseString(t, doc, Options{})
	require.Len(t, res.Records, 1)
	assert.Equal(t, "AGR", res.Records[0].DepartmentCode)
	assert.Equal(t, "AGRICULTURE", res.Records[0].DepartmentName)
	assert.Equal(t, 0, res.Diagnostics.Len())
}

func TestParseTwoColumnPositionCeilings(t *testing.T) {
	// Both fiscal-year columns repeat the same ceiling; the count must
	// not be doubled.
	doc := `A. AGRICULTURE
1.   AGR101 - AGRICULTURAL LOAN DIVISION
         5.00*          5.00*
         2.00#          2.00#
OPERATING          AGR     1,000,000A      1,000,000A
`
	res := parseString(t, doc, Options{})
	require.Len(t, res.Records, 2)
	assert.Equal(t, 5.0, res.Records[0].PositionsPermanent)
	assert.Equal(t, 2.0, res.Records[0].PositionsTemporary)
	assert.Equal(t, 0, res.Diagnostics.Len())
}

func TestParsePositionsOutsideProgram(t *testing.T) {
	doc := `A. AGRICULTURE
        25.00*
`
	res := parseString(t, doc, Options{})
	assert.Empty(t, res.Records)
	assert.Equal(t, 1, res.Diagnostics.Count(budget.DiagUnrecognizedLine))
}
