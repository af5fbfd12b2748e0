package veto

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkealoha/budgetparse/internal/budget"
)

// End-to-end loader + applier behavior on a realistic change set.

func TestLoadAndApplyScenario(t *testing.T) {
	allocations := []budget.AllocationRecord{
		alloc("AGR", "101", 2026, 1000000, 'A'),
		alloc("AGR", "101", 2027, 1000000, 'A'),
		alloc("HTH", "420", 2026, 2701795, 'A'),
		alloc("HTH", "420", 2027, 2701795, 'A'),
	}

	csv := "Program,Type,FY 2026 Amount,FY 2027 Amount\n" +
		"AGR101,Operating,\"2,000,000A\",\n"
	vetoes, diags, err := Load(strings.NewReader(csv), 2026)
	require.NoError(t, err)
	require.Equal(t, 0, diags.Len())

	res := Apply(allocations, vetoes)
	require.Len(t, res.Post, 4)

	// FY 2026 changed, FY 2027 untouched because its cell was blank.
	assert.True(t, res.Post[0].Amount.Equal(decimal.NewFromInt(2000000)))
	assert.Equal(t, budget.FundType('A'), res.Post[0].FundType)
	assert.True(t, res.Pre[0].Amount.Equal(decimal.NewFromInt(1000000)))
	assert.Equal(t, res.Pre[1], res.Post[1])

	// Unaffected programs total exactly what they did before.
	pre, post := decimal.Zero, decimal.Zero
	for i := 2; i < 4; i++ {
		pre = pre.Add(res.Pre[i].Amount)
		post = post.Add(res.Post[i].Amount)
	}
	assert.True(t, pre.Equal(post))

	assert.Equal(t, 1, res.Applied)
	assert.Equal(t, 0, res.Diagnostics.Len())
}
