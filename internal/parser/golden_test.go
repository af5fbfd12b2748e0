package parser

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/mkealoha/budgetparse/internal/report"
)

// TestParseGolden locks the full text-to-CSV pipeline against a golden
// file. Regenerate with:
//
//	go test ./internal/parser -update
func TestParseGolden(t *testing.T) {
	res, err := New(Options{}).ParseFile("testdata/sample_budget.txt")
	require.NoError(t, err)
	require.Equal(t, 0, res.Diagnostics.Len(), "fixture should parse clean: %v", res.Diagnostics.Entries)

	var buf bytes.Buffer
	require.NoError(t, report.WriteCSV(&buf, res.Records))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "sample_budget", buf.Bytes())
}
