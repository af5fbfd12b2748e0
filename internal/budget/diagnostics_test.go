package budget

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiagnosticsAddAndCount(t *testing.T) {
	var d Diagnostics
	d.Add(DiagUnrecognizedLine, 3, "skipped: %s", "HEADER")
	d.Add(DiagUnrecognizedLine, 9, "skipped: %s", "FOOTER")
	d.Add(DiagOrphanAllocation, 12, "allocation with no open context")

	assert.Equal(t, 3, d.Len())
	assert.Equal(t, 2, d.Count(DiagUnrecognizedLine))
	assert.Equal(t, 1, d.Count(DiagOrphanAllocation))
	assert.Equal(t, 0, d.Count(DiagVetoKeyNotFound))
}

func TestDiagnosticsMerge(t *testing.T) {
	var a, b Diagnostics
	a.Add(DiagNoAmountFound, 1, "no amount")
	b.Add(DiagMalformedVetoAmount, 2, "bad amount")
	b.Add(DiagVetoKeyNotFound, 3, "no match")

	a.Merge(b)
	assert.Equal(t, 3, a.Len())
	assert.Equal(t, 1, a.Count(DiagMalformedVetoAmount))
}

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{Kind: DiagUnrecognizedLine, Line: 7, Message: "skipped: PAGE 2"}
	assert.Contains(t, d.String(), "line 7")
	assert.Contains(t, d.String(), "skipped: PAGE 2")
}
