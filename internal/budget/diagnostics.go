package budget

import "fmt"

// DiagKind classifies a non-fatal data quality problem found during a
// run. Row-level problems never abort a run; they accumulate here and
// are surfaced in the end-of-run summary so a human can audit data
// quality. Silent data loss is the one forbidden behavior.
type DiagKind string

const (
	// DiagUnrecognizedLine - the classifier could not place a line.
	DiagUnrecognizedLine DiagKind = "unrecognized_line"
	// DiagNoAmountFound - an allocation-shaped line had no numeric token.
	DiagNoAmountFound DiagKind = "no_amount_found"
	// DiagOrphanAllocation - an allocation appeared with no open
	// department/program context. The record is still emitted with
	// empty context markers so totals reconcile against raw counts.
	DiagOrphanAllocation DiagKind = "orphan_allocation"
	// DiagVetoKeyNotFound - a veto entry matched no parsed allocation.
	DiagVetoKeyNotFound DiagKind = "veto_key_not_found"
	// DiagMalformedVetoAmount - a veto amount string could not be
	// parsed; it is treated as blank (no-op).
	DiagMalformedVetoAmount DiagKind = "malformed_veto_amount"
)

// Diagnostic is a single non-fatal finding tied to a source line.
type Diagnostic struct {
	Kind    DiagKind `json:"kind"`
	Line    int      `json:"line,omitempty"`
	Message string   `json:"message"`
}

func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("%s (line %d): %s", d.Kind, d.Line, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Kind, d.Message)
}

// Diagnostics accumulates findings across a run. The zero value is
// ready to use.
type Diagnostics struct {
	Entries []Diagnostic `json:"entries"`
}

// Add records a finding.
func (d *Diagnostics) Add(kind DiagKind, line int, format string, args ...any) {
	d.Entries = append(d.Entries, Diagnostic{
		Kind:    kind,
		Line:    line,
		Message: fmt.Sprintf(format, args...),
	})
}

// Merge appends all entries from other.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Entries = append(d.Entries, other.Entries...)
}

// Count returns the number of findings of the given kind.
func (d *Diagnostics) Count(kind DiagKind) int {
	n := 0
	for _, e := range d.Entries {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Len returns the total number of findings.
func (d *Diagnostics) Len() int {
	return len(d.Entries)
}
