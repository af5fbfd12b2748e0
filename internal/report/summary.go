package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mkealoha/budgetparse/internal/budget"
)

// Summary aggregates one allocation table and its diagnostics into the
// figures a reviewer checks after a run: section and fund totals plus
// counts of everything the pipeline flagged instead of fixing.
type Summary struct {
	// RunID identifies the processing run the summary describes; it
	// matches the run id persisted to the store when one is used.
	RunID string `json:"run_id,omitempty"`

	Records    int `json:"records"`
	Orphans    int `json:"orphans"`
	Duplicates int `json:"duplicates"`

	OperatingTotal decimal.Decimal `json:"operating_total"`
	CapitalTotal   decimal.Decimal `json:"capital_total"`
	GrandTotal     decimal.Decimal `json:"grand_total"`

	FundTotals       map[string]decimal.Decimal `json:"fund_totals"`
	DepartmentTotals map[string]decimal.Decimal `json:"department_totals"`

	SkippedLines         int `json:"skipped_lines"`
	MissingAmountLines   int `json:"missing_amount_lines"`
	UnmatchedVetoes      int `json:"unmatched_vetoes"`
	MalformedVetoAmounts int `json:"malformed_veto_amounts"`
}

// Summarize builds a Summary from the final allocation table and the
// diagnostics accumulated across parsing, veto loading and veto
// application.
func Summarize(records []budget.AllocationRecord, diags budget.Diagnostics) Summary {
	s := Summary{
		Records:          len(records),
		FundTotals:       make(map[string]decimal.Decimal),
		DepartmentTotals: make(map[string]decimal.Decimal),
	}
	for _, rec := range records {
		if rec.Orphan() {
			s.Orphans++
		}
		if rec.IsDuplicate {
			s.Duplicates++
		}
		switch rec.Section {
		case budget.SectionOperating:
			s.OperatingTotal = s.OperatingTotal.Add(rec.Amount)
		case budget.SectionCapital:
			s.CapitalTotal = s.CapitalTotal.Add(rec.Amount)
		}
		s.GrandTotal = s.GrandTotal.Add(rec.Amount)

		fund := string(rec.FundType)
		s.FundTotals[fund] = s.FundTotals[fund].Add(rec.Amount)
		if rec.DepartmentCode != "" {
			s.DepartmentTotals[rec.DepartmentCode] = s.DepartmentTotals[rec.DepartmentCode].Add(rec.Amount)
		}
	}

	s.SkippedLines = diags.Count(budget.DiagUnrecognizedLine)
	s.MissingAmountLines = diags.Count(budget.DiagNoAmountFound)
	s.UnmatchedVetoes = diags.Count(budget.DiagVetoKeyNotFound)
	s.MalformedVetoAmounts = diags.Count(budget.DiagMalformedVetoAmount)
	return s
}

// WriteText renders the summary for terminals, with thousands
// separators on dollar figures.
func (s Summary) WriteText(w io.Writer) error {
	p := message.NewPrinter(language.English)

	if s.RunID != "" {
		p.Fprintf(w, "Run:                  %s\n", s.RunID)
	}
	p.Fprintf(w, "Records:              %d\n", s.Records)
	p.Fprintf(w, "Operating total:      $%d\n", s.OperatingTotal.IntPart())
	p.Fprintf(w, "Capital total:        $%d\n", s.CapitalTotal.IntPart())
	p.Fprintf(w, "Grand total:          $%d\n", s.GrandTotal.IntPart())

	for _, fund := range sortedKeys(s.FundTotals) {
		name := budget.FundType(fund[0]).Name()
		p.Fprintf(w, "  %s (%s): $%d\n", name, fund, s.FundTotals[fund].IntPart())
	}

	if len(s.DepartmentTotals) > 0 {
		p.Fprintf(w, "Departments:\n")
		for _, dept := range sortedKeys(s.DepartmentTotals) {
			p.Fprintf(w, "  %s: $%d\n", dept, s.DepartmentTotals[dept].IntPart())
		}
	}

	p.Fprintf(w, "Orphaned allocations: %d\n", s.Orphans)
	p.Fprintf(w, "Duplicate veto rows:  %d\n", s.Duplicates)
	p.Fprintf(w, "Skipped lines:        %d\n", s.SkippedLines)
	p.Fprintf(w, "Lines missing amounts: %d\n", s.MissingAmountLines)
	if s.UnmatchedVetoes > 0 || s.MalformedVetoAmounts > 0 {
		p.Fprintf(w, "Unmatched vetoes:     %d\n", s.UnmatchedVetoes)
		p.Fprintf(w, "Malformed veto amounts: %d\n", s.MalformedVetoAmounts)
	}
	return nil
}

// WriteJSON renders the summary as indented JSON.
func (s Summary) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	return nil
}

func sortedKeys(m map[string]decimal.Decimal) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
