package veto

import (
	"log/slog"
	"sort"

	"github.com/mkealoha/budgetparse/internal/budget"
)

// Result holds the two output tables of a veto pass. Pre and Post have
// row-for-row correspondence: the record at index i describes the same
// allocation in both, so downstream diffing works by position.
type Result struct {
	Pre         []budget.AllocationRecord
	Post        []budget.AllocationRecord
	Diagnostics budget.Diagnostics

	// Applied counts post-veto records whose amount was replaced.
	Applied int
}

// Apply merges veto changes into parsed allocations.
//
// For each record, the (program id, fiscal year) key is looked up in
// the veto map. No match carries the record forward unchanged. A match
// replaces amount and fund type, preserving every other field. When a
// key matches more than one record, all of them are updated
// identically and flagged IsDuplicate.
//
// Veto keys that match nothing are reported as diagnostics - usually a
// data entry error upstream - but never block the run.
func Apply(allocations []budget.AllocationRecord, vetoes Map) Result {
	res := Result{
		Pre:  make([]budget.AllocationRecord, len(allocations)),
		Post: make([]budget.AllocationRecord, len(allocations)),
	}
	copy(res.Pre, allocations)
	copy(res.Post, allocations)

	// First pass: count matches per key so duplicates can be flagged
	// on every affected record, not just the second and later ones.
	matches := make(map[Key]int)
	for _, rec := range allocations {
		if rec.Orphan() {
			continue
		}
		k := Key{ProgramID: rec.ProgramID(), FiscalYear: rec.FiscalYear}
		if _, ok := vetoes[k]; ok {
			matches[k]++
		}
	}

	for i := range res.Post {
		rec := &res.Post[i]
		if rec.Orphan() {
			continue
		}
		k := Key{ProgramID: rec.ProgramID(), FiscalYear: rec.FiscalYear}
		change, ok := vetoes[k]
		if !ok {
			continue
		}
		rec.Amount = change.Amount
		rec.FundType = change.Fund
		if matches[k] > 1 {
			rec.IsDuplicate = true
		}
		res.Applied++
	}

	// Unmatched veto keys, in deterministic order.
	var unmatched []Key
	for k := range vetoes {
		if matches[k] == 0 {
			unmatched = append(unmatched, k)
		}
	}
	sort.Slice(unmatched, func(i, j int) bool {
		if unmatched[i].ProgramID != unmatched[j].ProgramID {
			return unmatched[i].ProgramID < unmatched[j].ProgramID
		}
		return unmatched[i].FiscalYear < unmatched[j].FiscalYear
	})
	for _, k := range unmatched {
		res.Diagnostics.Add(budget.DiagVetoKeyNotFound, vetoes[k].Row,
			"veto for %s FY%d matched no parsed allocation", k.ProgramID, k.FiscalYear)
	}

	slog.Info("veto application complete",
		"records", len(res.Post),
		"applied", res.Applied,
		"unmatched", len(unmatched),
	)
	return res
}
