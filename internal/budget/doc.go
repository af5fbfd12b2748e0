// Package budget defines the core data model shared by the parser, the
// veto pipeline, and the reporting layer: allocation records, fund
// types, budget sections, veto changes, and run diagnostics.
//
// Types in this package are plain values. An AllocationRecord is never
// mutated after the parser emits it; the veto applier works on copies
// so the pre-veto and post-veto tables can coexist in one run.
package budget
