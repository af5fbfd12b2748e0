// Package veto loads line-item veto changes from CSV and merges them
// into parsed allocation tables.
//
// The applier is copy-on-write: it never mutates the records the
// parser emitted, and the post-veto table always has exactly as many
// rows as the pre-veto table. Vetoes change amounts in place; they
// never add or remove allocations. When more than one allocation
// matches a veto key, every match is updated and flagged as a
// duplicate - flagging and surfacing is the only policy, the applier
// never guesses which row is "correct".
package veto
