// Package parser turns the line-oriented text of an appropriations
// bill into typed allocation records.
//
// The package has three layers, leaves first:
//
//   - Classify tags a single line (department header, program header,
//     position line, section marker, allocation, noise). Pure function.
//   - ExtractAmounts / ParseAmount pull amount+fund-type pairs out of
//     a line using one fixed, documented position rule.
//   - Parser walks the classified line stream in a single forward
//     pass, carrying the current department/program/section context in
//     an explicit context value, and emits AllocationRecords.
//
// Malformed lines never abort a parse. The parser collects a
// diagnostic and moves on; one bad region of a multi-thousand-line
// document must not blank the whole run. Only structural failures
// (unreadable or empty input) return an error.
package parser
