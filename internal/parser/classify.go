package parser

import (
	"regexp"
	"strings"
)

// LineKind tags a single line of extracted budget text.
type LineKind int

const (
	// LineNoise is anything the classifier cannot place. Noise is
	// skipped by the parser; it never aborts a run.
	LineNoise LineKind = iota
	// LineDepartment is a department header ("A. AGRICULTURE").
	LineDepartment
	// LineProgram is a program header ("1.  AGR101 - PROGRAM NAME").
	LineProgram
	// LinePositions is a position-ceiling line ("5.00*" / "2.00#").
	LinePositions
	// LineSection is a section marker (OPERATING, INVESTMENT CAPITAL,
	// CAPITAL IMPROVEMENT), possibly with inline amounts.
	LineSection
	// LineAllocation is an appropriation line: an optional department
	// code token followed by one or two amount+fund-type columns.
	LineAllocation
)

func (k LineKind) String() string {
	switch k {
	case LineDepartment:
		return "department"
	case LineProgram:
		return "program"
	case LinePositions:
		return "positions"
	case LineSection:
		return "section"
	case LineAllocation:
		return "allocation"
	default:
		return "noise"
	}
}

var (
	// departmentRe matches headers like "B. BUSINESS AND ECONOMIC
	// DEVELOPMENT", with or without a trailing department code in
	// parentheses ("A. AGRICULTURE (AGR)"). The letter is the program
	// category (A-K).
	departmentRe = regexp.MustCompile(`^([A-K])\.\s+([A-Z][A-Z &,'.\-]+?)(?:\s*\(([A-Z]{2,4})\))?$`)

	// programRe matches headers like "1.  AGR101 - AGRICULTURAL LOAN
	// DIVISION". Group 2+3 form the composite program id (AGR101).
	programRe = regexp.MustCompile(`^(\d+)\.\s+([A-Z]{2,4})(\d+)\s*[-\x{2013}\x{2014}]\s*(\S.*)$`)

	// sectionRe matches section markers. Markers are uppercase in the
	// source format; matching is deliberately case-sensitive so prose
	// like "Operating Budget Total" stays noise.
	sectionRe = regexp.MustCompile(`^(OPERATING|INVESTMENT\s+CAPITAL|CAPITAL\s+IMPROVEMENT)\b`)

	// positionTokenRe matches one position-ceiling token. '*' marks
	// permanent positions, '#' temporary ones.
	positionTokenRe = regexp.MustCompile(`^(\d[\d,]*(?:\.\d+)?)([*#])$`)

	// amountTokenRe matches one amount column: digits with optional
	// thousands separators and an optional trailing fund-type letter.
	amountTokenRe = regexp.MustCompile(`^(\d[\d,]*)([A-Z])?$`)

	// deptTokenRe matches a department code token (e.g. "AGR", "HTH").
	deptTokenRe = regexp.MustCompile(`^[A-Z]{2,4}$`)
)

// Classify tags a single line of budget text. It is deterministic,
// stateless, and never fails: anything unrecognized is LineNoise.
func Classify(line string) LineKind {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return LineNoise
	}

	fields := strings.Fields(trimmed)
	if isPositionLine(fields) {
		return LinePositions
	}
	if sectionRe.MatchString(trimmed) {
		return LineSection
	}
	if programRe.MatchString(trimmed) {
		return LineProgram
	}
	if departmentRe.MatchString(trimmed) {
		return LineDepartment
	}
	if isAllocationLine(fields) {
		return LineAllocation
	}
	return LineNoise
}

// isPositionLine reports whether every field is a position token.
func isPositionLine(fields []string) bool {
	if len(fields) == 0 {
		return false
	}
	for _, f := range fields {
		if !positionTokenRe.MatchString(f) {
			return false
		}
	}
	return true
}

// isAllocationLine reports whether the fields form an appropriation
// row: either bare amount columns ("1,000,000A"), or a department code
// token followed exclusively by amount columns. At least one column
// must carry a fund letter or thousands separator, otherwise footers
// like "PAGE 14" would pass. Anything looser is left to the parser's
// no-amount diagnostics.
func isAllocationLine(fields []string) bool {
	if len(fields) == 0 {
		return false
	}
	start := 0
	if deptTokenRe.MatchString(fields[0]) {
		if len(fields) == 1 {
			return false
		}
		start = 1
	}
	strong := false
	for _, f := range fields[start:] {
		m := amountTokenRe.FindStringSubmatch(f)
		if m == nil {
			return false
		}
		if m[2] != "" || strings.Contains(m[1], ",") {
			strong = true
		}
	}
	return strong
}

// hasLeadingDeptToken reports whether the line opens with a department
// code token. The parser uses this to spot lines that claim to be
// allocations but carry no parsable amount.
func hasLeadingDeptToken(line string) bool {
	fields := strings.Fields(line)
	return len(fields) > 1 && deptTokenRe.MatchString(fields[0])
}
