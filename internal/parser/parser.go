package parser

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/mkealoha/budgetparse/internal/budget"
)

// DefaultFirstFiscalYear is the fiscal year of the first amount column
// when the caller does not say otherwise.
const DefaultFirstFiscalYear = 2026

// defaultCategories maps the A-K department header letters to program
// category names.
var defaultCategories = map[string]string{
	"A": "Economic Development",
	"B": "Employment",
	"C": "Transportation",
	"D": "Environment",
	"E": "Health",
	"F": "Human Services",
	"G": "Formal Education",
	"H": "Culture and Recreation",
	"I": "Public Safety",
	"J": "Individual Rights",
	"K": "Government Operations",
}

// Options configures a parse pass.
type Options struct {
	// FirstFiscalYear is the year of the first amount column; the
	// second column is FirstFiscalYear+1. Defaults to
	// DefaultFirstFiscalYear.
	FirstFiscalYear int

	// Departments optionally overrides department display names by
	// department code (e.g. "AGR" -> "Department of Agriculture").
	Departments map[string]string

	// Categories optionally overrides the A-K category letter names.
	Categories map[string]string
}

// Result is the outcome of one parse pass.
type Result struct {
	Records     []budget.AllocationRecord
	Diagnostics budget.Diagnostics
	Lines       int
}

// Parser converts budget bill text into allocation records. A Parser
// is stateless between calls; all per-pass state lives in an explicit
// context value, so one Parser may serve concurrent documents.
type Parser struct {
	opts Options
}

// New creates a Parser, filling in option defaults.
func New(opts Options) *Parser {
	if opts.FirstFiscalYear == 0 {
		opts.FirstFiscalYear = DefaultFirstFiscalYear
	}
	return &Parser{opts: opts}
}

// parseContext carries the mutable "current department / program /
// section" state of one pass. It is created per call to Parse and
// never shared.
type parseContext struct {
	departmentLetter string
	departmentName   string
	departmentCode   string
	category         string

	programOpen   bool
	programNumber int
	programCode   string
	programName   string

	section budget.Section

	posPermanent float64
	posTemporary float64
}

// ParseFile parses the budget document at path.
func (p *Parser) ParseFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open budget document: %w", err)
	}
	defer f.Close()
	res, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return res, nil
}

// Parse consumes the document in a single forward pass and returns the
// emitted records plus accumulated diagnostics. Row-level problems are
// collected, never raised; only unreadable or empty input fails.
func (p *Parser) Parse(r io.Reader) (*Result, error) {
	ctx := &parseContext{section: budget.SectionUnspecified}
	res := &Result{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		res.Lines++
		p.processLine(ctx, res, res.Lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read budget text: %w", err)
	}
	if res.Lines == 0 {
		return nil, ErrEmptyInput
	}

	slog.Info("parse complete",
		"lines", res.Lines,
		"records", len(res.Records),
		"diagnostics", res.Diagnostics.Len(),
	)
	return res, nil
}

// processLine advances the state machine by one line. It always
// consumes the line; forward progress is unconditional.
func (p *Parser) processLine(ctx *parseContext, res *Result, n int, raw string) {
	line := strings.TrimSpace(raw)

	switch Classify(line) {
	case LineDepartment:
		p.openDepartment(ctx, line)

	case LineProgram:
		p.openProgram(ctx, line)

	case LinePositions:
		p.accumulatePositions(ctx, res, n, line)

	case LineSection:
		p.enterSection(ctx, res, n, line)

	case LineAllocation:
		amounts, err := ExtractAmounts(line)
		if err != nil {
			res.Diagnostics.Add(budget.DiagNoAmountFound, n, "allocation line without numeric token: %s", truncate(line))
			return
		}
		p.emit(ctx, res, n, amounts)

	default: // LineNoise
		if line == "" {
			return
		}
		if ctx.section != budget.SectionUnspecified && hasLeadingDeptToken(line) {
			// Looks like an appropriation row but carries nothing
			// parsable as an amount.
			res.Diagnostics.Add(budget.DiagNoAmountFound, n, "no amount found: %s", truncate(line))
			return
		}
		res.Diagnostics.Add(budget.DiagUnrecognizedLine, n, "skipped: %s", truncate(line))
	}
}

// openDepartment starts a new department context. Any open program is
// flushed and the section resets until the next marker.
func (p *Parser) openDepartment(ctx *parseContext, line string) {
	m := departmentRe.FindStringSubmatch(line)
	if m == nil {
		return
	}
	ctx.closeProgram()
	ctx.departmentLetter = m[1]
	ctx.departmentName = strings.TrimSpace(m[2])
	// Headers may carry the code in parentheses; otherwise it is known
	// once the first program header arrives.
	ctx.departmentCode = m[3]
	ctx.category = p.categoryName(m[1])
	ctx.section = budget.SectionUnspecified

	slog.Debug("department header", "letter", ctx.departmentLetter, "name", ctx.departmentName)
}

// openProgram starts a new program under the current department,
// flushing the previous program's pending position counts.
func (p *Parser) openProgram(ctx *parseContext, line string) {
	m := programRe.FindStringSubmatch(line)
	if m == nil {
		return
	}
	ctx.closeProgram()
	ctx.programOpen = true
	ctx.programNumber, _ = strconv.Atoi(m[1])
	ctx.departmentCode = m[2]
	ctx.programCode = m[3]
	ctx.programName = strings.TrimSpace(m[4])

	slog.Debug("program opened",
		"number", ctx.programNumber,
		"program", ctx.departmentCode+ctx.programCode,
		"name", ctx.programName,
	)
}

// accumulatePositions adds position-ceiling counts to the open
// program. Counts attach at program level, not per allocation. A
// position line carries one column per fiscal year and both columns
// repeat the same ceiling ("5.00*          5.00*"), so only the first
// token per marker counts; summing the columns would double the
// ceiling.
func (p *Parser) accumulatePositions(ctx *parseContext, res *Result, n int, line string) {
	if !ctx.programOpen {
		res.Diagnostics.Add(budget.DiagUnrecognizedLine, n, "position counts outside any program: %s", truncate(line))
		return
	}
	seen := make(map[string]bool, 2)
	for _, f := range strings.Fields(line) {
		m := positionTokenRe.FindStringSubmatch(f)
		if m == nil || seen[m[2]] {
			continue
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
		if err != nil {
			continue
		}
		seen[m[2]] = true
		if m[2] == "*" {
			ctx.posPermanent += v
		} else {
			ctx.posTemporary += v
		}
	}
}

// enterSection switches the current section. Section lines may carry
// inline amount columns ("OPERATING  AGR  1,500,000A  1,500,000A");
// those emit records under the open program.
func (p *Parser) enterSection(ctx *parseContext, res *Result, n int, line string) {
	m := sectionRe.FindStringSubmatch(line)
	if m == nil {
		return
	}
	if strings.Contains(m[1], "CAPITAL") {
		ctx.section = budget.SectionCapital
	} else {
		ctx.section = budget.SectionOperating
	}

	rest := strings.TrimSpace(line[len(m[0]):])
	if rest == "" {
		return
	}
	amounts, err := ExtractAmounts(rest)
	if err != nil {
		return // a bare marker with trailing prose, not an error
	}
	p.emit(ctx, res, n, amounts)
}

// emit appends one record per amount column, stamping the current
// context. Column order fixes the fiscal year: first column FY-N,
// second FY-(N+1). Records with no open program context are still
// emitted, with empty context markers and an orphan diagnostic, so
// output totals can be reconciled against raw counts.
func (p *Parser) emit(ctx *parseContext, res *Result, n int, amounts []AmountField) {
	if !ctx.programOpen {
		res.Diagnostics.Add(budget.DiagOrphanAllocation, n, "allocation with no open department/program context")
	} else if ctx.section == budget.SectionUnspecified {
		res.Diagnostics.Add(budget.DiagOrphanAllocation, n, "allocation before any section marker in program %s", ctx.departmentCode+ctx.programCode)
	}

	for i, af := range amounts {
		rec := budget.AllocationRecord{
			Section:    ctx.section,
			FundType:   af.Fund,
			FiscalYear: p.opts.FirstFiscalYear + i,
			Amount:     af.Amount,
			SourceLine: n,
		}
		if ctx.programOpen {
			rec.DepartmentCode = ctx.departmentCode
			rec.DepartmentName = p.departmentName(ctx)
			rec.Category = ctx.category
			rec.ProgramNumber = ctx.programNumber
			rec.ProgramCode = ctx.programCode
			rec.ProgramName = ctx.programName
			rec.PositionsPermanent = ctx.posPermanent
			rec.PositionsTemporary = ctx.posTemporary
		}
		res.Records = append(res.Records, rec)
	}
}

// closeProgram flushes program-scoped state. Position counts belong to
// the program being closed and never leak into the next one.
func (c *parseContext) closeProgram() {
	c.programOpen = false
	c.programNumber = 0
	c.programCode = ""
	c.programName = ""
	c.posPermanent = 0
	c.posTemporary = 0
}

// departmentName resolves the display name, preferring the configured
// override for the department code.
func (p *Parser) departmentName(ctx *parseContext) string {
	if name, ok := p.opts.Departments[ctx.departmentCode]; ok {
		return name
	}
	return ctx.departmentName
}

// categoryName resolves a category letter, preferring configured
// overrides over the built-in map.
func (p *Parser) categoryName(letter string) string {
	if name, ok := p.opts.Categories[letter]; ok {
		return name
	}
	if name, ok := defaultCategories[letter]; ok {
		return name
	}
	return "Other"
}

// truncate keeps diagnostics readable for very long source lines.
func truncate(s string) string {
	const max = 80
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
