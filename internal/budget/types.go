package budget

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Section identifies the budget section an allocation belongs to.
type Section string

const (
	// SectionOperating covers recurring program appropriations.
	SectionOperating Section = "Operating"
	// SectionCapital covers capital improvement appropriations.
	SectionCapital Section = "Capital Improvement"
	// SectionUnspecified is used for orphan allocations that appear
	// before any section marker. Valid output rows never carry it
	// unless the source document itself was malformed.
	SectionUnspecified Section = "Unspecified"
)

// FundType is the single-letter funding source code (A-Z) embedded in
// allocation amounts. FundUnspecified ('U') is the fallback when no
// letter is recoverable from the source text.
type FundType byte

// FundUnspecified is the fallback fund type.
const FundUnspecified FundType = 'U'

// Valid reports whether f is one of the accepted symbols (A-Z).
func (f FundType) Valid() bool {
	return f >= 'A' && f <= 'Z'
}

func (f FundType) String() string {
	return string(rune(f))
}

// MarshalText implements encoding.TextMarshaler so fund types render
// as their letter in JSON, CSV, and XLSX output.
func (f FundType) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("invalid fund type %q", rune(f))
	}
	return []byte{byte(f)}, nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *FundType) UnmarshalText(text []byte) error {
	parsed := FundTypeFromString(string(text))
	if !parsed.Valid() {
		return fmt.Errorf("invalid fund type %q", string(text))
	}
	*f = parsed
	return nil
}

// FundTypeFromString converts a string to a FundType. A single letter
// maps directly; anything unrecognizable maps to FundUnspecified so
// callers never end up with an empty fund type.
func FundTypeFromString(s string) FundType {
	s = strings.TrimSpace(strings.ToUpper(s))
	if len(s) != 1 {
		return FundUnspecified
	}
	f := FundType(s[0])
	if !f.Valid() {
		return FundUnspecified
	}
	return f
}

// fundTypeNames maps fund letters to their budget classification names.
// Letters without an entry fall back to "Other Funds".
var fundTypeNames = map[FundType]string{
	'A': "General Funds",
	'B': "Special Funds",
	'C': "General Obligation Bond Fund",
	'D': "General Obligation Bond Fund (Special Fund Debt Service)",
	'E': "Revenue Bond Funds",
	'J': "Federal Aid Interstate Funds",
	'K': "Federal Aid Primary Funds",
	'L': "Federal Aid Secondary Funds",
	'M': "Federal Aid Urban Funds",
	'N': "Federal Funds",
	'P': "Other Federal Funds",
	'R': "Private Contributions",
	'S': "County Funds",
	'T': "Trust Funds",
	'U': "Unspecified Funds",
	'V': "American Rescue Plan Funds",
	'W': "Revolving Funds",
	'X': "Other Funds",
}

// Name returns the display name of the funding source category.
func (f FundType) Name() string {
	if name, ok := fundTypeNames[f]; ok {
		return name
	}
	return "Other Funds"
}

// AllocationRecord is one row of the output table: a single
// appropriation for one program, one fiscal year, one fund type.
//
// Records are value types and are treated as immutable once emitted by
// the parser. The veto applier produces tagged copies instead of
// mutating in place.
type AllocationRecord struct {
	DepartmentCode     string          `csv:"department_code" json:"department_code"`
	DepartmentName     string          `csv:"department_name" json:"department_name"`
	Category           string          `csv:"category" json:"category"`
	ProgramNumber      int             `csv:"program_number" json:"program_number"`
	ProgramCode        string          `csv:"program_code" json:"program_code"`
	ProgramName        string          `csv:"program_name" json:"program_name"`
	Section            Section         `csv:"section" json:"section"`
	FundType           FundType        `csv:"fund_type" json:"fund_type"`
	FiscalYear         int             `csv:"fiscal_year" json:"fiscal_year"`
	Amount             decimal.Decimal `csv:"amount" json:"amount"`
	PositionsPermanent float64         `csv:"positions_permanent" json:"positions_permanent"`
	PositionsTemporary float64         `csv:"positions_temporary" json:"positions_temporary"`
	IsDuplicate        bool            `csv:"is_duplicate" json:"is_duplicate"`
	SourceLine         int             `csv:"source_line" json:"source_line"`
}

// ProgramID is the composite join key used by veto matching:
// department code concatenated with the program code (e.g. "AGR101").
func (r AllocationRecord) ProgramID() string {
	return r.DepartmentCode + r.ProgramCode
}

// Orphan reports whether the record was emitted without an open
// department/program context.
func (r AllocationRecord) Orphan() bool {
	return r.DepartmentCode == "" || r.ProgramCode == ""
}

// VetoChange is one row of the veto CSV. Amount strings keep their raw
// form ("2,701,795A" or blank); the loader parses them with the same
// number+letter rule the allocation extractor uses. A blank amount
// means "no change for that year", never zero.
type VetoChange struct {
	Program string `csv:"Program"`
	Type    string `csv:"Type"`
	FY2026  string `csv:"FY 2026 Amount"`
	FY2027  string `csv:"FY 2027 Amount"`
}
