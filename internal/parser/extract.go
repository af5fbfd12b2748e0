package parser

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mkealoha/budgetparse/internal/budget"
)

// AmountField is one extracted amount column: a non-negative amount in
// whole dollars plus the fund-type letter that trailed it. Fund
// defaults to budget.FundUnspecified when no letter was present.
type AmountField struct {
	Amount decimal.Decimal
	Fund   budget.FundType
}

// maxAmountColumns is the number of fiscal-year columns in the format:
// the first column is FY-N, the second FY-(N+1).
const maxAmountColumns = 2

// ExtractAmounts pulls the amount columns out of an allocation or
// section line.
//
// Position rule (fixed, tested): amount tokens are whitespace-delimited
// fields of the form digits[,digits...] with an optional trailing
// uppercase letter. The RIGHTMOST one or two such tokens are the
// fiscal-year columns, read left to right in document order. Tokens
// further left (none exist in well-formed input) are ignored rather
// than guessed at.
//
// Returns ErrNoAmountFound when the line has no amount token at all.
func ExtractAmounts(line string) ([]AmountField, error) {
	var amounts []AmountField
	for _, f := range strings.Fields(line) {
		m := amountTokenRe.FindStringSubmatch(f)
		if m == nil {
			continue
		}
		af, err := amountField(m[1], m[2])
		if err != nil {
			continue
		}
		amounts = append(amounts, af)
	}
	if len(amounts) == 0 {
		return nil, ErrNoAmountFound
	}
	// Rightmost rule: keep only the trailing fiscal-year columns.
	if len(amounts) > maxAmountColumns {
		amounts = amounts[len(amounts)-maxAmountColumns:]
	}
	return amounts, nil
}

// ParseAmount parses a standalone amount string such as "2,701,795A",
// "$147,045,865A", or "500,000". Veto CSV amounts use the same
// number+letter rule as allocation columns.
func ParseAmount(s string) (AmountField, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if s == "" {
		return AmountField{}, ErrNoAmountFound
	}
	m := amountTokenRe.FindStringSubmatch(s)
	if m == nil {
		return AmountField{}, fmt.Errorf("malformed amount %q: %w", s, ErrNoAmountFound)
	}
	return amountField(m[1], m[2])
}

// amountField builds an AmountField from the matched digit run and
// optional fund letter.
func amountField(digits, fund string) (AmountField, error) {
	amount, err := decimal.NewFromString(strings.ReplaceAll(digits, ",", ""))
	if err != nil {
		return AmountField{}, fmt.Errorf("parse amount %q: %w", digits, err)
	}
	f := budget.FundUnspecified
	if fund != "" {
		f = budget.FundTypeFromString(fund)
	}
	return AmountField{Amount: amount, Fund: f}, nil
}
