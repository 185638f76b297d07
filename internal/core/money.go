// Package core holds the expense domain: records, money, currencies and
// the budget rules. Amounts are kept as integer cents; floating point only
// appears at the reporting boundary.
package core

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ParseAmountToCents converts a decimal string ("12.34" or "12,34") to
// cents with half-up rounding on the third decimal place. Negative and
// non-numeric input is rejected; zero is allowed so tax amounts can reuse
// this parser (callers enforce the positive-amount invariant themselves).
func ParseAmountToCents(s string) (int64, error) {
	d, err := decimal.NewFromString(normalizeDecimal(s))
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, ErrInvalidAmount)
	}
	if d.IsNegative() {
		return 0, ErrInvalidAmount
	}
	return d.Mul(hundred).Round(0).IntPart(), nil
}

func normalizeDecimal(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch r {
		case ',':
			out = append(out, '.')
		case ' ', '\t':
			// tolerate padding inside form input
		default:
			out = append(out, r)
		}
	}
	return string(out)
}

// Decimal returns the amount as a decimal value in whole currency units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.NewFromInt(m.Cents).Div(hundred)
}

// Float returns the amount in whole currency units for chart payloads.
// Calculations stay in cents; this is display only.
func (m Money) Float() float64 {
	return float64(m.Cents) / 100.0
}

// String renders the amount with two decimal places, e.g. "12.30".
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// MulRate scales the amount by a currency rate, rounding half-up to the
// nearest cent.
func (m Money) MulRate(rate decimal.Decimal) Money {
	cents := decimal.NewFromInt(m.Cents).Mul(rate).Round(0).IntPart()
	return Money{Cents: cents}
}
