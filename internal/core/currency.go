package core

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency is one of the four tags the tracker supports. The zero value
// means the record was never tagged.
type Currency string

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
	INR Currency = "INR"
)

var ErrUnknownCurrency = errors.New("unknown currency")

// currencyAliases maps the symbols and spellings seen in CSV files and
// form input onto the canonical tags.
var currencyAliases = map[string]Currency{
	"usd": USD, "$": USD, "dollar": USD, "us dollar": USD,
	"eur": EUR, "euro": EUR, "€": EUR,
	"gbp": GBP, "pound": GBP, "£": GBP,
	"inr": INR, "rupee": INR, "₹": INR, "rs": INR,
}

// ParseCurrency resolves a currency tag from a symbol or name. Empty input
// returns the zero Currency with no error; anything unrecognized fails.
func ParseCurrency(s string) (Currency, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	if c, ok := currencyAliases[strings.ToLower(s)]; ok {
		return c, nil
	}
	return "", ErrUnknownCurrency
}

// Symbol returns the display symbol for the tag, defaulting to "$".
func (c Currency) Symbol() string {
	switch c {
	case EUR:
		return "€"
	case GBP:
		return "£"
	case INR:
		return "₹"
	default:
		return "$"
	}
}

// RateTable maps currency tags to multipliers into the reporting currency.
type RateTable map[Currency]decimal.Decimal

// DefaultRates is the static table used when nothing is configured:
// everything converts into USD.
func DefaultRates() RateTable {
	return RateTable{
		USD: decimal.NewFromInt(1),
		EUR: decimal.RequireFromString("1.09"),
		GBP: decimal.RequireFromString("1.27"),
		INR: decimal.RequireFromString("0.012"),
	}
}
