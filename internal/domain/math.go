package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// StoragePrecision is the number of decimal places persisted for every metric.
const StoragePrecision = 2

// SafeParse parses a string into a decimal, returning zero for invalid or empty input.
func SafeParse(value string) decimal.Decimal {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// SafeDiv divides a by b, returning zero when b is zero.
func SafeDiv(a, b decimal.Decimal) decimal.Decimal {
	if b.IsZero() {
		return decimal.Zero
	}
	return a.Div(b)
}

// Half returns (a + b) / 2.
func Half(a, b decimal.Decimal) decimal.Decimal {
	return a.Add(b).Div(decimal.NewFromInt(2))
}

// FormatAmount rounds to the given number of decimal places and strips trailing zeros.
func FormatAmount(d decimal.Decimal, places int32) string {
	s := d.Round(places).StringFixed(places)
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}
