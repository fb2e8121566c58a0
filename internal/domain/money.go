package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount reads a stored or submitted amount. Anything that does not
// parse as a number is treated as zero.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "null") {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// NonNegative clamps a negative amount to zero.
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// MoneyScale is the number of decimal places the ledger tables keep.
const MoneyScale = 2

// MaxAmount is the first amount too large for a NUMERIC(14,2) column.
var MaxAmount = decimal.New(1, 12)

// ValidAmount reports whether d can be recorded as a sale total, debt or
// payment: positive, below MaxAmount and with no fraction of a cent.
func ValidAmount(d decimal.Decimal) bool {
	return d.IsPositive() && d.LessThan(MaxAmount) && d.Equal(d.Round(MoneyScale))
}
