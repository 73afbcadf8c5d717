package util

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var centFactor = decimal.NewFromInt(100)

// ParseAmountCent converts a decimal money string ("850", "850.50",
// "-12.30") to cents. Anything finer than two decimal places is
// rejected rather than silently rounded.
func ParseAmountCent(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	cents := d.Mul(centFactor)
	if !cents.IsInteger() {
		return 0, fmt.Errorf("amount %q has more than two decimal places", s)
	}
	return cents.IntPart(), nil
}

// FormatCent renders cents as a plain two-decimal string.
func FormatCent(cent int64) string {
	return decimal.NewFromInt(cent).Div(centFactor).StringFixed(2)
}
