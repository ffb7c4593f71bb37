// Package money holds the fixed-point helpers used for amounts stored as
// integer minor units (cents).
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ToDecimal converts cents to a currency-unit decimal (1234 -> 12.34).
func ToDecimal(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// Format renders cents with exactly two fractional digits.
func Format(cents int64) string {
	return ToDecimal(cents).StringFixed(2)
}

// Parse reads a currency-unit amount such as "21.40" into cents. Amounts with
// more than two fractional digits are rejected rather than rounded.
func Parse(raw string) (int64, error) {
	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", raw, err)
	}
	cents := value.Mul(hundred)
	if !cents.Equal(cents.Truncate(0)) {
		return 0, fmt.Errorf("parse amount %q: more than two decimal places", raw)
	}
	return cents.IntPart(), nil
}

// Average divides a cent total by n and returns currency units rounded to
// four places. It is zero when n is zero.
func Average(totalCents int64, n int) decimal.Decimal {
	if n <= 0 {
		return decimal.Zero
	}
	return ToDecimal(totalCents).DivRound(decimal.NewFromInt(int64(n)), 4)
}

// Share returns part/total as a percentage rounded to one decimal place,
// or zero when total is not positive.
func Share(partCents int64, totalCents int64) decimal.Decimal {
	if totalCents <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(partCents).Mul(hundred).DivRound(decimal.NewFromInt(totalCents), 1)
}

// ApplyRate returns round_half_up(cents × ratePercent / 100).
func ApplyRate(cents int64, ratePercent decimal.Decimal) int64 {
	return decimal.NewFromInt(cents).Mul(ratePercent).Div(hundred).Round(0).IntPart()
}
