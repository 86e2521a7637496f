package domain

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// All monetary values are carried as int64 cents. Conversions in and out of
// cents quantize to two decimals rounding half up (half away from zero, which
// is the same thing for the non-negative amounts the ledger accepts).

// Limits on a single offer. Every listing and edit path enforces them, so
// per-product and per-period quantity sums stay far from int64 overflow.
const (
	MaxPrice    int64 = 1_000_000_000_000 // cents
	MaxQuantity int64 = 1_000_000_000
)

// ErrAmountOutOfRange is returned when a value cannot be carried as int64.
var ErrAmountOutOfRange = errors.New("amount_out_of_range")

// maxExponent bounds the decimal exponent accepted from input. Anything
// beyond it is outside int64 or finer than any cent, and expanding it would
// materialize a huge power of ten.
const maxExponent = 24

var (
	minInt64 = decimal.NewFromInt(math.MinInt64)
	maxInt64 = decimal.NewFromInt(math.MaxInt64)
)

// FitsInt64 reports whether d lies within the int64 range.
func FitsInt64(d decimal.Decimal) bool {
	if e := d.Exponent(); e > maxExponent || e < -maxExponent {
		return false
	}
	return d.GreaterThanOrEqual(minInt64) && d.LessThanOrEqual(maxInt64)
}

// ValidPrice reports whether c is an acceptable offer price.
func ValidPrice(c int64) bool {
	return c >= 0 && c <= MaxPrice
}

// ValidQuantity reports whether q is an acceptable offer quantity.
func ValidQuantity(q int64) bool {
	return q >= 0 && q <= MaxQuantity
}

// DecimalToCents quantizes a currency amount to whole cents. It returns
// ErrAmountOutOfRange when the result does not fit in int64.
func DecimalToCents(d decimal.Decimal) (int64, error) {
	if !FitsInt64(d) {
		return 0, ErrAmountOutOfRange
	}
	c := d.Round(2).Shift(2)
	if !FitsInt64(c) {
		return 0, ErrAmountOutOfRange
	}
	return c.IntPart(), nil
}

// DollarsToCents quantizes a currency amount to whole cents.
func DollarsToCents(f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrAmountOutOfRange
	}
	return DecimalToCents(decimal.NewFromFloat(f))
}

// CentsToDollars converts an int64 cents value to a float64 currency amount.
func CentsToDollars(c int64) float64 {
	return decimal.New(c, -2).InexactFloat64()
}

// DecimalCentsToDollars converts a cents total that may exceed int64 to a
// float64 currency amount.
func DecimalCentsToDollars(c decimal.Decimal) float64 {
	return c.Shift(-2).InexactFloat64()
}

// ParseCents parses a decimal string such as "1500.5" into cents.
func ParseCents(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}
	c, err := DecimalToCents(d)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return c, nil
}

// DivRound returns num/den rounded half up to a whole number. A zero
// denominator yields 0. The quotient of a weighted sum by its total
// quantity is a price, so it fits in int64.
func DivRound(num decimal.Decimal, den int64) int64 {
	if den == 0 {
		return 0
	}
	return num.DivRound(decimal.NewFromInt(den), 0).IntPart()
}

// ScaleCents multiplies a cents amount by factor and re-quantizes to cents.
func ScaleCents(c int64, factor decimal.Decimal) int64 {
	return decimal.NewFromInt(c).Mul(factor).Round(0).IntPart()
}

// Weighted returns unitPrice*quantity without overflow, for accumulating
// quantity-weighted sums.
func Weighted(unitPrice, quantity int64) decimal.Decimal {
	return decimal.NewFromInt(unitPrice).Mul(decimal.NewFromInt(quantity))
}

// TradeAmount is the settlement amount for quantity units at unitPrice
// cents. It returns ErrAmountOutOfRange when the amount does not fit in
// int64.
func TradeAmount(unitPrice, quantity int64) (int64, error) {
	amount := Weighted(unitPrice, quantity)
	if !FitsInt64(amount) {
		return 0, ErrAmountOutOfRange
	}
	return amount.IntPart(), nil
}
