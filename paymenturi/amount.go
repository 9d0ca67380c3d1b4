package paymenturi

import (
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

// StellarPrecision is the number of fractional digits a Stellar amount carries.
const StellarPrecision = 7

// FloatAmount converts a binary float into an amount. NaN and infinities have
// no decimal form and are rejected.
func FloatAmount(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Decimal{}, ErrInvalidAmount
	}
	return decimal.NewFromFloat(f), nil
}

// canonicalAmount rounds to StellarPrecision digits. String() drops trailing
// zeros and the dangling point, so 4 encodes as "4" and 12.5 as "12.5".
func canonicalAmount(d decimal.Decimal) decimal.Decimal {
	return d.Round(StellarPrecision)
}

// Decimal exponents of the largest and smallest non-zero float64 magnitudes.
const (
	maxFiniteMagnitude = 308
	minFiniteMagnitude = -324
)

func parseAmount(text string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(text)
	if err != nil || !isFinite(d) {
		return decimal.Decimal{}, false
	}
	return d, true
}

// isFinite reports whether d survives conversion to a float64 without
// overflowing to infinity or underflowing to zero. The magnitude is bounded
// from the exponent before any arithmetic, so 1e50000000 is refused without
// expanding its digits.
func isFinite(d decimal.Decimal) bool {
	if d.Sign() == 0 {
		return true
	}
	digits := len(new(big.Int).Abs(d.Coefficient()).String())
	magnitude := int64(d.Exponent()) + int64(digits) - 1
	if magnitude > maxFiniteMagnitude || magnitude < minFiniteMagnitude {
		return false
	}
	f, _ := d.Float64()
	return !math.IsInf(f, 0) && f != 0
}
