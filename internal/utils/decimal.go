package utils

import (
	"math"

	"github.com/shopspring/decimal"
)

// DecimalSqrt returns the square root of d, computed through float64 and
// rounded to the ledger's 8 fractional digits. Non-positive inputs map to
// zero.
func DecimalSqrt(d decimal.Decimal) decimal.Decimal {
	if !d.IsPositive() {
		return decimal.Zero
	}
	f, _ := d.Float64()
	return decimal.NewFromFloat(math.Sqrt(f)).Round(8)
}
