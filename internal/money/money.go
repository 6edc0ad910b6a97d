// Package money provides fixed-point monetary arithmetic in integer paise.
// All tax and ledger math happens on these integer types; decimal strings
// appear only at formatting boundaries.
package money

import (
	"fmt"
	"math"
)

// Paise is a monetary amount in integer paise (1/100 rupee).
type Paise int64

// BasisPoints is a tax rate in integer basis points (1/100 percent),
// so 18% == 1800 bp. GST slabs down to 0.25% stay exact.
type BasisPoints int64

// FromRupees converts a decimal rupee amount to paise, rounding half-up
// away from zero. This is the only place float input enters monetary math.
func FromRupees(amount float64) Paise {
	if amount >= 0 {
		return Paise(math.Floor(amount*100 + 0.5))
	}
	return Paise(math.Ceil(amount*100 - 0.5))
}

// Rupees returns the amount as a float for interop with display layers.
// Never feed the result back into monetary computation.
func (p Paise) Rupees() float64 {
	return float64(p) / 100
}

// String formats the amount as a plain decimal, e.g. "1234.56" or "-0.01".
func (p Paise) String() string {
	v := int64(p)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// RateFromPercent converts a percentage (e.g. 18.0 or 0.25) to basis
// points, rounding half-up.
func RateFromPercent(pct float64) BasisPoints {
	if pct >= 0 {
		return BasisPoints(math.Floor(pct*100 + 0.5))
	}
	return BasisPoints(math.Ceil(pct*100 - 0.5))
}

// Percent returns the rate as a percentage value.
func (r BasisPoints) Percent() float64 {
	return float64(r) / 100
}

// ApplyRate computes amount × rate with half-up rounding to the nearest
// paisa. rate is in basis points, so the divisor is 10000.
func ApplyRate(amount Paise, rate BasisPoints) Paise {
	product := int64(amount) * int64(rate)
	return Paise(divRoundHalfUp(product, 10000))
}

// divRoundHalfUp divides n by d (d > 0) rounding half away from zero.
func divRoundHalfUp(n, d int64) int64 {
	if n >= 0 {
		return (n + d/2) / d
	}
	return -((-n + d/2) / d)
}
