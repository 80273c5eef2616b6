package internal

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"
)

type Decimal struct {
	value apd.Decimal
}

func NewDecimal(s string) (Decimal, error) {
	var d apd.Decimal
	_, _, err := d.SetString(s)
	if err != nil {
		return Decimal{}, fmt.Errorf("invalid decimal: %w", err)
	}
	return Decimal{value: d}, nil
}

func NewDecimalFromInt64(i int64) Decimal {
	var d apd.Decimal
	d.SetInt64(i)
	return Decimal{value: d}
}

func (d Decimal) String() string {
	return d.value.String()
}

func (d Decimal) IsZero() bool {
	return d.value.IsZero()
}

func (d Decimal) IsNegative() bool {
	return d.value.Negative && !d.value.IsZero()
}

func (d Decimal) Cmp(other Decimal) int {
	return d.value.Cmp(&other.value)
}

// Add returns the sum of d and other.
func (d Decimal) Add(other Decimal) Decimal {
	var result apd.Decimal
	ctx := apd.BaseContext.WithPrecision(34)
	ctx.Add(&result, &d.value, &other.value)
	return Decimal{value: result}
}

// Mul returns the product of d and other.
func (d Decimal) Mul(other Decimal) Decimal {
	var result apd.Decimal
	ctx := apd.BaseContext.WithPrecision(34)
	ctx.Mul(&result, &d.value, &other.value)
	return Decimal{value: result}
}

// Div returns the quotient of d divided by other. The quotient is
// normalized toward the ideal exponent (dividend scale minus divisor scale),
// so exact divisions carry no trailing zeros: "36.50"/2 is "18.25", not
// "18.25000...". Inexact quotients keep the full 34-digit precision.
func (d Decimal) Div(other Decimal) Decimal {
	var result apd.Decimal
	ctx := apd.BaseContext.WithPrecision(34)
	ctx.Quo(&result, &d.value, &other.value)

	ideal := d.value.Exponent - other.value.Exponent
	result.Reduce(&result)
	if result.Exponent > ideal {
		// Reduced form has no trailing zeros, so quantizing down to the
		// ideal exponent only pads and never rounds.
		ctx.Quantize(&result, &result, ideal)
	}
	return Decimal{value: result}
}

// DivInt returns d divided by an integer count. Used for per-customer and
// per-cluster averages.
func (d Decimal) DivInt(n int) Decimal {
	return d.Div(NewDecimalFromInt64(int64(n)))
}

// Float64 returns the nearest float64 to d. Clustering geometry runs on
// floats; decimals carry exact money up to that boundary.
func (d Decimal) Float64() float64 {
	f, err := d.value.Float64()
	if err != nil {
		return 0
	}
	return f
}
