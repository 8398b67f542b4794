package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MinorUnitsPerMajor is the number of minor units in one major currency unit.
const MinorUnitsPerMajor = 100

// Money is an amount in minor currency units.
type Money int64

var minorExp = decimal.NewFromInt(MinorUnitsPerMajor)

// MoneyFromDecimal converts a major-unit decimal (e.g. 12.34) into Money.
// Fractions of a minor unit are rejected rather than rounded.
func MoneyFromDecimal(d decimal.Decimal) (Money, error) {
	scaled := d.Mul(minorExp)
	if !scaled.Equal(scaled.Truncate(0)) {
		return 0, fmt.Errorf("amount %s has more than 2 decimal places", d.String())
	}
	return Money(scaled.IntPart()), nil
}

// Decimal returns the amount in major units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

// Abs returns the absolute value.
func (m Money) Abs() Money {
	if m < 0 {
		return -m
	}
	return m
}

func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}
