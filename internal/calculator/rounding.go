package calculator

import "github.com/mmynk/tripsplit/internal/models"

// Round snaps amount to the nearest multiple of granularity, half away
// from zero. A granularity of 1 or less leaves the amount at the minor unit.
//
//	Round(12500, 1000) == 13000
//	Round(12499, 1000) == 12000
//	Round(-12500, 1000) == -13000
func Round(amount models.Money, granularity int64) models.Money {
	if granularity <= 1 {
		return amount
	}
	g := models.Money(granularity)
	q, r := amount/g, amount%g
	if 2*r.Abs() >= g {
		if amount < 0 {
			q--
		} else {
			q++
		}
	}
	return q * g
}

// nearZero reports whether x rounds to zero, i.e. lies within half a
// rounding unit.
func nearZero(x models.Money, granularity int64) bool {
	return 2*x.Abs() < models.Money(max(granularity, 1))
}
