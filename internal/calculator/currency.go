package calculator

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/tripsplit/internal/models"
)

var one = decimal.NewFromInt(1)

// Normalize converts an expense amount into base-currency minor units.
//
// An expense in the base currency is returned unchanged and must not carry
// a rate other than 1. Any other currency is multiplied by its exchange
// rate and rounded half away from zero to the minor unit. A positive amount
// that converts to zero minor units is rejected.
func Normalize(expense models.Expense, baseCurrency string) (models.Money, error) {
	if SameCurrency(expense.Currency, baseCurrency) {
		if !expense.ExchangeRate.IsZero() && !expense.ExchangeRate.Equal(one) {
			return 0, fmt.Errorf("%w: expense %s is in base currency %s but has rate %s",
				ErrCurrencyMismatch, expense.ID, baseCurrency, expense.ExchangeRate)
		}
		return expense.Amount, nil
	}

	if !expense.ExchangeRate.IsPositive() {
		return 0, fmt.Errorf("%w: expense %s in %s has no usable rate to %s",
			ErrCurrencyMismatch, expense.ID, expense.Currency, baseCurrency)
	}

	converted := decimal.NewFromInt(int64(expense.Amount)).Mul(expense.ExchangeRate).Round(0)
	if expense.Amount > 0 && !converted.IsPositive() {
		return 0, fmt.Errorf("%w: expense %s of %s %s is worth less than half a minor unit of %s",
			ErrInvalidAmount, expense.ID, expense.Amount, expense.Currency, baseCurrency)
	}
	return models.Money(converted.IntPart()), nil
}

// SameCurrency compares ISO codes case-insensitively. An empty code stands
// for the base currency.
func SameCurrency(code, baseCurrency string) bool {
	return code == "" || strings.EqualFold(code, baseCurrency)
}
