package calculator

import (
	"errors"
	"fmt"
)

// ErrValidation is the parent of every input problem a caller can correct.
// Validation runs before any computation, so nothing is partially computed.
var ErrValidation = errors.New("invalid input")

var (
	ErrInvalidWeight      = fmt.Errorf("%w: weight factor must be positive", ErrValidation)
	ErrUnknownMember      = fmt.Errorf("%w: unknown member", ErrValidation)
	ErrDuplicateMember    = fmt.Errorf("%w: duplicate member", ErrValidation)
	ErrNoMembers          = fmt.Errorf("%w: trip has no members", ErrValidation)
	ErrInvalidAmount      = fmt.Errorf("%w: amount must be positive", ErrValidation)
	ErrInvalidGranularity = fmt.Errorf("%w: rounding granularity must be at least 1", ErrValidation)
	ErrMissingCurrency    = fmt.Errorf("%w: base currency required", ErrValidation)
)

// ErrCurrencyMismatch means an expense is not in the base currency and has
// no usable exchange rate.
var ErrCurrencyMismatch = errors.New("currency mismatch")

// ErrImbalancedInput means net balances do not sum to zero. It signals a
// defect upstream of settlement, never a user mistake.
var ErrImbalancedInput = errors.New("imbalanced input")

// IsValidation reports whether err is a user-correctable input problem.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrCurrencyMismatch)
}
