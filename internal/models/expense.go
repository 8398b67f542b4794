package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Category tags an expense for reporting.
type Category string

const (
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryAccommodation Category = "accommodation"
	CategoryEntertainment Category = "entertainment"
	CategoryShopping      Category = "shopping"
	CategoryOther         Category = "other"
)

var knownCategories = map[Category]bool{
	CategoryFood:          true,
	CategoryTransport:     true,
	CategoryAccommodation: true,
	CategoryEntertainment: true,
	CategoryShopping:      true,
	CategoryOther:         true,
}

// ParseCategory maps free text to a known category; anything unknown is "other".
func ParseCategory(s string) Category {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if knownCategories[c] {
		return c
	}
	return CategoryOther
}

// Expense is a purchase paid by one member.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID     string
	TripID string

	// ActivityID optionally links the expense to an itinerary activity.
	ActivityID string

	// PayerID is the member who paid.
	PayerID string

	Description string

	// Amount is in minor units of Currency, not of the trip base currency.
	Amount Money

	// Currency is the ISO code the expense was paid in. Empty means the
	// trip base currency.
	Currency string

	// ExchangeRate converts one unit of Currency into the base currency.
	// Zero means absent.
	ExchangeRate decimal.Decimal

	Category Category

	// IsShared splits the expense across every member by weight. Personal
	// expenses only count toward the payer.
	IsShared bool

	Date      time.Time
	CreatedAt int64
}

// Payment is a transfer between two members that has already been made.
type Payment struct {
	ID     string
	TripID string

	// FromMemberID paid (debtor settling up).
	FromMemberID string

	// ToMemberID received (creditor being paid).
	ToMemberID string

	// Amount is in base-currency minor units.
	Amount Money

	Note      string
	Date      time.Time
	CreatedAt int64
}
