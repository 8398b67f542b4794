package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trip is a journey whose members share expenses.
type Trip struct {
	// ID is the unique identifier for the trip (UUID format).
	ID string

	// Name is the display name (e.g., "Da Lat 2024").
	Name string

	Description string
	Destination string

	// StartDate and EndDate bound the dates expenses may carry.
	StartDate time.Time
	EndDate   time.Time

	// BaseCurrency is the ISO code every balance and settlement is expressed in.
	BaseCurrency string

	// RoundingGranularity is the step, in minor units, that settlement
	// amounts and totals are snapped to. 1 means no rounding beyond the
	// minor unit.
	RoundingGranularity int64

	// DefaultWeight applies to members that carry no explicit weight.
	DefaultWeight decimal.Decimal

	// InviteCode lets other travelers look the trip up and join it.
	InviteCode string

	// CreatedAt is the Unix timestamp when the trip was created.
	CreatedAt int64
}

// Member is a traveler on a trip.
type Member struct {
	ID     string
	TripID string
	Name   string
	Email  string

	// Weight is the member's share multiplier. An invalid (unset) weight
	// means the trip's DefaultWeight applies.
	Weight decimal.NullDecimal

	IsAdmin   bool
	CreatedAt int64
}
