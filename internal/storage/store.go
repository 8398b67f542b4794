// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/mmynk/tripsplit/internal/models"
)

// ErrNotFound is returned when a trip, member or expense does not exist.
var ErrNotFound = errors.New("not found")

// Snapshot is everything the settlement engine needs for one trip, read at
// a single point in time.
type Snapshot struct {
	Trip     models.Trip
	Members  []models.Member
	Expenses []models.Expense
	Payments []models.Payment
}

// ExpenseFilter narrows ListExpenses. Zero values match everything.
type ExpenseFilter struct {
	Category models.Category
	PayerID  string
	Shared   *bool
	From     time.Time
	To       time.Time
	Limit    int
	Offset   int
}

// Store defines the interface for trip storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateTrip persists a new trip. ID, InviteCode and CreatedAt are
	// populated by the store when empty.
	CreateTrip(ctx context.Context, trip *models.Trip) error

	// GetTrip retrieves a trip by its ID.
	GetTrip(ctx context.Context, tripID string) (*models.Trip, error)

	// GetTripByInviteCode retrieves the trip an invite code belongs to.
	GetTripByInviteCode(ctx context.Context, code string) (*models.Trip, error)

	// AddMember adds a traveler to an existing trip.
	AddMember(ctx context.Context, member *models.Member) error

	// ListMembers returns a trip's members ordered by ID.
	ListMembers(ctx context.Context, tripID string) ([]models.Member, error)

	// CreateExpense records an expense. The payer must be a trip member.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// ListExpenses returns a trip's expenses, newest first.
	ListExpenses(ctx context.Context, tripID string, filter ExpenseFilter) ([]models.Expense, error)

	// DeleteExpense removes an expense from a trip.
	DeleteExpense(ctx context.Context, tripID, expenseID string) error

	// CreatePayment records a transfer between two members.
	CreatePayment(ctx context.Context, payment *models.Payment) error

	// LoadTripSnapshot reads a trip with all its members, expenses and
	// payments inside one transaction, so concurrent writers never produce
	// a torn view.
	LoadTripSnapshot(ctx context.Context, tripID string) (*Snapshot, error)

	// Close releases any resources held by the store.
	Close() error
}
