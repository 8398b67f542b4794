package sqlite

import (
	"context"
	"fmt"

	"github.com/mmynk/tripsplit/internal/storage"
)

// LoadTripSnapshot reads a trip and everything attached to it inside one
// transaction, so a concurrent AddExpense is either fully visible or not
// visible at all.
func (s *SQLiteStore) LoadTripSnapshot(ctx context.Context, tripID string) (*storage.Snapshot, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	trip, err := getTrip(ctx, tx, "id", tripID)
	if err != nil {
		return nil, err
	}
	members, err := listMembers(ctx, tx, tripID)
	if err != nil {
		return nil, err
	}
	expenses, err := listExpenses(ctx, tx, tripID, storage.ExpenseFilter{})
	if err != nil {
		return nil, err
	}
	payments, err := listPayments(ctx, tx, tripID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &storage.Snapshot{
		Trip:     *trip,
		Members:  members,
		Expenses: expenses,
		Payments: payments,
	}, nil
}
