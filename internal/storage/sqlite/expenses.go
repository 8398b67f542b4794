package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
)

// CreateExpense persists a new expense. The payer must belong to the trip.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if err := s.requireMember(ctx, expense.TripID, expense.PayerID); err != nil {
		return err
	}

	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}
	if expense.Category == "" {
		expense.Category = models.CategoryOther
	}
	expense.Currency = strings.ToUpper(expense.Currency)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO expenses (id, trip_id, activity_id, payer_id, description, amount, currency,
		  exchange_rate, category, is_shared, date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.TripID, expense.ActivityID, expense.PayerID, expense.Description,
		expense.Amount, expense.Currency, expense.ExchangeRate, string(expense.Category),
		expense.IsShared, expense.Date.Unix(), expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	return nil
}

// ListExpenses returns a trip's expenses matching the filter, newest first.
func (s *SQLiteStore) ListExpenses(ctx context.Context, tripID string, filter storage.ExpenseFilter) ([]models.Expense, error) {
	return listExpenses(ctx, s.db, tripID, filter)
}

func listExpenses(ctx context.Context, q queryer, tripID string, filter storage.ExpenseFilter) ([]models.Expense, error) {
	query := `SELECT id, trip_id, activity_id, payer_id, description, amount, currency,
	                 exchange_rate, category, is_shared, date, created_at
	          FROM expenses WHERE trip_id = ?`
	args := []any{tripID}

	if filter.Category != "" {
		query += " AND category = ?"
		args = append(args, string(filter.Category))
	}
	if filter.PayerID != "" {
		query += " AND payer_id = ?"
		args = append(args, filter.PayerID)
	}
	if filter.Shared != nil {
		query += " AND is_shared = ?"
		args = append(args, *filter.Shared)
	}
	if !filter.From.IsZero() {
		query += " AND date >= ?"
		args = append(args, filter.From.Unix())
	}
	if !filter.To.IsZero() {
		query += " AND date <= ?"
		args = append(args, filter.To.Unix())
	}
	query += " ORDER BY date DESC, id"
	if filter.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var (
			e        models.Expense
			category string
			date     int64
		)
		if err := rows.Scan(&e.ID, &e.TripID, &e.ActivityID, &e.PayerID, &e.Description,
			&e.Amount, &e.Currency, &e.ExchangeRate, &category, &e.IsShared, &date, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		e.Category = models.Category(category)
		e.Date = time.Unix(date, 0).UTC()
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	return expenses, nil
}

// DeleteExpense removes an expense by ID.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, tripID, expenseID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ? AND trip_id = ?", expenseID, tripID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	return nil
}

// requireMember checks that memberID belongs to tripID.
func (s *SQLiteStore) requireMember(ctx context.Context, tripID, memberID string) error {
	var exists int
	err := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM members WHERE id = ? AND trip_id = ?", memberID, tripID,
	).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("member %s in trip %s: %w", memberID, tripID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check member existence: %w", err)
	}
	return nil
}
