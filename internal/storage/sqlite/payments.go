package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/tripsplit/internal/models"
)

// CreatePayment persists a recorded transfer between two trip members.
func (s *SQLiteStore) CreatePayment(ctx context.Context, payment *models.Payment) error {
	for _, id := range []string{payment.FromMemberID, payment.ToMemberID} {
		if err := s.requireMember(ctx, payment.TripID, id); err != nil {
			return err
		}
	}

	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if payment.CreatedAt == 0 {
		payment.CreatedAt = time.Now().Unix()
	}
	if payment.Date.IsZero() {
		payment.Date = time.Unix(payment.CreatedAt, 0).UTC()
	}

	var note any
	if payment.Note != "" {
		note = payment.Note
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO payments (id, trip_id, from_member_id, to_member_id, amount, note, date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		payment.ID, payment.TripID, payment.FromMemberID, payment.ToMemberID,
		payment.Amount, note, payment.Date.Unix(), payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}

	return nil
}

func listPayments(ctx context.Context, q queryer, tripID string) ([]models.Payment, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, trip_id, from_member_id, to_member_id, amount, note, date, created_at
		 FROM payments WHERE trip_id = ? ORDER BY created_at, id`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var (
			p    models.Payment
			note sql.NullString
			date int64
		)
		if err := rows.Scan(&p.ID, &p.TripID, &p.FromMemberID, &p.ToMemberID,
			&p.Amount, &note, &date, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		if note.Valid {
			p.Note = note.String
		}
		p.Date = time.Unix(date, 0).UTC()
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}

	return payments, nil
}
