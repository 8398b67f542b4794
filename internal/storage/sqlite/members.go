package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/tripsplit/internal/models"
)

// AddMember inserts a new member into an existing trip.
func (s *SQLiteStore) AddMember(ctx context.Context, member *models.Member) error {
	if _, err := s.GetTrip(ctx, member.TripID); err != nil {
		return err
	}

	if member.ID == "" {
		member.ID = uuid.New().String()
	}
	if member.CreatedAt == 0 {
		member.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO members (id, trip_id, name, email, weight, is_admin, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		member.ID, member.TripID, member.Name, member.Email,
		member.Weight, member.IsAdmin, member.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert member: %w", err)
	}

	return nil
}

// ListMembers returns every member of a trip ordered by ID.
func (s *SQLiteStore) ListMembers(ctx context.Context, tripID string) ([]models.Member, error) {
	return listMembers(ctx, s.db, tripID)
}

func listMembers(ctx context.Context, q queryer, tripID string) ([]models.Member, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, trip_id, name, email, weight, is_admin, created_at
		 FROM members WHERE trip_id = ? ORDER BY id`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.ID, &m.TripID, &m.Name, &m.Email, &m.Weight, &m.IsAdmin, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}

	return members, nil
}
