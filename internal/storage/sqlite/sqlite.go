// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

const inviteCodeAttempts = 5

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Pragmas in the DSN apply to every pooled connection.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateTrip persists a new trip to the database.
func (s *SQLiteStore) CreateTrip(ctx context.Context, trip *models.Trip) error {
	if trip.ID == "" {
		trip.ID = uuid.New().String()
	}
	if trip.CreatedAt == 0 {
		trip.CreatedAt = time.Now().Unix()
	}
	if trip.RoundingGranularity == 0 {
		trip.RoundingGranularity = 1
	}
	if trip.DefaultWeight.IsZero() {
		trip.DefaultWeight = decimal.NewFromInt(1)
	}
	trip.BaseCurrency = strings.ToUpper(trip.BaseCurrency)

	if trip.InviteCode == "" {
		code, err := s.uniqueInviteCode(ctx)
		if err != nil {
			return err
		}
		trip.InviteCode = code
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO trips (id, name, description, destination, start_date, end_date,
		  base_currency, rounding_granularity, default_weight, invite_code, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		trip.ID, trip.Name, trip.Description, trip.Destination,
		trip.StartDate.Unix(), trip.EndDate.Unix(),
		trip.BaseCurrency, trip.RoundingGranularity, trip.DefaultWeight,
		trip.InviteCode, trip.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trip: %w", err)
	}

	return nil
}

// GetTrip retrieves a trip by ID.
func (s *SQLiteStore) GetTrip(ctx context.Context, tripID string) (*models.Trip, error) {
	return getTrip(ctx, s.db, "id", tripID)
}

// GetTripByInviteCode retrieves a trip by its invite code (case-insensitive).
func (s *SQLiteStore) GetTripByInviteCode(ctx context.Context, code string) (*models.Trip, error) {
	return getTrip(ctx, s.db, "invite_code", strings.ToUpper(strings.TrimSpace(code)))
}

func getTrip(ctx context.Context, q queryer, column, value string) (*models.Trip, error) {
	trip := &models.Trip{}
	var start, end int64
	err := q.QueryRowContext(ctx,
		`SELECT id, name, description, destination, start_date, end_date,
		        base_currency, rounding_granularity, default_weight, invite_code, created_at
		 FROM trips WHERE `+column+` = ?`,
		value,
	).Scan(&trip.ID, &trip.Name, &trip.Description, &trip.Destination, &start, &end,
		&trip.BaseCurrency, &trip.RoundingGranularity, &trip.DefaultWeight,
		&trip.InviteCode, &trip.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("trip %s: %w", value, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}

	trip.StartDate = time.Unix(start, 0).UTC()
	trip.EndDate = time.Unix(end, 0).UTC()
	return trip, nil
}

// uniqueInviteCode derives an 8 character code from a random UUID and
// retries on the rare collision.
func (s *SQLiteStore) uniqueInviteCode(ctx context.Context) (string, error) {
	for i := 0; i < inviteCodeAttempts; i++ {
		code := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])

		var exists int
		err := s.db.QueryRowContext(ctx, "SELECT 1 FROM trips WHERE invite_code = ?", code).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return code, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to check invite code: %w", err)
		}
	}
	return "", fmt.Errorf("failed to generate a unique invite code after %d attempts", inviteCodeAttempts)
}
