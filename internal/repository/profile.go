package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
)

// PostgresProfileRepository implements profile lookups using a PostgreSQL database.
type PostgresProfileRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresProfileRepository creates a new PostgresProfileRepository with the given database connection.
// db must be a valid *sql.DB connected to a PostgreSQL instance.
func NewPostgresProfileRepository(db *sql.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{DB: db}
}

// DisplayName returns the display name stored for the user.
// The boolean is false when the user has no profile row yet.
func (r *PostgresProfileRepository) DisplayName(ctx context.Context, userID string) (string, bool, error) {
	var name sql.NullString
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT display_name FROM profiles WHERE id = $1`,
		userID,
	).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("select profile: %w", err)
	}
	return name.String, true, nil
}

// EnsureProfile creates a profile row for the user if none exists.
// An existing row is left untouched, so a concurrent insert wins.
func (r *PostgresProfileRepository) EnsureProfile(ctx context.Context, userID, displayName string) error {
	_, err := r.DB.ExecContext(
		ctx,
		`INSERT INTO profiles (id, display_name) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		userID, displayName,
	)
	if err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

// MemoryProfileRepository keeps profiles in a map. It pairs with
// MemoryCardRepository when no database is configured.
type MemoryProfileRepository struct {
	mu       sync.Mutex
	profiles map[string]string
}

// NewMemoryProfileRepository returns an empty profile store.
func NewMemoryProfileRepository() *MemoryProfileRepository {
	return &MemoryProfileRepository{profiles: make(map[string]string)}
}

// DisplayName returns the stored display name.
func (r *MemoryProfileRepository) DisplayName(_ context.Context, userID string) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	name, ok := r.profiles[userID]
	return name, ok, nil
}

// EnsureProfile stores displayName unless a profile already exists.
func (r *MemoryProfileRepository) EnsureProfile(_ context.Context, userID, displayName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[userID]; !ok {
		r.profiles[userID] = displayName
	}
	return nil
}
