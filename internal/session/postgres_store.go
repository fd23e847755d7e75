package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the sessions table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS storefront_sessions (
			session_id TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS storefront_sessions_updated_at_idx
			ON storefront_sessions (updated_at)
	`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create sessions table: %w", err)
	}
	return nil
}

// Get returns the user for sessionID and marks the session as recently used.
func (s *PostgresStore) Get(ctx context.Context, sessionID string) (string, error) {
	query := `
		UPDATE storefront_sessions SET updated_at = $2
		WHERE session_id = $1
		RETURNING user_id
	`

	var userID string
	err := s.db.QueryRowContext(ctx, query, sessionID, time.Now().UTC()).Scan(&userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("get session: %w", err)
	}
	return userID, nil
}

func (s *PostgresStore) Set(ctx context.Context, sessionID, userID string) error {
	query := `
		INSERT INTO storefront_sessions (session_id, user_id, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (session_id)
		DO UPDATE SET user_id = EXCLUDED.user_id, updated_at = EXCLUDED.updated_at
	`
	if _, err := s.db.ExecContext(ctx, query, sessionID, userID, time.Now().UTC()); err != nil {
		return fmt.Errorf("set session: %w", err)
	}
	return nil
}

// Prune deletes sessions not used within idle and returns how many were removed.
func (s *PostgresStore) Prune(ctx context.Context, idle time.Duration) (int64, error) {
	query := `DELETE FROM storefront_sessions WHERE updated_at < $1`

	res, err := s.db.ExecContext(ctx, query, time.Now().UTC().Add(-idle))
	if err != nil {
		return 0, fmt.Errorf("prune sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune sessions: %w", err)
	}
	return n, nil
}
