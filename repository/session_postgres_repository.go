package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"inventory-admin/models"
)

const createSessionsTable = `
	CREATE TABLE IF NOT EXISTS admin_sessions (
		id         TEXT PRIMARY KEY,
		token      TEXT NOT NULL,
		user_data  JSONB NOT NULL DEFAULT '{}'::jsonb,
		created_at TIMESTAMPTZ NOT NULL,
		expires_at TIMESTAMPTZ NOT NULL
	)
`

// PostgresSessionRepository stores sessions in the admin_sessions table
type PostgresSessionRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewPostgresSessionRepository creates a PostgresSessionRepository
func NewPostgresSessionRepository(db *sql.DB) *PostgresSessionRepository {
	return &PostgresSessionRepository{db: db, now: time.Now}
}

// Ensure PostgresSessionRepository implements SessionRepositoryInterface
var _ SessionRepositoryInterface = (*PostgresSessionRepository)(nil)

// EnsureSchema creates the sessions table if it does not exist
func (r *PostgresSessionRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createSessionsTable); err != nil {
		return fmt.Errorf("failed to create admin_sessions table: %w", err)
	}
	return nil
}

// Save stores or replaces a session
func (r *PostgresSessionRepository) Save(ctx context.Context, session *models.Session) error {
	userData, err := json.Marshal(session.User)
	if err != nil {
		return fmt.Errorf("failed to encode session user: %w", err)
	}

	query := `
		INSERT INTO admin_sessions (id, token, user_data, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id)
		DO UPDATE SET token = EXCLUDED.token, user_data = EXCLUDED.user_data, expires_at = EXCLUDED.expires_at
	`
	_, err = r.db.ExecContext(ctx, query, session.ID, session.Token, string(userData), session.CreatedAt, session.ExpiresAt)
	if err != nil {
		log.Error().Err(err).Msg("❌ SaveSession: insert failed")
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Get returns an unexpired session
func (r *PostgresSessionRepository) Get(ctx context.Context, id string) (*models.Session, error) {
	query := `
		SELECT id, token, user_data, created_at, expires_at
		FROM admin_sessions
		WHERE id = $1 AND expires_at > $2
	`
	var session models.Session
	var userData []byte
	err := r.db.QueryRowContext(ctx, query, id, r.now()).Scan(
		&session.ID,
		&session.Token,
		&userData,
		&session.CreatedAt,
		&session.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to fetch session: %w", err)
	}
	if err := json.Unmarshal(userData, &session.User); err != nil {
		return nil, fmt.Errorf("failed to decode session user: %w", err)
	}
	return &session, nil
}

// Delete removes a session
func (r *PostgresSessionRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM admin_sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// PurgeExpired deletes expired sessions and returns how many were removed
func (r *PostgresSessionRepository) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM admin_sessions WHERE expires_at <= $1`, r.now())
	if err != nil {
		return 0, fmt.Errorf("failed to purge sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count purged sessions: %w", err)
	}
	return n, nil
}
