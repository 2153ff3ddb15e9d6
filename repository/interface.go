package repository

import (
	"context"
	"errors"
	"time"

	"inventory-admin/draft"
	"inventory-admin/models"
)

var (
	// ErrSessionNotFound is returned for unknown or expired sessions
	ErrSessionNotFound = errors.New("session not found")
	// ErrDraftNotFound is returned for unknown drafts and drafts owned by another session
	ErrDraftNotFound = errors.New("draft not found")
)

// SessionRepositoryInterface defines the contract for session storage
type SessionRepositoryInterface interface {
	Save(ctx context.Context, session *models.Session) error
	Get(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
}

// DraftRepositoryInterface defines the contract for in-progress purchase drafts
type DraftRepositoryInterface interface {
	Save(d *draft.Draft)
	Get(id, sessionID string) (*draft.Draft, error)
	Delete(id string)
	DeleteBySession(sessionID string) int
	PurgeCreatedBefore(cutoff time.Time) int
}
