package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"inventory-admin/models"
	"inventory-admin/repository"
)

// ErrInvalidInput marks request validation failures
var ErrInvalidInput = errors.New("invalid input")

// AuthService issues sessions at login and removes them at logout
type AuthService struct {
	api      InventoryAPI
	sessions repository.SessionRepositoryInterface
	drafts   repository.DraftRepositoryInterface
	ttl      time.Duration
	now      func() time.Time
}

// NewAuthService creates an AuthService
func NewAuthService(api InventoryAPI, sessions repository.SessionRepositoryInterface, drafts repository.DraftRepositoryInterface, ttl time.Duration) *AuthService {
	return &AuthService{api: api, sessions: sessions, drafts: drafts, ttl: ttl, now: time.Now}
}

// Ensure AuthService implements AuthServiceInterface
var _ AuthServiceInterface = (*AuthService)(nil)

// Login authenticates against the inventory API and stores a new session
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.Session, error) {
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if req.Password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}

	data, err := s.api.Login(ctx, req)
	if err != nil {
		log.Warn().Err(err).Str("email", req.Email).Msg("❌ Login: rejected")
		return nil, err
	}

	now := s.now().UTC()
	session := &models.Session{
		ID:        uuid.NewString(),
		Token:     data.Token,
		User:      data.User,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	log.Info().Str("userId", data.ID).Msg("✅ Login: session created")
	return session, nil
}

// Logout removes the session and discards its drafts
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return err
	}
	if n := s.drafts.DeleteBySession(sessionID); n > 0 {
		log.Info().Int("drafts", n).Msg("Logout: discarded open drafts")
	}
	return nil
}

// Authenticate resolves a session id
func (s *AuthService) Authenticate(ctx context.Context, sessionID string) (*models.Session, error) {
	if sessionID == "" {
		return nil, repository.ErrSessionNotFound
	}
	return s.sessions.Get(ctx, sessionID)
}
