package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-admin/draft"
	"inventory-admin/models"
	"inventory-admin/repository"
)

func TestAuthService_LoginCreatesSession(t *testing.T) {
	api := &fakeAPI{loginData: &models.LoginData{User: models.User{ID: "u1", Name: "Ana"}, Token: "jwt"}}
	sessions := repository.NewMemorySessionRepository()
	svc := NewAuthService(api, sessions, repository.NewDraftRepository(), time.Hour)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	sess, err := svc.Login(context.Background(), models.LoginRequest{Email: " ana@example.com ", Password: "pw"})
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, "jwt", sess.Token)
	assert.Equal(t, "u1", sess.User.ID)
	assert.Equal(t, fixed.Add(time.Hour), sess.ExpiresAt)

	stored, err := sessions.Get(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "jwt", stored.Token)
}

func TestAuthService_LoginValidation(t *testing.T) {
	svc := NewAuthService(&fakeAPI{}, repository.NewMemorySessionRepository(), repository.NewDraftRepository(), time.Hour)

	_, err := svc.Login(context.Background(), models.LoginRequest{Password: "pw"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Login(context.Background(), models.LoginRequest{Email: "a@b.c"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAuthService_LoginRejected(t *testing.T) {
	rejected := errors.New("invalid credentials")
	svc := NewAuthService(&fakeAPI{loginErr: rejected}, repository.NewMemorySessionRepository(), repository.NewDraftRepository(), time.Hour)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "a@b.c", Password: "bad"})
	assert.ErrorIs(t, err, rejected)
}

func TestAuthService_LogoutDropsSessionAndDrafts(t *testing.T) {
	ctx := context.Background()
	sessions := repository.NewMemorySessionRepository()
	drafts := repository.NewDraftRepository()
	svc := NewAuthService(&fakeAPI{}, sessions, drafts, time.Hour)

	sess := &models.Session{ID: "s", Token: "t", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, sessions.Save(ctx, sess))
	drafts.Save(draft.New("d1", "s", testCatalog(), time.Now()))

	require.NoError(t, svc.Logout(ctx, "s"))

	_, err := svc.Authenticate(ctx, "s")
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
	_, err = drafts.Get("d1", "s")
	assert.ErrorIs(t, err, repository.ErrDraftNotFound)
}

func TestAuthService_AuthenticateEmptyID(t *testing.T) {
	svc := NewAuthService(&fakeAPI{}, repository.NewMemorySessionRepository(), repository.NewDraftRepository(), time.Hour)
	_, err := svc.Authenticate(context.Background(), "")
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}
