package controller

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"inventory-admin/models"
	"inventory-admin/service"
)

// SessionCookie is the cookie holding the session id
const SessionCookie = "session_id"

// AuthController handles login, logout and session checks
type AuthController struct {
	auth         service.AuthServiceInterface
	cookieSecure bool
}

// NewAuthController creates a new AuthController
func NewAuthController(auth service.AuthServiceInterface, cookieSecure bool) *AuthController {
	return &AuthController{auth: auth, cookieSecure: cookieSecure}
}

// Login handles POST /auth/login
// Example request:
// POST /auth/login
// {"email": "admin@example.com", "password": "secret"}
// Example response (sets the session_id cookie):
// {"user": {"_id": "u1", "name": "Admin", "email": "admin@example.com", "role": "admin"}, "expiresAt": "2026-01-04T22:30:00Z"}
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, "Login", err, nil)
		return
	}

	sess, err := c.auth.Login(r.Context(), req)
	if err != nil {
		writeError(w, "Login", err, nil)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sess.ID,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   c.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, models.LoginResponse{User: sess.User, ExpiresAt: sess.ExpiresAt})
}

// Logout handles POST /auth/logout. It always clears the cookie.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		if err := c.auth.Logout(r.Context(), cookie.Value); err != nil {
			writeError(w, "Logout", err, nil)
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

// RequireSession rejects requests without a valid session cookie and stores
// the session in the request context
func (c *AuthController) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookie)
		if err != nil || cookie.Value == "" {
			writeJSON(w, http.StatusUnauthorized, ErrorResponse{Message: "authentication required"})
			return
		}

		sess, err := c.auth.Authenticate(r.Context(), cookie.Value)
		if err != nil {
			status := statusFor(err)
			if status == http.StatusUnauthorized {
				log.Debug().Str("path", r.URL.Path).Msg("RequireSession: unknown or expired session")
				writeJSON(w, status, ErrorResponse{Message: "authentication required"})
				return
			}
			writeError(w, "RequireSession", err, nil)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
	})
}

func mustSession(w http.ResponseWriter, r *http.Request) (models.Session, bool) {
	sess, ok := SessionFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Message: "authentication required"})
	}
	return sess, ok
}
