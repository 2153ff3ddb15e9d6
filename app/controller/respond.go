package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"inventory-admin/apiclient"
	"inventory-admin/catalog"
	"inventory-admin/draft"
	"inventory-admin/models"
	"inventory-admin/purchase"
	"inventory-admin/repository"
	"inventory-admin/selection"
	"inventory-admin/service"
	"inventory-admin/utils"
)

const maxRequestBody = 1 << 20

type sessionKey struct{}

// WithSession stores the authenticated session in ctx
func WithSession(ctx context.Context, sess *models.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, sess)
}

// SessionFrom returns the session stored by WithSession
func SessionFrom(ctx context.Context) (models.Session, bool) {
	sess, ok := ctx.Value(sessionKey{}).(*models.Session)
	if !ok || sess == nil {
		return models.Session{}, false
	}
	return *sess, true
}

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Message string            `json:"message"`
	Field   string            `json:"field,omitempty"`
	Draft   *models.DraftView `json:"draft,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("❌ Error encoding response")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return errors.Join(service.ErrInvalidInput, err)
	}
	return nil
}

// statusFor maps an error to the HTTP status returned to the caller
func statusFor(err error) int {
	var (
		validationErr *purchase.ValidationError
		submissionErr *purchase.SubmissionError
		loadErr       *catalog.LoadError
		apiErr        *apiclient.APIError
	)
	switch {
	case errors.As(err, &validationErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &submissionErr):
		if submissionErr.StatusCode >= 400 && submissionErr.StatusCode < 500 {
			return submissionErr.StatusCode
		}
		return http.StatusBadGateway
	case errors.As(err, &loadErr):
		if errors.Is(err, context.DeadlineExceeded) {
			return http.StatusGatewayTimeout
		}
		return http.StatusBadGateway
	case errors.Is(err, apiclient.ErrImageTooLarge):
		return http.StatusBadGateway
	case errors.Is(err, repository.ErrSessionNotFound), errors.Is(err, apiclient.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.As(err, &apiErr):
		if apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
			return apiErr.StatusCode
		}
		return http.StatusBadGateway
	case errors.Is(err, repository.ErrDraftNotFound),
		errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrNoImage):
		return http.StatusNotFound
	case errors.Is(err, draft.ErrBusy), errors.Is(err, draft.ErrCatalogNotLoaded):
		return http.StatusConflict
	case errors.Is(err, draft.ErrUnknownSupplier),
		errors.Is(err, draft.ErrProductNotEligible),
		errors.Is(err, selection.ErrInvalidQuantity),
		errors.Is(err, utils.ErrQuantityOutOfRange):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, utils.ErrNotANumber):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// writeError logs err under op and replies with its status. view, when set,
// is the draft as it stands after the failure.
func writeError(w http.ResponseWriter, op string, err error, view *models.DraftView) {
	status := statusFor(err)
	resp := ErrorResponse{Message: err.Error(), Draft: view}

	var validationErr *purchase.ValidationError
	if errors.As(err, &validationErr) {
		resp.Field = validationErr.Field
		resp.Message = validationErr.Message
	}
	var submissionErr *purchase.SubmissionError
	if errors.As(err, &submissionErr) {
		resp.Message = submissionErr.Message
	}
	if status == http.StatusInternalServerError {
		resp.Message = "Internal server error"
	}

	ev := log.Warn()
	if status >= 500 {
		ev = log.Error()
	}
	ev.Err(err).Int("status", status).Msgf("❌ %s: request failed", op)
	writeJSON(w, status, resp)
}
