package purchase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"inventory-admin/apiclient"
	"inventory-admin/models"
)

// MsgSubmitFailed is used when the server gives no reason for a failure
const MsgSubmitFailed = "failed to submit purchase, please try again"

// Poster sends a purchase to the inventory API
type Poster interface {
	CreatePurchase(ctx context.Context, token string, req models.CreatePurchaseRequest) (string, error)
}

// Gateway submits assembled drafts
type Gateway struct {
	poster  Poster
	timeout time.Duration
	now     func() time.Time
}

// NewGateway creates a Gateway. A zero timeout leaves only the caller's deadline in effect.
func NewGateway(poster Poster, timeout time.Duration) *Gateway {
	return &Gateway{poster: poster, timeout: timeout, now: time.Now}
}

// WithClock replaces the clock used to stamp the purchase date
func (g *Gateway) WithClock(now func() time.Time) *Gateway {
	g.now = now
	return g
}

// Submit sends draft with exactly one request. Nothing is retried.
// Failures are returned as *SubmissionError.
func (g *Gateway) Submit(ctx context.Context, token string, draft models.PurchaseDraft) (models.Confirmation, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	req := models.CreatePurchaseRequest{
		SupplierID:  draft.SupplierID,
		Products:    make([]models.PurchaseLine, 0, len(draft.LineItems)),
		TotalAmount: draft.TotalAmount,
		Date:        g.now().UTC(),
	}
	for _, item := range draft.LineItems {
		req.Products = append(req.Products, models.PurchaseLine{
			ProductID:     item.ProductID,
			Qty:           item.Quantity,
			PurchasePrice: item.UnitPrice,
		})
	}

	msg, err := g.poster.CreatePurchase(ctx, token, req)
	if err != nil {
		subErr := &SubmissionError{Message: MsgSubmitFailed, Err: err}
		var apiErr *apiclient.APIError
		if errors.As(err, &apiErr) {
			subErr.StatusCode = apiErr.StatusCode
			if apiErr.Message != "" {
				subErr.Message = apiErr.Message
			}
		}
		log.Error().Err(err).Str("supplierId", draft.SupplierID).Int("status", subErr.StatusCode).
			Msg("❌ SubmitPurchase: submission failed")
		return models.Confirmation{}, subErr
	}

	log.Info().Str("supplierId", draft.SupplierID).Int("lines", len(draft.LineItems)).
		Str("total", draft.TotalAmount.String()).Msg("✅ SubmitPurchase: purchase accepted")
	return models.Confirmation{Message: msg}, nil
}
