package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"inventory-admin/catalog"
	"inventory-admin/draft"
	"inventory-admin/models"
	"inventory-admin/repository"
)

// PurchasesPath is where the caller should navigate after a successful submission
const PurchasesPath = "/admin/purchases"

// DraftService drives the purchase-creation flow for a session
type DraftService struct {
	source         catalog.Source
	gateway        Submitter
	drafts         repository.DraftRepositoryInterface
	catalogTimeout time.Duration
	now            func() time.Time
}

// NewDraftService creates a DraftService
func NewDraftService(source catalog.Source, gateway Submitter, drafts repository.DraftRepositoryInterface, catalogTimeout time.Duration) *DraftService {
	return &DraftService{
		source:         source,
		gateway:        gateway,
		drafts:         drafts,
		catalogTimeout: catalogTimeout,
		now:            time.Now,
	}
}

// Ensure DraftService implements DraftServiceInterface
var _ DraftServiceInterface = (*DraftService)(nil)

// Start opens a draft for sess and loads its catalog. A session has at most one
// open draft; earlier ones are discarded. When the load fails the draft is kept
// in the error state so it can be reloaded, and the *catalog.LoadError is
// returned together with the view.
func (s *DraftService) Start(ctx context.Context, sess models.Session) (models.DraftView, error) {
	if n := s.drafts.DeleteBySession(sess.ID); n > 0 {
		log.Info().Int("drafts", n).Msg("StartDraft: replaced earlier draft")
	}
	d := draft.New(uuid.NewString(), sess.ID, s.source, s.now())
	s.drafts.Save(d)
	log.Info().Str("draftId", d.ID).Msg("📝 StartDraft: draft opened")

	err := s.load(ctx, d, sess.Token)
	return d.View(), err
}

// Reload retries the catalog load of a draft
func (s *DraftService) Reload(ctx context.Context, sess models.Session, draftID string) (models.DraftView, error) {
	d, err := s.drafts.Get(draftID, sess.ID)
	if err != nil {
		return models.DraftView{}, err
	}
	err = s.load(ctx, d, sess.Token)
	return d.View(), err
}

func (s *DraftService) load(ctx context.Context, d *draft.Draft, token string) error {
	if s.catalogTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.catalogTimeout)
		defer cancel()
	}
	return d.Load(ctx, token)
}

// PurgeExpired discards drafts older than maxAge. Sessions never outlive their
// TTL, so a draft older than the TTL belongs to an expired session.
func (s *DraftService) PurgeExpired(maxAge time.Duration) int {
	n := s.drafts.PurgeCreatedBefore(s.now().Add(-maxAge))
	if n > 0 {
		log.Info().Int("drafts", n).Msg("🗑️  PurgeDrafts: discarded expired drafts")
	}
	return n
}

// Get returns the current view of a draft
func (s *DraftService) Get(sess models.Session, draftID string) (models.DraftView, error) {
	d, err := s.drafts.Get(draftID, sess.ID)
	if err != nil {
		return models.DraftView{}, err
	}
	return d.View(), nil
}

// Suppliers returns the suppliers of the draft's catalog
func (s *DraftService) Suppliers(sess models.Session, draftID string) ([]models.Supplier, error) {
	d, err := s.drafts.Get(draftID, sess.ID)
	if err != nil {
		return nil, err
	}
	return d.Suppliers(), nil
}

// SelectSupplier chooses the supplier; a different supplier clears the selection
func (s *DraftService) SelectSupplier(sess models.Session, draftID, supplierID string) (models.SelectSupplierResponse, error) {
	d, err := s.drafts.Get(draftID, sess.ID)
	if err != nil {
		return models.SelectSupplierResponse{}, err
	}
	cleared, err := d.SelectSupplier(supplierID)
	if err != nil {
		return models.SelectSupplierResponse{}, err
	}
	if cleared {
		log.Info().Str("draftId", draftID).Str("supplierId", supplierID).Msg("SelectSupplier: supplier changed, selection cleared")
	}
	return models.SelectSupplierResponse{DraftView: d.View(), SelectionCleared: cleared}, nil
}

// EligibleProducts returns the products of the chosen supplier
func (s *DraftService) EligibleProducts(sess models.Session, draftID string) ([]models.Product, error) {
	d, err := s.drafts.Get(draftID, sess.ID)
	if err != nil {
		return nil, err
	}
	return d.EligibleProducts(), nil
}

// Toggle selects or deselects a product
func (s *DraftService) Toggle(sess models.Session, draftID, productID string) (models.DraftView, error) {
	d, err := s.drafts.Get(draftID, sess.ID)
	if err != nil {
		return models.DraftView{}, err
	}
	if _, err := d.Toggle(productID); err != nil {
		return models.DraftView{}, err
	}
	return d.View(), nil
}

// SetQuantity edits the quantity of a selected product
func (s *DraftService) SetQuantity(sess models.Session, draftID, productID string, quantity int) (models.DraftView, error) {
	d, err := s.drafts.Get(draftID, sess.ID)
	if err != nil {
		return models.DraftView{}, err
	}
	if err := d.SetQuantity(productID, quantity); err != nil {
		return models.DraftView{}, err
	}
	return d.View(), nil
}

// Submit assembles and sends the draft. On success the draft is discarded and
// the response names the page to go to. On failure the draft keeps its
// selection and shows the error.
func (s *DraftService) Submit(ctx context.Context, sess models.Session, draftID string) (models.SubmitResponse, models.DraftView, error) {
	d, err := s.drafts.Get(draftID, sess.ID)
	if err != nil {
		return models.SubmitResponse{}, models.DraftView{}, err
	}

	assembled, err := d.BeginSubmit()
	if err != nil {
		return models.SubmitResponse{}, d.View(), err
	}

	conf, err := s.gateway.Submit(ctx, sess.Token, assembled)
	d.FinishSubmit(err)
	if err != nil {
		return models.SubmitResponse{}, d.View(), err
	}

	s.drafts.Delete(draftID)
	log.Info().Str("draftId", draftID).Msg("✅ SubmitDraft: draft submitted and discarded")
	return models.SubmitResponse{Message: conf.Message, RedirectTo: PurchasesPath}, models.DraftView{}, nil
}

// Cancel discards a draft
func (s *DraftService) Cancel(sess models.Session, draftID string) error {
	if _, err := s.drafts.Get(draftID, sess.ID); err != nil {
		return err
	}
	s.drafts.Delete(draftID)
	log.Info().Str("draftId", draftID).Msg("🗑️  CancelDraft: draft discarded")
	return nil
}
