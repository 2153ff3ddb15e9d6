// Package draft holds the state of one purchase-creation flow: the catalog it
// was opened with, the chosen supplier, the selected line items and the screen state.
package draft

import (
	"context"
	"errors"
	"sync"
	"time"

	"inventory-admin/catalog"
	"inventory-admin/models"
	"inventory-admin/purchase"
	"inventory-admin/selection"
)

var (
	// ErrBusy is returned while the draft is loading or submitting
	ErrBusy = errors.New("draft is busy")
	// ErrCatalogNotLoaded is returned by edits made before the catalog loaded
	ErrCatalogNotLoaded = errors.New("catalog is not loaded")
	// ErrUnknownSupplier is returned when selecting a supplier missing from the catalog
	ErrUnknownSupplier = errors.New("supplier not found")
	// ErrProductNotEligible is returned when toggling a product the chosen supplier does not own
	ErrProductNotEligible = errors.New("product is not available for the selected supplier")
)

// Draft is safe for concurrent use; every operation is serialised by an internal
// mutex, which is not held across network calls.
type Draft struct {
	ID        string
	SessionID string
	CreatedAt time.Time

	mu         sync.Mutex
	source     catalog.Source
	catalog    *catalog.Cache
	selection  *selection.Store
	supplierID string
	state      models.ScreenState
}

// New creates an empty draft owned by sessionID
func New(id, sessionID string, source catalog.Source, now time.Time) *Draft {
	return &Draft{
		ID:        id,
		SessionID: sessionID,
		CreatedAt: now,
		source:    source,
		catalog:   catalog.NewCache(source),
		selection: selection.NewStore(),
		state:     models.Idle(),
	}
}

// Load fetches the catalog. The lock is released during the fetch so the
// loading state is visible and edits get ErrBusy meanwhile. On failure the
// draft moves to the error state and the *catalog.LoadError is returned.
// Loading an already loaded draft does nothing.
func (d *Draft) Load(ctx context.Context, token string) error {
	d.mu.Lock()
	switch {
	case d.state.Kind == models.ScreenSubmitting, d.state.Kind == models.ScreenLoading:
		d.mu.Unlock()
		return ErrBusy
	case d.catalog.Loaded():
		d.mu.Unlock()
		return nil
	}
	d.state = models.Loading()
	d.mu.Unlock()

	fresh := catalog.NewCache(d.source)
	err := fresh.Load(ctx, token)

	d.mu.Lock()
	defer d.mu.Unlock()
	if err != nil {
		d.state = models.Failed(err.Error())
		return err
	}
	d.catalog = fresh
	d.state = models.Idle()
	return nil
}

// SelectSupplier chooses the supplier. Changing to a different supplier clears
// the selection; the return value reports whether that happened.
// An empty id unsets the supplier.
func (d *Draft) SelectSupplier(supplierID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.editable(); err != nil {
		return false, err
	}
	if supplierID != "" {
		if _, ok := d.catalog.Supplier(supplierID); !ok {
			return false, ErrUnknownSupplier
		}
	}
	if supplierID == d.supplierID {
		return false, nil
	}

	cleared := d.selection.Len() > 0
	d.selection.Clear()
	d.supplierID = supplierID
	return cleared, nil
}

// EligibleProducts returns the catalog products of the chosen supplier
func (d *Draft) EligibleProducts() []models.Product {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.catalog.ProductsForSupplier(d.supplierID)
}

// Suppliers returns the catalog suppliers
func (d *Draft) Suppliers() []models.Supplier {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.catalog.Suppliers()
}

// Toggle selects or deselects productID and reports whether it is selected afterwards
func (d *Draft) Toggle(productID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.editable(); err != nil {
		return false, err
	}
	for _, p := range d.catalog.ProductsForSupplier(d.supplierID) {
		if p.ID == productID {
			return d.selection.Toggle(p), nil
		}
	}
	return false, ErrProductNotEligible
}

// SetQuantity edits the quantity of a selected product.
// Unselected products are ignored; quantities below 1 return selection.ErrInvalidQuantity.
func (d *Draft) SetQuantity(productID string, quantity int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.editable(); err != nil {
		return err
	}
	return d.selection.SetQuantity(productID, quantity)
}

// BeginSubmit assembles the draft and moves it to the submitting state.
// A *purchase.ValidationError leaves the state untouched.
func (d *Draft) BeginSubmit() (models.PurchaseDraft, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.editable(); err != nil {
		return models.PurchaseDraft{}, err
	}
	assembled, err := purchase.Assemble(d.supplierID, d.selection.Items())
	if err != nil {
		return models.PurchaseDraft{}, err
	}
	d.state = models.Submitting()
	return assembled, nil
}

// FinishSubmit records the outcome of a submission. On failure the selection
// is kept and the draft shows the error so the user can retry.
func (d *Draft) FinishSubmit(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err != nil {
		d.state = models.Failed(err.Error())
		return
	}
	d.state = models.Idle()
}

// View returns a snapshot of the draft
func (d *Draft) View() models.DraftView {
	d.mu.Lock()
	defer d.mu.Unlock()

	return models.DraftView{
		ID:          d.ID,
		SupplierID:  d.supplierID,
		LineItems:   d.selection.Items(),
		TotalAmount: d.selection.Total(),
		State:       d.state,
	}
}

// editable must be called with mu held
func (d *Draft) editable() error {
	switch d.state.Kind {
	case models.ScreenLoading, models.ScreenSubmitting:
		return ErrBusy
	}
	if !d.catalog.Loaded() {
		return ErrCatalogNotLoaded
	}
	return nil
}
