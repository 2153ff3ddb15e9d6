package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"inventory-admin/models"
	"inventory-admin/service"
	"inventory-admin/utils"
)

// DraftController handles the purchase-creation screen
type DraftController struct {
	drafts service.DraftServiceInterface
}

// NewDraftController creates a new DraftController
func NewDraftController(drafts service.DraftServiceInterface) *DraftController {
	return &DraftController{drafts: drafts}
}

// Start handles POST /admin/purchase-drafts
// Example response:
// {"id": "9b2f...", "supplierId": "", "lineItems": [], "totalAmount": 0, "state": {"kind": "idle"}}
// When the catalog cannot be loaded the draft is still created and returned
// with a 502 and state {"kind": "error"}; POST .../reload retries.
func (c *DraftController) Start(w http.ResponseWriter, r *http.Request) {
	sess, ok := mustSession(w, r)
	if !ok {
		return
	}
	view, err := c.drafts.Start(r.Context(), sess)
	if err != nil {
		writeError(w, "StartDraft", err, &view)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

// Reload handles POST /admin/purchase-drafts/{id}/reload
func (c *DraftController) Reload(w http.ResponseWriter, r *http.Request) {
	sess, ok := mustSession(w, r)
	if !ok {
		return
	}
	view, err := c.drafts.Reload(r.Context(), sess, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, "ReloadDraft", err, viewOrNil(view))
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Get handles GET /admin/purchase-drafts/{id}
func (c *DraftController) Get(w http.ResponseWriter, r *http.Request) {
	sess, ok := mustSession(w, r)
	if !ok {
		return
	}
	view, err := c.drafts.Get(sess, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, "GetDraft", err, nil)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Cancel handles DELETE /admin/purchase-drafts/{id}
func (c *DraftController) Cancel(w http.ResponseWriter, r *http.Request) {
	sess, ok := mustSession(w, r)
	if !ok {
		return
	}
	if err := c.drafts.Cancel(sess, chi.URLParam(r, "id")); err != nil {
		writeError(w, "CancelDraft", err, nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Suppliers handles GET /admin/purchase-drafts/{id}/suppliers
func (c *DraftController) Suppliers(w http.ResponseWriter, r *http.Request) {
	sess, ok := mustSession(w, r)
	if !ok {
		return
	}
	suppliers, err := c.drafts.Suppliers(sess, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, "DraftSuppliers", err, nil)
		return
	}
	if suppliers == nil {
		suppliers = []models.Supplier{}
	}
	writeJSON(w, http.StatusOK, suppliers)
}

// SelectSupplier handles PUT /admin/purchase-drafts/{id}/supplier
// Example request:
// {"supplierId": "s1"}
// Example response (selectionCleared is true when a previous selection was dropped):
// {"id": "9b2f...", "supplierId": "s1", "lineItems": [], "totalAmount": 0, "state": {"kind": "idle"}, "selectionCleared": true}
func (c *DraftController) SelectSupplier(w http.ResponseWriter, r *http.Request) {
	sess, ok := mustSession(w, r)
	if !ok {
		return
	}
	var req models.SelectSupplierRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, "SelectSupplier", err, nil)
		return
	}
	resp, err := c.drafts.SelectSupplier(sess, chi.URLParam(r, "id"), req.SupplierID)
	if err != nil {
		writeError(w, "SelectSupplier", err, nil)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// EligibleProducts handles GET /admin/purchase-drafts/{id}/products
func (c *DraftController) EligibleProducts(w http.ResponseWriter, r *http.Request) {
	sess, ok := mustSession(w, r)
	if !ok {
		return
	}
	products, err := c.drafts.EligibleProducts(sess, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, "EligibleProducts", err, nil)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// Toggle handles POST /admin/purchase-drafts/{id}/items/{productId}/toggle
func (c *DraftController) Toggle(w http.ResponseWriter, r *http.Request) {
	sess, ok := mustSession(w, r)
	if !ok {
		return
	}
	view, err := c.drafts.Toggle(sess, chi.URLParam(r, "id"), chi.URLParam(r, "productId"))
	if err != nil {
		writeError(w, "ToggleItem", err, nil)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// SetQuantity handles PUT /admin/purchase-drafts/{id}/items/{productId}
// Example request (the quantity may also be sent as the raw text of the input):
// {"quantity": 3}
func (c *DraftController) SetQuantity(w http.ResponseWriter, r *http.Request) {
	sess, ok := mustSession(w, r)
	if !ok {
		return
	}
	var req models.SetQuantityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, "SetQuantity", err, nil)
		return
	}
	qty, err := utils.DecodeQuantity(req.Quantity)
	if err != nil {
		writeError(w, "SetQuantity", err, nil)
		return
	}
	view, err := c.drafts.SetQuantity(sess, chi.URLParam(r, "id"), chi.URLParam(r, "productId"), qty)
	if err != nil {
		writeError(w, "SetQuantity", err, nil)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Submit handles POST /admin/purchase-drafts/{id}/submit
// Example response:
// {"message": "Purchase added successfully", "redirectTo": "/admin/purchases"}
// On failure the draft keeps its selection and is returned under "draft".
func (c *DraftController) Submit(w http.ResponseWriter, r *http.Request) {
	sess, ok := mustSession(w, r)
	if !ok {
		return
	}
	draftID := chi.URLParam(r, "id")
	resp, view, err := c.drafts.Submit(r.Context(), sess, draftID)
	if err != nil {
		writeError(w, "SubmitDraft", err, viewOrNil(view))
		return
	}
	log.Info().Str("draftId", draftID).Msg("✅ SubmitDraft: purchase created")
	writeJSON(w, http.StatusOK, resp)
}

func viewOrNil(view models.DraftView) *models.DraftView {
	if view.ID == "" {
		return nil
	}
	return &view
}
