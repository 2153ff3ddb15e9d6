package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// ScreenStateKind enumerates the states a draft screen can be in
type ScreenStateKind string

const (
	ScreenIdle       ScreenStateKind = "idle"
	ScreenLoading    ScreenStateKind = "loading"
	ScreenError      ScreenStateKind = "error"
	ScreenSubmitting ScreenStateKind = "submitting"
)

// ScreenState is a tagged variant: Message is only set for ScreenError
type ScreenState struct {
	Kind    ScreenStateKind `json:"kind"`
	Message string          `json:"message,omitempty"`
}

// Idle is the state of a draft that accepts edits
func Idle() ScreenState { return ScreenState{Kind: ScreenIdle} }

// Loading is the state while the catalog is being fetched
func Loading() ScreenState { return ScreenState{Kind: ScreenLoading} }

// Submitting is the state while the purchase is being sent
func Submitting() ScreenState { return ScreenState{Kind: ScreenSubmitting} }

// Failed builds the error state carrying msg
func Failed(msg string) ScreenState {
	return ScreenState{Kind: ScreenError, Message: msg}
}

// DraftView is the JSON representation of a purchase draft in progress
// Example response:
// {
//   "id": "6f1c...",
//   "supplierId": "s1",
//   "lineItems": [{"productId": "p1", "quantity": 3, "unitPrice": 10}],
//   "totalAmount": 30,
//   "state": {"kind": "idle"}
// }
type DraftView struct {
	ID          string          `json:"id"`
	SupplierID  string          `json:"supplierId"`
	LineItems   []LineItem      `json:"lineItems"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	State       ScreenState     `json:"state"`
}

// SelectSupplierRequest represents the body of PUT /admin/purchase-drafts/{id}/supplier
type SelectSupplierRequest struct {
	SupplierID string `json:"supplierId"`
}

// SelectSupplierResponse reports whether changing the supplier cleared the selection
type SelectSupplierResponse struct {
	DraftView
	SelectionCleared bool `json:"selectionCleared"`
}

// SetQuantityRequest represents the body of PUT /admin/purchase-drafts/{id}/items/{productId}.
// Quantity is kept raw so numeric strings from form inputs are accepted.
type SetQuantityRequest struct {
	Quantity json.RawMessage `json:"quantity"`
}

// SubmitResponse is returned after a draft has been accepted by the API
type SubmitResponse struct {
	Message    string `json:"message"`
	RedirectTo string `json:"redirectTo"`
}
