package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is a selected product inside a purchase draft.
// UnitPrice is captured when the product is selected and never re-derived.
type LineItem struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// Subtotal returns quantity * unit price
func (l LineItem) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// SumLineItems returns the sum of quantity * unit price over items
func SumLineItems(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// PurchaseDraft is an assembled purchase ready to be submitted
type PurchaseDraft struct {
	SupplierID  string          `json:"supplierId"`
	LineItems   []LineItem      `json:"lineItems"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// PurchaseLine is the wire shape of a line item in POST /purchase/addPurchase
type PurchaseLine struct {
	ProductID     string          `json:"productId"`
	Qty           int             `json:"qty"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
}

// CreatePurchaseRequest represents the body sent to the API to create a purchase
// Example:
// {
//   "supplierId": "s1",
//   "products": [{"productId": "p1", "qty": 2, "purchasePrice": 5}],
//   "totalAmount": 10,
//   "date": "2026-01-04T10:30:00Z"
// }
type CreatePurchaseRequest struct {
	SupplierID  string          `json:"supplierId"`
	Products    []PurchaseLine  `json:"products"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Date        time.Time       `json:"date"`
}

// Purchase represents a purchase as listed by the API
type Purchase struct {
	ID          string          `json:"_id"`
	Date        *time.Time      `json:"date,omitempty"`
	CreatedAt   *time.Time      `json:"createdAt,omitempty"`
	Supplier    SupplierRef     `json:"supplierId"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Products    []PurchaseLine  `json:"products"`
}

// EffectiveDate returns the purchase date, falling back to the creation time
func (p Purchase) EffectiveDate() (time.Time, bool) {
	if p.Date != nil {
		return *p.Date, true
	}
	if p.CreatedAt != nil {
		return *p.CreatedAt, true
	}
	return time.Time{}, false
}

// ShortID returns the last 8 characters of the purchase id
func (p Purchase) ShortID() string {
	if len(p.ID) <= 8 {
		return p.ID
	}
	return p.ID[len(p.ID)-8:]
}

// Confirmation is returned by the API when a purchase is accepted
type Confirmation struct {
	Message string `json:"message"`
}
