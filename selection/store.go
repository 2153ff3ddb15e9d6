// Package selection holds the line items chosen for a purchase draft and
// keeps their total in step with every change.
package selection

import (
	"errors"

	"github.com/shopspring/decimal"

	"inventory-admin/models"
)

// ErrInvalidQuantity is returned by SetQuantity for quantities below 1
var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// Store is an ordered set of line items, unique by product id.
// It is not safe for concurrent use; callers serialise access per draft.
type Store struct {
	items []models.LineItem
	total decimal.Decimal
}

// NewStore creates an empty Store
func NewStore() *Store {
	return &Store{total: decimal.Zero}
}

// Toggle removes the product if it is selected, otherwise appends it with
// quantity 1 and the product's current purchase price. It reports whether the
// product is selected afterwards. Reselecting resets any edited quantity.
func (s *Store) Toggle(product models.Product) bool {
	if idx := s.indexOf(product.ID); idx >= 0 {
		s.items = append(s.items[:idx:idx], s.items[idx+1:]...)
		s.recompute()
		return false
	}

	s.items = append(s.items, models.LineItem{
		ProductID: product.ID,
		Quantity:  1,
		UnitPrice: product.PurchasePrice,
	})
	s.recompute()
	return true
}

// SetQuantity overwrites the quantity of a selected product.
// Unknown products are ignored. Quantities below 1 are rejected and leave the store unchanged.
func (s *Store) SetQuantity(productID string, quantity int) error {
	idx := s.indexOf(productID)
	if idx < 0 {
		return nil
	}
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	s.items[idx].Quantity = quantity
	s.recompute()
	return nil
}

// Items returns a copy of the selected line items in selection order
func (s *Store) Items() []models.LineItem {
	out := make([]models.LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// Total returns the sum of quantity * unit price over the selection
func (s *Store) Total() decimal.Decimal {
	return s.total
}

// Len returns the number of selected products
func (s *Store) Len() int {
	return len(s.items)
}

// Contains reports whether productID is selected
func (s *Store) Contains(productID string) bool {
	return s.indexOf(productID) >= 0
}

// Clear empties the selection
func (s *Store) Clear() {
	s.items = nil
	s.recompute()
}

func (s *Store) indexOf(productID string) int {
	for i, item := range s.items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

func (s *Store) recompute() {
	s.total = models.SumLineItems(s.items)
}
