// Package purchase turns a supplier choice and a selection into a purchase
// draft and submits it to the inventory API.
package purchase

import (
	"strings"

	"inventory-admin/models"
)

// MsgSelectSupplierAndProduct is shown when a draft is submitted incomplete
const MsgSelectSupplierAndProduct = "select supplier and at least one product"

// Assemble builds a PurchaseDraft from supplierID and items.
// The total is always recomputed from items. The returned draft owns its own copy of items.
func Assemble(supplierID string, items []models.LineItem) (models.PurchaseDraft, error) {
	if strings.TrimSpace(supplierID) == "" {
		return models.PurchaseDraft{}, &ValidationError{Field: "supplierId", Message: MsgSelectSupplierAndProduct}
	}
	if len(items) == 0 {
		return models.PurchaseDraft{}, &ValidationError{Field: "products", Message: MsgSelectSupplierAndProduct}
	}

	lines := make([]models.LineItem, len(items))
	copy(lines, items)

	return models.PurchaseDraft{
		SupplierID:  supplierID,
		LineItems:   lines,
		TotalAmount: models.SumLineItems(lines),
	}, nil
}
