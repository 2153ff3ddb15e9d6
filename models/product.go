package models

import "github.com/shopspring/decimal"

// Product represents a product as returned by the inventory API
type Product struct {
	ID            string          `json:"_id"`
	Name          string          `json:"name"`
	Category      string          `json:"category,omitempty"`
	Supplier      SupplierRef     `json:"supplier"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	SellingPrice  decimal.Decimal `json:"sellingPrice"`
	StockQty      int             `json:"stockQty"`
	ImageURL      string          `json:"imageURL,omitempty"`
}

// SupplierID returns the id of the owning supplier
func (p Product) SupplierID() string {
	return p.Supplier.ID
}

// CreateProductRequest represents the request body for creating a product
// Example: {"name": "Arnés M", "category": "arneses", "supplier": "s1", "purchasePrice": 12000, "sellingPrice": 25000, "stockQty": 10}
type CreateProductRequest struct {
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Supplier      string          `json:"supplier"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	SellingPrice  decimal.Decimal `json:"sellingPrice"`
	StockQty      int             `json:"stockQty"`
	ImageURL      string          `json:"imageURL,omitempty"`
}
