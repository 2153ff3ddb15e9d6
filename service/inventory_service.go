package service

import (
	"context"
	"fmt"
	"strings"

	"inventory-admin/models"
)

// InventoryService backs the products, suppliers and purchases screens
type InventoryService struct {
	api InventoryAPI
}

// NewInventoryService creates an InventoryService
func NewInventoryService(api InventoryAPI) *InventoryService {
	return &InventoryService{api: api}
}

// Ensure InventoryService implements InventoryServiceInterface
var _ InventoryServiceInterface = (*InventoryService)(nil)

// ListProducts returns all products
func (s *InventoryService) ListProducts(ctx context.Context, sess models.Session) ([]models.Product, error) {
	return s.api.ListProducts(ctx, sess.Token)
}

// CreateProduct checks required fields and creates the product
func (s *InventoryService) CreateProduct(ctx context.Context, sess models.Session, req models.CreateProductRequest) (string, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Category = strings.TrimSpace(req.Category)
	req.Supplier = strings.TrimSpace(req.Supplier)

	switch {
	case req.Name == "":
		return "", fmt.Errorf("%w: name is required", ErrInvalidInput)
	case req.Category == "":
		return "", fmt.Errorf("%w: category is required", ErrInvalidInput)
	case req.Supplier == "":
		return "", fmt.Errorf("%w: supplier is required", ErrInvalidInput)
	}
	return s.api.CreateProduct(ctx, sess.Token, req)
}

// ListSuppliers returns all suppliers
func (s *InventoryService) ListSuppliers(ctx context.Context, sess models.Session) ([]models.Supplier, error) {
	return s.api.ListSuppliers(ctx, sess.Token)
}

// CreateSupplier checks required fields and creates the supplier
func (s *InventoryService) CreateSupplier(ctx context.Context, sess models.Session, req models.CreateSupplierRequest) (string, error) {
	req.SupplierName = strings.TrimSpace(req.SupplierName)
	if req.SupplierName == "" {
		return "", fmt.Errorf("%w: supplierName is required", ErrInvalidInput)
	}
	return s.api.CreateSupplier(ctx, sess.Token, req)
}

// ListPurchases returns all purchases
func (s *InventoryService) ListPurchases(ctx context.Context, sess models.Session) ([]models.Purchase, error) {
	return s.api.ListPurchases(ctx, sess.Token)
}
