package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-admin/models"
)

func TestInventoryService_CreateProductValidation(t *testing.T) {
	tests := []struct {
		name string
		req  models.CreateProductRequest
	}{
		{"missing name", models.CreateProductRequest{Category: "c", Supplier: "s1"}},
		{"blank category", models.CreateProductRequest{Name: "n", Category: "  ", Supplier: "s1"}},
		{"missing supplier", models.CreateProductRequest{Name: "n", Category: "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{}
			svc := NewInventoryService(api)
			_, err := svc.CreateProduct(context.Background(), testSession, tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, api.createdProducts)
		})
	}
}

func TestInventoryService_CreateProductTrims(t *testing.T) {
	api := &fakeAPI{}
	svc := NewInventoryService(api)

	msg, err := svc.CreateProduct(context.Background(), testSession, models.CreateProductRequest{Name: " Collar ", Category: "collares", Supplier: "s1"})
	require.NoError(t, err)
	assert.Equal(t, "Product added", msg)
	require.Len(t, api.createdProducts, 1)
	assert.Equal(t, "Collar", api.createdProducts[0].Name)
}

func TestInventoryService_CreateSupplier(t *testing.T) {
	api := &fakeAPI{}
	svc := NewInventoryService(api)

	_, err := svc.CreateSupplier(context.Background(), testSession, models.CreateSupplierRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateSupplier(context.Background(), testSession, models.CreateSupplierRequest{SupplierName: "Acme"})
	require.NoError(t, err)
	assert.Len(t, api.createdSuppliers, 1)
}

func TestInventoryService_Lists(t *testing.T) {
	api := testCatalog()
	svc := NewInventoryService(api)

	products, err := svc.ListProducts(context.Background(), testSession)
	require.NoError(t, err)
	assert.Len(t, products, 3)

	suppliers, err := svc.ListSuppliers(context.Background(), testSession)
	require.NoError(t, err)
	assert.Len(t, suppliers, 2)
}
