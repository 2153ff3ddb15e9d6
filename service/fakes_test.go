package service

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"inventory-admin/models"
)

type fakeAPI struct {
	mu sync.Mutex

	loginData *models.LoginData
	loginErr  error

	products    []models.Product
	suppliers   []models.Supplier
	purchases   []models.Purchase
	productsErr error

	createdProducts  []models.CreateProductRequest
	createdSuppliers []models.CreateSupplierRequest
	productCalls     int
}

func (f *fakeAPI) Login(_ context.Context, _ models.LoginRequest) (*models.LoginData, error) {
	return f.loginData, f.loginErr
}

func (f *fakeAPI) ListProducts(_ context.Context, _ string) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.productCalls++
	return f.products, f.productsErr
}

func (f *fakeAPI) CreateProduct(_ context.Context, _ string, req models.CreateProductRequest) (string, error) {
	f.createdProducts = append(f.createdProducts, req)
	return "Product added", nil
}

func (f *fakeAPI) ListSuppliers(_ context.Context, _ string) ([]models.Supplier, error) {
	return f.suppliers, nil
}

func (f *fakeAPI) CreateSupplier(_ context.Context, _ string, req models.CreateSupplierRequest) (string, error) {
	f.createdSuppliers = append(f.createdSuppliers, req)
	return "Supplier added", nil
}

func (f *fakeAPI) ListPurchases(_ context.Context, _ string) ([]models.Purchase, error) {
	return f.purchases, nil
}

type fakeSubmitter struct {
	got  []models.PurchaseDraft
	conf models.Confirmation
	err  error
}

func (f *fakeSubmitter) Submit(_ context.Context, _ string, d models.PurchaseDraft) (models.Confirmation, error) {
	f.got = append(f.got, d)
	return f.conf, f.err
}

func testCatalog() *fakeAPI {
	return &fakeAPI{
		suppliers: []models.Supplier{
			{ID: "s1", SupplierName: "Acme"},
			{ID: "s2", SupplierName: "Globex"},
		},
		products: []models.Product{
			{ID: "p1", Name: "Collar", Supplier: models.SupplierRef{ID: "s1"}, PurchasePrice: decimal.NewFromInt(100)},
			{ID: "p2", Name: "Leash", Supplier: models.SupplierRef{ID: "s1"}, PurchasePrice: decimal.NewFromInt(50)},
			{ID: "p3", Name: "Bowl", Supplier: models.SupplierRef{ID: "s2"}, PurchasePrice: decimal.NewFromInt(30)},
		},
	}
}

var testSession = models.Session{ID: "sess-1", Token: "tok"}
