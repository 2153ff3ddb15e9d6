package service

import (
	"context"

	"inventory-admin/models"
)

// InventoryAPI is the part of the inventory API client the services use
type InventoryAPI interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginData, error)
	ListProducts(ctx context.Context, token string) ([]models.Product, error)
	CreateProduct(ctx context.Context, token string, req models.CreateProductRequest) (string, error)
	ListSuppliers(ctx context.Context, token string) ([]models.Supplier, error)
	CreateSupplier(ctx context.Context, token string, req models.CreateSupplierRequest) (string, error)
	ListPurchases(ctx context.Context, token string) ([]models.Purchase, error)
}

// Submitter sends assembled purchase drafts
type Submitter interface {
	Submit(ctx context.Context, token string, draft models.PurchaseDraft) (models.Confirmation, error)
}

// ImageFetcher downloads product images
type ImageFetcher interface {
	FetchImage(ctx context.Context, imageURL string) ([]byte, error)
}

// AuthServiceInterface defines the contract for the session lifecycle
type AuthServiceInterface interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.Session, error)
	Logout(ctx context.Context, sessionID string) error
	Authenticate(ctx context.Context, sessionID string) (*models.Session, error)
}

// DraftServiceInterface defines the contract for the purchase-creation flow
type DraftServiceInterface interface {
	Start(ctx context.Context, sess models.Session) (models.DraftView, error)
	Reload(ctx context.Context, sess models.Session, draftID string) (models.DraftView, error)
	Get(sess models.Session, draftID string) (models.DraftView, error)
	Suppliers(sess models.Session, draftID string) ([]models.Supplier, error)
	SelectSupplier(sess models.Session, draftID, supplierID string) (models.SelectSupplierResponse, error)
	EligibleProducts(sess models.Session, draftID string) ([]models.Product, error)
	Toggle(sess models.Session, draftID, productID string) (models.DraftView, error)
	SetQuantity(sess models.Session, draftID, productID string, quantity int) (models.DraftView, error)
	Submit(ctx context.Context, sess models.Session, draftID string) (models.SubmitResponse, models.DraftView, error)
	Cancel(sess models.Session, draftID string) error
}

// InventoryServiceInterface defines the contract for the list screens
type InventoryServiceInterface interface {
	ListProducts(ctx context.Context, sess models.Session) ([]models.Product, error)
	CreateProduct(ctx context.Context, sess models.Session, req models.CreateProductRequest) (string, error)
	ListSuppliers(ctx context.Context, sess models.Session) ([]models.Supplier, error)
	CreateSupplier(ctx context.Context, sess models.Session, req models.CreateSupplierRequest) (string, error)
	ListPurchases(ctx context.Context, sess models.Session) ([]models.Purchase, error)
}

// ReportServiceInterface defines the contract for purchase reports
type ReportServiceInterface interface {
	RenderPurchasesHTML(ctx context.Context, sess models.Session) (string, error)
	GeneratePurchasesPDF(ctx context.Context, sess models.Session) ([]byte, error)
}

// ThumbnailServiceInterface defines the contract for product thumbnails
type ThumbnailServiceInterface interface {
	Thumbnail(ctx context.Context, sess models.Session, productID, size string) ([]byte, error)
}
