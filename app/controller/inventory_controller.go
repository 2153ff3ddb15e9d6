package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"inventory-admin/models"
	"inventory-admin/service"
)

// InventoryController handles the products, suppliers and purchases screens
type InventoryController struct {
	inventory  service.InventoryServiceInterface
	thumbnails service.ThumbnailServiceInterface
}

// NewInventoryController creates a new InventoryController
func NewInventoryController(inventory service.InventoryServiceInterface, thumbnails service.ThumbnailServiceInterface) *InventoryController {
	return &InventoryController{inventory: inventory, thumbnails: thumbnails}
}

// MessageResponse carries the API's confirmation message
type MessageResponse struct {
	Message string `json:"message"`
}

// ListProducts handles GET /admin/products
func (c *InventoryController) ListProducts(w http.ResponseWriter, r *http.Request) {
	sess, ok := mustSession(w, r)
	if !ok {
		return
	}
	products, err := c.inventory.ListProducts(r.Context(), sess)
	if err != nil {
		writeError(w, "ListProducts", err, nil)
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

// CreateProduct handles POST /admin/products
// Example request:
// {"name": "Arnés M", "category": "arneses", "supplier": "s1", "purchasePrice": 12000, "sellingPrice": 25000, "stockQty": 10}
func (c *InventoryController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	sess, ok := mustSession(w, r)
	if !ok {
		return
	}
	var req models.CreateProductRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, "CreateProduct", err, nil)
		return
	}
	msg, err := c.inventory.CreateProduct(r.Context(), sess, req)
	if err != nil {
		writeError(w, "CreateProduct", err, nil)
		return
	}
	log.Info().Str("name", req.Name).Msg("✅ CreateProduct: product created")
	writeJSON(w, http.StatusCreated, MessageResponse{Message: msg})
}

// ListSuppliers handles GET /admin/suppliers
func (c *InventoryController) ListSuppliers(w http.ResponseWriter, r *http.Request) {
	sess, ok := mustSession(w, r)
	if !ok {
		return
	}
	suppliers, err := c.inventory.ListSuppliers(r.Context(), sess)
	if err != nil {
		writeError(w, "ListSuppliers", err, nil)
		return
	}
	if suppliers == nil {
		suppliers = []models.Supplier{}
	}
	writeJSON(w, http.StatusOK, suppliers)
}

// CreateSupplier handles POST /admin/suppliers
func (c *InventoryController) CreateSupplier(w http.ResponseWriter, r *http.Request) {
	sess, ok := mustSession(w, r)
	if !ok {
		return
	}
	var req models.CreateSupplierRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, "CreateSupplier", err, nil)
		return
	}
	msg, err := c.inventory.CreateSupplier(r.Context(), sess, req)
	if err != nil {
		writeError(w, "CreateSupplier", err, nil)
		return
	}
	log.Info().Str("supplierName", req.SupplierName).Msg("✅ CreateSupplier: supplier created")
	writeJSON(w, http.StatusCreated, MessageResponse{Message: msg})
}

// ListPurchases handles GET /admin/purchases
func (c *InventoryController) ListPurchases(w http.ResponseWriter, r *http.Request) {
	sess, ok := mustSession(w, r)
	if !ok {
		return
	}
	purchases, err := c.inventory.ListPurchases(r.Context(), sess)
	if err != nil {
		writeError(w, "ListPurchases", err, nil)
		return
	}
	if purchases == nil {
		purchases = []models.Purchase{}
	}
	writeJSON(w, http.StatusOK, purchases)
}

// ProductThumbnail handles GET /admin/products/{id}/thumbnail?size=thumb|medium
func (c *InventoryController) ProductThumbnail(w http.ResponseWriter, r *http.Request) {
	sess, ok := mustSession(w, r)
	if !ok {
		return
	}
	productID := chi.URLParam(r, "id")
	data, err := c.thumbnails.Thumbnail(r.Context(), sess, productID, r.URL.Query().Get("size"))
	if err != nil {
		writeError(w, "ProductThumbnail", err, nil)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "private, max-age=86400")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Error().Err(err).Msg("❌ ProductThumbnail: error writing image")
	}
}
