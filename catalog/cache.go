// Package catalog caches the products and suppliers used while a purchase
// draft is being edited.
package catalog

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"inventory-admin/models"
)

// Source fetches the reference data from the inventory API
type Source interface {
	ListProducts(ctx context.Context, token string) ([]models.Product, error)
	ListSuppliers(ctx context.Context, token string) ([]models.Supplier, error)
}

// LoadError reports a failed catalog fetch. The cache stays empty.
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load catalog: %v", e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Cache is loaded once and read-only afterwards
type Cache struct {
	source    Source
	loaded    bool
	products  []models.Product
	suppliers []models.Supplier
}

// NewCache creates an empty Cache backed by source
func NewCache(source Source) *Cache {
	return &Cache{source: source}
}

// Load fetches products and suppliers. Both must succeed; on failure a *LoadError
// is returned and nothing is cached. Loading an already loaded cache is a no-op.
func (c *Cache) Load(ctx context.Context, token string) error {
	if c.loaded {
		return nil
	}

	var products []models.Product
	var suppliers []models.Supplier

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = c.source.ListProducts(gctx, token)
		if err != nil {
			return fmt.Errorf("list products: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		suppliers, err = c.source.ListSuppliers(gctx, token)
		if err != nil {
			return fmt.Errorf("list suppliers: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("❌ LoadCatalog: fetch failed")
		return &LoadError{Err: err}
	}

	kept := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.PurchasePrice.IsNegative() {
			log.Warn().Str("productId", p.ID).Str("price", p.PurchasePrice.String()).
				Msg("⚠️  LoadCatalog: skipping product with negative purchase price")
			continue
		}
		kept = append(kept, p)
	}

	c.products = kept
	c.suppliers = suppliers
	c.loaded = true
	log.Info().Int("products", len(kept)).Int("suppliers", len(suppliers)).Msg("✅ LoadCatalog: catalog loaded")
	return nil
}

// Loaded reports whether Load has succeeded
func (c *Cache) Loaded() bool {
	return c.loaded
}

// Products returns all cached products
func (c *Cache) Products() []models.Product {
	return append([]models.Product(nil), c.products...)
}

// Suppliers returns all cached suppliers
func (c *Cache) Suppliers() []models.Supplier {
	return append([]models.Supplier(nil), c.suppliers...)
}

// Product looks up a cached product by id
func (c *Cache) Product(id string) (models.Product, bool) {
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// Supplier looks up a cached supplier by id
func (c *Cache) Supplier(id string) (models.Supplier, bool) {
	for _, s := range c.suppliers {
		if s.ID == id {
			return s, true
		}
	}
	return models.Supplier{}, false
}

// ProductsForSupplier returns the products owned by supplierID, in catalog order.
// It returns an empty slice for an unset supplier or an unloaded cache.
func (c *Cache) ProductsForSupplier(supplierID string) []models.Product {
	out := []models.Product{}
	if supplierID == "" || !c.loaded {
		return out
	}
	for _, p := range c.products {
		if p.SupplierID() == supplierID {
			out = append(out, p)
		}
	}
	return out
}
