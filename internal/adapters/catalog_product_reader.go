package adapters

import (
	"context"
	"fmt"

	"storefront_backend/internal/cart/ports"
	catalog "storefront_backend/internal/catalog/domain"
	catsvc "storefront_backend/internal/catalog/service"
)

// CatalogProductReader adapts the catalog service for the cart domain,
// satisfying ports.ProductReader from the cached full catalog.
type CatalogProductReader struct {
	svc *catsvc.Service
}

// NewCatalogProductReader creates a new catalog reader adapter.
func NewCatalogProductReader(svc *catsvc.Service) *CatalogProductReader {
	return &CatalogProductReader{svc: svc}
}

// FindProduct returns the product with id. Catalog errors keep their kind.
func (a *CatalogProductReader) FindProduct(ctx context.Context, id int64) (catalog.Product, error) {
	product, err := a.svc.FindProduct(ctx, id)
	if err != nil {
		return catalog.Product{}, fmt.Errorf("catalog adapter: find product %d: %w", id, err)
	}
	return product, nil
}

var _ ports.ProductReader = (*CatalogProductReader)(nil)
