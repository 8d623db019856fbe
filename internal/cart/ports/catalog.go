// Package ports defines what the cart context needs from other contexts.
package ports

import (
	"context"

	catalog "storefront_backend/internal/catalog/domain"
)

// ProductReader resolves a product id to the catalog record added to the cart.
// Unknown ids must yield an apperr NotFound error.
type ProductReader interface {
	FindProduct(ctx context.Context, id int64) (catalog.Product, error)
}
