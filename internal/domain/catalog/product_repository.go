package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/lewisgroup/storefront/internal/domain/shared"
)

// BestSeller pairs a product with the number of units sold.
type BestSeller struct {
	Product   Product
	UnitsSold int64
}

// ProductRepository persists the catalog. List queries take a
// shared.Filter; the search term matches name and description, and the
// Filters map narrows by category and type.
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// FindBestSellers ranks products by units sold across orders that
	// were paid for or delivered.
	FindBestSellers(ctx context.Context, limit int) ([]BestSeller, error)

	Save(ctx context.Context, product *Product) error
	SaveBatch(ctx context.Context, products []*Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
