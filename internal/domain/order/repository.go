package order

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lewisgroup/storefront/internal/domain/shared"
)

// Repository defines the interface for order persistence
type Repository interface {
	// FindByID finds an order with its items
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByIDForBuyer finds an order owned by the buyer
	FindByIDForBuyer(ctx context.Context, buyerID string, id uuid.UUID) (*Order, error)

	// FindByBuyer lists a buyer's orders, excluding soft-deleted ones
	FindByBuyer(ctx context.Context, buyerID string, filter shared.Filter) ([]Order, error)

	// FindAll lists all orders excluding soft-deleted ones (admin view)
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)

	// FindSince lists non-deleted orders placed at or after the given time
	FindSince(ctx context.Context, since time.Time) ([]Order, error)

	// Save creates or updates an order and its items
	Save(ctx context.Context, o *Order) error

	// Count counts orders matching the filter, excluding soft-deleted ones
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
