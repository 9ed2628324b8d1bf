package basket

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for basket persistence
type Repository interface {
	// FindByBuyerID returns the buyer's basket with its items loaded
	FindByBuyerID(ctx context.Context, buyerID string) (*Basket, error)

	// Save creates or updates a basket and its items
	Save(ctx context.Context, b *Basket) error

	// Delete removes a basket and its items
	Delete(ctx context.Context, id uuid.UUID) error
}
