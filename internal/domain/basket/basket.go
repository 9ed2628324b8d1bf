package basket

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lewisgroup/storefront/internal/domain/catalog"
	"github.com/lewisgroup/storefront/internal/domain/shared"
)

// PerItemCeiling caps how many units of a single product one basket may hold
const PerItemCeiling = 10

// Basket holds a buyer's pending items before checkout.
// BuyerID is the username for signed-in buyers or a generated token for
// anonymous ones; the basket is created lazily on first add.
type Basket struct {
	shared.BaseAggregateRoot
	BuyerID string       `gorm:"type:varchar(100);not null;uniqueIndex"`
	Items   []BasketItem `gorm:"foreignKey:BasketID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Basket) TableName() string {
	return "baskets"
}

// BasketItem is one product line in a basket
type BasketItem struct {
	shared.BaseEntity
	BasketID  uuid.UUID `gorm:"type:uuid;not null;index:idx_basket_product,unique,priority:1"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index:idx_basket_product,unique,priority:2"`
	Quantity  int64     `gorm:"not null"`
}

// TableName returns the table name for GORM
func (BasketItem) TableName() string {
	return "basket_items"
}

// NewBasket creates an empty basket for a buyer
func NewBasket(buyerID string) (*Basket, error) {
	if buyerID == "" {
		return nil, shared.NewDomainError("INVALID_BUYER", "Buyer ID cannot be empty")
	}
	return &Basket{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BuyerID:           buyerID,
		Items:             []BasketItem{},
	}, nil
}

// Quantity returns how many units of the product the basket already holds
func (b *Basket) Quantity(productID uuid.UUID) int64 {
	for i := range b.Items {
		if b.Items[i].ProductID == productID {
			return b.Items[i].Quantity
		}
	}
	return 0
}

// AddItem adds up to requested units of the product, clamped by both live
// stock and the per-item ceiling. It returns how many units were actually
// applied; zero headroom yields a stock-limit error and no mutation. A
// partial apply (0 < applied < requested) is valid and left to the caller
// to surface.
func (b *Basket) AddItem(product *catalog.Product, requested int64) (int64, error) {
	if requested <= 0 {
		return 0, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be greater than zero")
	}

	existing := b.Quantity(product.ID)
	available := product.AvailableFor(existing, PerItemCeiling)
	if available <= 0 {
		return 0, shared.NewDomainError("INSUFFICIENT_STOCK",
			fmt.Sprintf("No more units of %s can be added (available: %d)", product.Name, available))
	}

	applied := requested
	if applied > available {
		applied = available
	}

	for i := range b.Items {
		if b.Items[i].ProductID == product.ID {
			b.Items[i].Quantity += applied
			b.Items[i].UpdatedAt = time.Now()
			b.touch()
			return applied, nil
		}
	}

	b.Items = append(b.Items, BasketItem{
		BaseEntity: shared.NewBaseEntity(),
		BasketID:   b.ID,
		ProductID:  product.ID,
		Quantity:   applied,
	})
	b.touch()
	return applied, nil
}

// RemoveItem decrements the product line by qty, dropping the line when it
// reaches zero or below. Removing from a missing line is a no-op.
func (b *Basket) RemoveItem(productID uuid.UUID, qty int64) error {
	if qty <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be greater than zero")
	}
	for i := range b.Items {
		if b.Items[i].ProductID == productID {
			b.Items[i].Quantity -= qty
			if b.Items[i].Quantity <= 0 {
				b.Items = append(b.Items[:i], b.Items[i+1:]...)
			} else {
				b.Items[i].UpdatedAt = time.Now()
			}
			b.touch()
			return nil
		}
	}
	return nil
}

// IsEmpty returns true when the basket holds no lines
func (b *Basket) IsEmpty() bool {
	return len(b.Items) == 0
}

// RekeyTo reassigns the basket to a new buyer (anonymous basket claimed on login)
func (b *Basket) RekeyTo(buyerID string) error {
	if buyerID == "" {
		return shared.NewDomainError("INVALID_BUYER", "Buyer ID cannot be empty")
	}
	b.BuyerID = buyerID
	b.touch()
	return nil
}

func (b *Basket) touch() {
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
}
