package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lewisgroup/storefront/internal/domain/basket"
	"github.com/lewisgroup/storefront/internal/domain/shared"
	"gorm.io/gorm"
)

// GormBasketRepository implements basket.Repository using GORM
type GormBasketRepository struct {
	db *gorm.DB
}

// NewGormBasketRepository creates a new GormBasketRepository
func NewGormBasketRepository(db *gorm.DB) *GormBasketRepository {
	return &GormBasketRepository{db: db}
}

// FindByBuyerID returns the buyer's basket with its items loaded
func (r *GormBasketRepository) FindByBuyerID(ctx context.Context, buyerID string) (*basket.Basket, error) {
	var b basket.Basket
	if err := dbFrom(ctx, r.db).WithContext(ctx).
		Preload("Items").
		First(&b, "buyer_id = ?", buyerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// Save creates or updates a basket. Item lines are replaced wholesale so
// removed lines do not linger.
func (r *GormBasketRepository) Save(ctx context.Context, b *basket.Basket) error {
	db := dbFrom(ctx, r.db).WithContext(ctx)

	if err := db.Omit("Items").Save(b).Error; err != nil {
		return err
	}
	if err := db.Where("basket_id = ?", b.ID).Delete(&basket.BasketItem{}).Error; err != nil {
		return err
	}
	if len(b.Items) == 0 {
		return nil
	}
	return db.Create(&b.Items).Error
}

// Delete removes a basket and its items
func (r *GormBasketRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := dbFrom(ctx, r.db).WithContext(ctx)

	if err := db.Where("basket_id = ?", id).Delete(&basket.BasketItem{}).Error; err != nil {
		return err
	}
	result := db.Delete(&basket.Basket{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormBasketRepository implements basket.Repository
var _ basket.Repository = (*GormBasketRepository)(nil)
