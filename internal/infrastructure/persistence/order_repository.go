package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lewisgroup/storefront/internal/domain/order"
	"github.com/lewisgroup/storefront/internal/domain/shared"
	"gorm.io/gorm"
)

// GormOrderRepository implements order.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order with its items
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var o order.Order
	if err := dbFrom(ctx, r.db).WithContext(ctx).
		Preload("Items").
		First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindByIDForBuyer finds an order owned by the buyer
func (r *GormOrderRepository) FindByIDForBuyer(ctx context.Context, buyerID string, id uuid.UUID) (*order.Order, error) {
	var o order.Order
	if err := dbFrom(ctx, r.db).WithContext(ctx).
		Preload("Items").
		Where("id = ? AND buyer_id = ?", id, buyerID).
		First(&o).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindByBuyer lists a buyer's orders, excluding soft-deleted ones
func (r *GormOrderRepository) FindByBuyer(ctx context.Context, buyerID string, filter shared.Filter) ([]order.Order, error) {
	var orders []order.Order
	query := r.applyFilter(
		dbFrom(ctx, r.db).WithContext(ctx).Model(&order.Order{}).
			Preload("Items").
			Where("buyer_id = ? AND status != ?", buyerID, order.StatusDeleted),
		filter,
	)

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindAll lists all orders excluding soft-deleted ones
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	var orders []order.Order
	query := r.applyFilter(
		dbFrom(ctx, r.db).WithContext(ctx).Model(&order.Order{}).
			Preload("Items").
			Where("status != ?", order.StatusDeleted),
		filter,
	)

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindSince lists non-deleted orders placed at or after the given time
func (r *GormOrderRepository) FindSince(ctx context.Context, since time.Time) ([]order.Order, error) {
	var orders []order.Order
	if err := dbFrom(ctx, r.db).WithContext(ctx).
		Preload("Items").
		Where("order_date >= ? AND status != ?", since, order.StatusDeleted).
		Order("order_date DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Save creates or updates an order and its items
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	db := dbFrom(ctx, r.db).WithContext(ctx)

	if err := db.Omit("Items").Save(o).Error; err != nil {
		return err
	}
	if len(o.Items) == 0 {
		return nil
	}
	// Item lines are immutable snapshots; upsert covers both create and re-save
	return db.Save(&o.Items).Error
}

// Count counts orders matching the filter, excluding soft-deleted ones
func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := dbFrom(ctx, r.db).WithContext(ctx).Model(&order.Order{}).
		Where("status != ?", order.StatusDeleted)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("order_date DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "buyer_id":
			query = query.Where("buyer_id = ?", value)
		case "since":
			query = query.Where("order_date >= ?", value)
		case "until":
			query = query.Where("order_date <= ?", value)
		}
	}
	return query
}

// Ensure GormOrderRepository implements order.Repository
var _ order.Repository = (*GormOrderRepository)(nil)
