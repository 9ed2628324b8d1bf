package catalog

import (
	"time"

	"github.com/lewisgroup/storefront/internal/domain/shared"
)

// Product represents a catalog item offered for sale.
// It is the aggregate root for catalog operations; prices are stored
// in minor currency units.
type Product struct {
	shared.BaseAggregateRoot
	Name            string `gorm:"type:varchar(200);not null;index"`
	Description     string `gorm:"type:text"`
	Price           int64  `gorm:"not null"`
	PictureURL      string `gorm:"type:varchar(500)"`
	PictureKey      string `gorm:"type:varchar(200)"` // object-storage key, empty for seeded URLs
	Type            string `gorm:"type:varchar(50);not null;index"`
	Category        string `gorm:"type:varchar(50);not null;index"`
	QuantityInStock int64  `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product after validating its fields
func NewProduct(name, description string, price int64, category, productType string, quantityInStock int64) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if price <= 0 {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price must be greater than zero")
	}
	if quantityInStock < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Stock quantity cannot be negative")
	}
	if err := ValidateTaxonomy(category, productType); err != nil {
		return nil, err
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
		Price:             price,
		Type:              productType,
		Category:          category,
		QuantityInStock:   quantityInStock,
	}, nil
}

// Update replaces the product's descriptive fields
func (p *Product) Update(name, description string, price int64, category, productType string, quantityInStock int64) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	if price <= 0 {
		return shared.NewDomainError("INVALID_PRICE", "Price must be greater than zero")
	}
	if quantityInStock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock quantity cannot be negative")
	}
	if err := ValidateTaxonomy(category, productType); err != nil {
		return err
	}

	p.Name = name
	p.Description = description
	p.Price = price
	p.Category = category
	p.Type = productType
	p.QuantityInStock = quantityInStock
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetPicture sets the product image URL and its storage key
func (p *Product) SetPicture(url, key string) {
	p.PictureURL = url
	p.PictureKey = key
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// AvailableFor returns how many more units a buyer holding existingQty
// may still add, bounded by live stock and the per-item ceiling.
func (p *Product) AvailableFor(existingQty, ceiling int64) int64 {
	byStock := p.QuantityInStock - existingQty
	byCeiling := ceiling - existingQty
	available := byStock
	if byCeiling < available {
		available = byCeiling
	}
	if available < 0 {
		return 0
	}
	return available
}

// DecrementStock reduces stock by qty, clamping at zero. Oversells lost to
// concurrent checkouts are absorbed here rather than failing the order.
func (p *Product) DecrementStock(qty int64) {
	p.QuantityInStock -= qty
	if p.QuantityInStock < 0 {
		p.QuantityInStock = 0
	}
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// RestoreStock returns qty units to stock (order cancellation or refund)
func (p *Product) RestoreStock(qty int64) error {
	if qty < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Restore quantity cannot be negative")
	}
	p.QuantityInStock += qty
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// InStock returns true if at least one unit is available
func (p *Product) InStock() bool {
	return p.QuantityInStock > 0
}

func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
