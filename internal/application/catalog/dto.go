package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/lewisgroup/storefront/internal/domain/catalog"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Name            string `json:"name" form:"name" binding:"required,min=1,max=200"`
	Description     string `json:"description" form:"description" binding:"max=2000"`
	Price           int64  `json:"price" form:"price" binding:"required,gt=0"`
	Category        string `json:"category" form:"category" binding:"required"`
	Type            string `json:"type" form:"type" binding:"required"`
	QuantityInStock int64  `json:"quantity_in_stock" form:"quantity_in_stock" binding:"min=0"`
}

// UpdateProductRequest represents a full update of a product's fields
type UpdateProductRequest struct {
	Name            string `json:"name" form:"name" binding:"required,min=1,max=200"`
	Description     string `json:"description" form:"description" binding:"max=2000"`
	Price           int64  `json:"price" form:"price" binding:"required,gt=0"`
	Category        string `json:"category" form:"category" binding:"required"`
	Type            string `json:"type" form:"type" binding:"required"`
	QuantityInStock int64  `json:"quantity_in_stock" form:"quantity_in_stock" binding:"min=0"`
}

// ImageUpload carries a product image received with a create or update
type ImageUpload struct {
	Data        []byte
	ContentType string
	Filename    string
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Type     string `form:"type"`
	MinPrice *int64 `form:"min_price" binding:"omitempty,min=0"`
	MaxPrice *int64 `form:"max_price" binding:"omitempty,min=0"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by" binding:"omitempty,oneof=name price created_at"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Price           int64     `json:"price"`
	PictureURL      string    `json:"picture_url"`
	Type            string    `json:"type"`
	Category        string    `json:"category"`
	QuantityInStock int64     `json:"quantity_in_stock"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// BestSellerResponse pairs a product with its units sold
type BestSellerResponse struct {
	Product   ProductResponse `json:"product"`
	UnitsSold int64           `json:"units_sold"`
}

// TaxonomyResponse lists the store's categories and their product types
type TaxonomyResponse struct {
	Categories []string            `json:"categories"`
	Types      map[string][]string `json:"types"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Price:           p.Price,
		PictureURL:      p.PictureURL,
		Type:            p.Type,
		Category:        p.Category,
		QuantityInStock: p.QuantityInStock,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
