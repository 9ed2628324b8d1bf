package basket

import (
	"github.com/google/uuid"
	"github.com/lewisgroup/storefront/internal/domain/basket"
	"github.com/lewisgroup/storefront/internal/domain/catalog"
)

// AddItemRequest adds units of a product to the buyer's basket
type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int64     `json:"quantity" binding:"required,gt=0"`
}

// RemoveItemRequest removes units of a product from the buyer's basket
type RemoveItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int64     `json:"quantity" binding:"required,gt=0"`
}

// BasketItemResponse is one basket line joined with its product
type BasketItemResponse struct {
	ProductID  uuid.UUID `json:"product_id"`
	Name       string    `json:"name"`
	Price      int64     `json:"price"`
	PictureURL string    `json:"picture_url"`
	Category   string    `json:"category"`
	Type       string    `json:"type"`
	Quantity   int64     `json:"quantity"`
}

// BasketResponse represents the buyer's basket in API responses
type BasketResponse struct {
	ID       uuid.UUID            `json:"id"`
	BuyerID  string               `json:"buyer_id"`
	Items    []BasketItemResponse `json:"items"`
	Subtotal int64                `json:"subtotal"`
}

// AddItemResult reports how much of an add was applied. Warning is set on
// a partial apply, when stock or the per-item ceiling clamped the request.
type AddItemResult struct {
	Requested int64          `json:"requested"`
	Applied   int64          `json:"applied"`
	Warning   string         `json:"warning,omitempty"`
	Basket    BasketResponse `json:"basket"`
}

// ToBasketResponse joins basket lines with their products
func ToBasketResponse(b *basket.Basket, products map[uuid.UUID]catalog.Product) BasketResponse {
	resp := BasketResponse{
		ID:      b.ID,
		BuyerID: b.BuyerID,
		Items:   make([]BasketItemResponse, 0, len(b.Items)),
	}
	for i := range b.Items {
		item := b.Items[i]
		product, ok := products[item.ProductID]
		if !ok {
			// Product deleted since it was added; hide the orphaned line
			continue
		}
		resp.Items = append(resp.Items, BasketItemResponse{
			ProductID:  item.ProductID,
			Name:       product.Name,
			Price:      product.Price,
			PictureURL: product.PictureURL,
			Category:   product.Category,
			Type:       product.Type,
			Quantity:   item.Quantity,
		})
		resp.Subtotal += product.Price * item.Quantity
	}
	return resp
}
