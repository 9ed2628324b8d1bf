package basket

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lewisgroup/storefront/internal/domain/basket"
	"github.com/lewisgroup/storefront/internal/domain/catalog"
	"github.com/lewisgroup/storefront/internal/domain/shared"
	"go.uber.org/zap"
)

// BasketService handles basket business operations
type BasketService struct {
	basketRepo  basket.Repository
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewBasketService creates a new BasketService
func NewBasketService(basketRepo basket.Repository, productRepo catalog.ProductRepository, logger *zap.Logger) *BasketService {
	return &BasketService{
		basketRepo:  basketRepo,
		productRepo: productRepo,
		logger:      logger.Named("basket"),
	}
}

// Get returns the buyer's basket with product details
func (s *BasketService) Get(ctx context.Context, buyerID string) (*BasketResponse, error) {
	b, err := s.basketRepo.FindByBuyerID(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, b)
}

// AddItem adds up to the requested quantity of a product to the buyer's
// basket, creating the basket on first add. The applied quantity is clamped
// server-side by live stock and the per-item ceiling; a partial apply is
// reported through the result's warning.
func (s *BasketService) AddItem(ctx context.Context, buyerID string, req AddItemRequest) (*AddItemResult, error) {
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	b, err := s.basketRepo.FindByBuyerID(ctx, buyerID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		b, err = basket.NewBasket(buyerID)
		if err != nil {
			return nil, err
		}
	}

	applied, err := b.AddItem(product, req.Quantity)
	if err != nil {
		return nil, err
	}

	if err := s.basketRepo.Save(ctx, b); err != nil {
		return nil, err
	}

	result := &AddItemResult{
		Requested: req.Quantity,
		Applied:   applied,
	}
	if applied < req.Quantity {
		result.Warning = fmt.Sprintf("Only %d of %d requested units of %s could be added", applied, req.Quantity, product.Name)
		s.logger.Info("Basket add clamped",
			zap.String("buyer_id", buyerID),
			zap.String("product_id", product.ID.String()),
			zap.Int64("requested", req.Quantity),
			zap.Int64("applied", applied))
	}

	resp, err := s.toResponse(ctx, b)
	if err != nil {
		return nil, err
	}
	result.Basket = *resp
	return result, nil
}

// RemoveItem removes units of a product from the buyer's basket
func (s *BasketService) RemoveItem(ctx context.Context, buyerID string, req RemoveItemRequest) (*BasketResponse, error) {
	b, err := s.basketRepo.FindByBuyerID(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	if err := b.RemoveItem(req.ProductID, req.Quantity); err != nil {
		return nil, err
	}

	if err := s.basketRepo.Save(ctx, b); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, b)
}

func (s *BasketService) toResponse(ctx context.Context, b *basket.Basket) (*BasketResponse, error) {
	ids := make([]uuid.UUID, 0, len(b.Items))
	for i := range b.Items {
		ids = append(ids, b.Items[i].ProductID)
	}

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	resp := ToBasketResponse(b, byID)
	return &resp, nil
}
