package handler

import (
	"github.com/gin-gonic/gin"
	basketapp "github.com/lewisgroup/storefront/internal/application/basket"
	"github.com/lewisgroup/storefront/internal/infrastructure/config"
	"github.com/lewisgroup/storefront/internal/interfaces/http/middleware"
)

// BasketHandler handles basket API endpoints. Both anonymous and signed-in
// buyers can use the basket; the buyer identity middleware resolves who
// the basket belongs to.
type BasketHandler struct {
	BaseHandler
	basketService *basketapp.BasketService
	auth          *middleware.AuthMiddleware
	cookieCfg     config.CookieConfig
}

// NewBasketHandler creates a new BasketHandler
func NewBasketHandler(basketService *basketapp.BasketService, auth *middleware.AuthMiddleware, cookieCfg config.CookieConfig) *BasketHandler {
	return &BasketHandler{
		basketService: basketService,
		auth:          auth,
		cookieCfg:     cookieCfg,
	}
}

// RegisterRoutes registers basket routes
func (h *BasketHandler) RegisterRoutes(rg *gin.RouterGroup) {
	basket := rg.Group("/basket", h.auth.OptionalAuth(), middleware.BuyerIdentity(h.cookieCfg))
	{
		basket.GET("", h.Get)
		basket.POST("/items", h.AddItem)
		basket.DELETE("/items", h.RemoveItem)
	}
}

// Get returns the buyer's basket
func (h *BasketHandler) Get(c *gin.Context) {
	buyerID := middleware.GetBuyerID(c)

	basket, err := h.basketService.Get(c.Request.Context(), buyerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, basket)
}

// AddItem adds units of a product to the basket. The applied quantity may
// be lower than requested when stock or the per-item ceiling clamps it;
// the response carries a warning in that case.
func (h *BasketHandler) AddItem(c *gin.Context) {
	buyerID := middleware.GetBuyerID(c)

	var req basketapp.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.basketService.AddItem(c.Request.Context(), buyerID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// RemoveItem removes units of a product from the basket, dropping the line
// when the quantity reaches zero
func (h *BasketHandler) RemoveItem(c *gin.Context) {
	buyerID := middleware.GetBuyerID(c)

	var req basketapp.RemoveItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	basket, err := h.basketService.RemoveItem(c.Request.Context(), buyerID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, basket)
}
