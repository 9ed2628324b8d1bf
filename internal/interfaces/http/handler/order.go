package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	orderapp "github.com/lewisgroup/storefront/internal/application/order"
	"github.com/lewisgroup/storefront/internal/infrastructure/config"
	"github.com/lewisgroup/storefront/internal/interfaces/http/middleware"
)

// OrderHandler handles order API endpoints
type OrderHandler struct {
	BaseHandler
	orderService *orderapp.OrderService
	auth         *middleware.AuthMiddleware
	cookieCfg    config.CookieConfig
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *orderapp.OrderService, auth *middleware.AuthMiddleware, cookieCfg config.CookieConfig) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		auth:         auth,
		cookieCfg:    cookieCfg,
	}
}

// RegisterRoutes registers order routes. Buyers, anonymous included,
// manage their own orders; order administration is registered separately
// by RegisterAdminRoutes.
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders", h.auth.OptionalAuth(), middleware.BuyerIdentity(h.cookieCfg))
	{
		orders.POST("", h.Place)
		orders.GET("", h.List)
		orders.GET("/:id", h.GetByID)
		orders.GET("/:id/installments", h.Installments)
		orders.POST("/:id/cancel", h.Cancel)
		orders.DELETE("/:id", h.Delete)
	}
}

// RegisterAdminRoutes registers order administration routes
func (h *OrderHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders", h.auth.RequireAdmin())
	{
		orders.GET("", h.ListAll)
		orders.PUT("/:id/status", h.UpdateStatus)
		orders.POST("/:id/refund", h.Refund)
		orders.DELETE("/:id", h.DeleteAny)
	}
}

// Place converts the buyer's basket into an order
func (h *OrderHandler) Place(c *gin.Context) {
	buyerID := middleware.GetBuyerID(c)

	var req orderapp.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	placed, err := h.orderService.Place(c.Request.Context(), buyerID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, placed)
}

// List returns the buyer's orders
func (h *OrderHandler) List(c *gin.Context) {
	buyerID := middleware.GetBuyerID(c)

	filter := orderapp.OrderListFilter{Page: 1, PageSize: 20}
	if err := c.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	page, err := h.orderService.ListForBuyer(c.Request.Context(), buyerID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetByID returns one of the buyer's orders
func (h *OrderHandler) GetByID(c *gin.Context) {
	buyerID := middleware.GetBuyerID(c)

	orderID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	found, err := h.orderService.GetForBuyer(c.Request.Context(), buyerID, orderID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, found)
}

// Installments returns a monthly payment schedule for an order. The months
// query parameter selects the term and is clamped to the supported range.
func (h *OrderHandler) Installments(c *gin.Context) {
	buyerID := middleware.GetBuyerID(c)

	orderID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	months := 0
	if raw := c.Query("months"); raw != "" {
		months, err = strconv.Atoi(raw)
		if err != nil {
			h.BadRequest(c, "months must be an integer")
			return
		}
	}

	schedule, err := h.orderService.Installments(c.Request.Context(), buyerID, orderID, months)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, schedule)
}

// Cancel cancels one of the buyer's orders and restores its stock
func (h *OrderHandler) Cancel(c *gin.Context) {
	buyerID := middleware.GetBuyerID(c)

	orderID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	cancelled, err := h.orderService.Cancel(c.Request.Context(), buyerID, orderID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, cancelled)
}

// Delete hides one of the buyer's orders from their history
func (h *OrderHandler) Delete(c *gin.Context) {
	buyerID := middleware.GetBuyerID(c)

	orderID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	if err := h.orderService.DeleteOwn(c.Request.Context(), buyerID, orderID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// ListAll returns all orders for administration
func (h *OrderHandler) ListAll(c *gin.Context) {
	filter := orderapp.OrderListFilter{Page: 1, PageSize: 20}
	if err := c.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	page, err := h.orderService.ListAll(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// UpdateStatus moves an order along its lifecycle
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req orderapp.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	updated, err := h.orderService.UpdateStatus(c.Request.Context(), orderID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, updated)
}

// Refund marks an order returned and restores its stock
func (h *OrderHandler) Refund(c *gin.Context) {
	orderID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	refunded, err := h.orderService.Refund(c.Request.Context(), orderID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, refunded)
}

// DeleteAny soft-deletes any order
func (h *OrderHandler) DeleteAny(c *gin.Context) {
	orderID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	if err := h.orderService.DeleteAny(c.Request.Context(), orderID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
