package handler

import (
	"github.com/gin-gonic/gin"
	reportapp "github.com/lewisgroup/storefront/internal/application/report"
	"github.com/lewisgroup/storefront/internal/interfaces/http/middleware"
)

// ReportHandler handles admin reporting endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
	auth          *middleware.AuthMiddleware
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService, auth *middleware.AuthMiddleware) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		auth:          auth,
	}
}

// RegisterRoutes registers reporting routes, admin only
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports", h.auth.RequireAdmin())
	{
		reports.GET("/sales", h.SalesSummary)
		reports.GET("/products", h.ProductRanking)
		reports.GET("/inventory", h.InventoryLevels)
	}
}

// SalesSummary returns aggregated order activity for the window
func (h *ReportHandler) SalesSummary(c *gin.Context) {
	var filter reportapp.ReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	summary, err := h.reportService.SalesSummary(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}

// ProductRanking returns products ranked by units sold
func (h *ReportHandler) ProductRanking(c *gin.Context) {
	var filter reportapp.ReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	ranking, err := h.reportService.ProductRanking(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, ranking)
}

// InventoryLevels returns current stock across the catalog
func (h *ReportHandler) InventoryLevels(c *gin.Context) {
	lines, err := h.reportService.InventoryLevels(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, lines)
}
