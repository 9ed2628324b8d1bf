package handler

import (
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/lewisgroup/storefront/internal/application/catalog"
	"github.com/lewisgroup/storefront/internal/interfaces/http/middleware"
)

// maxImageBytes caps uploaded product images at 5 MiB
const maxImageBytes = 5 << 20

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// ProductHandler handles catalog API endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
	auth           *middleware.AuthMiddleware
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService, auth *middleware.AuthMiddleware) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		auth:           auth,
	}
}

// RegisterRoutes registers catalog routes. Browsing is public; catalog
// management requires an admin token.
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.GET("", h.List)
		products.GET("/best-sellers", h.BestSellers)
		products.GET("/taxonomy", h.Taxonomy)
		products.GET("/:id", h.GetByID)
	}

	admin := rg.Group("/products", h.auth.RequireAdmin())
	{
		admin.POST("", h.Create)
		admin.PUT("/:id", h.Update)
		admin.DELETE("/:id", h.Delete)
	}
}

// List returns a filtered, paginated product listing
func (h *ProductHandler) List(c *gin.Context) {
	filter := catalogapp.ProductListFilter{Page: 1, PageSize: 20}
	if err := c.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	page, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetByID returns a single product
func (h *ProductHandler) GetByID(c *gin.Context) {
	productID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	product, err := h.productService.Get(c.Request.Context(), productID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, product)
}

// BestSellers returns the top products ranked by units sold
func (h *ProductHandler) BestSellers(c *gin.Context) {
	sellers, err := h.productService.BestSellers(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, sellers)
}

// Taxonomy returns the fixed category and type taxonomy
func (h *ProductHandler) Taxonomy(c *gin.Context) {
	h.Success(c, h.productService.Taxonomy())
}

// Create adds a product to the catalog, with an optional image sent as
// multipart field "image"
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	image, err := h.readImage(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.Create(c.Request.Context(), req, image)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, product)
}

// Update replaces a product's fields and optionally its image
func (h *ProductHandler) Update(c *gin.Context) {
	productID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	image, err := h.readImage(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.Update(c.Request.Context(), productID, req, image)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, product)
}

// Delete removes a product from the catalog
func (h *ProductHandler) Delete(c *gin.Context) {
	productID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	if err := h.productService.Delete(c.Request.Context(), productID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// readImage extracts the optional "image" multipart file. Returns nil when
// the request carries no image.
func (h *ProductHandler) readImage(c *gin.Context) (*catalogapp.ImageUpload, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		// No file attached is fine
		return nil, nil
	}
	if fileHeader.Size > maxImageBytes {
		return nil, errValidation("Image exceeds the 5 MiB limit")
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedImageExtensions[ext] {
		return nil, errValidation("Image must be jpg, jpeg, png, or webp")
	}

	data, contentType, err := readMultipartFile(fileHeader)
	if err != nil {
		return nil, err
	}

	return &catalogapp.ImageUpload{
		Data:        data,
		ContentType: contentType,
		Filename:    fileHeader.Filename,
	}, nil
}

func readMultipartFile(fileHeader *multipart.FileHeader) ([]byte, string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
	if err != nil {
		return nil, "", err
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return data, contentType, nil
}

type validationError string

func (e validationError) Error() string { return string(e) }

func errValidation(msg string) error { return validationError(msg) }
