package handler

import (
	"github.com/gin-gonic/gin"
	identityapp "github.com/lewisgroup/storefront/internal/application/identity"
	"github.com/lewisgroup/storefront/internal/infrastructure/config"
	"github.com/lewisgroup/storefront/internal/interfaces/http/middleware"
)

// AuthHandler handles account and authentication endpoints
type AuthHandler struct {
	BaseHandler
	authService *identityapp.AuthService
	auth        *middleware.AuthMiddleware
	cookieCfg   config.CookieConfig
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *identityapp.AuthService, auth *middleware.AuthMiddleware, cookieCfg config.CookieConfig) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		auth:        auth,
		cookieCfg:   cookieCfg,
	}
}

// RegisterRoutes registers authentication and account routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", h.auth.RequireAuth(), h.Logout)
	}

	account := rg.Group("/account", h.auth.RequireAuth())
	{
		account.GET("", h.CurrentUser)
		account.PUT("", h.UpdateProfile)
		account.GET("/address", h.GetAddress)
		account.PUT("/address", h.SaveAddress)
	}
}

// Register creates a new member account
func (h *AuthHandler) Register(c *gin.Context) {
	var req identityapp.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, user)
}

// Login authenticates an account. When the request carries an anonymous
// basket cookie, that basket is merged into the account and the cookie
// is cleared.
func (h *AuthHandler) Login(c *gin.Context) {
	var req identityapp.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	req.AnonymousBuyerID = middleware.GetAnonymousBuyerID(c)

	result, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	if req.AnonymousBuyerID != "" {
		middleware.ClearBuyerCookie(c, h.cookieCfg)
	}

	h.Success(c, result)
}

// Refresh exchanges a refresh token for a new token pair
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Logout revokes the presented access token
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := middleware.GetJWTClaims(c)
	if !ok {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// CurrentUser returns the authenticated account
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	user, err := h.authService.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, user)
}

// UpdateProfile changes the account's username and/or email
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	var req identityapp.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, user)
}

// GetAddress returns the account's saved shipping address
func (h *AuthHandler) GetAddress(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	address, err := h.authService.GetAddress(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, address)
}

// SaveAddress stores the account's shipping address
func (h *AuthHandler) SaveAddress(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	var req identityapp.AddressDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	address, err := h.authService.SaveAddress(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, address)
}
