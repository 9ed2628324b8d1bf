package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lewisgroup/storefront/internal/infrastructure/auth"
	"github.com/lewisgroup/storefront/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// JWT context keys
const (
	JWTClaimsKey   = "jwt_claims"
	JWTUserIDKey   = "jwt_user_id"
	JWTUsernameKey = "jwt_username"
	JWTRoleKey     = "jwt_role"
	AuthHeaderKey  = "Authorization"
	BearerPrefix   = "Bearer "
)

// AuthMiddleware validates access tokens and checks the blacklist
type AuthMiddleware struct {
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
}

// NewAuthMiddleware creates an AuthMiddleware. The blacklist may be nil.
func NewAuthMiddleware(jwtService *auth.JWTService, blacklist auth.TokenBlacklist, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger.Named("auth_middleware"),
	}
}

// RequireAuth rejects requests without a valid access token
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := m.authenticate(c)
		if err != nil {
			abortUnauthorized(c, err)
			return
		}
		setClaims(c, claims)
		c.Next()
	}
}

// RequireAdmin rejects requests from non-admin accounts
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := m.authenticate(c)
		if err != nil {
			abortUnauthorized(c, err)
			return
		}
		if !claims.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(
				dto.ErrCodeForbidden, "Admin access required"))
			return
		}
		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuth attaches claims when a valid token is present but lets
// unauthenticated requests through. Used on basket and checkout routes
// where anonymous buyers are allowed.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader(AuthHeaderKey) == "" {
			c.Next()
			return
		}
		claims, err := m.authenticate(c)
		if err != nil {
			// A token was presented but is unusable. Reject rather than
			// silently downgrading to anonymous.
			abortUnauthorized(c, err)
			return
		}
		setClaims(c, claims)
		c.Next()
	}
}

func (m *AuthMiddleware) authenticate(c *gin.Context) (*auth.Claims, error) {
	authHeader := c.GetHeader(AuthHeaderKey)
	if authHeader == "" {
		return nil, auth.ErrInvalidToken
	}
	if !strings.HasPrefix(authHeader, BearerPrefix) {
		return nil, auth.ErrInvalidToken
	}
	tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
	if tokenString == "" {
		return nil, auth.ErrInvalidToken
	}

	claims, err := m.jwtService.ValidateAccessToken(tokenString)
	if err != nil {
		return nil, err
	}

	if m.blacklist != nil && claims.ID != "" {
		blacklisted, err := m.blacklist.IsBlacklisted(c.Request.Context(), claims.ID)
		if err != nil {
			// Fail closed when the blacklist store is unreachable
			m.logger.Error("Blacklist check failed", zap.Error(err))
			return nil, auth.ErrInvalidToken
		}
		if blacklisted {
			return nil, auth.ErrTokenBlacklisted
		}
	}

	return claims, nil
}

func setClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(JWTClaimsKey, claims)
	c.Set(JWTUserIDKey, claims.UserID)
	c.Set(JWTUsernameKey, claims.Username)
	c.Set(JWTRoleKey, claims.Role)
}

func abortUnauthorized(c *gin.Context, err error) {
	code := dto.ErrCodeTokenInvalid
	message := "Invalid or missing token"
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		code = dto.ErrCodeTokenExpired
		message = "Token has expired"
	case errors.Is(err, auth.ErrTokenBlacklisted):
		message = "Token has been revoked"
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(code, message))
}

// GetJWTClaims returns the validated claims, if any
func GetJWTClaims(c *gin.Context) (*auth.Claims, bool) {
	value, exists := c.Get(JWTClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*auth.Claims)
	return claims, ok
}

// GetJWTUserID returns the authenticated user ID or empty string
func GetJWTUserID(c *gin.Context) string {
	return c.GetString(JWTUserIDKey)
}

// GetJWTUsername returns the authenticated username or empty string
func GetJWTUsername(c *gin.Context) string {
	return c.GetString(JWTUsernameKey)
}
