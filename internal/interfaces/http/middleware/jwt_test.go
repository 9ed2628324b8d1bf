package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lewisgroup/storefront/internal/infrastructure/auth"
	"github.com/lewisgroup/storefront/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "middleware-test-secret",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "storefront-test",
		MaxRefreshCount:        5,
	})
}

func issueToken(t *testing.T, jwtService *auth.JWTService, role string) string {
	t.Helper()
	pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   uuid.New(),
		Username: "wizard",
		Role:     role,
	})
	require.NoError(t, err)
	return pair.AccessToken
}

func performRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set(AuthHeaderKey, authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_RequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	jwtService := newTestJWTService()
	m := NewAuthMiddleware(jwtService, nil, zap.NewNop())

	r := gin.New()
	r.GET("/protected", m.RequireAuth(), func(c *gin.Context) {
		c.String(http.StatusOK, GetJWTUsername(c))
	})

	t.Run("valid token passes", func(t *testing.T) {
		token := issueToken(t, jwtService, "member")
		w := performRequest(r, BearerPrefix+token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "wizard", w.Body.String())
	})

	t.Run("missing header rejected", func(t *testing.T) {
		w := performRequest(r, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header rejected", func(t *testing.T) {
		w := performRequest(r, "Token abc")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		w := performRequest(r, BearerPrefix+"not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthMiddleware_RequireAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	jwtService := newTestJWTService()
	m := NewAuthMiddleware(jwtService, nil, zap.NewNop())

	r := gin.New()
	r.GET("/protected", m.RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	t.Run("admin passes", func(t *testing.T) {
		token := issueToken(t, jwtService, "admin")
		w := performRequest(r, BearerPrefix+token)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("member forbidden", func(t *testing.T) {
		token := issueToken(t, jwtService, "member")
		w := performRequest(r, BearerPrefix+token)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestAuthMiddleware_OptionalAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	jwtService := newTestJWTService()
	m := NewAuthMiddleware(jwtService, nil, zap.NewNop())

	r := gin.New()
	r.GET("/protected", m.OptionalAuth(), func(c *gin.Context) {
		c.String(http.StatusOK, GetJWTUsername(c))
	})

	t.Run("no token continues as anonymous", func(t *testing.T) {
		w := performRequest(r, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("valid token attaches claims", func(t *testing.T) {
		token := issueToken(t, jwtService, "member")
		w := performRequest(r, BearerPrefix+token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "wizard", w.Body.String())
	})

	t.Run("bad token still rejected", func(t *testing.T) {
		w := performRequest(r, BearerPrefix+"bogus")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthMiddleware_Blacklist(t *testing.T) {
	gin.SetMode(gin.TestMode)
	jwtService := newTestJWTService()
	blacklist := auth.NewInMemoryTokenBlacklist()
	m := NewAuthMiddleware(jwtService, blacklist, zap.NewNop())

	r := gin.New()
	r.GET("/protected", m.RequireAuth(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	token := issueToken(t, jwtService, "member")
	claims, err := jwtService.ValidateAccessToken(token)
	require.NoError(t, err)

	w := performRequest(r, BearerPrefix+token)
	assert.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, blacklist.AddToBlacklist(t.Context(), claims.ID, time.Minute))

	w = performRequest(r, BearerPrefix+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
