package handler

import (
	"time"

	"github.com/lewisgroup/storefront/internal/infrastructure/auth"
	"github.com/lewisgroup/storefront/internal/infrastructure/config"
)

func newHandlerTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "handler-test-secret",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "storefront-test",
		MaxRefreshCount:        5,
	})
}
