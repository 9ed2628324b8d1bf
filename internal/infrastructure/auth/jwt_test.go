package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lewisgroup/storefront/internal/infrastructure/config"
)

func newTestJWTService() *JWTService {
	cfg := config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		RefreshSecret:          "test-refresh-secret-key-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "test-issuer",
		MaxRefreshCount:        10,
	}
	return NewJWTService(cfg)
}

func newTestInput() GenerateTokenInput {
	return GenerateTokenInput{
		UserID:   uuid.New(),
		Username: "wizard",
		Role:     "member",
	}
}

func TestNewJWTService_UsesSecretForRefreshIfNotProvided(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{Secret: "only-secret"})
	assert.Equal(t, []byte("only-secret"), svc.refreshSecret)
}

func TestGenerateTokenPair(t *testing.T) {
	svc := newTestJWTService()
	input := newTestInput()

	pair, err := svc.GenerateTokenPair(input)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.True(t, pair.RefreshTokenExpiresAt.After(pair.AccessTokenExpiresAt))

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, input.UserID.String(), claims.UserID)
	assert.Equal(t, "wizard", claims.Username)
	assert.Equal(t, "member", claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.NotEmpty(t, claims.ID)
	assert.False(t, claims.IsAdmin())
}

func TestValidateAccessToken(t *testing.T) {
	svc := newTestJWTService()

	t.Run("rejects refresh token as access token", func(t *testing.T) {
		pair, err := svc.GenerateTokenPair(newTestInput())
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(pair.RefreshToken)
		assert.Error(t, err)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := svc.ValidateAccessToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects token signed with a different secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:                 "a-completely-different-secret-key",
			AccessTokenExpiration:  time.Minute,
			RefreshTokenExpiration: time.Hour,
		})
		pair, err := other.GenerateTokenPair(newTestInput())
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(pair.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		expiring := NewJWTService(config.JWTConfig{
			Secret:                 "test-secret-key-at-least-32-chars",
			AccessTokenExpiration:  -time.Minute,
			RefreshTokenExpiration: time.Hour,
		})
		pair, err := expiring.GenerateTokenPair(newTestInput())
		require.NoError(t, err)

		_, err = expiring.ValidateAccessToken(pair.AccessToken)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})
}

func TestRefreshTokenPair(t *testing.T) {
	svc := newTestJWTService()
	input := newTestInput()

	pair, err := svc.GenerateTokenPair(input)
	require.NoError(t, err)

	t.Run("issues a new pair carrying the current role", func(t *testing.T) {
		newPair, err := svc.RefreshTokenPair(pair.RefreshToken, "wizard", "admin")
		require.NoError(t, err)

		claims, err := svc.ValidateAccessToken(newPair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "admin", claims.Role)
		assert.True(t, claims.IsAdmin())

		refreshClaims, err := svc.ValidateRefreshToken(newPair.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, 1, refreshClaims.RefreshCount)
	})

	t.Run("rejects an access token used as refresh token", func(t *testing.T) {
		_, err := svc.RefreshTokenPair(pair.AccessToken, "wizard", "member")
		assert.Error(t, err)
	})
}

func TestClaimsRemainingTTL(t *testing.T) {
	svc := newTestJWTService()
	pair, err := svc.GenerateTokenPair(newTestInput())
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)

	ttl := claims.GetRemainingTTL()
	assert.Greater(t, ttl, 14*time.Minute)
	assert.LessOrEqual(t, ttl, 15*time.Minute)
}
