package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lewisgroup/storefront/internal/infrastructure/config"
)

// Buyer identity keys
const (
	BuyerIDKey      = "buyer_id"
	BuyerCookieName = "storefront_buyer_id"
)

// BuyerCookieMaxAge keeps anonymous baskets around for 30 days
const BuyerCookieMaxAge = 30 * 24 * 60 * 60

// BuyerIdentity resolves the buyer ID for basket and checkout routes.
// Authenticated requests use the username; anonymous requests get a
// generated ID persisted in a cookie so the basket survives across visits.
// Must run after OptionalAuth.
func BuyerIdentity(cfg config.CookieConfig) gin.HandlerFunc {
	sameSite := parseSameSite(cfg.SameSite)
	return func(c *gin.Context) {
		if username := GetJWTUsername(c); username != "" {
			c.Set(BuyerIDKey, username)
			c.Next()
			return
		}

		buyerID, err := c.Cookie(BuyerCookieName)
		if err != nil || buyerID == "" || uuid.Validate(buyerID) != nil {
			buyerID = uuid.NewString()
			c.SetSameSite(sameSite)
			c.SetCookie(BuyerCookieName, buyerID, BuyerCookieMaxAge, cfg.Path, cfg.Domain, cfg.Secure, true)
		}
		c.Set(BuyerIDKey, buyerID)
		c.Next()
	}
}

// GetBuyerID returns the resolved buyer ID or empty string
func GetBuyerID(c *gin.Context) string {
	return c.GetString(BuyerIDKey)
}

// GetAnonymousBuyerID returns the anonymous buyer cookie value, if any.
// Used by login to merge the anonymous basket into the account.
func GetAnonymousBuyerID(c *gin.Context) string {
	buyerID, err := c.Cookie(BuyerCookieName)
	if err != nil || uuid.Validate(buyerID) != nil {
		return ""
	}
	return buyerID
}

// ClearBuyerCookie drops the anonymous buyer cookie, used after login
// merges the anonymous basket
func ClearBuyerCookie(c *gin.Context, cfg config.CookieConfig) {
	c.SetSameSite(parseSameSite(cfg.SameSite))
	c.SetCookie(BuyerCookieName, "", -1, cfg.Path, cfg.Domain, cfg.Secure, true)
}

func parseSameSite(mode string) http.SameSite {
	switch mode {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
