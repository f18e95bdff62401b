package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	CartTokenCookie = "cart_token"
	// browsers cap cookie lifetime at about 400 days
	cartTokenMaxAge = 400 * 24 * time.Hour
)

// CartToken identifies the shopper's cart. A missing or malformed cookie is
// replaced with a fresh token; a valid one is re-issued so its expiry slides
// with every visit.
func CartToken(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CartTokenCookie)
		if err != nil || uuid.Validate(token) != nil {
			token = uuid.NewString()
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(CartTokenCookie, token, int(cartTokenMaxAge.Seconds()), "/", "", secure, true)

		c.Set(CartTokenKey, token)
		c.Next()
	}
}
