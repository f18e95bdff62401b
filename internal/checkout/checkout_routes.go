package checkout

import (
	"go-storefront-api/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, jwtSecret string, secureCookie bool) {
	checkout := r.Group("/checkout")
	checkout.Use(
		middleware.CartToken(secureCookie),
		middleware.OptionalAuthMiddleware(jwtSecret),
	)
	{
		checkout.GET("/summary", middleware.RateLimitByIP(10, 20), handler.Summary)

		// Checkout ketat: 1 rps, burst 3 (hindari double submit).
		checkout.POST("", middleware.RateLimitByIP(1, 3), handler.PlaceOrder)
	}
}
