package cart

import (
	"go-storefront-api/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, secureCookie bool) {
	carts := r.Group("/cart")
	carts.Use(middleware.CartToken(secureCookie))
	{
		carts.GET("", middleware.RateLimitByIP(10, 20), handler.Detail)

		// Mutasi cart: 5 rps, burst 10 per IP.
		mutationLimit := middleware.RateLimitByIP(5, 10)

		carts.POST("/items", mutationLimit, handler.AddItem)
		carts.PATCH("/items/:productId", mutationLimit, handler.UpdateQuantity)
		carts.DELETE("/items/:productId", mutationLimit, handler.RemoveItem)
		carts.DELETE("", mutationLimit, handler.Clear)
	}
}
