package product

import (
	"go-storefront-api/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	products := r.Group("/products")
	{
		// Cukup longgar agar user asli nyaman browsing, tapi mencegah scraping masif.
		// limit 10 rps, burst 20
		browseLimit := middleware.RateLimitByIP(10, 20)

		products.GET("", browseLimit, handler.List)
		products.GET("/featured", browseLimit, handler.Featured)
		products.GET("/category/:categoryId", browseLimit, handler.ListByCategory)

		// Full-text search lebih berat di database.
		products.GET("/search",
			middleware.RateLimitByIP(5, 10),
			handler.Search,
		)

		products.GET("/:slug",
			middleware.RateLimitByIP(5, 10),
			handler.GetBySlug,
		)
	}
}
