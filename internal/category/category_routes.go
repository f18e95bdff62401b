package category

import (
	"go-storefront-api/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	categories := r.Group("/categories")
	{
		// Data kategori jarang berubah, limit longgar: 10 rps, burst 20.
		categories.GET("",
			middleware.RateLimitByIP(10, 20),
			handler.List,
		)

		categories.GET("/:slug",
			middleware.RateLimitByIP(5, 10),
			handler.GetBySlug,
		)
	}
}
