package app

import (
	"time"

	"go-storefront-api/internal/cart"
	"go-storefront-api/internal/category"
	"go-storefront-api/internal/checkout"
	mw "go-storefront-api/internal/middleware"
	"go-storefront-api/internal/product"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type modules struct {
	Products     product.Repository
	Categories   category.Repository
	Redis        *redis.Client
	CartTTL      time.Duration
	Publisher    checkout.EventPublisher
	JWTSecret    string
	SecureCookie bool
	Logger       *zap.Logger
}

func middleware(logger *zap.Logger) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		gin.Recovery(),
		mw.RequestID(),
		mw.AccessLog(logger.Named("http")),
	}
}

func registerModules(router *gin.Engine, m modules) {
	logger := m.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	// --- Services ---
	categoryService := category.NewService(m.Categories, logger)
	productService := product.NewService(m.Products, categoryService, logger)
	cartService := cart.NewService(cart.NewRedisStore(m.Redis, m.CartTTL), productService, logger)
	checkoutService := checkout.NewService(checkout.Deps{
		Carts:     cartService,
		Publisher: m.Publisher,
		Logger:    logger,
	})

	// --- Handlers ---
	categoryHandler := category.NewHandler(categoryService, logger)
	productHandler := product.NewHandler(productService, logger)
	cartHandler := cart.NewHandler(cartService, logger)
	checkoutHandler := checkout.NewHandler(checkoutService, logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		category.RegisterRoutes(api, categoryHandler)
		product.RegisterRoutes(api, productHandler)
		cart.RegisterRoutes(api, cartHandler, m.SecureCookie)
		checkout.RegisterRoutes(api, checkoutHandler, m.JWTSecret, m.SecureCookie)
	}
}
