package app

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"go-storefront-api/internal/category"
	"go-storefront-api/internal/messaging/kafka/producer"
	"go-storefront-api/internal/product"
	"go-storefront-api/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const connectRetries = 5

// Infra holds the long-lived clients. Close releases whatever was opened.
type Infra struct {
	Mongo       *mongo.Client
	MongoDB     *mongo.Database
	DB          *sql.DB
	Redis       *redis.Client
	KafkaWriter *kafka.Writer
}

func (i *Infra) Close() error {
	var errs []error
	if i.KafkaWriter != nil {
		errs = append(errs, i.KafkaWriter.Close())
	}
	if i.Redis != nil {
		errs = append(errs, i.Redis.Close())
	}
	if i.DB != nil {
		errs = append(errs, i.DB.Close())
	}
	if i.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		errs = append(errs, i.Mongo.Disconnect(ctx))
	}
	return errors.Join(errs...)
}

func connectCatalog(ctx context.Context, cfg Config, infra *Infra) error {
	switch cfg.CatalogDriver {
	case CatalogPostgres:
		db, err := connection.ConnectDBWithRetry(ctx, cfg.DBURL, connectRetries)
		if err != nil {
			return err
		}
		infra.DB = db
	default:
		client, db, err := connection.ConnectMongoWithRetry(ctx, cfg.MongoURI, cfg.MongoDB, connectRetries)
		if err != nil {
			return err
		}
		infra.Mongo, infra.MongoDB = client, db
	}
	return nil
}

// catalogRepositories memilih adapter katalog sesuai CATALOG_DRIVER.
func catalogRepositories(ctx context.Context, infra *Infra) (product.Repository, category.Repository, error) {
	if infra.DB != nil {
		return product.NewPostgresRepository(infra.DB), category.NewPostgresRepository(infra.DB), nil
	}

	products := product.NewMongoRepository(infra.MongoDB)
	if err := products.EnsureIndexes(ctx); err != nil {
		return nil, nil, err
	}
	return products, category.NewMongoRepository(infra.MongoDB), nil
}

func BuildApp(ctx context.Context, router *gin.Engine, cfg Config, logger *zap.Logger) (*Infra, error) {
	infra := &Infra{}

	// 1. Setup Infrastructure
	if err := connectCatalog(ctx, cfg, infra); err != nil {
		return nil, err
	}

	rdb, err := connection.ConnectRedisWithRetry(ctx, cfg.RedisAddr, cfg.RedisPassword, connectRetries)
	if err != nil {
		infra.Close()
		return nil, err
	}
	infra.Redis = rdb

	if err := connection.PingKafka(ctx, cfg.KafkaBroker, connectRetries); err != nil {
		infra.Close()
		return nil, err
	}
	infra.KafkaWriter = producer.NewWriter(cfg.KafkaBroker, cfg.KafkaOrderTopic)

	productRepo, categoryRepo, err := catalogRepositories(ctx, infra)
	if err != nil {
		infra.Close()
		return nil, err
	}

	// 2. Register Modules & Routes
	router.Use(middleware(logger)...)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	registerModules(router, modules{
		Products:     productRepo,
		Categories:   categoryRepo,
		Redis:        infra.Redis,
		CartTTL:      cfg.CartTTL,
		Publisher:    producer.NewPublisher(infra.KafkaWriter, "order", logger),
		JWTSecret:    cfg.JWTSecret,
		SecureCookie: cfg.IsProduction(),
		Logger:       logger,
	})

	return infra, nil
}
