package seed

import (
	"context"
	"fmt"
	"time"

	"go-storefront-api/internal/category"
	"go-storefront-api/internal/product"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// SeedMongo replaces the catalog collections with the sample catalog.
func SeedMongo(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	categories, products := Catalog(time.Now().UTC())

	coll := db.Collection(category.CollectionName)
	if _, err := coll.DeleteMany(ctx, bson.D{}); err != nil {
		return fmt.Errorf("clear categories: %w", err)
	}

	docs := make([]any, len(categories))
	for i, c := range categories {
		docs[i] = c
	}
	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert categories: %w", err)
	}
	logger.Info("seeded categories", zap.Int("count", len(categories)))

	repo := product.NewMongoRepository(db)
	if err := repo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear products: %w", err)
	}
	if err := repo.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("product indexes: %w", err)
	}
	if err := repo.InsertMany(ctx, products); err != nil {
		return fmt.Errorf("insert products: %w", err)
	}
	logger.Info("seeded products", zap.Int("count", len(products)))

	return nil
}
