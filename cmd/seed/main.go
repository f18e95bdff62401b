package main

import (
	"context"
	"log"

	"go-storefront-api/internal/app"
	"go-storefront-api/internal/bootstrap"
	"go-storefront-api/internal/shared/connection"
	"go-storefront-api/internal/shared/database/seed"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := bootstrap.NewLogger(cfg.Env)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx := context.Background()
	client, db, err := connection.ConnectMongoWithRetry(ctx, cfg.MongoURI, cfg.MongoDB, 3)
	if err != nil {
		logger.Fatal("cannot connect to mongo", zap.Error(err))
	}
	defer client.Disconnect(ctx)

	if err := seed.SeedMongo(ctx, db, logger.Named("seed")); err != nil {
		logger.Fatal("seed failed", zap.Error(err))
	}
}
