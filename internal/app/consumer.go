package app

import (
	"context"

	"go-storefront-api/internal/cart"
	"go-storefront-api/internal/messaging/kafka/consumer"
	"go-storefront-api/internal/shared/connection"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer applies pending cart clears from the order topic until ctx is
// cancelled.
func RunConsumer(ctx context.Context, cfg Config, logger *zap.Logger) error {
	logger = logger.Named("consumer")
	logger.Info("starting cart consumer", zap.String("topic", cfg.KafkaOrderTopic))

	rdb, err := connection.ConnectRedisWithRetry(ctx, cfg.RedisAddr, cfg.RedisPassword, connectRetries)
	if err != nil {
		return err
	}
	defer rdb.Close()

	if err := connection.PingKafka(ctx, cfg.KafkaBroker, connectRetries); err != nil {
		return err
	}

	// clearing never needs the catalog
	cartService := cart.NewService(cart.NewRedisStore(rdb, cfg.CartTTL), nil, logger)

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{cfg.KafkaBroker},
		Topic:   cfg.KafkaOrderTopic,
		GroupID: cfg.KafkaGroupID,
	})
	defer reader.Close()

	consumer.ConsumeMessages(ctx, reader, cartService, logger)

	logger.Info("consumer stopped")
	return nil
}
