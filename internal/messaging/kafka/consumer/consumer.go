package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-storefront-api/internal/checkout"
	mkafka "go-storefront-api/internal/messaging/kafka"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Reader is satisfied by *kafka.Reader.
type Reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

type CartClearer interface {
	ClearIfUnchanged(ctx context.Context, token, fingerprint string) (bool, error)
}

var (
	MaxAttempts  = 3
	RetryBackoff = 500 * time.Millisecond
	FetchBackoff = time.Second
)

// ConsumeMessages blocks until ctx is cancelled. A handler is retried up to
// MaxAttempts times; after that the message is logged and committed so the
// partition moves on.
func ConsumeMessages(ctx context.Context, reader Reader, carts CartClearer, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("kafka.consumer")
	logger.Info("started consuming messages")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				logger.Info("consumer stopped")
				return
			}
			logger.Error("fetch message failed", zap.Error(err))
			select {
			case <-ctx.Done():
				logger.Info("consumer stopped")
				return
			case <-time.After(FetchBackoff):
			}
			continue
		}

		eventType := mkafka.HeaderValue(msg.Headers, mkafka.HeaderEventType)

		switch eventType {
		case checkout.EventOrderPlaced:
			// checkout clears the ledger itself
			logger.Debug("order placed", zap.String("order_number", string(msg.Key)))
		case checkout.EventCartClearPending:
			err := withRetry(ctx, func() error {
				return handleCartClearPending(ctx, msg.Value, carts, logger)
			})
			if ctx.Err() != nil {
				logger.Info("consumer stopped")
				return
			}
			if err != nil {
				logger.Error("handle CART_CLEAR_PENDING failed, skipping",
					zap.Int64("offset", msg.Offset),
					zap.Error(err),
				)
			}
		default:
			// skip unknown event types
			logger.Debug("skipping event", zap.String("event_type", eventType))
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			logger.Error("commit message failed", zap.Error(err))
		}
	}
}

// handleCartClearPending clears the ledger only if it still holds the
// ordered lines, so items added after checkout survive and redelivery is
// harmless.
func handleCartClearPending(ctx context.Context, payload []byte, carts CartClearer, logger *zap.Logger) error {
	var data checkout.CartClearPayload
	if err := json.Unmarshal(payload, &data); err != nil {
		// malformed payloads would never succeed; drop them
		logger.Warn("invalid CART_CLEAR_PENDING payload", zap.Error(err))
		return nil
	}
	if data.CartToken == "" || data.Fingerprint == "" {
		return nil
	}

	cleared, err := carts.ClearIfUnchanged(ctx, data.CartToken, data.Fingerprint)
	if err != nil {
		return fmt.Errorf("clear cart %s: %w", data.CartToken, err)
	}

	logger.Info("cart clear request handled",
		zap.String("order_number", data.OrderNumber),
		zap.Bool("cleared", cleared),
	)
	return nil
}

func withRetry(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if attempt == MaxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(RetryBackoff * time.Duration(attempt)):
		}
	}
	return err
}
