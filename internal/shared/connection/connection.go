package connection

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// RetryDelay is the pause between connection attempts.
var RetryDelay = 5 * time.Second

func retry(ctx context.Context, name string, maxRetries int, attempt func(ctx context.Context) error) error {
	logger := zap.L().Named("connection")

	var err error
	for i := 1; i <= maxRetries; i++ {
		if err = attempt(ctx); err == nil {
			logger.Info("connected", zap.String("target", name))
			return nil
		}

		logger.Warn("connect retry",
			zap.String("target", name),
			zap.Int("attempt", i),
			zap.Int("max", maxRetries),
			zap.Error(err),
		)
		if i == maxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(RetryDelay):
		}
	}
	return fmt.Errorf("failed to connect %s: %w", name, err)
}

func ConnectDBWithRetry(ctx context.Context, dsn string, maxRetries int) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	err = retry(ctx, "postgres", maxRetries, func(ctx context.Context) error {
		return db.PingContext(ctx)
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func ConnectMongoWithRetry(ctx context.Context, uri, database string, maxRetries int) (*mongo.Client, *mongo.Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, err
	}

	err = retry(ctx, "mongo", maxRetries, func(ctx context.Context) error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return client.Ping(pingCtx, nil)
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}
	return client, client.Database(database), nil
}

func ConnectRedisWithRetry(ctx context.Context, addr, password string, maxRetries int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	err := retry(ctx, "redis", maxRetries, func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
	if err != nil {
		rdb.Close()
		return nil, err
	}
	return rdb, nil
}

// PingKafka only checks that the broker accepts connections. Writers and
// readers dial lazily.
func PingKafka(ctx context.Context, broker string, maxRetries int) error {
	return retry(ctx, "kafka", maxRetries, func(ctx context.Context) error {
		conn, err := kafka.DialContext(ctx, "tcp", broker)
		if err != nil {
			return err
		}
		return conn.Close()
	})
}
