package producer

import (
	"context"
	"encoding/json"
	"fmt"

	mkafka "go-storefront-api/internal/messaging/kafka"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Writer is satisfied by *kafka.Writer.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type Publisher struct {
	writer        Writer
	aggregateType string
	logger        *zap.Logger
}

func NewPublisher(writer Writer, aggregateType string, logger ...*zap.Logger) *Publisher {
	l := zap.L().Named("kafka.producer")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("kafka.producer")
	}
	return &Publisher{writer: writer, aggregateType: aggregateType, logger: l}
}

// NewWriter builds the writer used by the API process. Messages with the same
// key land on the same partition.
func NewWriter(broker, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(broker),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
}

func (p *Publisher) Publish(ctx context.Context, eventType, key string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", eventType, err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: body,
		Headers: []kafka.Header{
			{Key: mkafka.HeaderEventType, Value: []byte(eventType)},
			{Key: mkafka.HeaderAggregateType, Value: []byte(p.aggregateType)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s: %w", eventType, err)
	}

	p.logger.Debug("event published", zap.String("event_type", eventType), zap.String("key", key))
	return nil
}
