package events

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/turtacn/gdmrisk/internal/config"
	"github.com/turtacn/gdmrisk/pkg/logger"
)

// MessageReader is the subset of *kafka.Reader used by Consumer.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Handler processes one decoded event.
type Handler func(ctx context.Context, event AssessmentEvent) error

// Consumer reads assessment events from Kafka.
type Consumer struct {
	reader MessageReader
	logger logger.Logger
}

// NewKafkaConsumer creates a consumer in the configured consumer group.
func NewKafkaConsumer(cfg config.KafkaConfig, log logger.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.Brokers,
		Topic:          cfg.Topic,
		GroupID:        cfg.ConsumerGroup,
		MinBytes:       1,
		MaxBytes:       10e6, // 10MB
		CommitInterval: time.Second,
	})
	return NewConsumerWithReader(reader, log)
}

// NewConsumerWithReader wraps an existing reader.
func NewConsumerWithReader(r MessageReader, log logger.Logger) *Consumer {
	if log == nil {
		log = logger.NewNoopLogger()
	}
	return &Consumer{
		reader: r,
		logger: log.WithFields(logger.Fields{"component": "AssessmentConsumer"}),
	}
}

// Run fetches events until ctx is cancelled. Messages that cannot be decoded
// are logged and committed; a handler error stops the loop without committing.
func (c *Consumer) Run(ctx context.Context, handle Handler) error {
	c.logger.Info(ctx, "starting assessment event consumer")
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				c.logger.Info(ctx, "stopping assessment event consumer")
				return nil
			}
			return err
		}

		var event AssessmentEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			c.logger.Warn(ctx, "skipping undecodable assessment event", logger.Fields{
				"offset": msg.Offset,
				"error":  err.Error(),
			})
		} else if err := handle(ctx, event); err != nil {
			return err
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.logger.Error(ctx, "failed to commit kafka message", err, logger.Fields{"offset": msg.Offset})
		}
	}
}

// Close closes the underlying reader.
func (c *Consumer) Close() error {
	return c.reader.Close()
}
