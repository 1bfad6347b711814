package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/turtacn/gdmrisk/internal/config"
	"github.com/turtacn/gdmrisk/pkg/logger"
)

// Publisher delivers assessment events to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, event AssessmentEvent) error
	Close() error
}

// MessageWriter is the subset of *kafka.Writer used by KafkaPublisher.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

const (
	// DefaultPublishTimeout bounds one Publish call, retries included.
	DefaultPublishTimeout = 2 * time.Second

	maxBatchTimeout  = 10 * time.Millisecond
	maxWriteAttempts = 3
)

// KafkaPublisher is a Kafka-backed Publisher.
type KafkaPublisher struct {
	writer  MessageWriter
	logger  logger.Logger
	timeout time.Duration
}

// NewKafkaPublisher creates a publisher writing to cfg.Topic. Publish runs
// on the request path, so a single event is flushed immediately instead of
// waiting for a batch to fill.
func NewKafkaPublisher(cfg config.KafkaConfig, log logger.Logger) *KafkaPublisher {
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 1
	}
	batchTimeout := cfg.BatchTimeout
	if batchTimeout <= 0 || batchTimeout > maxBatchTimeout {
		batchTimeout = maxBatchTimeout
	}
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		WriteTimeout: cfg.WriteTimeout,
		RequiredAcks: kafka.RequiredAcks(cfg.RequiredAcks),
		BatchSize:    batchSize,
		BatchTimeout: batchTimeout,
		MaxAttempts:  maxWriteAttempts,
	}
	p := NewPublisherWithWriter(writer, log)
	if cfg.WriteTimeout > 0 && cfg.WriteTimeout < p.timeout {
		p.timeout = cfg.WriteTimeout
	}
	return p
}

// NewPublisherWithWriter wraps an existing writer.
func NewPublisherWithWriter(w MessageWriter, log logger.Logger) *KafkaPublisher {
	if log == nil {
		log = logger.NewNoopLogger()
	}
	return &KafkaPublisher{
		writer:  w,
		logger:  log.WithFields(logger.Fields{"component": "KafkaPublisher"}),
		timeout: DefaultPublishTimeout,
	}
}

// WithTimeout overrides the per-call publish deadline.
func (p *KafkaPublisher) WithTimeout(d time.Duration) *KafkaPublisher {
	if d > 0 {
		p.timeout = d
	}
	return p
}

// Publish sends an event keyed by its assessment id. It gives up after the
// publish timeout even when ctx has a later deadline.
func (p *KafkaPublisher) Publish(ctx context.Context, event AssessmentEvent) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	bytes, err := json.Marshal(event)
	if err != nil {
		p.logger.Error(ctx, "failed to marshal assessment event", err)
		return err
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.ID),
		Value: bytes,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(event.Type)},
		},
	})
	if err != nil {
		p.logger.Error(ctx, "failed to write message to Kafka", err, logger.Fields{"event_id": event.ID})
	}
	return err
}

// Close closes the underlying Kafka writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher drops every event. It is used when Kafka is disabled.
type NoopPublisher struct{}

// Publish does nothing.
func (NoopPublisher) Publish(context.Context, AssessmentEvent) error { return nil }

// Close does nothing.
func (NoopPublisher) Close() error { return nil }
