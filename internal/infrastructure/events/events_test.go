package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/gdmrisk/internal/domain/models"
	"github.com/turtacn/gdmrisk/internal/infrastructure/events"
	"github.com/turtacn/gdmrisk/pkg/constants"
)

type fakeWriter struct {
	mu       sync.Mutex
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

type fakeReader struct {
	queue     chan kafka.Message
	committed []int64
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	select {
	case msg := <-r.queue:
		return msg, nil
	case <-ctx.Done():
		return kafka.Message{}, ctx.Err()
	}
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func (r *fakeReader) Close() error { return nil }

func sampleRecord() *models.AssessmentRecord {
	return models.NewAssessmentRecord(uuid.New(),
		models.RiskAssessment{Tier: models.TierHigh, Probability: 0.81, Score: 81},
		[]string{"SkinThickness"},
		map[string]string{"classifier": "abcdef012345"},
	).WithRequestID("req-1")
}

func TestNewAssessmentEvent(t *testing.T) {
	rec := sampleRecord()
	ev := events.NewAssessmentEvent(rec)

	assert.Equal(t, rec.ID.String(), ev.ID)
	assert.Equal(t, constants.EventTypeAssessmentCompleted, ev.Type)
	assert.Equal(t, "req-1", ev.RequestID)
	assert.Equal(t, models.TierHigh, ev.Tier)
	assert.Equal(t, []string{"SkinThickness"}, ev.ImputedFeatures)

	rec.ImputedFeatures = nil
	assert.NotNil(t, events.NewAssessmentEvent(rec).ImputedFeatures)
}

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := events.NewPublisherWithWriter(w, nil)
	ev := events.NewAssessmentEvent(sampleRecord())

	require.NoError(t, p.Publish(context.Background(), ev))
	require.Len(t, w.messages, 1)

	msg := w.messages[0]
	assert.Equal(t, ev.ID, string(msg.Key))
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "High Risk", decoded["tier"])
	assert.Equal(t, 0.81, decoded["probability"])
	assert.NotContains(t, decoded, "glucose")

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	p := events.NewPublisherWithWriter(w, nil)
	assert.EqualError(t, p.Publish(context.Background(), events.NewAssessmentEvent(sampleRecord())), "broker down")
}

type blockingWriter struct{}

func (blockingWriter) WriteMessages(ctx context.Context, _ ...kafka.Message) error {
	<-ctx.Done()
	return ctx.Err()
}

func (blockingWriter) Close() error { return nil }

func TestKafkaPublisher_PublishIsBounded(t *testing.T) {
	p := events.NewPublisherWithWriter(blockingWriter{}, nil).WithTimeout(20 * time.Millisecond)

	start := time.Now()
	err := p.Publish(context.Background(), events.NewAssessmentEvent(sampleRecord()))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestNoopPublisher(t *testing.T) {
	var p events.Publisher = events.NoopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), events.AssessmentEvent{}))
	assert.NoError(t, p.Close())
}

func TestConsumer_Run(t *testing.T) {
	ev := events.NewAssessmentEvent(sampleRecord())
	payload, err := json.Marshal(ev)
	require.NoError(t, err)

	r := &fakeReader{queue: make(chan kafka.Message, 2)}
	r.queue <- kafka.Message{Offset: 1, Value: []byte("not json")}
	r.queue <- kafka.Message{Offset: 2, Value: payload}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var got []events.AssessmentEvent
	c := events.NewConsumerWithReader(r, nil)
	err = c.Run(ctx, func(_ context.Context, e events.AssessmentEvent) error {
		got = append(got, e)
		cancel()
		return nil
	})
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, ev.ID, got[0].ID)
	assert.Equal(t, []int64{1, 2}, r.committed)
}

func TestConsumer_HandlerError(t *testing.T) {
	r := &fakeReader{queue: make(chan kafka.Message, 1)}
	r.queue <- kafka.Message{Offset: 7, Value: []byte(`{"id":"x"}`)}

	c := events.NewConsumerWithReader(r, nil)
	err := c.Run(context.Background(), func(context.Context, events.AssessmentEvent) error {
		return errors.New("sink failed")
	})
	assert.EqualError(t, err, "sink failed")
	assert.Empty(t, r.committed)
}
