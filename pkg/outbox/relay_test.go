package outbox

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlastours/rentals-backend/pkg/config"
	"github.com/atlastours/rentals-backend/pkg/db/models"
	"github.com/atlastours/rentals-backend/pkg/metrics"
)

type stubSource struct {
	due       []models.OutboxEvent
	delivered []uuid.UUID
	failed    []uuid.UUID
}

func (s *stubSource) Due(context.Context, int) ([]models.OutboxEvent, error) {
	return s.due, nil
}

func (s *stubSource) MarkDelivered(_ context.Context, id uuid.UUID) error {
	s.delivered = append(s.delivered, id)
	return nil
}

func (s *stubSource) MarkFailed(_ context.Context, event models.OutboxEvent, _ error, _ int, _ time.Duration) error {
	s.failed = append(s.failed, event.ID)
	return nil
}

type stubSender struct {
	sent    []string
	failFor map[string]error
}

func (s *stubSender) Send(_ context.Context, topic string, _ []byte) error {
	if err := s.failFor[topic]; err != nil {
		return err
	}
	s.sent = append(s.sent, topic)
	return nil
}

func event(topic string) models.OutboxEvent {
	return models.OutboxEvent{
		ID:      uuid.New(),
		Topic:   topic,
		Payload: []byte(`{}`),
	}
}

func TestDrainOnceDeliversDueEvents(t *testing.T) {
	t.Parallel()
	source := &stubSource{due: []models.OutboxEvent{event(TopicBookingConfirmed), event(TopicContactMessage)}}
	sender := &stubSender{}
	relay := NewRelay(source, sender, config.OutboxConfig{BatchSize: 10}, nil, metrics.NewRelayMetrics(nil))

	require.NoError(t, relay.DrainOnce(context.Background()))
	assert.Equal(t, []string{TopicBookingConfirmed, TopicContactMessage}, sender.sent)
	assert.Len(t, source.delivered, 2)
	assert.Empty(t, source.failed)
}

func TestDrainOnceFailureDoesNotAbortBatch(t *testing.T) {
	t.Parallel()
	failing := event(TopicBookingConfirmed)
	ok := event(TopicContactMessage)
	source := &stubSource{due: []models.OutboxEvent{failing, ok}}
	sender := &stubSender{failFor: map[string]error{TopicBookingConfirmed: errors.New("endpoint down")}}
	relay := NewRelay(source, sender, config.OutboxConfig{BatchSize: 10, MaxAttempts: 3, BaseBackoff: time.Second}, nil, metrics.NewRelayMetrics(nil))

	require.NoError(t, relay.DrainOnce(context.Background()))
	assert.Equal(t, []uuid.UUID{failing.ID}, source.failed)
	assert.Equal(t, []uuid.UUID{ok.ID}, source.delivered)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	t.Parallel()
	source := &stubSource{}
	relay := NewRelay(source, &stubSender{}, config.OutboxConfig{PollInterval: time.Millisecond}, nil, metrics.NewRelayMetrics(nil))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := relay.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
