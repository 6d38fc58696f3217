package outbox

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/atlastours/rentals-backend/pkg/config"
	"github.com/atlastours/rentals-backend/pkg/db/models"
	"github.com/atlastours/rentals-backend/pkg/logger"
	"github.com/atlastours/rentals-backend/pkg/metrics"
	"github.com/atlastours/rentals-backend/pkg/notify"
)

type eventSource interface {
	Due(ctx context.Context, limit int) ([]models.OutboxEvent, error)
	MarkDelivered(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, event models.OutboxEvent, cause error, maxAttempts int, backoff time.Duration) error
}

// Relay drains due outbox events to the notification endpoint.
type Relay struct {
	repo    eventSource
	sender  notify.Sender
	cfg     config.OutboxConfig
	logg    *logger.Logger
	metrics *metrics.RelayMetrics
}

// NewRelay wires an outbox relay.
func NewRelay(repo eventSource, sender notify.Sender, cfg config.OutboxConfig, logg *logger.Logger, m *metrics.RelayMetrics) *Relay {
	return &Relay{repo: repo, sender: sender, cfg: cfg, logg: logg, metrics: m}
}

// Run polls until the context is cancelled.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := r.DrainOnce(ctx); err != nil && r.logg != nil {
				r.logg.Error(ctx, "outbox drain failed", err)
			}
		}
	}
}

// DrainOnce delivers one batch of due events. Individual delivery failures are
// recorded per event and do not abort the batch.
func (r *Relay) DrainOnce(ctx context.Context) error {
	events, err := r.repo.Due(ctx, r.cfg.BatchSize)
	if err != nil {
		return err
	}

	for _, event := range events {
		if err := r.sender.Send(ctx, event.Topic, event.Payload); err != nil {
			r.metrics.IncFailed(event.Topic)
			if r.logg != nil {
				lctx := r.logg.WithFields(ctx, map[string]any{
					"event_id": event.ID.String(),
					"topic":    event.Topic,
					"attempts": event.Attempts + 1,
				})
				r.logg.Warn(lctx, "outbox delivery failed")
			}
			if markErr := r.repo.MarkFailed(ctx, event, err, r.cfg.MaxAttempts, r.cfg.BaseBackoff); markErr != nil {
				return markErr
			}
			continue
		}

		r.metrics.IncDelivered(event.Topic)
		if err := r.repo.MarkDelivered(ctx, event.ID); err != nil {
			return err
		}
	}
	return nil
}
