package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/atlastours/rentals-backend/pkg/db/models"
	"github.com/atlastours/rentals-backend/pkg/enums"
)

// Topics this app enqueues for the notification endpoint.
const (
	TopicBookingConfirmed = "booking.confirmed"
	TopicContactMessage   = "contact.message"
)

// Repository persists and claims outbox events.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to outbox operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// EnqueueTx writes an event inside the caller's transaction so the event and
// the state change it describes commit together.
func (r *Repository) EnqueueTx(tx *gorm.DB, topic string, payload any) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding outbox payload: %w", err)
	}
	event := models.OutboxEvent{
		Topic:         topic,
		Payload:       raw,
		Status:        enums.OutboxStatusPending,
		NextAttemptAt: time.Now().UTC(),
	}
	return tx.Create(&event).Error
}

// Due returns up to limit pending events whose next attempt is due.
func (r *Repository) Due(ctx context.Context, limit int) ([]models.OutboxEvent, error) {
	var events []models.OutboxEvent
	err := r.db.WithContext(ctx).
		Where("status = ? AND next_attempt_at <= ?", enums.OutboxStatusPending, time.Now().UTC()).
		Order("next_attempt_at ASC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// MarkDelivered flags the event as delivered.
func (r *Repository) MarkDelivered(ctx context.Context, id uuid.UUID) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Model(&models.OutboxEvent{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":       enums.OutboxStatusDelivered,
			"delivered_at": now,
		}).Error
}

// MarkFailed records a failed attempt, scheduling a retry or parking the
// event once maxAttempts is reached.
func (r *Repository) MarkFailed(ctx context.Context, event models.OutboxEvent, cause error, maxAttempts int, backoff time.Duration) error {
	attempts := event.Attempts + 1
	updates := map[string]any{
		"attempts":   attempts,
		"last_error": cause.Error(),
	}
	if attempts >= maxAttempts {
		updates["status"] = enums.OutboxStatusFailed
	} else {
		// exponential backoff: base * 2^(attempts-1)
		updates["next_attempt_at"] = time.Now().UTC().Add(backoff << (attempts - 1))
	}
	return r.db.WithContext(ctx).Model(&models.OutboxEvent{}).
		Where("id = ?", event.ID).
		Updates(updates).Error
}
