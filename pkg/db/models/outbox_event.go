package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/atlastours/rentals-backend/pkg/enums"
)

// OutboxEvent queues a payload for the notification endpoint. Rows are written
// in the same transaction as the state change they describe and delivered by
// the relay binary.
type OutboxEvent struct {
	ID            uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Topic         string             `gorm:"column:topic;not null"`
	Payload       []byte             `gorm:"column:payload;type:jsonb;not null"`
	Status        enums.OutboxStatus `gorm:"column:status;not null;default:'pending'"`
	Attempts      int                `gorm:"column:attempts;not null;default:0"`
	NextAttemptAt time.Time          `gorm:"column:next_attempt_at;not null"`
	LastError     string             `gorm:"column:last_error"`
	DeliveredAt   *time.Time         `gorm:"column:delivered_at"`
	CreatedAt     time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
