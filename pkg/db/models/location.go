package models

import (
	"time"

	"github.com/google/uuid"
)

// Location is a pickup/dropoff hub with its configured delivery fee. The
// default hub carries a zero fee.
type Location struct {
	ID               uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name             string    `gorm:"column:name;not null"`
	Address          string    `gorm:"column:address"`
	DeliveryFeeCents int       `gorm:"column:delivery_fee_cents;not null;default:0"`
	IsActive         bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
