package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Tour is a bookable guided tour with a per-person price.
type Tour struct {
	ID                  uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title               string         `gorm:"column:title;not null"`
	Description         string         `gorm:"column:description"`
	DurationDays        int            `gorm:"column:duration_days;not null;default:1"`
	PricePerPersonCents int            `gorm:"column:price_per_person_cents;not null"`
	Highlights          pq.StringArray `gorm:"column:highlights;type:text[]"`
	ImageURL            string         `gorm:"column:image_url"`
	IsActive            bool           `gorm:"column:is_active;not null;default:true"`
	CreatedAt           time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
