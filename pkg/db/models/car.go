package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Car is a rentable vehicle listed in the storefront catalog.
type Car struct {
	ID               uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name             string         `gorm:"column:name;not null"`
	Brand            string         `gorm:"column:brand"`
	Model            string         `gorm:"column:model"`
	Year             int            `gorm:"column:year"`
	Seats            int            `gorm:"column:seats;not null;default:5"`
	Transmission     string         `gorm:"column:transmission"`
	Fuel             string         `gorm:"column:fuel"`
	PricePerDayCents int            `gorm:"column:price_per_day_cents;not null"`
	Features         pq.StringArray `gorm:"column:features;type:text[]"`
	ImageURL         string         `gorm:"column:image_url"`
	IsActive         bool           `gorm:"column:is_active;not null;default:true"`
	CreatedAt        time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
