package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/atlastours/rentals-backend/pkg/enums"
)

// Booking is one finalized reservation row written at checkout. Price figures
// are snapshots of the cart line's breakdown; they are never recomputed after
// the row is written.
type Booking struct {
	ID             uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Reference      string              `gorm:"column:reference;not null;uniqueIndex"`
	Kind           enums.ItemKind      `gorm:"column:kind;not null"`
	CarID          *uuid.UUID          `gorm:"column:car_id;type:uuid"`
	TourID         *uuid.UUID          `gorm:"column:tour_id;type:uuid"`
	CustomerName   string              `gorm:"column:customer_name;not null"`
	CustomerEmail  string              `gorm:"column:customer_email;not null"`
	CustomerPhone  string              `gorm:"column:customer_phone"`
	StartDate      time.Time           `gorm:"column:start_date;type:date;not null"`
	EndDate        time.Time           `gorm:"column:end_date;type:date;not null"`
	PickupTime     string              `gorm:"column:pickup_time"`
	DropoffTime    string              `gorm:"column:dropoff_time"`
	WithDriver     bool                `gorm:"column:with_driver;not null;default:false"`
	LocationID     *uuid.UUID          `gorm:"column:location_id;type:uuid"`
	Days           int                 `gorm:"column:days;not null"`
	SubtotalCents  int                 `gorm:"column:subtotal_cents;not null"`
	TotalCents     int                 `gorm:"column:total_cents;not null"`
	DepositCents   int                 `gorm:"column:deposit_cents;not null"`
	RemainingCents int                 `gorm:"column:remaining_cents;not null"`
	PaymentOption  enums.PaymentOption `gorm:"column:payment_option;not null"`
	Status         enums.BookingStatus `gorm:"column:status;not null;default:'pending'"`
	Note           string              `gorm:"column:note"`
	CreatedAt      time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
