package models

import "time"

// CartSlot is the single durable row holding the serialized cart. One row per
// slot key; the payload is the JSON-encoded line-item list, overwritten after
// every cart mutation.
type CartSlot struct {
	Key       string    `gorm:"column:key;primaryKey"`
	Payload   []byte    `gorm:"column:payload;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
