package cart

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/atlastours/rentals-backend/pkg/db/models"
)

// Slot is the durable key-value location holding the serialized cart. It is
// read once when the store boots and overwritten after every mutation.
//
// Concurrent processes sharing one slot are not coordinated; the last writer
// wins.
type Slot interface {
	Load(ctx context.Context) ([]byte, bool, error)
	Save(ctx context.Context, payload []byte) error
}

// SQLiteSlot stores the cart payload in a single row of a local SQLite file.
type SQLiteSlot struct {
	db  *gorm.DB
	key string
}

// NewSQLiteSlot prepares the slot table and binds it to the given key.
func NewSQLiteSlot(conn *gorm.DB, key string) (*SQLiteSlot, error) {
	if conn == nil {
		return nil, fmt.Errorf("sqlite connection required")
	}
	if key == "" {
		return nil, fmt.Errorf("slot key required")
	}
	if err := conn.AutoMigrate(&models.CartSlot{}); err != nil {
		return nil, fmt.Errorf("migrating cart slot table: %w", err)
	}
	return &SQLiteSlot{db: conn, key: key}, nil
}

// Load returns the stored payload, reporting false when the slot is empty.
func (s *SQLiteSlot) Load(ctx context.Context) ([]byte, bool, error) {
	var row models.CartSlot
	err := s.db.WithContext(ctx).First(&row, "key = ?", s.key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return row.Payload, true, nil
}

// Save overwrites the slot with the given payload.
func (s *SQLiteSlot) Save(ctx context.Context, payload []byte) error {
	row := models.CartSlot{Key: s.key, Payload: payload}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&row).Error
}
