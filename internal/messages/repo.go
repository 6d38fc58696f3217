package messages

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/atlastours/rentals-backend/pkg/db/models"
)

// Repository handles contact-message persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to message operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateTx persists a message inside the caller's transaction.
func (r *Repository) CreateTx(tx *gorm.DB, message *models.Message) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	return tx.Create(message).Error
}

// List returns messages newest-first.
func (r *Repository) List(ctx context.Context) ([]models.Message, error) {
	var rows []models.Message
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// MarkRead flags the message as read.
func (r *Repository) MarkRead(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.Message{}).
		Where("id = ?", id).
		Update("is_read", true).Error
}

// Delete removes the message row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Message{}, "id = ?", id).Error
}
