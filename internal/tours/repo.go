package tours

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/atlastours/rentals-backend/pkg/db/models"
)

// Repository handles tour catalog persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to tour operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new tour row.
func (r *Repository) Create(ctx context.Context, tour *models.Tour) error {
	return r.db.WithContext(ctx).Create(tour).Error
}

// FindByID loads a tour by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Tour, error) {
	var tour models.Tour
	if err := r.db.WithContext(ctx).First(&tour, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tour, nil
}

// ListActive returns the storefront catalog ordered by title.
func (r *Repository) ListActive(ctx context.Context) ([]models.Tour, error) {
	var rows []models.Tour
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("title ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Update saves the provided tour.
func (r *Repository) Update(ctx context.Context, tour *models.Tour) error {
	if tour == nil {
		return gorm.ErrInvalidValue
	}
	return r.db.WithContext(ctx).Save(tour).Error
}

// Delete removes the tour row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Tour{}, "id = ?", id).Error
}
