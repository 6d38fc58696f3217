package cars

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/atlastours/rentals-backend/pkg/db/models"
)

// Repository handles car catalog persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to car operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new car row.
func (r *Repository) Create(ctx context.Context, car *models.Car) error {
	return r.db.WithContext(ctx).Create(car).Error
}

// FindByID loads a car by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Car, error) {
	var car models.Car
	if err := r.db.WithContext(ctx).First(&car, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &car, nil
}

// ListActive returns the storefront catalog ordered by name.
func (r *Repository) ListActive(ctx context.Context) ([]models.Car, error) {
	var rows []models.Car
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Update saves the provided car.
func (r *Repository) Update(ctx context.Context, car *models.Car) error {
	if car == nil {
		return gorm.ErrInvalidValue
	}
	return r.db.WithContext(ctx).Save(car).Error
}

// Delete removes the car row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Car{}, "id = ?", id).Error
}
