package tours

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/atlastours/rentals-backend/pkg/db/models"
	pkgerrors "github.com/atlastours/rentals-backend/pkg/errors"
)

type tourRepo interface {
	Create(ctx context.Context, tour *models.Tour) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Tour, error)
	ListActive(ctx context.Context) ([]models.Tour, error)
	Update(ctx context.Context, tour *models.Tour) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service exposes the tour catalog to the storefront and the back office.
type Service interface {
	Create(ctx context.Context, input UpsertInput) (*models.Tour, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Tour, error)
	List(ctx context.Context) ([]models.Tour, error)
	Update(ctx context.Context, id uuid.UUID, input UpsertInput) (*models.Tour, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo tourRepo
}

// NewService builds the tour catalog service.
func NewService(repo tourRepo) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("tour repository required")
	}
	return &service{repo: repo}, nil
}

// UpsertInput carries the editable tour fields.
type UpsertInput struct {
	Title               string
	Description         string
	DurationDays        int
	PricePerPersonCents int
	Highlights          []string
	ImageURL            string
	IsActive            *bool
}

func (in UpsertInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "tour title is required")
	}
	if in.PricePerPersonCents < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "price per person cannot be negative")
	}
	if in.DurationDays < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "duration cannot be negative")
	}
	return nil
}

func (in UpsertInput) applyTo(tour *models.Tour) {
	tour.Title = strings.TrimSpace(in.Title)
	tour.Description = in.Description
	if in.DurationDays > 0 {
		tour.DurationDays = in.DurationDays
	}
	tour.PricePerPersonCents = in.PricePerPersonCents
	tour.Highlights = in.Highlights
	tour.ImageURL = in.ImageURL
	if in.IsActive != nil {
		tour.IsActive = *in.IsActive
	}
}

func (s *service) Create(ctx context.Context, input UpsertInput) (*models.Tour, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	tour := &models.Tour{IsActive: true, DurationDays: 1}
	input.applyTo(tour)
	if err := s.repo.Create(ctx, tour); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist tour")
	}
	return tour, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Tour, error) {
	tour, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "tour not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load tour")
	}
	return tour, nil
}

func (s *service) List(ctx context.Context) ([]models.Tour, error) {
	rows, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list tours")
	}
	return rows, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpsertInput) (*models.Tour, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	tour, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	input.applyTo(tour)
	if err := s.repo.Update(ctx, tour); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist tour")
	}
	return tour, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete tour")
	}
	return nil
}
