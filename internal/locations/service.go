package locations

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

type locationRepo interface {
	Create(ctx context.Context, location *models.Location) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Location, error)
	ListActive(ctx context.Context) ([]models.Location, error)
	Update(ctx context.Context, location *models.Location) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service exposes pickup-location lookups and back-office CRUD.
type Service interface {
	Create(ctx context.Context, input UpsertInput) (*models.Location, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Location, error)
	List(ctx context.Context) ([]models.Location, error)
	Update(ctx context.Context, id uuid.UUID, input UpsertInput) (*models.Location, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// DeliveryFeeCents resolves the configured fee; unknown or inactive
	// locations resolve to 0, the free default hub.
	DeliveryFeeCents(ctx context.Context, id uuid.UUID) int
}

type service struct {
	repo locationRepo
}

// NewService builds the locations service.
func NewService(repo locationRepo) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("location repository required")
	}
	return &service{repo: repo}, nil
}

// UpsertInput carries the editable location fields.
type UpsertInput struct {
	Name             string
	Address          string
	DeliveryFeeCents int
	IsActive         *bool
}

func (in UpsertInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "location name is required")
	}
	if in.DeliveryFeeCents < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "delivery fee cannot be negative")
	}
	return nil
}

func (s *service) Create(ctx context.Context, input UpsertInput) (*models.Location, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	location := &models.Location{
		Name:             strings.TrimSpace(input.Name),
		Address:          strings.TrimSpace(input.Address),
		DeliveryFeeCents: input.DeliveryFeeCents,
		IsActive:         true,
	}
	if input.IsActive != nil {
		location.IsActive = *input.IsActive
	}
	if err := s.repo.Create(ctx, location); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist location")
	}
	return location, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Location, error) {
	location, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "location not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load location")
	}
	return location, nil
}

func (s *service) List(ctx context.Context) ([]models.Location, error) {
	rows, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list locations")
	}
	return rows, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpsertInput) (*models.Location, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	location, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	location.Name = strings.TrimSpace(input.Name)
	location.Address = strings.TrimSpace(input.Address)
	location.DeliveryFeeCents = input.DeliveryFeeCents
	if input.IsActive != nil {
		location.IsActive = *input.IsActive
	}
	if err := s.repo.Update(ctx, location); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist location")
	}
	return location, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete location")
	}
	return nil
}

func (s *service) DeliveryFeeCents(ctx context.Context, id uuid.UUID) int {
	if id == uuid.Nil {
		return 0
	}
	location, err := s.repo.FindByID(ctx, id)
	if err != nil || !location.IsActive || location.DeliveryFeeCents < 0 {
		return 0
	}
	return location.DeliveryFeeCents
}
