package cars

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

type carRepo interface {
	Create(ctx context.Context, car *models.Car) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Car, error)
	ListActive(ctx context.Context) ([]models.Car, error)
	Update(ctx context.Context, car *models.Car) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service exposes the car catalog to the storefront and the back office.
type Service interface {
	Create(ctx context.Context, input UpsertInput) (*models.Car, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Car, error)
	List(ctx context.Context) ([]models.Car, error)
	Update(ctx context.Context, id uuid.UUID, input UpsertInput) (*models.Car, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo carRepo
}

// NewService builds the car catalog service.
func NewService(repo carRepo) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("car repository required")
	}
	return &service{repo: repo}, nil
}

// UpsertInput carries the editable car fields.
type UpsertInput struct {
	Name             string
	Brand            string
	Model            string
	Year             int
	Seats            int
	Transmission     string
	Fuel             string
	PricePerDayCents int
	Features         []string
	ImageURL         string
	IsActive         *bool
}

func (in UpsertInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "car name is required")
	}
	if in.PricePerDayCents < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "price per day cannot be negative")
	}
	return nil
}

func (in UpsertInput) applyTo(car *models.Car) {
	car.Name = strings.TrimSpace(in.Name)
	car.Brand = strings.TrimSpace(in.Brand)
	car.Model = strings.TrimSpace(in.Model)
	car.Year = in.Year
	if in.Seats > 0 {
		car.Seats = in.Seats
	}
	car.Transmission = in.Transmission
	car.Fuel = in.Fuel
	car.PricePerDayCents = in.PricePerDayCents
	car.Features = in.Features
	car.ImageURL = in.ImageURL
	if in.IsActive != nil {
		car.IsActive = *in.IsActive
	}
}

func (s *service) Create(ctx context.Context, input UpsertInput) (*models.Car, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	car := &models.Car{IsActive: true, Seats: 5}
	input.applyTo(car)
	if err := s.repo.Create(ctx, car); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist car")
	}
	return car, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Car, error) {
	car, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "car not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load car")
	}
	return car, nil
}

func (s *service) List(ctx context.Context) ([]models.Car, error) {
	rows, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list cars")
	}
	return rows, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpsertInput) (*models.Car, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	car, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	input.applyTo(car)
	if err := s.repo.Update(ctx, car); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist car")
	}
	return car, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete car")
	}
	return nil
}
