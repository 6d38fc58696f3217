package controllers

import (
	"net/http"

	"github.com/atlastours/rentals-backend/api/responses"
	"github.com/atlastours/rentals-backend/api/validators"
	"github.com/atlastours/rentals-backend/internal/cars"
	"github.com/atlastours/rentals-backend/pkg/logger"
)

// CarController serves the car catalog.
type CarController struct {
	svc  cars.Service
	logg *logger.Logger
}

func NewCarController(svc cars.Service, logg *logger.Logger) *CarController {
	return &CarController{svc: svc, logg: logg}
}

type carRequest struct {
	Name             string   `json:"name" validate:"required"`
	Brand            string   `json:"brand"`
	Model            string   `json:"model"`
	Year             int      `json:"year"`
	Seats            int      `json:"seats" validate:"min=0"`
	Transmission     string   `json:"transmission"`
	Fuel             string   `json:"fuel"`
	PricePerDayCents int      `json:"price_per_day_cents" validate:"min=0"`
	Features         []string `json:"features"`
	ImageURL         string   `json:"image_url"`
	IsActive         *bool    `json:"is_active"`
}

func (b carRequest) toInput() cars.UpsertInput {
	return cars.UpsertInput{
		Name:             b.Name,
		Brand:            b.Brand,
		Model:            b.Model,
		Year:             b.Year,
		Seats:            b.Seats,
		Transmission:     b.Transmission,
		Fuel:             b.Fuel,
		PricePerDayCents: b.PricePerDayCents,
		Features:         b.Features,
		ImageURL:         b.ImageURL,
		IsActive:         b.IsActive,
	}
}

func (c *CarController) List(w http.ResponseWriter, r *http.Request) {
	rows, err := c.svc.List(r.Context())
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, rows)
}

func (c *CarController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "carID")
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	car, err := c.svc.Get(r.Context(), id)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, car)
}

func (c *CarController) Create(w http.ResponseWriter, r *http.Request) {
	var body carRequest
	if err := validators.DecodeJSONBody(r, &body); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	car, err := c.svc.Create(r.Context(), body.toInput())
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccessStatus(w, http.StatusCreated, car)
}

func (c *CarController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "carID")
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	var body carRequest
	if err := validators.DecodeJSONBody(r, &body); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	car, err := c.svc.Update(r.Context(), id, body.toInput())
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, car)
}

func (c *CarController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "carID")
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	if err := c.svc.Delete(r.Context(), id); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccessStatus(w, http.StatusNoContent, nil)
}
