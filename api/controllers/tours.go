package controllers

import (
	"net/http"

	"github.com/atlastours/rentals-backend/api/responses"
	"github.com/atlastours/rentals-backend/api/validators"
	"github.com/atlastours/rentals-backend/internal/tours"
	"github.com/atlastours/rentals-backend/pkg/logger"
)

// TourController serves the tour catalog.
type TourController struct {
	svc  tours.Service
	logg *logger.Logger
}

func NewTourController(svc tours.Service, logg *logger.Logger) *TourController {
	return &TourController{svc: svc, logg: logg}
}

type tourRequest struct {
	Title               string   `json:"title" validate:"required"`
	Description         string   `json:"description"`
	DurationDays        int      `json:"duration_days" validate:"min=0"`
	PricePerPersonCents int      `json:"price_per_person_cents" validate:"min=0"`
	Highlights          []string `json:"highlights"`
	ImageURL            string   `json:"image_url"`
	IsActive            *bool    `json:"is_active"`
}

func (b tourRequest) toInput() tours.UpsertInput {
	return tours.UpsertInput{
		Title:               b.Title,
		Description:         b.Description,
		DurationDays:        b.DurationDays,
		PricePerPersonCents: b.PricePerPersonCents,
		Highlights:          b.Highlights,
		ImageURL:            b.ImageURL,
		IsActive:            b.IsActive,
	}
}

func (c *TourController) List(w http.ResponseWriter, r *http.Request) {
	rows, err := c.svc.List(r.Context())
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, rows)
}

func (c *TourController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tourID")
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	tour, err := c.svc.Get(r.Context(), id)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, tour)
}

func (c *TourController) Create(w http.ResponseWriter, r *http.Request) {
	var body tourRequest
	if err := validators.DecodeJSONBody(r, &body); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	tour, err := c.svc.Create(r.Context(), body.toInput())
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccessStatus(w, http.StatusCreated, tour)
}

func (c *TourController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tourID")
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	var body tourRequest
	if err := validators.DecodeJSONBody(r, &body); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	tour, err := c.svc.Update(r.Context(), id, body.toInput())
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, tour)
}

func (c *TourController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tourID")
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
