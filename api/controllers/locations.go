package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/atlastours/rentals-backend/api/responses"
	"github.com/atlastours/rentals-backend/api/validators"
	"github.com/atlastours/rentals-backend/internal/locations"
	pkgerrors "github.com/atlastours/rentals-backend/pkg/errors"
	"github.com/atlastours/rentals-backend/pkg/logger"
)

// LocationController serves pickup locations publicly and their CRUD to the
// back office.
type LocationController struct {
	svc  locations.Service
	logg *logger.Logger
}

func NewLocationController(svc locations.Service, logg *logger.Logger) *LocationController {
	return &LocationController{svc: svc, logg: logg}
}

type locationRequest struct {
	Name             string `json:"name" validate:"required"`
	Address          string `json:"address"`
	DeliveryFeeCents int    `json:"delivery_fee_cents" validate:"min=0"`
	IsActive         *bool  `json:"is_active"`
}

func (b locationRequest) toInput() locations.UpsertInput {
	return locations.UpsertInput{
		Name:             b.Name,
		Address:          b.Address,
		DeliveryFeeCents: b.DeliveryFeeCents,
		IsActive:         b.IsActive,
	}
}

func (c *LocationController) List(w http.ResponseWriter, r *http.Request) {
	rows, err := c.svc.List(r.Context())
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, rows)
}

func (c *LocationController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "locationID")
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	location, err := c.svc.Get(r.Context(), id)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, location)
}

func (c *LocationController) Create(w http.ResponseWriter, r *http.Request) {
	var body locationRequest
	if err := validators.DecodeJSONBody(r, &body); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	location, err := c.svc.Create(r.Context(), body.toInput())
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccessStatus(w, http.StatusCreated, location)
}

func (c *LocationController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "locationID")
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	var body locationRequest
	if err := validators.DecodeJSONBody(r, &body); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	location, err := c.svc.Update(r.Context(), id, body.toInput())
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, location)
}

func (c *LocationController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "locationID")
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

func pathUUID(r *http.Request, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid id")
	}
	return id, nil
}
