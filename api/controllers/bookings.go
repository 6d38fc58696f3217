package controllers

import (
	"net/http"

	"github.com/atlastours/rentals-backend/api/responses"
	"github.com/atlastours/rentals-backend/api/validators"
	"github.com/atlastours/rentals-backend/internal/bookings"
	"github.com/atlastours/rentals-backend/pkg/enums"
	"github.com/atlastours/rentals-backend/pkg/logger"
)

// BookingController serves the back-office booking views.
type BookingController struct {
	svc  bookings.Service
	logg *logger.Logger
}

func NewBookingController(svc bookings.Service, logg *logger.Logger) *BookingController {
	return &BookingController{svc: svc, logg: logg}
}

func (c *BookingController) List(w http.ResponseWriter, r *http.Request) {
	status := enums.BookingStatus(r.URL.Query().Get("status"))
	rows, err := c.svc.List(r.Context(), status)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, rows)
}

func (c *BookingController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "bookingID")
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	booking, err := c.svc.Get(r.Context(), id)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, booking)
}

type bookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled completed"`
}

func (c *BookingController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "bookingID")
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	var body bookingStatusRequest
	if err := validators.DecodeJSONBody(r, &body); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	if err := c.svc.UpdateStatus(r.Context(), id, enums.BookingStatus(body.Status)); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, map[string]string{"status": body.Status})
}
