package controllers

import (
	"net/http"

	"github.com/atlastours/rentals-backend/api/responses"
	"github.com/atlastours/rentals-backend/api/validators"
	"github.com/atlastours/rentals-backend/internal/bookings"
	"github.com/atlastours/rentals-backend/internal/cart"
	"github.com/atlastours/rentals-backend/pkg/enums"
	"github.com/atlastours/rentals-backend/pkg/logger"
)

// CheckoutController turns the current cart into bookings.
type CheckoutController struct {
	store    *cart.Store
	bookings bookings.Service
	logg     *logger.Logger
}

func NewCheckoutController(store *cart.Store, svc bookings.Service, logg *logger.Logger) *CheckoutController {
	return &CheckoutController{store: store, bookings: svc, logg: logg}
}

type checkoutRequest struct {
	CustomerName  string `json:"customer_name" validate:"required"`
	CustomerEmail string `json:"customer_email" validate:"required,email"`
	CustomerPhone string `json:"customer_phone"`
	PaymentOption string `json:"payment_option" validate:"required,oneof=deposit full on_arrival"`
	Note          string `json:"note"`
}

// Checkout books every cart line atomically, then clears the cart. A failed
// clear after a committed checkout is reported, but the bookings stand; the
// cart items carry the same snapshots as the booking rows so a retry of the
// clear loses nothing.
func (c *CheckoutController) Checkout(w http.ResponseWriter, r *http.Request) {
	var body checkoutRequest
	if err := validators.DecodeJSONBody(r, &body); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	result, err := c.bookings.Checkout(r.Context(), bookings.CheckoutInput{
		CustomerName:  body.CustomerName,
		CustomerEmail: body.CustomerEmail,
		CustomerPhone: body.CustomerPhone,
		PaymentOption: enums.PaymentOption(body.PaymentOption),
		Note:          body.Note,
	}, c.store.Items())
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	if err := c.store.Clear(r.Context()); err != nil {
		if c.logg != nil {
			c.logg.Error(r.Context(), "cart clear after checkout failed", err)
		}
	}

	responses.WriteSuccessStatus(w, http.StatusCreated, result)
}
