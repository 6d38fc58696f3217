package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/atlastours/rentals-backend/api/responses"
	"github.com/atlastours/rentals-backend/api/validators"
	"github.com/atlastours/rentals-backend/internal/pricing"
	pkgerrors "github.com/atlastours/rentals-backend/pkg/errors"
	"github.com/atlastours/rentals-backend/pkg/logger"
	"github.com/atlastours/rentals-backend/pkg/types"
)

// QuoteController prices rental configurations for the storefront.
type QuoteController struct {
	engine *pricing.Engine
	logg   *logger.Logger
}

func NewQuoteController(engine *pricing.Engine, logg *logger.Logger) *QuoteController {
	return &QuoteController{engine: engine, logg: logg}
}

type quoteRequest struct {
	PricePerDayCents int    `json:"price_per_day_cents" validate:"min=0"`
	StartDate        string `json:"start_date" validate:"required"`
	EndDate          string `json:"end_date" validate:"required"`
	WithDriver       bool   `json:"with_driver"`
	PickupLocationID string `json:"pickup_location_id"`
	ChildSeats       int    `json:"child_seats" validate:"min=0"`
	CampingEquipment bool   `json:"camping_equipment"`
}

// Quote computes a price breakdown. It is called on every storefront edit,
// so the handler stays allocation-light and never touches the cart.
func (c *QuoteController) Quote(w http.ResponseWriter, r *http.Request) {
	var body quoteRequest
	if err := validators.DecodeJSONBody(r, &body); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	req, err := body.toRequest()
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	breakdown := c.engine.Quote(r.Context(), req)
	responses.WriteSuccess(w, breakdown)
}

func (b quoteRequest) toRequest() (pricing.QuoteRequest, error) {
	start, err := types.ParseDate(b.StartDate)
	if err != nil {
		return pricing.QuoteRequest{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid start date")
	}
	end, err := types.ParseDate(b.EndDate)
	if err != nil {
		return pricing.QuoteRequest{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid end date")
	}

	locationID := uuid.Nil
	if b.PickupLocationID != "" {
		parsed, err := uuid.Parse(b.PickupLocationID)
		if err != nil {
			return pricing.QuoteRequest{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid pickup location id")
		}
		locationID = parsed
	}

	return pricing.QuoteRequest{
		PricePerDayCents: b.PricePerDayCents,
		StartDate:        start,
		EndDate:          end,
		WithDriver:       b.WithDriver,
		PickupLocationID: locationID,
		ChildSeats:       b.ChildSeats,
		CampingEquipment: b.CampingEquipment,
	}, nil
}
