package pricing

import (
	"context"

	"github.com/google/uuid"

	"github.com/atlastours/rentals-backend/pkg/config"
	"github.com/atlastours/rentals-backend/pkg/types"
)

// FeeResolver maps a pickup location to its delivery fee. Implementations
// must return 0 for unknown ids: an unresolved location is the free default
// hub, not an error.
type FeeResolver interface {
	DeliveryFeeCents(ctx context.Context, locationID uuid.UUID) int
}

// StaticFees is a fixed-table resolver, used in tests and as the zero-fee
// fallback.
type StaticFees map[uuid.UUID]int

func (s StaticFees) DeliveryFeeCents(_ context.Context, locationID uuid.UUID) int {
	return s[locationID]
}

// Rates carries the configured per-day surcharges and the service-fee
// percentage.
type Rates struct {
	ServiceFeePercent    float64
	DriverPerDayCents    int
	ChildSeatPerDayCents int
	CampingPerDayCents   int
}

// RatesFromConfig lifts the pricing section of the app config.
func RatesFromConfig(cfg config.PricingConfig) Rates {
	return Rates{
		ServiceFeePercent:    cfg.ServiceFeePercent,
		DriverPerDayCents:    cfg.DriverPerDayCents,
		ChildSeatPerDayCents: cfg.ChildSeatPerDayCents,
		CampingPerDayCents:   cfg.CampingPerDayCents,
	}
}

// QuoteRequest describes one rental configuration as the shopper edits it.
type QuoteRequest struct {
	PricePerDayCents int
	StartDate        types.Date
	EndDate          types.Date
	WithDriver       bool
	PickupLocationID uuid.UUID
	ChildSeats       int
	CampingEquipment bool
}

// Breakdown is the itemized price of one rental. Total is always the sum of
// the listed components; it is computed once and treated as immutable.
type Breakdown struct {
	Days             int `json:"days"`
	SubtotalCents    int `json:"subtotal_cents"`
	ServiceFeeCents  int `json:"service_fee_cents"`
	DriverFeeCents   int `json:"driver_fee_cents"`
	DeliveryFeeCents int `json:"delivery_fee_cents"`
	AddonsCents      int `json:"addons_cents"`
	TotalCents       int `json:"total_cents"`
}

// Engine computes price breakdowns. It performs no I/O of its own; the fee
// resolver is the only collaborator and is expected to be cheap, so Quote is
// safe to call on every date-picker interaction.
type Engine struct {
	rates Rates
	fees  FeeResolver
}

// NewEngine builds a pricing engine. A nil resolver behaves as all-zero fees.
func NewEngine(rates Rates, fees FeeResolver) *Engine {
	if fees == nil {
		fees = StaticFees{}
	}
	return &Engine{rates: rates, fees: fees}
}

// Quote computes the breakdown for the request. It never fails: invalid
// inputs are clamped (duration floors at 1 day, negative quantities at zero)
// rather than rejected, because the storefront calls this mid-edit.
//
// The component order is fixed: subtotal, service fee (a percentage of the
// subtotal only, rounded half-up once), driver fee, delivery fee, add-ons,
// total. Reordering would shift rounding outcomes.
func (e *Engine) Quote(ctx context.Context, req QuoteRequest) Breakdown {
	days := req.StartDate.DaysUntil(req.EndDate)
	if days < 1 {
		days = 1
	}

	pricePerDay := req.PricePerDayCents
	if pricePerDay < 0 {
		pricePerDay = 0
	}
	childSeats := req.ChildSeats
	if childSeats < 0 {
		childSeats = 0
	}

	subtotal := pricePerDay * days
	serviceFee := types.PercentHalfUp(subtotal, e.rates.ServiceFeePercent)

	driverFee := 0
	if req.WithDriver {
		driverFee = e.rates.DriverPerDayCents * days
	}

	deliveryFee := 0
	if req.PickupLocationID != uuid.Nil {
		deliveryFee = e.fees.DeliveryFeeCents(ctx, req.PickupLocationID)
		if deliveryFee < 0 {
			deliveryFee = 0
		}
	}

	addons := childSeats * e.rates.ChildSeatPerDayCents * days
	if req.CampingEquipment {
		addons += e.rates.CampingPerDayCents * days
	}

	return Breakdown{
		Days:             days,
		SubtotalCents:    subtotal,
		ServiceFeeCents:  serviceFee,
		DriverFeeCents:   driverFee,
		DeliveryFeeCents: deliveryFee,
		AddonsCents:      addons,
		TotalCents:       subtotal + serviceFee + driverFee + deliveryFee + addons,
	}
}
