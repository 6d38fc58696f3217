package pricing

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/atlastours/rentals-backend/pkg/types"
)

func testRates() Rates {
	return Rates{
		ServiceFeePercent:    5,
		DriverPerDayCents:    5000,
		ChildSeatPerDayCents: 700,
		CampingPerDayCents:   1500,
	}
}

func day(d int) types.Date {
	return types.NewDate(2026, time.June, d)
}

func TestQuoteDayCountFloorsAtOne(t *testing.T) {
	t.Parallel()
	engine := NewEngine(testRates(), nil)

	cases := []struct {
		name  string
		start types.Date
		end   types.Date
		days  int
	}{
		{"same day", day(10), day(10), 1},
		{"end before start", day(10), day(8), 1},
		{"one night", day(10), day(11), 1},
		{"three nights", day(10), day(13), 3},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := engine.Quote(context.Background(), QuoteRequest{
				PricePerDayCents: 10000,
				StartDate:        tc.start,
				EndDate:          tc.end,
			})
			assert.Equal(t, tc.days, got.Days)
			assert.Equal(t, 10000*tc.days, got.SubtotalCents)
		})
	}
}

func TestQuoteServiceFeeRoundsHalfUp(t *testing.T) {
	t.Parallel()
	engine := NewEngine(testRates(), nil)

	// 3 days at 33.00 → subtotal 99.00, fee 4.95.
	got := engine.Quote(context.Background(), QuoteRequest{
		PricePerDayCents: 3300,
		StartDate:        day(1),
		EndDate:          day(4),
	})
	assert.Equal(t, 9900, got.SubtotalCents)
	assert.Equal(t, 495, got.ServiceFeeCents)

	// 10 days at 1.03 → subtotal 10.30, fee 51.5¢ rounds up to 52¢.
	got = engine.Quote(context.Background(), QuoteRequest{
		PricePerDayCents: 103,
		StartDate:        day(1),
		EndDate:          day(11),
	})
	assert.Equal(t, 1030, got.SubtotalCents)
	assert.Equal(t, 52, got.ServiceFeeCents)
}

func TestQuoteTotalIsExactComponentSum(t *testing.T) {
	t.Parallel()
	locationID := uuid.New()
	engine := NewEngine(testRates(), StaticFees{locationID: 2500})

	got := engine.Quote(context.Background(), QuoteRequest{
		PricePerDayCents: 8000,
		StartDate:        day(5),
		EndDate:          day(9),
		WithDriver:       true,
		PickupLocationID: locationID,
		ChildSeats:       2,
		CampingEquipment: true,
	})

	assert.Equal(t, 4, got.Days)
	assert.Equal(t, 32000, got.SubtotalCents)
	assert.Equal(t, 1600, got.ServiceFeeCents)
	assert.Equal(t, 20000, got.DriverFeeCents)
	assert.Equal(t, 2500, got.DeliveryFeeCents)
	assert.Equal(t, 2*700*4+1500*4, got.AddonsCents)
	sum := got.SubtotalCents + got.ServiceFeeCents + got.DriverFeeCents + got.DeliveryFeeCents + got.AddonsCents
	assert.Equal(t, sum, got.TotalCents)
}

func TestQuoteDriverFeeIsAdditive(t *testing.T) {
	t.Parallel()
	engine := NewEngine(testRates(), nil)

	base := QuoteRequest{
		PricePerDayCents: 12000,
		StartDate:        day(1),
		EndDate:          day(6),
	}
	withDriver := base
	withDriver.WithDriver = true

	plain := engine.Quote(context.Background(), base)
	driven := engine.Quote(context.Background(), withDriver)

	assert.Equal(t, 0, plain.DriverFeeCents)
	assert.Equal(t, 5000*5, driven.DriverFeeCents)
	assert.Equal(t, plain.TotalCents+5000*5, driven.TotalCents)
	// Nothing else moved.
	assert.Equal(t, plain.SubtotalCents, driven.SubtotalCents)
	assert.Equal(t, plain.ServiceFeeCents, driven.ServiceFeeCents)
}

func TestQuoteUnknownLocationIsFree(t *testing.T) {
	t.Parallel()
	engine := NewEngine(testRates(), StaticFees{uuid.New(): 9900})

	got := engine.Quote(context.Background(), QuoteRequest{
		PricePerDayCents: 5000,
		StartDate:        day(1),
		EndDate:          day(3),
		PickupLocationID: uuid.New(),
	})
	assert.Equal(t, 0, got.DeliveryFeeCents)

	got = engine.Quote(context.Background(), QuoteRequest{
		PricePerDayCents: 5000,
		StartDate:        day(1),
		EndDate:          day(3),
	})
	assert.Equal(t, 0, got.DeliveryFeeCents)
}

func TestQuoteClampsNegativeInputs(t *testing.T) {
	t.Parallel()
	engine := NewEngine(testRates(), nil)

	got := engine.Quote(context.Background(), QuoteRequest{
		PricePerDayCents: -100,
		StartDate:        day(1),
		EndDate:          day(3),
		ChildSeats:       -4,
	})
	assert.Equal(t, 0, got.SubtotalCents)
	assert.Equal(t, 0, got.AddonsCents)
	assert.Equal(t, 0, got.TotalCents)
}
