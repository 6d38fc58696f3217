package bookings

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/atlastours/rentals-backend/internal/cart"
	"github.com/atlastours/rentals-backend/internal/pricing"
	"github.com/atlastours/rentals-backend/pkg/config"
	"github.com/atlastours/rentals-backend/pkg/db/models"
	"github.com/atlastours/rentals-backend/pkg/enums"
	pkgerrors "github.com/atlastours/rentals-backend/pkg/errors"
	"github.com/atlastours/rentals-backend/pkg/outbox"
	"github.com/atlastours/rentals-backend/pkg/types"
)

type stubRepo struct {
	created   []*models.Booking
	createErr error
	found     *models.Booking
	findErr   error
	updated   []enums.BookingStatus
}

func (s *stubRepo) CreateTx(_ *gorm.DB, booking *models.Booking) error {
	if s.createErr != nil {
		return s.createErr
	}
	booking.ID = uuid.New()
	s.created = append(s.created, booking)
	return nil
}

func (s *stubRepo) FindByID(context.Context, uuid.UUID) (*models.Booking, error) {
	return s.found, s.findErr
}

func (s *stubRepo) List(context.Context, enums.BookingStatus) ([]models.Booking, error) {
	return nil, nil
}

func (s *stubRepo) UpdateStatus(_ context.Context, _ uuid.UUID, status enums.BookingStatus) error {
	s.updated = append(s.updated, status)
	return nil
}

type stubTx struct{}

func (stubTx) WithTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubOutbox struct {
	topics   []string
	payloads [][]byte
	err      error
}

func (s *stubOutbox) EnqueueTx(_ *gorm.DB, topic string, payload any) error {
	if s.err != nil {
		return s.err
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	s.topics = append(s.topics, topic)
	s.payloads = append(s.payloads, raw)
	return nil
}

func validInput() CheckoutInput {
	return CheckoutInput{
		CustomerName:  "Ana Silva",
		CustomerEmail: "ana@example.com",
		PaymentOption: enums.PaymentOptionDeposit,
	}
}

func cartItems() []cart.LineItem {
	carID := uuid.New()
	tourID := uuid.New()
	return []cart.LineItem{
		{
			Kind:      enums.ItemKindCar,
			CarID:     &carID,
			Title:     "Land Cruiser",
			StartDate: types.NewDate(2026, time.June, 10),
			EndDate:   types.NewDate(2026, time.June, 13),
			Breakdown: pricing.Breakdown{Days: 3, SubtotalCents: 45000, TotalCents: 46500},
		},
		{
			Kind:      enums.ItemKindTour,
			TourID:    &tourID,
			Title:     "Desert Safari",
			StartDate: types.NewDate(2026, time.June, 15),
			EndDate:   types.NewDate(2026, time.June, 18),
			Breakdown: pricing.Breakdown{Days: 3, SubtotalCents: 60000, TotalCents: 66500},
		},
	}
}

func newTestService(t *testing.T, repo *stubRepo, ob *stubOutbox) Service {
	t.Helper()
	svc, err := NewService(repo, stubTx{}, ob, config.CheckoutConfig{DepositPercent: 30})
	require.NoError(t, err)
	return svc
}

func TestCheckoutBooksEveryItemWithSnapshotFigures(t *testing.T) {
	t.Parallel()
	repo := &stubRepo{}
	ob := &stubOutbox{}
	svc := newTestService(t, repo, ob)

	result, err := svc.Checkout(context.Background(), validInput(), cartItems())
	require.NoError(t, err)

	require.Len(t, repo.created, 2)
	require.Len(t, result.Bookings, 2)

	first := repo.created[0]
	assert.Equal(t, 46500, first.TotalCents)
	assert.Equal(t, 13950, first.DepositCents)
	assert.Equal(t, 46500-13950, first.RemainingCents)
	assert.Equal(t, enums.BookingStatusPending, first.Status)
	assert.Contains(t, first.Reference, "BK-")

	second := repo.created[1]
	assert.Equal(t, 66500, second.TotalCents)
	assert.Equal(t, 19950, second.DepositCents)

	assert.Equal(t, 113000, result.TotalCents)
	assert.Equal(t, 13950+19950, result.DepositCents)
	assert.Equal(t, result.TotalCents-result.DepositCents, result.RemainingCents)

	assert.Equal(t, "Land Cruiser", result.Bookings[0].Title)
	assert.Equal(t, "Desert Safari", result.Bookings[1].Title)
}

func TestCheckoutEnqueuesOneEventPerBooking(t *testing.T) {
	t.Parallel()
	repo := &stubRepo{}
	ob := &stubOutbox{}
	svc := newTestService(t, repo, ob)

	_, err := svc.Checkout(context.Background(), validInput(), cartItems())
	require.NoError(t, err)

	require.Len(t, ob.topics, 2)
	assert.Equal(t, outbox.TopicBookingConfirmed, ob.topics[0])

	var payload map[string]any
	require.NoError(t, json.Unmarshal(ob.payloads[0], &payload))
	assert.Equal(t, "Land Cruiser", payload["title"])
	assert.Equal(t, "ana@example.com", payload["customer_email"])
	assert.Equal(t, float64(46500), payload["total_cents"])
	assert.Equal(t, float64(13950), payload["deposit_cents"])
	assert.Equal(t, "2026-06-10", payload["start_date"])
}

func TestCheckoutRejectsInvalidInput(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, &stubRepo{}, &stubOutbox{})
	ctx := context.Background()

	_, err := svc.Checkout(ctx, CheckoutInput{CustomerEmail: "a@b.c", PaymentOption: enums.PaymentOptionFull}, cartItems())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	input := validInput()
	input.PaymentOption = "barter"
	_, err = svc.Checkout(ctx, input, cartItems())
	require.Error(t, err)

	_, err = svc.Checkout(ctx, validInput(), nil)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestCheckoutFailurePropagates(t *testing.T) {
	t.Parallel()
	repo := &stubRepo{createErr: errors.New("constraint violated")}
	svc := newTestService(t, repo, &stubOutbox{})

	_, err := svc.Checkout(context.Background(), validInput(), cartItems())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeDependency, pkgerrors.As(err).Code())
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	t.Parallel()
	repo := &stubRepo{}
	svc := newTestService(t, repo, &stubOutbox{})

	err := svc.UpdateStatus(context.Background(), uuid.New(), "archived")
	require.Error(t, err)
	assert.Empty(t, repo.updated)

	require.NoError(t, svc.UpdateStatus(context.Background(), uuid.New(), enums.BookingStatusConfirmed))
	assert.Equal(t, []enums.BookingStatus{enums.BookingStatusConfirmed}, repo.updated)
}

func TestGetMapsRecordNotFound(t *testing.T) {
	t.Parallel()
	repo := &stubRepo{findErr: gorm.ErrRecordNotFound}
	svc := newTestService(t, repo, &stubOutbox{})

	_, err := svc.Get(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
