package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/atlastours/rentals-backend/internal/cart"
	"github.com/atlastours/rentals-backend/pkg/config"
	"github.com/atlastours/rentals-backend/pkg/db/models"
	"github.com/atlastours/rentals-backend/pkg/enums"
	pkgerrors "github.com/atlastours/rentals-backend/pkg/errors"
	"github.com/atlastours/rentals-backend/pkg/outbox"
	"github.com/atlastours/rentals-backend/pkg/types"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type bookingRepo interface {
	CreateTx(tx *gorm.DB, booking *models.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	List(ctx context.Context, status enums.BookingStatus) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.BookingStatus) error
}

type outboxWriter interface {
	EnqueueTx(tx *gorm.DB, topic string, payload any) error
}

// Service turns cart line items into booking rows and serves the back office.
type Service interface {
	Checkout(ctx context.Context, input CheckoutInput, items []cart.LineItem) (*CheckoutResult, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	List(ctx context.Context, status enums.BookingStatus) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.BookingStatus) error
}

type service struct {
	repo   bookingRepo
	tx     txRunner
	outbox outboxWriter
	cfg    config.CheckoutConfig
}

// NewService builds a booking service backed by the provided stack.
func NewService(repo bookingRepo, tx txRunner, ob outboxWriter, cfg config.CheckoutConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("booking repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if ob == nil {
		return nil, fmt.Errorf("outbox writer required")
	}
	return &service{repo: repo, tx: tx, outbox: ob, cfg: cfg}, nil
}

// CheckoutInput carries the customer contact fields collected at checkout.
type CheckoutInput struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	PaymentOption enums.PaymentOption
	Note          string
}

func (in CheckoutInput) validate() error {
	if strings.TrimSpace(in.CustomerName) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer name is required")
	}
	if strings.TrimSpace(in.CustomerEmail) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer email is required")
	}
	if !in.PaymentOption.Valid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "payment option is invalid")
	}
	return nil
}

// BookedItem reports one booking created during checkout.
type BookedItem struct {
	BookingID uuid.UUID `json:"booking_id"`
	Reference string    `json:"reference"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
}

// CheckoutResult aggregates the figures across all bookings of one checkout.
// These are exactly the numbers the notification endpoint renders, taken from
// the cart snapshots without recomputation.
type CheckoutResult struct {
	Bookings       []BookedItem `json:"bookings"`
	TotalCents     int          `json:"total_cents"`
	DepositCents   int          `json:"deposit_cents"`
	RemainingCents int          `json:"remaining_cents"`
}

// confirmationPayload is what the outbox relays to the notification endpoint
// for each booking.
type confirmationPayload struct {
	Reference      string `json:"reference"`
	Kind           string `json:"kind"`
	Title          string `json:"title"`
	CustomerName   string `json:"customer_name"`
	CustomerEmail  string `json:"customer_email"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	TotalCents     int    `json:"total_cents"`
	DepositCents   int    `json:"deposit_cents"`
	RemainingCents int    `json:"remaining_cents"`
	PaymentOption  string `json:"payment_option"`
}

// Checkout writes one booking row per cart line item, plus one outbox event
// per booking, atomically. The caller clears the cart after a successful
// return; the service never mutates the cart itself.
func (s *service) Checkout(ctx context.Context, input CheckoutInput, items []cart.LineItem) (*CheckoutResult, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	result := &CheckoutResult{}
	bookings := make([]*models.Booking, 0, len(items))
	for _, item := range items {
		booking := s.buildBooking(input, item)
		bookings = append(bookings, booking)
		result.TotalCents += booking.TotalCents
		result.DepositCents += booking.DepositCents
		result.RemainingCents += booking.RemainingCents
	}

	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		for i, booking := range bookings {
			if err := s.repo.CreateTx(tx, booking); err != nil {
				return err
			}
			payload := confirmationPayload{
				Reference:      booking.Reference,
				Kind:           string(booking.Kind),
				Title:          items[i].Title,
				CustomerName:   booking.CustomerName,
				CustomerEmail:  booking.CustomerEmail,
				StartDate:      booking.StartDate.Format(types.DateLayout),
				EndDate:        booking.EndDate.Format(types.DateLayout),
				TotalCents:     booking.TotalCents,
				DepositCents:   booking.DepositCents,
				RemainingCents: booking.RemainingCents,
				PaymentOption:  string(booking.PaymentOption),
			}
			if err := s.outbox.EnqueueTx(tx, outbox.TopicBookingConfirmed, payload); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist bookings")
	}

	for i, booking := range bookings {
		result.Bookings = append(result.Bookings, BookedItem{
			BookingID: booking.ID,
			Reference: booking.Reference,
			Kind:      string(booking.Kind),
			Title:     items[i].Title,
		})
	}
	return result, nil
}

func (s *service) buildBooking(input CheckoutInput, item cart.LineItem) *models.Booking {
	total := item.Breakdown.TotalCents
	deposit := types.PercentHalfUp(total, s.cfg.DepositPercent)

	return &models.Booking{
		Reference:      newReference(),
		Kind:           item.Kind,
		CarID:          item.CarID,
		TourID:         item.TourID,
		CustomerName:   strings.TrimSpace(input.CustomerName),
		CustomerEmail:  strings.TrimSpace(input.CustomerEmail),
		CustomerPhone:  strings.TrimSpace(input.CustomerPhone),
		StartDate:      item.StartDate.Time(),
		EndDate:        item.EndDate.Time(),
		PickupTime:     item.PickupTime,
		DropoffTime:    item.DropoffTime,
		WithDriver:     item.WithDriver,
		LocationID:     item.LocationID,
		Days:           item.Breakdown.Days,
		SubtotalCents:  item.Breakdown.SubtotalCents,
		TotalCents:     total,
		DepositCents:   deposit,
		RemainingCents: total - deposit,
		PaymentOption:  input.PaymentOption,
		Status:         enums.BookingStatusPending,
		Note:           input.Note,
	}
}

func newReference() string {
	return "BK-" + strings.ToUpper(uuid.NewString()[:8])
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load booking")
	}
	return booking, nil
}

func (s *service) List(ctx context.Context, status enums.BookingStatus) ([]models.Booking, error) {
	rows, err := s.repo.List(ctx, status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list bookings")
	}
	return rows, nil
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.BookingStatus) error {
	switch status {
	case enums.BookingStatusPending, enums.BookingStatusConfirmed,
		enums.BookingStatusCancelled, enums.BookingStatusCompleted:
	default:
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown booking status")
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update booking status")
	}
	return nil
}
