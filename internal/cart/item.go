package cart

import (
	"time"

	"github.com/google/uuid"

	"github.com/atlastours/rentals-backend/internal/pricing"
	"github.com/atlastours/rentals-backend/pkg/enums"
	pkgerrors "github.com/atlastours/rentals-backend/pkg/errors"
	"github.com/atlastours/rentals-backend/pkg/types"
)

// AddonsSnapshot denormalizes the add-on selection and its priced totals for
// display, captured at add-time.
type AddonsSnapshot struct {
	ChildSeats       int  `json:"child_seats"`
	ChildSeatsCents  int  `json:"child_seats_cents"`
	CampingEquipment bool `json:"camping_equipment"`
	CampingCents     int  `json:"camping_cents"`
}

// LineItem is one reservable unit held in the cart. Its breakdown is a price
// snapshot taken when the item was added; later catalog rate changes do not
// touch it.
type LineItem struct {
	ID          uuid.UUID         `json:"id"`
	Kind        enums.ItemKind    `json:"kind"`
	CarID       *uuid.UUID        `json:"car_id,omitempty"`
	TourID      *uuid.UUID        `json:"tour_id,omitempty"`
	Title       string            `json:"title"`
	StartDate   types.Date        `json:"start_date"`
	EndDate     types.Date        `json:"end_date"`
	PickupTime  string            `json:"pickup_time,omitempty"`
	DropoffTime string            `json:"dropoff_time,omitempty"`
	WithDriver  bool              `json:"with_driver"`
	LocationID  *uuid.UUID        `json:"location_id,omitempty"`
	Breakdown   pricing.Breakdown `json:"breakdown"`
	Addons      AddonsSnapshot    `json:"addons"`
	Note        string            `json:"note,omitempty"`
	AddedAt     time.Time         `json:"added_at"`
}

// Validate checks the structural invariants of a line item before insertion:
// a known kind and exactly one reference matching that kind.
func (i LineItem) Validate() error {
	if !i.Kind.Valid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "line item kind must be car or tour")
	}
	switch i.Kind {
	case enums.ItemKindCar:
		if i.CarID == nil || *i.CarID == uuid.Nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "car line item requires a car id")
		}
		if i.TourID != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "car line item cannot reference a tour")
		}
	case enums.ItemKindTour:
		if i.TourID == nil || *i.TourID == uuid.Nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "tour line item requires a tour id")
		}
		if i.CarID != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "tour line item cannot reference a car")
		}
	}
	if i.StartDate.IsZero() || i.EndDate.IsZero() {
		return pkgerrors.New(pkgerrors.CodeValidation, "line item requires start and end dates")
	}
	return nil
}

// sameReservation implements the duplicate identity rule: same car or tour
// AND the same date pair. Location, times, driver and add-ons deliberately do
// not participate.
func (i LineItem) sameReservation(carID, tourID *uuid.UUID, start, end types.Date) bool {
	if !i.StartDate.Equal(start) || !i.EndDate.Equal(end) {
		return false
	}
	if carID != nil && i.CarID != nil && *carID == *i.CarID {
		return true
	}
	if tourID != nil && i.TourID != nil && *tourID == *i.TourID {
		return true
	}
	return false
}

// Patch carries the fields UpdateItem may shallow-merge into an existing
// item. Changing a price-affecting field does not reprice anything: callers
// that want a new price must compute a fresh breakdown and set it here
// explicitly.
type Patch struct {
	Note        *string
	PickupTime  *string
	DropoffTime *string
	WithDriver  *bool
	LocationID  *uuid.UUID
	Breakdown   *pricing.Breakdown
	Addons      *AddonsSnapshot
}

func (p Patch) apply(item *LineItem) {
	if p.Note != nil {
		item.Note = *p.Note
	}
	if p.PickupTime != nil {
		item.PickupTime = *p.PickupTime
	}
	if p.DropoffTime != nil {
		item.DropoffTime = *p.DropoffTime
	}
	if p.WithDriver != nil {
		item.WithDriver = *p.WithDriver
	}
	if p.LocationID != nil {
		item.LocationID = p.LocationID
	}
	if p.Breakdown != nil {
		item.Breakdown = *p.Breakdown
	}
	if p.Addons != nil {
		item.Addons = *p.Addons
	}
}
