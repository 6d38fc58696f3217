package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/atlastours/rentals-backend/api/responses"
	"github.com/atlastours/rentals-backend/api/validators"
	"github.com/atlastours/rentals-backend/internal/cars"
	"github.com/atlastours/rentals-backend/internal/cart"
	"github.com/atlastours/rentals-backend/internal/pricing"
	"github.com/atlastours/rentals-backend/internal/tours"
	"github.com/atlastours/rentals-backend/pkg/enums"
	pkgerrors "github.com/atlastours/rentals-backend/pkg/errors"
	"github.com/atlastours/rentals-backend/pkg/logger"
	"github.com/atlastours/rentals-backend/pkg/types"
)

// CartController manages the shopper's cart. Prices are snapshotted at add
// time from the catalog; nothing in here ever reprices an item implicitly.
type CartController struct {
	store  *cart.Store
	engine *pricing.Engine
	rates  pricing.Rates
	cars   cars.Service
	tours  tours.Service
	logg   *logger.Logger
}

func NewCartController(store *cart.Store, engine *pricing.Engine, rates pricing.Rates, carSvc cars.Service, tourSvc tours.Service, logg *logger.Logger) *CartController {
	return &CartController{store: store, engine: engine, rates: rates, cars: carSvc, tours: tourSvc, logg: logg}
}

type cartView struct {
	Items           []cart.LineItem `json:"items"`
	ItemCount       int             `json:"item_count"`
	TotalPriceCents int             `json:"total_price_cents"`
}

func (c *CartController) view() cartView {
	return cartView{
		Items:           c.store.Items(),
		ItemCount:       c.store.ItemCount(),
		TotalPriceCents: c.store.TotalPriceCents(),
	}
}

// Get returns the cart with its derived count and total.
func (c *CartController) Get(w http.ResponseWriter, r *http.Request) {
	responses.WriteSuccess(w, c.view())
}

// Contains answers the pre-add duplicate probe the storefront runs before
// showing the add button state.
func (c *CartController) Contains(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	start, err := types.ParseDate(query.Get("start_date"))
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid start date"))
		return
	}
	end, err := types.ParseDate(query.Get("end_date"))
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid end date"))
		return
	}

	carID, err := optionalUUID(query.Get("car_id"))
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid car id"))
		return
	}
	tourID, err := optionalUUID(query.Get("tour_id"))
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid tour id"))
		return
	}
	if carID == nil && tourID == nil {
		responses.WriteError(r.Context(), c.logg, w, pkgerrors.New(pkgerrors.CodeValidation, "car_id or tour_id is required"))
		return
	}

	responses.WriteSuccess(w, map[string]bool{
		"in_cart": c.store.IsInCart(carID, tourID, start, end),
	})
}

type addItemRequest struct {
	Kind             string `json:"kind" validate:"required,oneof=car tour"`
	CarID            string `json:"car_id"`
	TourID           string `json:"tour_id"`
	StartDate        string `json:"start_date" validate:"required"`
	EndDate          string `json:"end_date" validate:"required"`
	PickupTime       string `json:"pickup_time"`
	DropoffTime      string `json:"dropoff_time"`
	WithDriver       bool   `json:"with_driver"`
	PickupLocationID string `json:"pickup_location_id"`
	ChildSeats       int    `json:"child_seats" validate:"min=0"`
	CampingEquipment bool   `json:"camping_equipment"`
	Participants     int    `json:"participants" validate:"min=0"`
	Note             string `json:"note"`
}

type addItemResponse struct {
	Outcome cart.AddOutcome `json:"outcome"`
	Cart    cartView        `json:"cart"`
}

// AddItem resolves the catalog entry, snapshots its price into a line item
// and appends it. Duplicates by (reference, dates) come back tagged, not as
// errors, so the storefront can explain instead of alarm.
func (c *CartController) AddItem(w http.ResponseWriter, r *http.Request) {
	var body addItemRequest
	if err := validators.DecodeJSONBody(r, &body); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	item, err := c.buildLineItem(r, body)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	outcome, err := c.store.AddItem(r.Context(), item)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	status := http.StatusCreated
	if outcome == cart.AddOutcomeDuplicate {
		status = http.StatusOK
	}
	responses.WriteSuccessStatus(w, status, addItemResponse{Outcome: outcome, Cart: c.view()})
}

func (c *CartController) buildLineItem(r *http.Request, body addItemRequest) (cart.LineItem, error) {
	start, err := types.ParseDate(body.StartDate)
	if err != nil {
		return cart.LineItem{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid start date")
	}
	end, err := types.ParseDate(body.EndDate)
	if err != nil {
		return cart.LineItem{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid end date")
	}
	locationID, err := optionalUUID(body.PickupLocationID)
	if err != nil {
		return cart.LineItem{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid pickup location id")
	}

	item := cart.LineItem{
		Kind:        enums.ItemKind(body.Kind),
		StartDate:   start,
		EndDate:     end,
		PickupTime:  body.PickupTime,
		DropoffTime: body.DropoffTime,
		WithDriver:  body.WithDriver,
		LocationID:  locationID,
		Note:        body.Note,
	}

	pricePerDay := 0
	switch item.Kind {
	case enums.ItemKindCar:
		carID, err := uuid.Parse(body.CarID)
		if err != nil {
			return cart.LineItem{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid car id")
		}
		car, err := c.cars.Get(r.Context(), carID)
		if err != nil {
			return cart.LineItem{}, err
		}
		item.CarID = &car.ID
		item.Title = car.Name
		pricePerDay = car.PricePerDayCents
	case enums.ItemKindTour:
		tourID, err := uuid.Parse(body.TourID)
		if err != nil {
			return cart.LineItem{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid tour id")
		}
		tour, err := c.tours.Get(r.Context(), tourID)
		if err != nil {
			return cart.LineItem{}, err
		}
		participants := body.Participants
		if participants < 1 {
			participants = 1
		}
		item.TourID = &tour.ID
		item.Title = tour.Title
		pricePerDay = tour.PricePerPersonCents * participants
	default:
		return cart.LineItem{}, pkgerrors.New(pkgerrors.CodeValidation, "kind must be car or tour")
	}

	pickupLocation := uuid.Nil
	if locationID != nil {
		pickupLocation = *locationID
	}
	breakdown := c.engine.Quote(r.Context(), pricing.QuoteRequest{
		PricePerDayCents: pricePerDay,
		StartDate:        start,
		EndDate:          end,
		WithDriver:       body.WithDriver,
		PickupLocationID: pickupLocation,
		ChildSeats:       body.ChildSeats,
		CampingEquipment: body.CampingEquipment,
	})

	item.Breakdown = breakdown
	item.Addons = c.addonsSnapshot(body.ChildSeats, body.CampingEquipment, breakdown.Days)
	return item, nil
}

func (c *CartController) addonsSnapshot(childSeats int, camping bool, days int) cart.AddonsSnapshot {
	if childSeats < 0 {
		childSeats = 0
	}
	snapshot := cart.AddonsSnapshot{
		ChildSeats:       childSeats,
		ChildSeatsCents:  childSeats * c.rates.ChildSeatPerDayCents * days,
		CampingEquipment: camping,
	}
	if camping {
		snapshot.CampingCents = c.rates.CampingPerDayCents * days
	}
	return snapshot
}

type updateItemRequest struct {
	Note             *string `json:"note"`
	PickupTime       *string `json:"pickup_time"`
	DropoffTime      *string `json:"dropoff_time"`
	WithDriver       *bool   `json:"with_driver"`
	PickupLocationID *string `json:"pickup_location_id"`
	ChildSeats       *int    `json:"child_seats"`
	CampingEquipment *bool   `json:"camping_equipment"`
	Reprice          bool    `json:"reprice"`
}

func (b updateItemRequest) touchesPrice() bool {
	return b.WithDriver != nil || b.PickupLocationID != nil || b.ChildSeats != nil || b.CampingEquipment != nil
}

// UpdateItem edits a cart line. Price-affecting fields require reprice=true:
// the snapshot only moves when the caller asks for it.
func (c *CartController) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid item id"))
		return
	}

	var body updateItemRequest
	if err := validators.DecodeJSONBody(r, &body); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	if body.touchesPrice() && !body.Reprice {
		responses.WriteError(r.Context(), c.logg, w,
			pkgerrors.New(pkgerrors.CodeValidation, "price-affecting changes require reprice=true"))
		return
	}

	patch, err := c.buildPatch(r, id, body)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	if err := c.store.UpdateItem(r.Context(), id, patch); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, c.view())
}

func (c *CartController) buildPatch(r *http.Request, id uuid.UUID, body updateItemRequest) (cart.Patch, error) {
	patch := cart.Patch{
		Note:        body.Note,
		PickupTime:  body.PickupTime,
		DropoffTime: body.DropoffTime,
		WithDriver:  body.WithDriver,
	}

	if body.PickupLocationID != nil {
		locationID, err := optionalUUID(*body.PickupLocationID)
		if err != nil {
			return cart.Patch{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid pickup location id")
		}
		patch.LocationID = locationID
	}

	if !body.Reprice {
		return patch, nil
	}

	current, found := c.findItem(id)
	if !found {
		// UpdateItem treats a missing id as a no-op; mirror that here.
		return patch, nil
	}

	withDriver := current.WithDriver
	if body.WithDriver != nil {
		withDriver = *body.WithDriver
	}
	childSeats := current.Addons.ChildSeats
	if body.ChildSeats != nil {
		childSeats = *body.ChildSeats
	}
	camping := current.Addons.CampingEquipment
	if body.CampingEquipment != nil {
		camping = *body.CampingEquipment
	}
	location := uuid.Nil
	switch {
	case patch.LocationID != nil:
		location = *patch.LocationID
	case body.PickupLocationID == nil && current.LocationID != nil:
		location = *current.LocationID
	}

	pricePerDay := 0
	if current.Breakdown.Days > 0 {
		pricePerDay = current.Breakdown.SubtotalCents / current.Breakdown.Days
	}

	breakdown := c.engine.Quote(r.Context(), pricing.QuoteRequest{
		PricePerDayCents: pricePerDay,
		StartDate:        current.StartDate,
		EndDate:          current.EndDate,
		WithDriver:       withDriver,
		PickupLocationID: location,
		ChildSeats:       childSeats,
		CampingEquipment: camping,
	})
	addons := c.addonsSnapshot(childSeats, camping, breakdown.Days)

	patch.Breakdown = &breakdown
	patch.Addons = &addons
	return patch, nil
}

func (c *CartController) findItem(id uuid.UUID) (cart.LineItem, bool) {
	for _, item := range c.store.Items() {
		if item.ID == id {
			return item, true
		}
	}
	return cart.LineItem{}, false
}

// RemoveItem deletes one line. Unknown ids are a silent no-op.
func (c *CartController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid item id"))
		return
	}
	if err := c.store.RemoveItem(r.Context(), id); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, c.view())
}

// Clear empties the cart.
func (c *CartController) Clear(w http.ResponseWriter, r *http.Request) {
	if err := c.store.Clear(r.Context()); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, c.view())
}

func optionalUUID(raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
