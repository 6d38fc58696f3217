package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlastours/rentals-backend/internal/cars"
	"github.com/atlastours/rentals-backend/internal/cart"
	"github.com/atlastours/rentals-backend/internal/tours"
	"github.com/atlastours/rentals-backend/pkg/db/models"
	pkgerrors "github.com/atlastours/rentals-backend/pkg/errors"
)

type fakeSlot struct {
	payload []byte
	found   bool
}

func (f *fakeSlot) Load(context.Context) ([]byte, bool, error) {
	return f.payload, f.found, nil
}

func (f *fakeSlot) Save(_ context.Context, payload []byte) error {
	f.payload = append([]byte(nil), payload...)
	f.found = true
	return nil
}

type fakeCars struct {
	car *models.Car
}

func (f *fakeCars) Create(context.Context, cars.UpsertInput) (*models.Car, error) { return nil, nil }
func (f *fakeCars) Get(_ context.Context, id uuid.UUID) (*models.Car, error) {
	if f.car == nil || f.car.ID != id {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "car not found")
	}
	return f.car, nil
}
func (f *fakeCars) List(context.Context) ([]models.Car, error) { return nil, nil }
func (f *fakeCars) Update(context.Context, uuid.UUID, cars.UpsertInput) (*models.Car, error) {
	return nil, nil
}
func (f *fakeCars) Delete(context.Context, uuid.UUID) error { return nil }

type fakeTours struct {
	tour *models.Tour
}

func (f *fakeTours) Create(context.Context, tours.UpsertInput) (*models.Tour, error) { return nil, nil }
func (f *fakeTours) Get(_ context.Context, id uuid.UUID) (*models.Tour, error) {
	if f.tour == nil || f.tour.ID != id {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "tour not found")
	}
	return f.tour, nil
}
func (f *fakeTours) List(context.Context) ([]models.Tour, error) { return nil, nil }
func (f *fakeTours) Update(context.Context, uuid.UUID, tours.UpsertInput) (*models.Tour, error) {
	return nil, nil
}
func (f *fakeTours) Delete(context.Context, uuid.UUID) error { return nil }

func newCartController(t *testing.T) (*CartController, *models.Car) {
	t.Helper()
	store, err := cart.NewStore(context.Background(), &fakeSlot{})
	require.NoError(t, err)

	engine, rates := testEngine()
	car := &models.Car{ID: uuid.New(), Name: "Land Cruiser", PricePerDayCents: 15500}
	ctrl := NewCartController(store, engine, rates, &fakeCars{car: car}, &fakeTours{}, nil)
	return ctrl, car
}

func addBody(carID uuid.UUID) string {
	return fmt.Sprintf(`{
		"kind": "car",
		"car_id": %q,
		"start_date": "2026-06-10",
		"end_date": "2026-06-13",
		"with_driver": true
	}`, carID)
}

func doAdd(t *testing.T, ctrl *CartController, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body))
	rec := httptest.NewRecorder()
	ctrl.AddItem(rec, req)
	return rec
}

func TestAddItemSnapshotsCatalogPrice(t *testing.T) {
	t.Parallel()
	ctrl, car := newCartController(t)

	rec := doAdd(t, ctrl, addBody(car.ID))
	require.Equal(t, http.StatusCreated, rec.Code)

	var envelope struct {
		Data addItemResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, cart.AddOutcomeInserted, envelope.Data.Outcome)
	require.Len(t, envelope.Data.Cart.Items, 1)

	item := envelope.Data.Cart.Items[0]
	assert.Equal(t, "Land Cruiser", item.Title)
	assert.Equal(t, 3, item.Breakdown.Days)
	assert.Equal(t, 15500*3, item.Breakdown.SubtotalCents)
	assert.Equal(t, 5000*3, item.Breakdown.DriverFeeCents)
	assert.Equal(t, envelope.Data.Cart.TotalPriceCents, item.Breakdown.TotalCents)
}

func TestAddItemDuplicateComesBackTagged(t *testing.T) {
	t.Parallel()
	ctrl, car := newCartController(t)

	rec := doAdd(t, ctrl, addBody(car.ID))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doAdd(t, ctrl, addBody(car.ID))
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data addItemResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, cart.AddOutcomeDuplicate, envelope.Data.Outcome)
	assert.Equal(t, 1, envelope.Data.Cart.ItemCount)
}

func TestAddItemUnknownCar(t *testing.T) {
	t.Parallel()
	ctrl, _ := newCartController(t)

	rec := doAdd(t, ctrl, addBody(uuid.New()))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestContainsEndpoint(t *testing.T) {
	t.Parallel()
	ctrl, car := newCartController(t)
	require.Equal(t, http.StatusCreated, doAdd(t, ctrl, addBody(car.ID)).Code)

	probe := func(query string) bool {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/cart/contains?"+query, nil)
		rec := httptest.NewRecorder()
		ctrl.Contains(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		var envelope struct {
			Data map[string]bool `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
		return envelope.Data["in_cart"]
	}

	assert.True(t, probe(fmt.Sprintf("car_id=%s&start_date=2026-06-10&end_date=2026-06-13", car.ID)))
	assert.False(t, probe(fmt.Sprintf("car_id=%s&start_date=2026-06-10&end_date=2026-06-14", car.ID)))
	assert.False(t, probe(fmt.Sprintf("car_id=%s&start_date=2026-06-10&end_date=2026-06-13", uuid.New())))
}

func TestUpdateItemRequiresExplicitReprice(t *testing.T) {
	t.Parallel()
	ctrl, car := newCartController(t)
	require.Equal(t, http.StatusCreated, doAdd(t, ctrl, addBody(car.ID)).Code)
	itemID := ctrl.store.Items()[0].ID
	totalBefore := ctrl.store.TotalPriceCents()

	patch := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPatch, "/api/v1/cart/items/"+itemID.String(), strings.NewReader(body))
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("itemID", itemID.String())
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
		rec := httptest.NewRecorder()
		ctrl.UpdateItem(rec, req)
		return rec
	}

	// Price-affecting change without reprice is rejected.
	rec := patch(`{"with_driver": false}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, totalBefore, ctrl.store.TotalPriceCents())

	// A plain note edit passes and leaves the snapshot alone.
	rec = patch(`{"note": "airport pickup"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, totalBefore, ctrl.store.TotalPriceCents())
	assert.Equal(t, "airport pickup", ctrl.store.Items()[0].Note)

	// Explicit reprice drops the driver fee.
	rec = patch(`{"with_driver": false, "reprice": true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, totalBefore-5000*3, ctrl.store.TotalPriceCents())
}

func TestClearEmptiesCart(t *testing.T) {
	t.Parallel()
	ctrl, car := newCartController(t)
	require.Equal(t, http.StatusCreated, doAdd(t, ctrl, addBody(car.ID)).Code)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cart", nil)
	rec := httptest.NewRecorder()
	ctrl.Clear(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, ctrl.store.ItemCount())
}
