package cart

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/atlastours/rentals-backend/pkg/errors"
	"github.com/atlastours/rentals-backend/pkg/types"
)

// AddOutcome tags the result of an AddItem call.
type AddOutcome string

const (
	AddOutcomeInserted  AddOutcome = "inserted"
	AddOutcomeDuplicate AddOutcome = "duplicate_rejected"
)

// Store holds the ordered collection of line items and mirrors every mutation
// into the durable slot. Insertion order is display order. When a durable
// write fails the in-memory state is rolled back, so memory and slot never
// diverge, and the failure surfaces as a PERSISTENCE_ERROR.
type Store struct {
	mu    sync.Mutex
	slot  Slot
	items []LineItem
}

// NewStore loads whatever a prior session persisted and returns a ready
// store. An empty slot yields an empty cart.
func NewStore(ctx context.Context, slot Slot) (*Store, error) {
	if slot == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart slot required")
	}

	payload, found, err := slot.Load(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "load cart slot")
	}

	store := &Store{slot: slot}
	if found && len(payload) > 0 {
		if err := json.Unmarshal(payload, &store.items); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "decode cart slot")
		}
	}
	return store, nil
}

// IsInCart reports whether an item with the same car/tour reference and the
// same date pair is already present. The UI calls this to warn the shopper
// before attempting an add.
func (s *Store) IsInCart(carID, tourID *uuid.UUID, start, end types.Date) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findDuplicate(carID, tourID, start, end) >= 0
}

// AddItem validates the item, rejects duplicates by the (reference, dates)
// identity rule, assigns a fresh id and appends it. The caller-supplied id is
// ignored; ids are always store-assigned.
func (s *Store) AddItem(ctx context.Context, item LineItem) (AddOutcome, error) {
	if err := item.Validate(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findDuplicate(item.CarID, item.TourID, item.StartDate, item.EndDate) >= 0 {
		return AddOutcomeDuplicate, nil
	}

	item.ID = uuid.New()
	if item.AddedAt.IsZero() {
		item.AddedAt = time.Now().UTC()
	}

	s.items = append(s.items, item)
	if err := s.persist(ctx); err != nil {
		s.items = s.items[:len(s.items)-1]
		return "", err
	}
	return AddOutcomeInserted, nil
}

// RemoveItem deletes the matching item. A missing id is a no-op, not an
// error.
func (s *Store) RemoveItem(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil
	}

	removed := s.items[idx]
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	if err := s.persist(ctx); err != nil {
		s.items = append(s.items[:idx], append([]LineItem{removed}, s.items[idx:]...)...)
		return err
	}
	return nil
}

// UpdateItem shallow-merges the patch into the matching item. It never
// recomputes the breakdown; a missing id is a no-op.
func (s *Store) UpdateItem(ctx context.Context, id uuid.UUID, patch Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil
	}

	previous := s.items[idx]
	patch.apply(&s.items[idx])
	if err := s.persist(ctx); err != nil {
		s.items[idx] = previous
		return err
	}
	return nil
}

// Clear empties the cart. Callers are expected to invoke this after a
// successful checkout; the store never expires items on its own.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.items
	s.items = nil
	if err := s.persist(ctx); err != nil {
		s.items = previous
		return err
	}
	return nil
}

// Items returns a copy of the line items in insertion order.
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// ItemCount is derived from the current list on every read.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// TotalPriceCents sums the breakdown totals of all items, recomputed on every
// read so it cannot drift from the list.
func (s *Store) TotalPriceCents() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, item := range s.items {
		total += item.Breakdown.TotalCents
	}
	return total
}

func (s *Store) findDuplicate(carID, tourID *uuid.UUID, start, end types.Date) int {
	for i, item := range s.items {
		if item.sameReservation(carID, tourID, start, end) {
			return i
		}
	}
	return -1
}

func (s *Store) indexOf(id uuid.UUID) int {
	for i, item := range s.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) persist(ctx context.Context) error {
	payload, err := json.Marshal(s.items)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodePersistence, err, "encode cart")
	}
	if err := s.slot.Save(ctx, payload); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodePersistence, err, "write cart slot")
	}
	return nil
}
