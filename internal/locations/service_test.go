package locations

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/atlastours/rentals-backend/pkg/db/models"
	pkgerrors "github.com/atlastours/rentals-backend/pkg/errors"
)

type stubRepo struct {
	rows map[uuid.UUID]*models.Location
}

func newStubRepo() *stubRepo {
	return &stubRepo{rows: map[uuid.UUID]*models.Location{}}
}

func (s *stubRepo) Create(_ context.Context, location *models.Location) error {
	location.ID = uuid.New()
	s.rows[location.ID] = location
	return nil
}

func (s *stubRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Location, error) {
	row, ok := s.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return row, nil
}

func (s *stubRepo) ListActive(context.Context) ([]models.Location, error) {
	var out []models.Location
	for _, row := range s.rows {
		if row.IsActive {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (s *stubRepo) Update(_ context.Context, location *models.Location) error {
	s.rows[location.ID] = location
	return nil
}

func (s *stubRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(s.rows, id)
	return nil
}

func newTestService(t *testing.T) (Service, *stubRepo) {
	t.Helper()
	repo := newStubRepo()
	svc, err := NewService(repo)
	require.NoError(t, err)
	return svc, repo
}

func TestDeliveryFeeKnownLocation(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)
	ctx := context.Background()

	location, err := svc.Create(ctx, UpsertInput{Name: "Airport", DeliveryFeeCents: 2500})
	require.NoError(t, err)

	assert.Equal(t, 2500, svc.DeliveryFeeCents(ctx, location.ID))
}

func TestDeliveryFeeUnknownLocationIsZero(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)
	ctx := context.Background()

	assert.Equal(t, 0, svc.DeliveryFeeCents(ctx, uuid.New()))
	assert.Equal(t, 0, svc.DeliveryFeeCents(ctx, uuid.Nil))
}

func TestDeliveryFeeInactiveLocationIsZero(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)
	ctx := context.Background()

	inactive := false
	location, err := svc.Create(ctx, UpsertInput{Name: "Closed Hub", DeliveryFeeCents: 4000, IsActive: &inactive})
	require.NoError(t, err)

	assert.Equal(t, 0, svc.DeliveryFeeCents(ctx, location.ID))
}

func TestCreateValidates(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, UpsertInput{Name: "  "})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = svc.Create(ctx, UpsertInput{Name: "Airport", DeliveryFeeCents: -1})
	require.Error(t, err)
}

func TestUpdateMissingLocation(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)

	_, err := svc.Update(context.Background(), uuid.New(), UpsertInput{Name: "Airport"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
