package cart

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlastours/rentals-backend/pkg/db"
)

func newSQLiteSlot(t *testing.T) *SQLiteSlot {
	t.Helper()
	conn, err := db.OpenSQLite(filepath.Join(t.TempDir(), "cart.db"))
	require.NoError(t, err)
	slot, err := NewSQLiteSlot(conn, "cart")
	require.NoError(t, err)
	return slot
}

func TestSQLiteSlotLoadEmpty(t *testing.T) {
	t.Parallel()
	slot := newSQLiteSlot(t)

	payload, found, err := slot.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, payload)
}

func TestSQLiteSlotSaveOverwrites(t *testing.T) {
	t.Parallel()
	slot := newSQLiteSlot(t)
	ctx := context.Background()

	require.NoError(t, slot.Save(ctx, []byte(`[{"title":"first"}]`)))
	require.NoError(t, slot.Save(ctx, []byte(`[{"title":"second"}]`)))

	payload, found, err := slot.Load(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `[{"title":"second"}]`, string(payload))
}

func TestSQLiteSlotKeysAreIndependent(t *testing.T) {
	t.Parallel()
	conn, err := db.OpenSQLite(filepath.Join(t.TempDir(), "cart.db"))
	require.NoError(t, err)

	first, err := NewSQLiteSlot(conn, "cart")
	require.NoError(t, err)
	second, err := NewSQLiteSlot(conn, "other")
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, first.Save(ctx, []byte(`["a"]`)))

	_, found, err := second.Load(ctx)
	require.NoError(t, err)
	assert.False(t, found)
}
