package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/gear-depot/catalog"
	"github.com/warp/gear-depot/depot"
	"github.com/warp/gear-depot/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

// =============================================================================
// LEDGER STORE
// =============================================================================

func TestStore_EmptyDatabase_LoadsDefaults(t *testing.T) {
	store := newTestStore(t)

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, depot.Ledger(catalog.Defaults()), got)
}

func TestStore_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	original, err := store.Load(ctx)
	require.NoError(t, err)
	original["Projector"] = 1
	original["Legacy Strobe"] = 3 // non-catalog name survives

	require.NoError(t, store.Save(ctx, original))

	reloaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, original, reloaded)
}

func TestStore_SaveReplacesWholeDocument(t *testing.T) {
	// Save has whole-document semantics: rows absent from the saved ledger
	// disappear instead of lingering.
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.Load(ctx)
	require.NoError(t, err)
	first["Legacy Strobe"] = 3
	require.NoError(t, store.Save(ctx, first))

	second, err := store.Load(ctx)
	require.NoError(t, err)
	delete(second, "Legacy Strobe")
	require.NoError(t, store.Save(ctx, second))

	reloaded, err := store.Load(ctx)
	require.NoError(t, err)
	_, ok := reloaded["Legacy Strobe"]
	assert.False(t, ok)
}

// =============================================================================
// TRANSACTION LOG
// =============================================================================

func TestStore_Append_PreservesOrderAndShape(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, depot.Record{
		Type:       depot.ModeOrder,
		UserID:     101,
		Username:   "stagehand",
		Basket:     map[string]int{"Projector": 1},
		ReturnDate: "2026-09-03",
		Timestamp:  "2026-08-29T12:00:00Z",
	}))
	require.NoError(t, store.Append(ctx, depot.Record{
		Type:      depot.ModeReturn,
		UserID:    102,
		Basket:    map[string]int{"DI Box": 2},
		Timestamp: "2026-08-29T13:00:00Z",
	}))

	records, err := store.Records(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, depot.ModeOrder, records[0].Type)
	assert.Equal(t, int64(101), records[0].UserID)
	assert.Equal(t, "stagehand", records[0].Username)
	assert.Equal(t, map[string]int{"Projector": 1}, records[0].Basket)
	assert.Equal(t, "2026-09-03", records[0].ReturnDate)

	assert.Equal(t, depot.ModeReturn, records[1].Type)
	assert.Empty(t, records[1].Username)
	assert.Empty(t, records[1].ReturnDate)
}

// =============================================================================
// ENGINE INTEGRATION
// =============================================================================

func TestStore_BacksTheEngine(t *testing.T) {
	// The sqlite store slots in behind the same interfaces as the file
	// backend without changing engine behavior.
	store := newTestStore(t)
	ctx := context.Background()

	engine := depot.NewEngine(store, store)
	sessions := depot.NewSessions()

	s := sessions.Ensure(7)
	s.Reset(depot.ModeOrder)
	s.Add("Projector")

	applied, err := engine.Commit(ctx, s, depot.Actor{ID: 7, Username: "roadie"})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Projector": 1}, applied)

	ledger, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, catalog.Defaults()["Projector"]-1, ledger["Projector"])

	records, err := store.Records(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, depot.ModeOrder, records[0].Type)
}
