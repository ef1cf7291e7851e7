package jsonfile_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/gear-depot/catalog"
	"github.com/warp/gear-depot/depot"
	"github.com/warp/gear-depot/store/jsonfile"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestStores(t *testing.T) (*jsonfile.LedgerStore, *jsonfile.TransactionLog, string) {
	t.Helper()
	dir := t.TempDir()
	ledger := jsonfile.NewLedgerStore(filepath.Join(dir, "data.json"))
	txlog := jsonfile.NewTransactionLog(filepath.Join(dir, "orders.json"))
	return ledger, txlog, dir
}

// =============================================================================
// LEDGER STORE
// =============================================================================

func TestLedgerStore_MissingFile_LoadsDefaults(t *testing.T) {
	ledger, _, _ := newTestStores(t)

	got, err := ledger.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, depot.Ledger(catalog.Defaults()), got)
	for _, name := range catalog.Items() {
		_, ok := got[name]
		assert.True(t, ok, "every catalog item must have an entry: %s", name)
	}
}

func TestLedgerStore_RoundTrip(t *testing.T) {
	// Saving a ledger then loading it reproduces the same mapping for every
	// catalog item.
	ledger, _, _ := newTestStores(t)
	ctx := context.Background()

	original, err := ledger.Load(ctx)
	require.NoError(t, err)
	original["Projector"] = 1
	original["DI Box"] = 0

	require.NoError(t, ledger.Save(ctx, original))

	reloaded, err := ledger.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, original, reloaded)
}

func TestLedgerStore_PersistedOverridesWin(t *testing.T) {
	// A persisted quantity beats the catalog default; unlisted catalog items
	// fall back to their defaults.
	_, _, dir := newTestStores(t)
	path := filepath.Join(dir, "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"Projector": 0}`), 0o644))

	got, err := jsonfile.NewLedgerStore(path).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, got["Projector"])
	assert.Equal(t, catalog.Defaults()["DI Box"], got["DI Box"])
}

func TestLedgerStore_UnknownNames_Preserved(t *testing.T) {
	// Entries outside the catalog survive load and save untouched
	// (forward-compatible with a shrunken catalog).
	ledger, _, _ := newTestStores(t)
	ctx := context.Background()

	doc, err := ledger.Load(ctx)
	require.NoError(t, err)
	doc["Legacy Strobe"] = 3
	require.NoError(t, ledger.Save(ctx, doc))

	reloaded, err := ledger.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, reloaded["Legacy Strobe"])
}

func TestLedgerStore_CorruptFile_DegradesToDefaults(t *testing.T) {
	_, _, dir := newTestStores(t)
	path := filepath.Join(dir, "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o644))

	got, err := jsonfile.NewLedgerStore(path).Load(context.Background())
	require.NoError(t, err, "corrupt content must degrade, not fail")
	assert.Equal(t, depot.Ledger(catalog.Defaults()), got)
}

func TestLedgerStore_SaveIsWholeDocumentAndPretty(t *testing.T) {
	ledger, _, dir := newTestStores(t)
	ctx := context.Background()

	doc, err := ledger.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, ledger.Save(ctx, doc))

	raw, err := os.ReadFile(filepath.Join(dir, "data.json"))
	require.NoError(t, err)

	// Human-readable: pretty-printed, one mapping, all catalog items present.
	assert.True(t, strings.Contains(string(raw), "\n  \""), "document should be indented")
	var onDisk map[string]int
	require.NoError(t, json.Unmarshal(raw, &onDisk))
	assert.Len(t, onDisk, catalog.Len())
}

func TestLedgerStore_SaveLeavesNoTempFiles(t *testing.T) {
	ledger, _, dir := newTestStores(t)
	ctx := context.Background()

	doc, err := ledger.Load(ctx)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		require.NoError(t, ledger.Save(ctx, doc))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "replace must clean up its temp file")
	assert.Equal(t, "data.json", entries[0].Name())
}

// =============================================================================
// TRANSACTION LOG
// =============================================================================

func TestTransactionLog_AppendPreservesOrder(t *testing.T) {
	_, txlog, _ := newTestStores(t)
	ctx := context.Background()

	for i, item := range []string{"DI Box", "Mic Stand", "LED Par"} {
		rec := depot.Record{
			Type:      depot.ModeOrder,
			UserID:    int64(i + 1),
			Basket:    map[string]int{item: 1},
			Timestamp: "2026-08-29T12:00:00Z",
		}
		require.NoError(t, txlog.Append(ctx, rec))
	}

	records := txlog.Records()
	require.Len(t, records, 3)
	assert.Equal(t, int64(1), records[0].UserID)
	assert.Equal(t, map[string]int{"Mic Stand": 1}, records[1].Basket)
	assert.Equal(t, int64(3), records[2].UserID)
}

func TestTransactionLog_WireFormat(t *testing.T) {
	// The on-disk shape is a persisted contract: exact keys, username and
	// return_date absent when empty.
	_, txlog, dir := newTestStores(t)
	ctx := context.Background()

	require.NoError(t, txlog.Append(ctx, depot.Record{
		Type:       depot.ModeOrder,
		UserID:     101,
		Username:   "stagehand",
		Basket:     map[string]int{"Projector": 1},
		ReturnDate: "2026-09-03",
		Timestamp:  "2026-08-29T12:00:00Z",
	}))
	require.NoError(t, txlog.Append(ctx, depot.Record{
		Type:      depot.ModeReturn,
		UserID:    102,
		Basket:    map[string]int{"DI Box": 2},
		Timestamp: "2026-08-29T13:00:00Z",
	}))

	raw, err := os.ReadFile(filepath.Join(dir, "orders.json"))
	require.NoError(t, err)

	var onDisk []map[string]any
	require.NoError(t, json.Unmarshal(raw, &onDisk))
	require.Len(t, onDisk, 2)

	first := onDisk[0]
	assert.Equal(t, "order", first["type"])
	assert.Equal(t, float64(101), first["user_id"])
	assert.Equal(t, "stagehand", first["username"])
	assert.Equal(t, "2026-09-03", first["return_date"])
	assert.Equal(t, "2026-08-29T12:00:00Z", first["timestamp"])
	assert.Equal(t, map[string]any{"Projector": float64(1)}, first["basket"])

	second := onDisk[1]
	assert.Equal(t, "return", second["type"])
	_, hasUsername := second["username"]
	assert.False(t, hasUsername, "empty username must be absent, not null")
	_, hasDate := second["return_date"]
	assert.False(t, hasDate, "empty return_date must be absent, not null")
}

func TestTransactionLog_CorruptFile_TreatedAsEmpty(t *testing.T) {
	_, _, dir := newTestStores(t)
	path := filepath.Join(dir, "orders.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"broken"`), 0o644))

	txlog := jsonfile.NewTransactionLog(path)
	require.NoError(t, txlog.Append(context.Background(), depot.Record{
		Type:      depot.ModeOrder,
		UserID:    1,
		Basket:    map[string]int{"DI Box": 1},
		Timestamp: "2026-08-29T12:00:00Z",
	}))

	records := txlog.Records()
	require.Len(t, records, 1, "corrupt log starts over from the new record")
}
