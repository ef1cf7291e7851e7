package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/warp/gear-depot/catalog"
)

func TestEveryItemHasADefault(t *testing.T) {
	defaults := catalog.Defaults()
	for _, name := range catalog.Items() {
		qty, ok := defaults[name]
		assert.True(t, ok, "missing default for %s", name)
		assert.GreaterOrEqual(t, qty, 0)
	}
	assert.Len(t, defaults, catalog.Len(), "no defaults for items outside the catalog")
}

func TestIndexAndNameRoundTrip(t *testing.T) {
	for i, name := range catalog.Items() {
		got, ok := catalog.Name(i)
		assert.True(t, ok)
		assert.Equal(t, name, got)
		assert.Equal(t, i, catalog.Index(name))
	}
}

func TestName_OutOfRange(t *testing.T) {
	_, ok := catalog.Name(-1)
	assert.False(t, ok)
	_, ok = catalog.Name(catalog.Len())
	assert.False(t, ok)
}

func TestItems_ReturnsCopy(t *testing.T) {
	items := catalog.Items()
	items[0] = "tampered"
	assert.NotEqual(t, "tampered", catalog.Items()[0])
}

func TestNamesAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, name := range catalog.Items() {
		assert.False(t, seen[name], "duplicate catalog name %s", name)
		seen[name] = true
	}
}
