package bot

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"

	"github.com/warp/gear-depot/catalog"
	"github.com/warp/gear-depot/depot"
)

// Rendered view text is a user-facing surface; golden files catch accidental
// wording or ordering drift.

func TestRenderStockPage_Golden(t *testing.T) {
	ledger := depot.Ledger(catalog.Defaults())

	text, pages := renderStockPage(ledger, 0)
	assert.Equal(t, 1, pages, "default catalog fits one overview page")

	g := goldie.New(t)
	g.Assert(t, "stock_overview_page0", []byte(text))
}

func TestRenderBasketText_Golden(t *testing.T) {
	counts := map[string]int{
		"Dynamic Mic SM58": 2,
		"XLR Cable 5m":     4,
		"Mixer 12ch":       1,
	}

	g := goldie.New(t)
	g.Assert(t, "order_basket", []byte(depot.RenderCounts(counts, titleOrderBasket)))
}

func TestStockNames_ExtrasAfterCatalog(t *testing.T) {
	ledger := depot.Ledger(catalog.Defaults())
	ledger["Aa Legacy Fogger"] = 1

	names := stockNames(ledger)
	assert.Equal(t, catalog.Len()+1, len(names))
	assert.Equal(t, "Aa Legacy Fogger", names[len(names)-1], "non-catalog names sort after the catalog")
}
