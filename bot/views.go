/*
views.go - User-facing texts and the stock overview rendering

PURPOSE:
  Every string an operator sees lives here, next to the stock page renderer.
  The controller composes these; nothing in this file talks to the transport.
*/
package bot

import (
	"fmt"
	"sort"
	"strings"

	"github.com/warp/gear-depot/catalog"
	"github.com/warp/gear-depot/depot"
)

// Main-menu reply keyboard labels. These come back verbatim as text events.
const (
	MenuOrder  = "📦 Build order"
	MenuStock  = "📊 Stock"
	MenuReturn = "📥 Return equipment"
)

const (
	textGreeting   = "Hi! 👋\nI manage the equipment depot."
	textMainMenu   = "Main menu 📋"
	textOrderMenu  = "Build your order 🛠"
	textReturnMenu = "Equipment return 📥"
	textPickItems  = "Pick equipment 🎛"
	textPickReturn = "Pick items to return 📦"
	textPickDate   = "Pick a return date 📅"

	titleOrderBasket  = "📝 Current order:"
	titleReturnBasket = "📝 To return:"
	titleStock        = "📊 Stock:"

	textOrderDone  = "✅ Order confirmed!"
	textReturnDone = "✅ Return accepted!"

	alertEmptyOrder  = "Order is empty 🚫"
	alertEmptyReturn = "Basket is empty 🚫"
	alertSaveFailed  = "⚠️ Saving failed, please try again"
)

func alertShortStock(item string) string {
	return "❌ Not enough: " + item
}

func textDateChosen(mode depot.Mode, date string) string {
	if mode == depot.ModeReturn {
		return "📅 Return date chosen: " + date
	}
	return "📅 Return date: " + date
}

// stockPerPage is the page size of the read-only stock overview.
const stockPerPage = 20

// renderStockPage renders one page of the full ledger and reports the page
// count for navigation. Catalog items come first in catalog order, then any
// extra persisted names alphabetically, so pages are stable across loads.
func renderStockPage(ledger depot.Ledger, page int) (string, int) {
	names := stockNames(ledger)
	start, end, pages := depot.Paginate(len(names), stockPerPage, page)

	lines := []string{titleStock}
	for _, name := range names[start:end] {
		lines = append(lines, fmt.Sprintf("%s: %d", name, ledger[name]))
	}
	return strings.Join(lines, "\n"), pages
}

func stockNames(ledger depot.Ledger) []string {
	var names []string
	for _, name := range catalog.Items() {
		if _, ok := ledger[name]; ok {
			names = append(names, name)
		}
	}
	var extra []string
	for name := range ledger {
		if !catalog.Contains(name) {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}
