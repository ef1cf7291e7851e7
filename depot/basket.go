/*
basket.go - Rendering a basket to display text

PURPOSE:
  Turns a session's basket into the text block shown above the item picker.
  Only entries with positive counts are listed; an empty basket renders a
  fixed placeholder line instead.

ORDERING:
  Baskets are maps, so display order is made deterministic: catalog items in
  catalog order, then any non-catalog names alphabetically. The same basket
  always renders to the same text, which keeps edited messages stable.
*/
package depot

import (
	"fmt"
	"sort"
	"strings"

	"github.com/warp/gear-depot/catalog"
)

// EmptyBasketLine is rendered when no basket entry has a positive count.
const EmptyBasketLine = "nothing here yet…"

// RenderBasket produces the display text for a session's basket under the
// given title: one "<name> × <count>" line per positive entry, or the empty
// placeholder when there are none.
func RenderBasket(s *Session, title string) string {
	return RenderCounts(s.Effective(), title)
}

// RenderCounts renders an already-extracted positive-count mapping. Exposed
// separately so commit acknowledgments can render the applied basket after
// the session has been cleared.
func RenderCounts(counts map[string]int, title string) string {
	lines := []string{title}
	for _, name := range orderedNames(counts) {
		lines = append(lines, fmt.Sprintf("%s × %d", name, counts[name]))
	}
	if len(lines) == 1 {
		lines = append(lines, EmptyBasketLine)
	}
	return strings.Join(lines, "\n")
}

// orderedNames returns the keys of counts with a positive count, catalog
// items first in catalog order, then the rest alphabetically.
func orderedNames(counts map[string]int) []string {
	var known, extra []string
	for _, name := range catalog.Items() {
		if counts[name] > 0 {
			known = append(known, name)
		}
	}
	for name, qty := range counts {
		if qty > 0 && !catalog.Contains(name) {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(known, extra...)
}
