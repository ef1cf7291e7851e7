/*
Package catalog defines the fixed equipment catalog.

PURPOSE:
  The catalog is the ordered list of every item the depot tracks, plus the
  default quantity-on-hand for each. It is static configuration: the rest of
  the system treats it as a read-only lookup table.

ORDERING:
  Item order matters. The interaction layer references items by their catalog
  index in callback payloads (compact, stable identifiers), and paginated
  pickers walk the catalog in this order. Never reorder or remove entries in a
  deployed system; append new gear at the end.

DEFAULTS:
  Default quantities seed the ledger for any item that has no persisted
  override (see store implementations). Changing a default here does not
  retroactively change a ledger that already persisted a quantity for the item.

SEE ALSO:
  - depot/engine.go: Consumes quantities at commit time
  - store/jsonfile: Merges these defaults with the persisted ledger
*/
package catalog

// items is the canonical ordered catalog. Index = callback identifier.
var items = []string{
	"Dynamic Mic SM58",
	"Condenser Mic NT1",
	"Wireless Mic Set",
	"XLR Cable 5m",
	"XLR Cable 10m",
	"Speaker Cable 10m",
	"Power Extension 5m",
	"Mixer 12ch",
	"Mixer 24ch",
	"Active Speaker 12\"",
	"Subwoofer 18\"",
	"DI Box",
	"Mic Stand",
	"Speaker Stand",
	"Stage Monitor",
	"In-Ear Pack",
	"Projector",
	"HDMI Cable 10m",
	"LED Par",
	"Haze Machine",
}

// defaults maps item name to the default quantity-on-hand used when the
// persisted ledger has no entry for it.
var defaults = map[string]int{
	"Dynamic Mic SM58":    8,
	"Condenser Mic NT1":   4,
	"Wireless Mic Set":    3,
	"XLR Cable 5m":        20,
	"XLR Cable 10m":       15,
	"Speaker Cable 10m":   10,
	"Power Extension 5m":  12,
	"Mixer 12ch":          2,
	"Mixer 24ch":          1,
	"Active Speaker 12\"": 6,
	"Subwoofer 18\"":      2,
	"DI Box":              6,
	"Mic Stand":           10,
	"Speaker Stand":       8,
	"Stage Monitor":       4,
	"In-Ear Pack":         4,
	"Projector":           2,
	"HDMI Cable 10m":      5,
	"LED Par":             8,
	"Haze Machine":        1,
}

// Items returns the ordered catalog. The returned slice is a copy; callers
// may not mutate the catalog.
func Items() []string {
	out := make([]string, len(items))
	copy(out, items)
	return out
}

// Len returns the number of catalog items.
func Len() int { return len(items) }

// Name returns the item at the given catalog index, or "" and false when the
// index is out of range (stale or malformed callback payloads).
func Name(index int) (string, bool) {
	if index < 0 || index >= len(items) {
		return "", false
	}
	return items[index], true
}

// Index returns the catalog index of the named item, or -1 when the name is
// not in the catalog.
func Index(name string) int {
	for i, n := range items {
		if n == name {
			return i
		}
	}
	return -1
}

// Contains reports whether the name is a catalog item.
func Contains(name string) bool { return Index(name) >= 0 }

// Defaults returns a fresh copy of the default quantity map.
func Defaults() map[string]int {
	out := make(map[string]int, len(defaults))
	for name, qty := range defaults {
		out[name] = qty
	}
	return out
}
