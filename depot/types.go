/*
Package depot provides the core session and stock-reconciliation engine.

PURPOSE:
  This package contains everything with a real invariant: per-user interaction
  sessions (provisional baskets), the pure pagination helper, and the commit
  protocol that turns a confirmed basket into a durable stock change plus an
  append-only transaction record.

KEY CONCEPTS IN THIS FILE (types.go):
  - Ledger: in-memory snapshot of quantity-on-hand per item
  - Mode: whether a basket subtracts (order) or adds (return) on commit
  - Record: immutable transaction log entry
  - Actor: the identity a commit is attributed to

DESIGN PRINCIPLES:
  1. Sessions are in-flight UI state: in-memory only, lost on restart.
  2. The ledger on disk is the single source of truth for stock.
  3. The transaction log is append-only; records are never edited.
  4. Quantities are plain non-negative integers end to end.

SEE ALSO:
  - session.go: Per-user session state and the session store
  - engine.go: The commit protocol
  - errors.go: Error taxonomy
*/
package depot

import (
	"context"
	"time"
)

// =============================================================================
// MODE - Direction of a basket
// =============================================================================

// Mode determines how a committed basket is applied to the ledger.
type Mode string

const (
	// ModeOrder subtracts the basket from stock (equipment checked out).
	ModeOrder Mode = "order"
	// ModeReturn adds the basket to stock (equipment checked back in).
	ModeReturn Mode = "return"
)

// =============================================================================
// LEDGER - Quantity-on-hand per item
// =============================================================================

// Ledger is an in-memory snapshot of quantity-on-hand keyed by item name.
// Quantities are never negative after a committed transaction; the engine
// enforces this at commit time.
type Ledger map[string]int

// Clone returns an independent copy of the ledger.
func (l Ledger) Clone() Ledger {
	out := make(Ledger, len(l))
	for name, qty := range l {
		out[name] = qty
	}
	return out
}

// =============================================================================
// ACTOR - Who performed a commit
// =============================================================================

// Actor identifies the operator a transaction is attributed to.
type Actor struct {
	ID       int64
	Username string
}

// =============================================================================
// RECORD - Immutable transaction log entry
// =============================================================================

// Record is one completed transaction. Written once, never mutated.
// The JSON shape is a persisted file format: keys must not change.
type Record struct {
	Type       Mode           `json:"type"`
	UserID     int64          `json:"user_id"`
	Username   string         `json:"username,omitempty"`
	Basket     map[string]int `json:"basket"`
	ReturnDate string         `json:"return_date,omitempty"`
	Timestamp  string         `json:"timestamp"`
}

// NewRecord builds a Record for a committed basket. The timestamp is the
// given instant in UTC, RFC 3339.
func NewRecord(mode Mode, actor Actor, basket map[string]int, returnDate string, at time.Time) Record {
	return Record{
		Type:       mode,
		UserID:     actor.ID,
		Username:   actor.Username,
		Basket:     basket,
		ReturnDate: returnDate,
		Timestamp:  at.UTC().Format(time.RFC3339),
	}
}

// =============================================================================
// STORAGE INTERFACES
// =============================================================================

// LedgerStore is the durable home of the stock ledger.
//
// Load returns the catalog defaults merged with persisted overrides: for every
// catalog item the persisted quantity wins when present; persisted entries for
// names outside the catalog are preserved unmodified. Corrupt or missing
// persisted data degrades to defaults, it never fails the caller.
//
// Save replaces the persisted document wholesale and must be atomic with
// respect to readers: no reader ever observes a half-written document.
type LedgerStore interface {
	Load(ctx context.Context) (Ledger, error)
	Save(ctx context.Context, ledger Ledger) error
}

// TransactionLog is the durable append-only sequence of completed
// transactions. Append preserves order; nothing is ever rewritten or removed.
type TransactionLog interface {
	Append(ctx context.Context, rec Record) error
}
