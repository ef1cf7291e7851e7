/*
engine.go - The commit protocol

PURPOSE:
  Commit is the one transactional operation in the system: it turns a
  session's provisional basket into a durable stock change plus an append-only
  transaction record, or rejects it without touching anything.

COMMIT SEQUENCE:
  1. Extract the effective basket (positive counts). Empty -> ErrEmptyBasket,
     no I/O at all.
  2. Load the ledger.
  3. Order mode only: validate every line against stock. Any shortage aborts
     before any mutation with InsufficientStockError naming the item.
  4. Apply in memory (subtract for order, add for return).
  5. Save the ledger. On failure the basket is kept so the user can retry,
     and no record is appended.
  6. Append the transaction record. Save-before-append means a crash between
     the two loses at most the log entry; the stock update is never the one
     missing.
  7. Clear the session's basket and return date.

CONCURRENCY:
  The engine mutex makes load-validate-apply-save a critical section per
  ledger: two commits racing on stale stock cannot jointly over-draw it.
  The session's own lock is held for the whole commit, so same-user events
  cannot interleave with it.

SEE ALSO:
  - session.go: Session state the commit consumes and resets
  - errors.go: The commit error taxonomy
*/
package depot

import (
	"context"
	"sort"
	"sync"
	"time"
)

// =============================================================================
// ENGINE
// =============================================================================

// Engine applies confirmed baskets to the ledger. It is the only component
// permitted to mutate the ledger.
type Engine struct {
	ledger LedgerStore
	log    TransactionLog

	// mu serializes the whole load-validate-apply-save sequence per ledger.
	mu sync.Mutex

	// now is injectable for tests; defaults to time.Now.
	now func() time.Time
}

// NewEngine creates an engine over the given ledger store and transaction log.
func NewEngine(ledger LedgerStore, log TransactionLog) *Engine {
	return &Engine{ledger: ledger, log: log, now: time.Now}
}

// WithClock overrides the engine's time source. Returns the engine for
// chaining at construction time.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Commit validates and applies the session's basket, persists the ledger,
// appends a transaction record, and resets the session. On success it returns
// the applied name->count mapping for confirmation rendering. On any failure
// the session is left unchanged.
func (e *Engine) Commit(ctx context.Context, s *Session, actor Actor) (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	effective := s.effectiveLocked()
	if len(effective) == 0 {
		return nil, ErrEmptyBasket
	}
	mode := s.mode

	e.mu.Lock()
	defer e.mu.Unlock()

	ledger, err := e.ledger.Load(ctx)
	if err != nil {
		return nil, err
	}

	if mode == ModeOrder {
		// Validation pass: all-or-nothing, checked in deterministic order so
		// the reported shortage is stable for a given basket.
		for _, name := range sortedKeys(effective) {
			qty := effective[name]
			if ledger[name] < qty {
				return nil, &InsufficientStockError{
					Item:      name,
					Available: ledger[name],
					Requested: qty,
				}
			}
		}
	}

	// Apply pass: in memory only. Validation already passed, so order mode
	// cannot go negative here.
	for name, qty := range effective {
		if mode == ModeReturn {
			ledger[name] += qty
		} else {
			ledger[name] -= qty
		}
	}

	if err := e.ledger.Save(ctx, ledger); err != nil {
		return nil, &PersistenceError{Op: "save ledger", Err: err}
	}

	rec := NewRecord(mode, actor, effective, s.returnDate, e.now())
	if err := e.log.Append(ctx, rec); err != nil {
		// Stock is already persisted and authoritative; the session still
		// resets below. Only the log entry is lost, which is the accepted
		// direction of data loss.
		s.resetLocked()
		return effective, &PersistenceError{Op: "append record", Err: err}
	}

	s.resetLocked()
	return effective, nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
