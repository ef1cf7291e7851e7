/*
errors.go - Centralized error types for the depot engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Callers (the interaction layer) branch on these to decide what to show
  the operator and whether the current basket survives.

ERROR CATEGORIES:
  1. Commit errors - User-correctable rejections (empty basket, short stock)
  2. Persistence errors - A durable write failed; state was left untouched
  3. Store errors - Corrupt persisted documents, recovered as empty

USAGE:
  Structured errors unwrap to sentinels:

    if errors.Is(err, depot.ErrInsufficientStock) {
        var short *depot.InsufficientStockError
        errors.As(err, &short)
        // short.Item names the item that blocked the commit
    }

SEE ALSO:
  - engine.go: Produces commit and persistence errors
  - store/jsonfile: Produces MalformedStoreError on corrupt documents
*/
package depot

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrEmptyBasket is returned when a commit is attempted with no positive
	// basket entries. Nothing was read or written.
	ErrEmptyBasket = errors.New("basket is empty")

	// ErrInsufficientStock is returned when an order-mode commit asks for
	// more of an item than the ledger holds. Nothing was applied.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrPersistence is returned when a durable write failed. Ledger and
	// session state are exactly as before the failed write; retry is safe.
	ErrPersistence = errors.New("persistence failed")

	// ErrMalformedStore marks a corrupt persisted document. Stores recover
	// locally by treating the document as empty; this sentinel exists so the
	// recovery is observable, not a bare ignore.
	ErrMalformedStore = errors.New("malformed store document")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InsufficientStockError names the first item that blocked an order commit.
type InsufficientStockError struct {
	Item      string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: %s (available %d, requested %d)",
		e.Item, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// PersistenceError wraps a failed durable write with the operation that
// failed ("save ledger", "append record").
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failed: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return ErrPersistence }

// MalformedStoreError describes a corrupt persisted document that was
// recovered by treating it as empty.
type MalformedStoreError struct {
	Path string
	Err  error
}

func (e *MalformedStoreError) Error() string {
	return fmt.Sprintf("malformed store document %s: %v", e.Path, e.Err)
}

func (e *MalformedStoreError) Unwrap() error { return ErrMalformedStore }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is something the operator can fix
// by changing the basket (shown as a non-blocking alert, basket kept).
func IsClientError(err error) bool {
	return errors.Is(err, ErrEmptyBasket) || errors.Is(err, ErrInsufficientStock)
}

// IsRetryable returns true if the same commit might succeed on retry.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrPersistence)
}
