// Package store provides in-memory LedgerStore and TransactionLog
// implementations for tests and development.
package store

import (
	"context"
	"sync"

	"github.com/warp/gear-depot/catalog"
	"github.com/warp/gear-depot/depot"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

// Memory implements depot.LedgerStore and depot.TransactionLog in memory.
// Load merges the catalog defaults exactly like the durable stores, so engine
// behavior under test matches production.
type Memory struct {
	mu      sync.RWMutex
	ledger  depot.Ledger
	records []depot.Record

	// SaveErr and AppendErr, when set, make the next Save/Append fail with
	// that error. Used by tests to exercise the persistence-failure paths.
	SaveErr   error
	AppendErr error
}

// NewMemory creates an empty in-memory store. Load returns catalog defaults
// until a Save has overridden them.
func NewMemory() *Memory {
	return &Memory{ledger: depot.Ledger{}}
}

// Load returns catalog defaults merged with whatever was last saved.
func (m *Memory) Load(_ context.Context) (depot.Ledger, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	merged := depot.Ledger(catalog.Defaults())
	for name, qty := range m.ledger {
		merged[name] = qty
	}
	return merged, nil
}

// Save replaces the stored ledger wholesale.
func (m *Memory) Save(_ context.Context, ledger depot.Ledger) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.ledger = ledger.Clone()
	return nil
}

// Append adds a record to the in-memory log, preserving order.
func (m *Memory) Append(_ context.Context, rec depot.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.AppendErr != nil {
		return m.AppendErr
	}
	m.records = append(m.records, rec)
	return nil
}

// Records returns a copy of the appended records, in append order.
func (m *Memory) Records() []depot.Record {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]depot.Record, len(m.records))
	copy(out, m.records)
	return out
}

// Stored returns a copy of the last-saved ledger without default merging.
// Lets tests assert exactly what a Save persisted.
func (m *Memory) Stored() depot.Ledger {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ledger.Clone()
}
