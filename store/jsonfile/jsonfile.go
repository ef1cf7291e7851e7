/*
Package jsonfile provides the JSON-file-backed ledger store and transaction
log. This is the primary production backend.

PURPOSE:
  Persists the stock ledger and the transaction log as two human-readable,
  pretty-printed UTF-8 JSON documents:

    ledger file:  {"Dynamic Mic SM58": 8, ...}          flat name -> quantity
    log file:     [{"type":"order", "user_id":1, ...}]  append-only array

  Both formats round-trip exactly; they are a persisted contract.

ATOMIC REPLACE:
  Every write replaces the whole document via write-to-temp-then-rename in the
  same directory. A reader never observes a half-written document, and a crash
  mid-write leaves the previous document intact.

CORRUPT DOCUMENTS:
  An unreadable or malformed document degrades to "no persisted data": the
  ledger falls back to catalog defaults and the log to an empty sequence.
  The recovery is logged with the underlying cause so it is observable, but
  it never fails the caller. Losing cached overrides is preferable to
  blocking all operations.

CONCURRENCY:
  A single mutex guards each store's read-modify-write cycles. The engine
  additionally serializes commits, so this lock only matters for concurrent
  read-only views (stock overview, ops API) racing a commit.

SEE ALSO:
  - depot/types.go: LedgerStore / TransactionLog interfaces and Record shape
  - store/sqlite: Transactional alternative behind the same interfaces
*/
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/warp/gear-depot/catalog"
	"github.com/warp/gear-depot/depot"
)

// =============================================================================
// LEDGER STORE
// =============================================================================

// LedgerStore persists the stock ledger as one flat JSON object.
type LedgerStore struct {
	path string
	mu   sync.Mutex
}

// NewLedgerStore creates a ledger store writing to the given file path.
// The file need not exist yet; Load degrades to catalog defaults.
func NewLedgerStore(path string) *LedgerStore {
	return &LedgerStore{path: path}
}

// Load reads the persisted ledger and merges it over the catalog defaults.
// Persisted quantities win for catalog items; persisted names outside the
// catalog are preserved unmodified. Missing or corrupt files degrade to
// defaults and are logged, never propagated.
func (s *LedgerStore) Load(_ context.Context) (depot.Ledger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := depot.Ledger(catalog.Defaults())

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("ledger store: %v", &depot.MalformedStoreError{Path: s.path, Err: err})
		}
		return merged, nil
	}

	var persisted map[string]int
	if err := json.Unmarshal(raw, &persisted); err != nil {
		log.Printf("ledger store: %v", &depot.MalformedStoreError{Path: s.path, Err: err})
		return merged, nil
	}

	for name, qty := range persisted {
		merged[name] = qty
	}
	return merged, nil
}

// Save replaces the persisted document wholesale with the full mapping.
// The write is atomic with respect to readers.
func (s *LedgerStore) Save(_ context.Context, ledger depot.Ledger) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(ledger, "", "  ")
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	return writeAtomic(s.path, data)
}

// =============================================================================
// TRANSACTION LOG
// =============================================================================

// TransactionLog persists completed transactions as one JSON array,
// append-only in effect: every Append rewrites the full sequence with the
// new record at the end.
type TransactionLog struct {
	path string
	mu   sync.Mutex
}

// NewTransactionLog creates a transaction log writing to the given file path.
func NewTransactionLog(path string) *TransactionLog {
	return &TransactionLog{path: path}
}

// Append reads the existing sequence (corrupt content degrades to empty,
// logged), appends the record, and writes the sequence back atomically.
// Order is preserved; nothing is deduplicated or dropped.
func (t *TransactionLog) Append(_ context.Context, rec depot.Record) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	records := t.readLocked()
	records = append(records, rec)

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode records: %w", err)
	}
	return writeAtomic(t.path, data)
}

// Records returns the persisted sequence in append order. Corrupt or missing
// content reads as empty.
func (t *TransactionLog) Records() []depot.Record {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.readLocked()
}

func (t *TransactionLog) readLocked() []depot.Record {
	raw, err := os.ReadFile(t.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("transaction log: %v", &depot.MalformedStoreError{Path: t.path, Err: err})
		}
		return nil
	}

	var records []depot.Record
	if err := json.Unmarshal(raw, &records); err != nil {
		log.Printf("transaction log: %v", &depot.MalformedStoreError{Path: t.path, Err: err})
		return nil
	}
	return records
}

// =============================================================================
// ATOMIC WRITE
// =============================================================================

// writeAtomic replaces path with data via temp-file-then-rename in the same
// directory, so readers see either the old or the new document, never a mix.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
