/*
Package sqlite provides a SQLite-backed implementation of the storage
interfaces, as an alternative to the JSON-file backend.

PURPOSE:
  Implements depot.LedgerStore and depot.TransactionLog on SQLite. The engine
  contract is unchanged: Save replaces the stock document wholesale (here as
  one transaction), Append only ever inserts.

KEY TABLES:
  stock:        Current quantity-on-hand per item (whole-document semantics)
  transactions: Immutable log of completed commits (append-only)

APPEND-ONLY ENFORCEMENT:
  No UPDATE or DELETE statements touch the transactions table.

WAL MODE:
  Opened with WAL (Write-Ahead Logging): readers don't block the single
  writer, and crash recovery is cleaner than with the rollback journal.

CONCURRENCY:
  Uses sync.RWMutex on top of SQLite's own locking, matching the file
  backend's semantics of one read-modify-write cycle at a time.

USAGE:
  store, err := sqlite.New("./depot.db")   // ":memory:" for tests
  if err != nil { log.Fatal(err) }
  defer store.Close()
  engine := depot.NewEngine(store, store)

SEE ALSO:
  - depot/types.go: Interface definitions
  - store/jsonfile: The primary file-based backend
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/gear-depot/catalog"
	"github.com/warp/gear-depot/depot"
)

// Store implements depot.LedgerStore and depot.TransactionLog using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Current stock (whole-document replace semantics)
	CREATE TABLE IF NOT EXISTS stock (
		item TEXT PRIMARY KEY,
		qty  INTEGER NOT NULL CHECK (qty >= 0)
	);

	-- Completed transactions (append-only)
	CREATE TABLE IF NOT EXISTS transactions (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		tx_type     TEXT NOT NULL,
		user_id     INTEGER NOT NULL,
		username    TEXT NOT NULL DEFAULT '',
		basket_json TEXT NOT NULL,
		return_date TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_transactions_user
		ON transactions(user_id);
	CREATE INDEX IF NOT EXISTS idx_transactions_created_at
		ON transactions(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// LEDGER STORE
// =============================================================================

// Load returns the persisted stock merged over catalog defaults. Persisted
// quantities win; rows for names outside the catalog are preserved.
func (s *Store) Load(ctx context.Context) (depot.Ledger, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	merged := depot.Ledger(catalog.Defaults())

	rows, err := s.db.QueryContext(ctx, `SELECT item, qty FROM stock`)
	if err != nil {
		return nil, fmt.Errorf("load stock: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item string
		var qty int
		if err := rows.Scan(&item, &qty); err != nil {
			return nil, fmt.Errorf("scan stock row: %w", err)
		}
		merged[item] = qty
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load stock: %w", err)
	}
	return merged, nil
}

// Save replaces the stock table wholesale with the given ledger, in one
// database transaction (the SQLite equivalent of temp-then-rename).
func (s *Store) Save(ctx context.Context, ledger depot.Ledger) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM stock`); err != nil {
		return fmt.Errorf("clear stock: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO stock (item, qty) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for item, qty := range ledger {
		if _, err := stmt.ExecContext(ctx, item, qty); err != nil {
			return fmt.Errorf("insert stock %q: %w", item, err)
		}
	}
	return tx.Commit()
}

// =============================================================================
// TRANSACTION LOG
// =============================================================================

// Append inserts one completed transaction. Insert-only; append order is
// preserved by the autoincrement id.
func (s *Store) Append(ctx context.Context, rec depot.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	basketJSON, err := json.Marshal(rec.Basket)
	if err != nil {
		return fmt.Errorf("encode basket: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO transactions (tx_type, user_id, username, basket_json, return_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		string(rec.Type), rec.UserID, rec.Username, string(basketJSON), rec.ReturnDate, rec.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("append transaction: %w", err)
	}
	return nil
}

// Records returns all transactions in append order.
func (s *Store) Records(ctx context.Context) ([]depot.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT tx_type, user_id, username, basket_json, return_date, created_at
		FROM transactions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	defer rows.Close()

	var records []depot.Record
	for rows.Next() {
		var rec depot.Record
		var txType, basketJSON string
		if err := rows.Scan(&txType, &rec.UserID, &rec.Username, &basketJSON, &rec.ReturnDate, &rec.Timestamp); err != nil {
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}
		rec.Type = depot.Mode(txType)
		if err := json.Unmarshal([]byte(basketJSON), &rec.Basket); err != nil {
			return nil, fmt.Errorf("decode basket: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
