/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the equipment depot bot. Handles configuration,
  dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load .env (if present) and read BOT_TOKEN
  2. Parse command-line flags
  3. Initialize the ledger store and transaction log (json or sqlite)
  4. Wire sessions, engine, controller, Telegram transport
  5. Start the ops HTTP server and the update loop

COMMAND-LINE FLAGS:
  -data      Ledger file path for the json backend (default: data.json)
  -orders    Transaction log path for the json backend (default: orders.json)
  -backend   Storage backend: "json" or "sqlite" (default: json)
  -db        SQLite database path for the sqlite backend (default: depot.db)
  -ops-port  Read-only ops HTTP port, 0 to disable (default: 8081)

ENVIRONMENT:
  BOT_TOKEN  Telegram bot token (required). May come from a .env file.

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop long-polling for updates
  2. Shut down the ops HTTP server (10s timeout)
  3. Exit

SEE ALSO:
  - bot/controller.go: Event dispatch
  - transport/telegram: Update loop and rendering
  - api/server.go: Ops router
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/warp/gear-depot/api"
	"github.com/warp/gear-depot/bot"
	"github.com/warp/gear-depot/depot"
	"github.com/warp/gear-depot/store/jsonfile"
	"github.com/warp/gear-depot/store/sqlite"
	"github.com/warp/gear-depot/transport/telegram"
)

func main() {
	// Config
	_ = godotenv.Load()
	token := os.Getenv("BOT_TOKEN")
	if token == "" {
		log.Fatal("BOT_TOKEN is not set")
	}

	dataPath := flag.String("data", "data.json", "ledger file path (json backend)")
	ordersPath := flag.String("orders", "orders.json", "transaction log path (json backend)")
	backend := flag.String("backend", "json", `storage backend: "json" or "sqlite"`)
	dbPath := flag.String("db", "depot.db", "SQLite database path (sqlite backend)")
	opsPort := flag.Int("ops-port", 8081, "read-only ops HTTP port, 0 to disable")
	flag.Parse()

	// Storage
	var ledgerStore depot.LedgerStore
	var txLog depot.TransactionLog
	switch *backend {
	case "json":
		ledgerStore = jsonfile.NewLedgerStore(*dataPath)
		txLog = jsonfile.NewTransactionLog(*ordersPath)
	case "sqlite":
		store, err := sqlite.New(*dbPath)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer store.Close()
		ledgerStore, txLog = store, store
	default:
		log.Fatalf("Unknown backend %q", *backend)
	}

	// Core
	sessions := depot.NewSessions()
	engine := depot.NewEngine(ledgerStore, txLog)

	// Transport
	tg, err := telegram.New(token)
	if err != nil {
		log.Fatalf("Failed to connect to Telegram: %v", err)
	}
	controller := bot.New(sessions, engine, ledgerStore, tg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Ops surface
	var opsServer *http.Server
	if *opsPort > 0 {
		opsServer = &http.Server{
			Addr:         fmt.Sprintf(":%d", *opsPort),
			Handler:      api.NewRouter(api.NewHandler(ledgerStore)),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		}
		go func() {
			log.Printf("Ops API listening on :%d", *opsPort)
			if err := opsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatalf("Ops server failed: %v", err)
			}
		}()
	}

	// Update loop (blocks until the context is canceled)
	log.Printf("Bot @%s is up, backend=%s", tg.Username(), *backend)
	if err := tg.Run(ctx, func(ctx context.Context, ev bot.Event) {
		if err := controller.HandleEvent(ctx, ev); err != nil {
			log.Printf("handle event: %v", err)
		}
	}); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("Update loop stopped: %v", err)
	}

	log.Println("Shutting down...")
	if opsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := opsServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("Ops server shutdown: %v", err)
		}
	}
	log.Println("Stopped")
}
