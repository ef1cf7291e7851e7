/*
handlers.go - Read-only ops HTTP handlers

PURPOSE:
  A small operational surface beside the chat interface: liveness and the
  current stock snapshot. It is strictly read-only; every stock mutation goes
  through the commit protocol in the depot engine.

ENDPOINTS:
  GET /healthz            Liveness probe
  GET /api/stock          Full ledger as {"name": qty, ...}
  GET /api/stock/{item}   One item's quantity

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 404: Unknown item
  - 500: Ledger load failure

SEE ALSO:
  - server.go: Router setup and middleware
  - cmd/bot/main.go: Startup wiring
*/
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/warp/gear-depot/depot"
)

// Handler holds the ops surface's single dependency: read access to the
// ledger store.
type Handler struct {
	Ledger depot.LedgerStore
}

// NewHandler creates a handler over the given ledger store.
func NewHandler(ledger depot.LedgerStore) *Handler {
	return &Handler{Ledger: ledger}
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetStock returns the full current ledger.
func (h *Handler) GetStock(w http.ResponseWriter, r *http.Request) {
	ledger, err := h.Ledger.Load(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load stock")
		return
	}
	writeJSON(w, http.StatusOK, ledger)
}

// GetStockItem returns one item's quantity-on-hand.
func (h *Handler) GetStockItem(w http.ResponseWriter, r *http.Request) {
	ledger, err := h.Ledger.Load(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load stock")
		return
	}

	item := chi.URLParam(r, "item")
	qty, ok := ledger[item]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown item")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"item": item, "quantity": qty})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
