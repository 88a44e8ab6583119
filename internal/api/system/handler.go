// Package system serves the harness endpoints: a health check and the
// full-state reset that test scenarios call between runs.
package system

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"github.com/stubspot/stubspot/internal/api"
	"github.com/stubspot/stubspot/internal/seed"
)

// Handler serves /ping and /reset.
type Handler struct {
	db *sql.DB
}

// dataTableNames lists all data tables in foreign-key-safe deletion order.
var dataTableNames = []string{
	"association_specs",
	"associations",
	"property_values",
	"objects",
	"id_counters",
}

// Ping handles GET /ping.
func (h *Handler) Ping(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("pong"))
}

// Reset handles GET /reset: every resource type is wiped and the id counters
// return to their cold-start base, so independent test scenarios can't see
// each other. No notification is emitted.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := ResetData(r.Context(), h.db); err != nil {
		corrID := api.CorrelationID(r.Context())
		api.WriteError(w, http.StatusInternalServerError, api.NewInternalError(err.Error(), corrID))
		return
	}

	api.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ResetData clears all data tables and re-seeds the id counters. Exported
// for reuse by tests or other callers.
func ResetData(ctx context.Context, db *sql.DB) error {
	for _, table := range dataTableNames {
		if _, err := db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", table)); err != nil { //nolint:gosec // table names are hardcoded constants
			return fmt.Errorf("clear table %s: %w", table, err)
		}
	}
	return seed.Seed(ctx, db)
}
