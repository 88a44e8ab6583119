package system

import (
	"database/sql"
	"net/http"
)

// RegisterRoutes adds the health and reset endpoints to the given mux.
func RegisterRoutes(mux *http.ServeMux, db *sql.DB) {
	h := &Handler{db: db}

	mux.HandleFunc("GET /ping", h.Ping)
	mux.HandleFunc("GET /reset", h.Reset)
}
