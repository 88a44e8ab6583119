package objects

import (
	"net/http"

	"github.com/stubspot/stubspot/internal/store"
)

// RegisterRoutes adds all CRM object endpoints to the given mux.
func RegisterRoutes(mux *http.ServeMux, s *store.Store) {
	h := &Handler{store: s}

	mux.HandleFunc("GET /crm/v3/objects/{objectType}", h.List)
	mux.HandleFunc("POST /crm/v3/objects/{objectType}", h.Create)
	mux.HandleFunc("GET /crm/v3/objects/{objectType}/{objectId}", h.Get)
	mux.HandleFunc("PATCH /crm/v3/objects/{objectType}/{objectId}", h.Update)
	mux.HandleFunc("DELETE /crm/v3/objects/{objectType}/{objectId}", h.Archive)
	mux.HandleFunc("POST /crm/v3/objects/{objectType}/search", h.Search)
}
