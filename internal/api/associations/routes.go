package associations

import (
	"net/http"

	"github.com/stubspot/stubspot/internal/store"
)

// RegisterRoutes adds the v4 association endpoints to the given mux.
func RegisterRoutes(mux *http.ServeMux, s *store.Store) {
	h := &Handler{store: s}

	mux.HandleFunc("GET /crm/v4/objects/{objectType}/{objectId}/associations/{toObjectType}", h.List)
	mux.HandleFunc("PUT /crm/v4/objects/{objectType}/{objectId}/associations/{toObjectType}/{toObjectId}", h.Create)
}
