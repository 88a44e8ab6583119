package objects

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/stubspot/stubspot/internal/api"
	"github.com/stubspot/stubspot/internal/domain"
	"github.com/stubspot/stubspot/internal/store"
)

// Handler handles CRM object HTTP requests.
type Handler struct {
	store *store.Store
}

// resolve parses the objectType path segment, writing a 404 in HubSpot error
// format when the type is outside the closed set.
func resolve(w http.ResponseWriter, r *http.Request) (domain.ResourceType, bool) {
	rt, err := domain.ParseResourceType(r.PathValue("objectType"))
	if err != nil {
		corrID := api.CorrelationID(r.Context())
		api.WriteError(w, http.StatusNotFound, api.NewNotFoundError("Object type not found", corrID))
		return "", false
	}
	return rt, true
}

// objectID parses the objectId path segment; a malformed id is
// indistinguishable from a missing object.
func objectID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := store.ParseObjectID(r.PathValue("objectId"))
	if err != nil {
		corrID := api.CorrelationID(r.Context())
		api.WriteError(w, http.StatusNotFound, api.NewNotFoundError("Object not found", corrID))
		return 0, false
	}
	return id, true
}

func archivedParam(r *http.Request) bool {
	return r.URL.Query().Get("archived") == "true"
}

// Create handles POST /crm/v3/objects/{objectType}.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())
	rt, ok := resolve(w, r)
	if !ok {
		return
	}

	var body domain.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input JSON", corrID))
		return
	}
	if body.Properties == nil {
		body.Properties = map[string]string{}
	}

	obj, err := h.store.Objects.Create(r.Context(), rt, body.Properties)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, api.NewInternalError(err.Error(), corrID))
		return
	}

	api.WriteJSON(w, http.StatusCreated, obj)
}

// Get handles GET /crm/v3/objects/{objectType}/{objectId}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())
	rt, ok := resolve(w, r)
	if !ok {
		return
	}
	id, ok := objectID(w, r)
	if !ok {
		return
	}

	opts := domain.ReadOpts{Archived: archivedParam(r)}
	if v := r.URL.Query().Get("associations"); v != "" {
		opts.Associations = strings.Split(v, ",")
	}

	obj, err := h.store.Objects.Get(r.Context(), rt, id, opts)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			api.WriteError(w, http.StatusNotFound, api.NewNotFoundError("Object not found", corrID))
			return
		}
		api.WriteError(w, http.StatusInternalServerError, api.NewInternalError(err.Error(), corrID))
		return
	}

	api.WriteJSON(w, http.StatusOK, obj)
}

// List handles GET /crm/v3/objects/{objectType}.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())
	rt, ok := resolve(w, r)
	if !ok {
		return
	}

	objs, err := h.store.Objects.List(r.Context(), rt, archivedParam(r))
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, api.NewInternalError(err.Error(), corrID))
		return
	}

	results := make([]any, len(objs))
	for i, obj := range objs {
		results[i] = obj
	}
	api.WriteJSON(w, http.StatusOK, api.CollectionResponse{Results: results})
}

// Update handles PATCH /crm/v3/objects/{objectType}/{objectId}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())
	rt, ok := resolve(w, r)
	if !ok {
		return
	}
	id, ok := objectID(w, r)
	if !ok {
		return
	}

	var body domain.UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input JSON", corrID))
		return
	}
	if body.Properties == nil {
		body.Properties = map[string]string{}
	}

	obj, err := h.store.Objects.Update(r.Context(), rt, id, body.Properties)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			api.WriteError(w, http.StatusNotFound, api.NewNotFoundError("Object not found", corrID))
			return
		}
		api.WriteError(w, http.StatusInternalServerError, api.NewInternalError(err.Error(), corrID))
		return
	}

	api.WriteJSON(w, http.StatusOK, obj)
}

// Archive handles DELETE /crm/v3/objects/{objectType}/{objectId}.
func (h *Handler) Archive(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())
	rt, ok := resolve(w, r)
	if !ok {
		return
	}
	id, ok := objectID(w, r)
	if !ok {
		return
	}

	if err := h.store.Objects.Archive(r.Context(), rt, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			api.WriteError(w, http.StatusNotFound, api.NewNotFoundError("Object not found", corrID))
			return
		}
		api.WriteError(w, http.StatusInternalServerError, api.NewInternalError(err.Error(), corrID))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Search handles POST /crm/v3/objects/{objectType}/search.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())
	rt, ok := resolve(w, r)
	if !ok {
		return
	}

	var req domain.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input JSON", corrID))
		return
	}

	result, err := h.store.Search.Search(r.Context(), rt, &req)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, api.NewInternalError(err.Error(), corrID))
		return
	}

	api.WriteJSON(w, http.StatusOK, result)
}
