package associations

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/stubspot/stubspot/internal/api"
	"github.com/stubspot/stubspot/internal/domain"
	"github.com/stubspot/stubspot/internal/store"
)

// Handler handles v4 association HTTP requests.
type Handler struct {
	store *store.Store
}

// createdResponse echoes the request's raw path segments, as the real API
// does; ids are numbers here even though objects serialize them as strings.
type createdResponse struct {
	FromObjectTypeID string `json:"fromObjectTypeId"`
	FromObjectID     int64  `json:"fromObjectId"`
	ToObjectTypeID   string `json:"toObjectTypeId"`
	ToObjectID       int64  `json:"toObjectId"`
	Labels           []any  `json:"labels"`
}

type pathParams struct {
	fromType domain.ResourceType
	fromID   int64
	toType   domain.ResourceType
}

// parsePath resolves the shared path segments. The target type segment
// accepts singular or plural names and is normalized to plural.
func parsePath(w http.ResponseWriter, r *http.Request) (pathParams, bool) {
	corrID := api.CorrelationID(r.Context())

	fromType, err := domain.ParseResourceType(r.PathValue("objectType"))
	if err != nil {
		api.WriteError(w, http.StatusNotFound, api.NewNotFoundError("Object type not found", corrID))
		return pathParams{}, false
	}
	toType, err := domain.ParseResourceType(r.PathValue("toObjectType"))
	if err != nil {
		api.WriteError(w, http.StatusNotFound, api.NewNotFoundError("Object type not found", corrID))
		return pathParams{}, false
	}
	fromID, err := store.ParseObjectID(r.PathValue("objectId"))
	if err != nil {
		api.WriteError(w, http.StatusNotFound, api.NewNotFoundError("Object not found", corrID))
		return pathParams{}, false
	}
	return pathParams{fromType: fromType, fromID: fromID, toType: toType}, true
}

// List handles GET /crm/v4/objects/{objectType}/{objectId}/associations/{toObjectType}.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())
	p, ok := parsePath(w, r)
	if !ok {
		return
	}

	records, err := h.store.Associations.List(r.Context(), p.fromType, p.fromID, p.toType)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			api.WriteError(w, http.StatusNotFound, api.NewNotFoundError("Object not found", corrID))
			return
		}
		api.WriteError(w, http.StatusInternalServerError, api.NewInternalError(err.Error(), corrID))
		return
	}

	api.WriteJSON(w, http.StatusOK, struct {
		Results []domain.AssociationRecord `json:"results"`
	}{Results: records})
}

// Create handles PUT /crm/v4/objects/{objectType}/{objectId}/associations/{toObjectType}/{toObjectId}.
// The body is a JSON array of association type descriptors; every call
// appends a fresh record.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())
	p, ok := parsePath(w, r)
	if !ok {
		return
	}
	toID, err := store.ParseObjectID(r.PathValue("toObjectId"))
	if err != nil {
		api.WriteError(w, http.StatusNotFound, api.NewNotFoundError("Object not found", corrID))
		return
	}

	var specs []domain.AssociationSpec
	if err := json.NewDecoder(r.Body).Decode(&specs); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input JSON", corrID))
		return
	}

	if err := h.store.Associations.Link(r.Context(), p.fromType, p.fromID, p.toType, toID, specs); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			api.WriteError(w, http.StatusNotFound, api.NewNotFoundError("Object not found", corrID))
			return
		}
		api.WriteError(w, http.StatusInternalServerError, api.NewInternalError(err.Error(), corrID))
		return
	}

	api.WriteJSON(w, http.StatusCreated, createdResponse{
		FromObjectTypeID: r.PathValue("objectType"),
		FromObjectID:     p.fromID,
		ToObjectTypeID:   r.PathValue("toObjectType"),
		ToObjectID:       toID,
		Labels:           []any{},
	})
}
