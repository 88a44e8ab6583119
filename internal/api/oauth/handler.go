// Package oauth serves the token-exchange endpoints with fixed canned
// payloads. Nothing here holds state; the endpoints exist so client
// libraries can complete their auth handshake against the double.
package oauth

import (
	"net/http"
	"net/url"

	"github.com/stubspot/stubspot/internal/api"
)

// exchangeCode is the static code appended to every authorize redirect.
const exchangeCode = "code-to-exchange"

// Handler handles OAuth HTTP requests.
type Handler struct {
	portalID int64
	appID    int64
}

// Token handles POST /oauth/v1/token.
func (h *Handler) Token(w http.ResponseWriter, r *http.Request) {
	api.WriteJSON(w, http.StatusOK, map[string]any{
		"access_token":  "access-token",
		"refresh_token": "refresh-token",
		"expires_in":    999999,
		"message":       nil,
		"user":          h.portalID,
	})
}

// Authorize handles GET /oauth/authorize. It redirects to the supplied
// redirect_uri with the static exchange code appended.
func (h *Handler) Authorize(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())

	redirect, err := url.Parse(r.URL.Query().Get("redirect_uri"))
	if err != nil || redirect.String() == "" {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("redirect_uri is required", corrID))
		return
	}

	q := redirect.Query()
	q.Set("code", exchangeCode)
	redirect.RawQuery = q.Encode()

	http.Redirect(w, r, redirect.String(), http.StatusFound)
}

// AccessTokenInfo handles GET /oauth/v1/access-tokens/{token}.
func (h *Handler) AccessTokenInfo(w http.ResponseWriter, r *http.Request) {
	api.WriteJSON(w, http.StatusOK, map[string]any{
		"hub_id":     h.portalID,
		"token":      "ReplaceWithToken",
		"hub_domain": "ReplaceWithHubDomainHere",
		"app_id":     h.appID,
		"expires_in": 999999,
		"user_id":    h.portalID,
		"token_type": "token type",
	})
}
