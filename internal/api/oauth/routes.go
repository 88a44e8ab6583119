package oauth

import "net/http"

// RegisterRoutes adds the canned OAuth endpoints to the given mux.
func RegisterRoutes(mux *http.ServeMux, portalID, appID int64) {
	h := &Handler{portalID: portalID, appID: appID}

	mux.HandleFunc("POST /oauth/v1/token", h.Token)
	mux.HandleFunc("GET /oauth/authorize", h.Authorize)
	mux.HandleFunc("GET /oauth/v1/access-tokens/{token}", h.AccessTokenInfo)
}
