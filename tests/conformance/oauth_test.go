package conformance_test

import (
	"net/http"
	"net/url"
	"testing"
)

func TestTokenExchange(t *testing.T) {
	resp := doRequest(t, http.MethodPost, "/oauth/v1/token", map[string]string{
		"grant_type": "authorization_code",
		"code":       "code-to-exchange",
	})
	mustStatus(t, resp, http.StatusOK)
	body := readJSON(t, resp)

	assertStringField(t, body, "access_token", "access-token")
	assertStringField(t, body, "refresh_token", "refresh-token")
	assertNumberField(t, body, "expires_in", 999999)
	assertNumberField(t, body, "user", 12345)
	if v, ok := body["message"]; !ok || v != nil {
		t.Errorf("expected explicit null message, got %v", v)
	}
}

func TestAuthorizeRedirectsWithCode(t *testing.T) {
	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	target := serverURL + "/oauth/authorize?client_id=abc&redirect_uri=" +
		url.QueryEscape("https://app.example/callback")
	resp, err := client.Get(target)
	if err != nil {
		t.Fatalf("get authorize: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	mustStatus(t, resp, http.StatusFound)

	loc, err := resp.Location()
	if err != nil {
		t.Fatalf("redirect location: %v", err)
	}
	if loc.Query().Get("code") != "code-to-exchange" {
		t.Errorf("expected code-to-exchange, got %q", loc.Query().Get("code"))
	}
}

func TestAccessTokenInfo(t *testing.T) {
	resp := doRequest(t, http.MethodGet, "/oauth/v1/access-tokens/any-token", nil)
	mustStatus(t, resp, http.StatusOK)
	body := readJSON(t, resp)

	assertNumberField(t, body, "hub_id", 12345)
	assertNumberField(t, body, "app_id", 230)
	assertNumberField(t, body, "expires_in", 999999)
	assertStringField(t, body, "token", "ReplaceWithToken")
}
