package conformance_test

import (
	"net/http"
	"strings"
	"testing"
)

func TestMalformedJSONBody(t *testing.T) {
	resetServer(t)

	req, err := http.NewRequest(http.MethodPost, serverURL+"/crm/v3/objects/contacts",
		strings.NewReader("{not json"))
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	mustStatus(t, resp, http.StatusBadRequest)
	assertErrorBody(t, readJSON(t, resp), "VALIDATION_ERROR")
}

func TestUnknownRouteReturnsJSONError(t *testing.T) {
	resp := doRequest(t, http.MethodGet, "/no/such/route", nil)
	mustStatus(t, resp, http.StatusNotFound)
	assertErrorBody(t, readJSON(t, resp), "")
}

func TestMalformedObjectID(t *testing.T) {
	resetServer(t)

	resp := doRequest(t, http.MethodGet, "/crm/v3/objects/contacts/not-a-number", nil)
	mustStatus(t, resp, http.StatusNotFound)
	assertErrorBody(t, readJSON(t, resp), "OBJECT_NOT_FOUND")
}

func TestErrorBodyShape(t *testing.T) {
	resetServer(t)

	resp := doRequest(t, http.MethodGet, "/crm/v3/objects/contacts/10000000", nil)
	mustStatus(t, resp, http.StatusNotFound)
	body := readJSON(t, resp)
	assertErrorBody(t, body, "OBJECT_NOT_FOUND")
	assertStringField(t, body, "message", "Object not found")
}
