// Package webhook delivers mutation events to a configured external
// endpoint. Delivery is a single POST per batch, awaited by the triggering
// operation before it reports success, so test harnesses can observe events
// deterministically.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Event describes a single creation or property-change notification.
// AppID is stamped by the Sender at delivery time.
type Event struct {
	AppID            int64  `json:"appId"`
	PortalID         int64  `json:"portalId"`
	SubscriptionType string `json:"subscriptionType"`
	ObjectID         int64  `json:"objectId"`
	PropertyName     string `json:"propertyName,omitempty"`
}

// Sender posts event batches to a webhook URL. An empty URL makes every Send
// a no-op, which is the default for deployments that don't observe events.
type Sender struct {
	url    string
	appID  int64
	client *http.Client
}

// NewSender creates a Sender targeting url. No timeout is applied: a hung
// destination hangs the triggering request, which keeps delivery strictly
// ordered with the response.
func NewSender(url string, appID int64) *Sender {
	return &Sender{
		url:    url,
		appID:  appID,
		client: &http.Client{},
	}
}

// Send stamps each event with the application id and delivers the whole
// batch as one POST. With no URL configured it returns nil immediately.
// There are no retries; a network error or non-2xx response is returned to
// the caller as the failure of the enclosing mutation.
func (s *Sender) Send(ctx context.Context, events []Event) error {
	if s.url == "" {
		return nil
	}

	if events == nil {
		events = []Event{}
	}
	for i := range events {
		events[i].AppID = s.appID
	}

	body, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("marshal events: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("deliver webhook: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook endpoint returned status %d", resp.StatusCode)
	}
	return nil
}
