package store_test

import (
	"context"
	"testing"

	"github.com/stubspot/stubspot/internal/database"
	"github.com/stubspot/stubspot/internal/seed"
	"github.com/stubspot/stubspot/internal/store"
	"github.com/stubspot/stubspot/internal/testhelpers"
	"github.com/stubspot/stubspot/internal/webhook"
)

const testPortalID = 12345

// captureNotifier records every batch handed to Send, including empty ones.
type captureNotifier struct {
	batches [][]webhook.Event
	err     error
}

func (c *captureNotifier) Send(_ context.Context, events []webhook.Event) error {
	c.batches = append(c.batches, events)
	return c.err
}

func setupStore(t *testing.T) (*store.Store, *captureNotifier) {
	t.Helper()

	db := testhelpers.NewTestDB(t)
	ctx := context.Background()
	if err := database.Migrate(ctx, db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := seed.Seed(ctx, db); err != nil {
		t.Fatalf("seed: %v", err)
	}

	notifier := &captureNotifier{}
	return store.New(db, notifier, testPortalID), notifier
}
