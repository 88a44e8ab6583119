package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/stubspot/stubspot/internal/webhook"
)

// Notifier dispatches mutation event batches. Satisfied by *webhook.Sender.
type Notifier interface {
	Send(ctx context.Context, events []webhook.Event) error
}

// Store holds all sub-stores used by the application.
type Store struct {
	DB           *sql.DB
	Objects      ObjectStore
	Associations AssociationStore
	Search       SearchStore
}

// New creates a Store with all sub-stores initialized. Mutations on the
// object store emit events through notifier, stamped with portalID.
func New(db *sql.DB, notifier Notifier, portalID int64) *Store {
	ids := NewIDAllocator(db)
	return &Store{
		DB:           db,
		Objects:      NewSQLiteObjectStore(db, ids, notifier, portalID),
		Associations: NewSQLiteAssociationStore(db),
		Search:       NewSQLiteSearchStore(db),
	}
}

// ErrNotFound is returned when a requested object does not exist, or exists
// but is masked by an archived-state mismatch.
var ErrNotFound = fmt.Errorf("object not found")
