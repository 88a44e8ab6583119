package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strconv"

	"github.com/stubspot/stubspot/internal/domain"
	"github.com/stubspot/stubspot/internal/webhook"
)

// ObjectStore defines the per-resource-type CRUD operations. Create and
// Update emit webhook events and do not return until delivery completes; the
// object is persisted before the event is sent, so a delivery failure leaves
// the mutation in place but fails the operation.
type ObjectStore interface {
	Create(ctx context.Context, rt domain.ResourceType, properties map[string]string) (*domain.Object, error)
	Get(ctx context.Context, rt domain.ResourceType, id int64, opts domain.ReadOpts) (*domain.Object, error)
	List(ctx context.Context, rt domain.ResourceType, archived bool) ([]*domain.Object, error)
	Update(ctx context.Context, rt domain.ResourceType, id int64, properties map[string]string) (*domain.Object, error)
	Archive(ctx context.Context, rt domain.ResourceType, id int64) error
}

// SQLiteObjectStore implements ObjectStore backed by SQLite.
type SQLiteObjectStore struct {
	db       *sql.DB
	ids      *IDAllocator
	notifier Notifier
	portalID int64
}

// NewSQLiteObjectStore creates a new SQLiteObjectStore.
func NewSQLiteObjectStore(db *sql.DB, ids *IDAllocator, notifier Notifier, portalID int64) *SQLiteObjectStore {
	return &SQLiteObjectStore{db: db, ids: ids, notifier: notifier, portalID: portalID}
}

// Create allocates an id, stamps timestamps, stores the supplied properties
// and emits one creation event.
func (s *SQLiteObjectStore) Create(ctx context.Context, rt domain.ResourceType, properties map[string]string) (*domain.Object, error) {
	id, err := s.ids.Next(ctx, rt)
	if err != nil {
		return nil, err
	}

	ts := now()
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO objects (resource_type, id, archived, created_at, updated_at) VALUES (?, ?, FALSE, ?, ?)`,
		rt.String(), id, ts, ts,
	); err != nil {
		return nil, fmt.Errorf("insert %s: %w", rt.Singular(), err)
	}

	if err := setProperties(ctx, s.db, rt, id, properties); err != nil {
		return nil, err
	}

	ev := webhook.Event{
		PortalID:         s.portalID,
		SubscriptionType: rt.String() + ".creation",
		ObjectID:         id,
	}
	if err := s.notifier.Send(ctx, []webhook.Event{ev}); err != nil {
		return nil, fmt.Errorf("notify %s creation: %w", rt.Singular(), err)
	}

	return getObject(ctx, s.db, rt, id)
}

// Get retrieves a single object by id. An object whose archived flag does
// not match opts.Archived is reported as not found; archived objects stay in
// the store but are masked from normal reads. When opts.Associations names
// related types, non-empty link lists are attached in the expanded view.
func (s *SQLiteObjectStore) Get(ctx context.Context, rt domain.ResourceType, id int64, opts domain.ReadOpts) (*domain.Object, error) {
	obj, err := getObject(ctx, s.db, rt, id)
	if err != nil {
		return nil, err
	}
	if obj.Archived != opts.Archived {
		return nil, fmt.Errorf("get %s %d: archived mismatch: %w", rt.Singular(), id, ErrNotFound)
	}

	for _, name := range opts.Associations {
		toType, err := domain.ParseResourceType(name)
		if err != nil {
			// Unknown expansion names can never have links; skip them.
			continue
		}
		records, err := listAssociationRecords(ctx, s.db, rt, id, toType)
		if err != nil {
			return nil, err
		}
		if len(records) == 0 {
			continue
		}
		if obj.Associations == nil {
			obj.Associations = make(map[string]domain.AssociationExpansion)
		}
		obj.Associations[toType.String()] = expandRecords(records)
	}

	return obj, nil
}

// List returns every object of a type whose archived flag matches, in
// insertion order.
func (s *SQLiteObjectStore) List(ctx context.Context, rt domain.ResourceType, archived bool) ([]*domain.Object, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM objects WHERE resource_type = ? AND archived = ? ORDER BY seq ASC`,
		rt.String(), archived,
	)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", rt, err)
	}
	defer func() { _ = rows.Close() }()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan %s id: %w", rt.Singular(), err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	results := make([]*domain.Object, 0, len(ids))
	for _, id := range ids {
		obj, err := getObject(ctx, s.db, rt, id)
		if err != nil {
			return nil, err
		}
		results = append(results, obj)
	}
	return results, nil
}

// Update merges the supplied properties into an existing object, leaving
// absent keys untouched, and emits one propertyChange event per property
// whose value actually changed. The updatedAt timestamp is deliberately not
// refreshed (see domain.Object). The batch is delivered even when empty so a
// configured listener observes every update request.
func (s *SQLiteObjectStore) Update(ctx context.Context, rt domain.ResourceType, id int64, properties map[string]string) (*domain.Object, error) {
	if !objectExists(ctx, s.db, rt, id) {
		return nil, fmt.Errorf("update %s %d: %w", rt.Singular(), id, ErrNotFound)
	}

	before, err := getProperties(ctx, s.db, rt, id)
	if err != nil {
		return nil, err
	}

	var changed []string
	for name, value := range properties {
		if prev, ok := before[name]; !ok || prev != value {
			changed = append(changed, name)
		}
	}
	sort.Strings(changed)

	if err := setProperties(ctx, s.db, rt, id, properties); err != nil {
		return nil, err
	}

	events := make([]webhook.Event, 0, len(changed))
	for _, name := range changed {
		events = append(events, webhook.Event{
			PortalID:         s.portalID,
			SubscriptionType: rt.Singular() + ".propertyChange",
			ObjectID:         id,
			PropertyName:     name,
		})
	}
	if err := s.notifier.Send(ctx, events); err != nil {
		return nil, fmt.Errorf("notify %s property change: %w", rt.Singular(), err)
	}

	return getObject(ctx, s.db, rt, id)
}

// Archive soft-deletes an object. Idempotent: archiving an already-archived
// object succeeds without further effect. The row stays in the store and no
// event is emitted.
func (s *SQLiteObjectStore) Archive(ctx context.Context, rt domain.ResourceType, id int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE objects SET archived = TRUE WHERE resource_type = ? AND id = ?`,
		rt.String(), id,
	)
	if err != nil {
		return fmt.Errorf("archive %s %d: %w", rt.Singular(), id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("archive %s %d: %w", rt.Singular(), id, ErrNotFound)
	}
	return nil
}

// ParseObjectID converts a path id segment to the numeric form stored
// internally. Malformed ids behave like ids that don't exist.
func ParseObjectID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("object id %q: %w", s, ErrNotFound)
	}
	return id, nil
}
