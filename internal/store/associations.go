package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/stubspot/stubspot/internal/domain"
)

// AssociationStore defines the association index operations. Links are
// directed: linking source→target says nothing about target→source.
type AssociationStore interface {
	// Link appends one association record from source to target carrying the
	// supplied type descriptors. Repeated calls append repeated records; the
	// index never deduplicates.
	Link(ctx context.Context, fromType domain.ResourceType, fromID int64, toType domain.ResourceType, toID int64, specs []domain.AssociationSpec) error
	// List returns, in link order, every association record from the source
	// object to the given target type. A missing source object is not-found;
	// an existing source with no links is an empty list.
	List(ctx context.Context, fromType domain.ResourceType, fromID int64, toType domain.ResourceType) ([]domain.AssociationRecord, error)
}

// SQLiteAssociationStore implements AssociationStore backed by SQLite.
type SQLiteAssociationStore struct {
	db *sql.DB
}

// NewSQLiteAssociationStore creates a new SQLiteAssociationStore.
func NewSQLiteAssociationStore(db *sql.DB) *SQLiteAssociationStore {
	return &SQLiteAssociationStore{db: db}
}

// Link stores a new association record. Both endpoints must exist in the
// store (archived objects count as existing).
func (s *SQLiteAssociationStore) Link(ctx context.Context, fromType domain.ResourceType, fromID int64, toType domain.ResourceType, toID int64, specs []domain.AssociationSpec) error {
	if !objectExists(ctx, s.db, fromType, fromID) {
		return fmt.Errorf("associate from %s %d: %w", fromType.Singular(), fromID, ErrNotFound)
	}
	if !objectExists(ctx, s.db, toType, toID) {
		return fmt.Errorf("associate to %s %d: %w", toType.Singular(), toID, ErrNotFound)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin association: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO associations (from_type, from_id, to_type, to_id, created_at) VALUES (?, ?, ?, ?, ?)`,
		fromType.String(), fromID, toType.String(), toID, now(),
	)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("insert association: %w", err)
	}
	seq, err := res.LastInsertId()
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("last insert id: %w", err)
	}

	for i, spec := range specs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO association_specs (association_seq, position, category, type_id) VALUES (?, ?, ?, ?)`,
			seq, i, spec.AssociationCategory, spec.AssociationTypeID,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert association type descriptor: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit association: %w", err)
	}
	return nil
}

// List returns the compact view of the source object's links to toType. The
// source must exist in the store (archived objects count as existing).
func (s *SQLiteAssociationStore) List(ctx context.Context, fromType domain.ResourceType, fromID int64, toType domain.ResourceType) ([]domain.AssociationRecord, error) {
	if !objectExists(ctx, s.db, fromType, fromID) {
		return nil, fmt.Errorf("list associations of %s %d: %w", fromType.Singular(), fromID, ErrNotFound)
	}
	return listAssociationRecords(ctx, s.db, fromType, fromID, toType)
}

// listAssociationRecords loads association records in link order, each with
// its descriptors in request order. Shared with the object store's
// associations expansion.
func listAssociationRecords(ctx context.Context, db *sql.DB, fromType domain.ResourceType, fromID int64, toType domain.ResourceType) ([]domain.AssociationRecord, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT a.seq, a.to_id, s.category, s.type_id
		 FROM associations a
		 LEFT JOIN association_specs s ON s.association_seq = a.seq
		 WHERE a.from_type = ? AND a.from_id = ? AND a.to_type = ?
		 ORDER BY a.seq ASC, s.position ASC`,
		fromType.String(), fromID, toType.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("list associations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := make([]domain.AssociationRecord, 0)
	lastSeq := int64(-1)
	for rows.Next() {
		var seq, toID int64
		var category sql.NullString
		var typeID sql.NullInt64
		if err := rows.Scan(&seq, &toID, &category, &typeID); err != nil {
			return nil, fmt.Errorf("scan association: %w", err)
		}
		if seq != lastSeq {
			records = append(records, domain.AssociationRecord{
				ToObjectID: toID,
				Types:      []domain.AssociationType{},
			})
			lastSeq = seq
		}
		if category.Valid {
			rec := &records[len(records)-1]
			rec.Types = append(rec.Types, domain.AssociationType{
				Category: category.String,
				TypeID:   typeID.Int64,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return records, nil
}

// expandRecords reduces records to the expanded read view. Only the first
// descriptor's category is surfaced; records created without descriptors
// have nothing to summarize and are dropped.
func expandRecords(records []domain.AssociationRecord) domain.AssociationExpansion {
	exp := domain.AssociationExpansion{Results: make([]domain.AssociationSummary, 0, len(records))}
	for _, rec := range records {
		if len(rec.Types) == 0 {
			continue
		}
		exp.Results = append(exp.Results, domain.AssociationSummary{
			ID:   rec.ToObjectID,
			Type: rec.Types[0].Category,
		})
	}
	return exp
}
