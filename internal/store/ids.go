package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/stubspot/stubspot/internal/domain"
)

// IDAllocator issues unique, monotonically increasing object ids per
// resource type. Counters live in the id_counters table (seeded by the seed
// package) and only go forward: archiving an object never frees its id.
// A reset re-seeds the counters along with the rest of the state.
type IDAllocator struct {
	db *sql.DB
}

// NewIDAllocator creates an IDAllocator backed by db.
func NewIDAllocator(db *sql.DB) *IDAllocator {
	return &IDAllocator{db: db}
}

// Next returns a fresh id for the given resource type and advances the
// counter. The read and increment share a transaction so concurrent creates
// can never observe the same value.
func (a *IDAllocator) Next(ctx context.Context, rt domain.ResourceType) (int64, error) {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin id allocation: %w", err)
	}

	var id int64
	if err := tx.QueryRowContext(ctx,
		`SELECT next_id FROM id_counters WHERE resource_type = ?`, rt.String(),
	).Scan(&id); err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("read id counter for %s: %w", rt, err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE id_counters SET next_id = next_id + 1 WHERE resource_type = ?`, rt.String(),
	); err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("advance id counter for %s: %w", rt, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit id allocation: %w", err)
	}
	return id, nil
}
