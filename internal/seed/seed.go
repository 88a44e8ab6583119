// Package seed installs the initial state the double boots (and resets)
// into: one id counter per resource type.
package seed

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/stubspot/stubspot/internal/domain"
)

// FirstObjectID is the first id issued for every resource type, both on a
// cold start and after a reset. The large base keeps generated ids visually
// distinct from anything a test might hard-code.
const FirstObjectID = 10000000

// Seed inserts the id counter rows for every resource type. Counters that
// already exist are left untouched, so Seed is safe to run on every boot.
func Seed(ctx context.Context, db *sql.DB) error {
	for _, rt := range domain.ResourceTypes {
		if _, err := db.ExecContext(ctx,
			`INSERT OR IGNORE INTO id_counters (resource_type, next_id) VALUES (?, ?)`,
			rt.String(), FirstObjectID,
		); err != nil {
			return fmt.Errorf("seed id counter for %s: %w", rt, err)
		}
	}
	return nil
}
