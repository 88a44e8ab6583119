package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/stubspot/stubspot/internal/domain"
)

// now returns the current UTC time formatted as a HubSpot-compatible
// timestamp (millisecond precision, trailing Z).
func now() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
}

// execer is the subset of *sql.DB and *sql.Tx the property helpers need.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// getObject loads an object row and all its properties, with no
// archived-state masking. Returns ErrNotFound only if the row is absent;
// database failures propagate as themselves.
func getObject(ctx context.Context, db *sql.DB, rt domain.ResourceType, id int64) (*domain.Object, error) {
	var obj domain.Object
	err := db.QueryRowContext(ctx,
		`SELECT id, archived, created_at, updated_at FROM objects WHERE resource_type = ? AND id = ?`,
		rt.String(), id,
	).Scan(&obj.ID, &obj.Archived, &obj.CreatedAt, &obj.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get %s %d: %w", rt.Singular(), id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s %d: %w", rt.Singular(), id, err)
	}
	obj.ID = strconv.FormatInt(id, 10)

	obj.Properties, err = getProperties(ctx, db, rt, id)
	if err != nil {
		return nil, err
	}
	return &obj, nil
}

// getProperties fetches every property value for an object.
func getProperties(ctx context.Context, db *sql.DB, rt domain.ResourceType, id int64) (map[string]string, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT property_name, value FROM property_values WHERE resource_type = ? AND object_id = ?`,
		rt.String(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("get properties: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := make(map[string]string)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("scan property: %w", err)
		}
		result[name] = value
	}
	return result, rows.Err()
}

// setProperties upserts the given property values for an object.
func setProperties(ctx context.Context, db execer, rt domain.ResourceType, id int64, props map[string]string) error {
	for name, value := range props {
		_, err := db.ExecContext(ctx,
			`INSERT INTO property_values (resource_type, object_id, property_name, value) VALUES (?, ?, ?, ?)
			 ON CONFLICT(resource_type, object_id, property_name) DO UPDATE SET value = excluded.value`,
			rt.String(), id, name, value,
		)
		if err != nil {
			return fmt.Errorf("set property %s: %w", name, err)
		}
	}
	return nil
}

// objectExists reports whether an object row is present, archived or not.
func objectExists(ctx context.Context, db *sql.DB, rt domain.ResourceType, id int64) bool {
	var one int
	err := db.QueryRowContext(ctx,
		`SELECT 1 FROM objects WHERE resource_type = ? AND id = ?`, rt.String(), id,
	).Scan(&one)
	return err == nil
}
