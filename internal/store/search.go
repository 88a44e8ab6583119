package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/stubspot/stubspot/internal/domain"
)

// SearchStore defines the property-filter search operation.
type SearchStore interface {
	Search(ctx context.Context, rt domain.ResourceType, req *domain.SearchRequest) (*domain.SearchResult, error)
}

// SQLiteSearchStore implements SearchStore backed by SQLite.
type SQLiteSearchStore struct {
	db *sql.DB
}

// NewSQLiteSearchStore creates a new SQLiteSearchStore.
func NewSQLiteSearchStore(db *sql.DB) *SQLiteSearchStore {
	return &SQLiteSearchStore{db: db}
}

// Search evaluates the request's filter groups in disjunctive normal form:
// an object matches if every filter of at least one group holds. Only the EQ
// operator is evaluated; any other operator is trivially satisfied, so a
// group reduces to its EQ filters (and a group with none matches
// everything). An empty filterGroups list matches nothing. Archived objects
// are searched like any other, and results come back in insertion order.
func (s *SQLiteSearchStore) Search(ctx context.Context, rt domain.ResourceType, req *domain.SearchRequest) (*domain.SearchResult, error) {
	result := &domain.SearchResult{
		Results: []*domain.Object{},
		Paging:  []any{},
	}

	if len(req.FilterGroups) == 0 {
		return result, nil
	}

	where, args := buildSearchWhere(rt, req.FilterGroups)
	rows, err := s.db.QueryContext(ctx,
		`SELECT o.id FROM objects o `+where+` ORDER BY o.seq ASC`, args...,
	)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", rt, err)
	}
	defer func() { _ = rows.Close() }()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan search result: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search rows: %w", err)
	}

	for _, id := range ids {
		obj, err := getObject(ctx, s.db, rt, id)
		if err != nil {
			return nil, err
		}
		result.Results = append(result.Results, obj)
	}
	result.Total = len(result.Results)
	return result, nil
}

// buildSearchWhere assembles the WHERE clause: groups OR-ed together, each
// group the AND of an EXISTS probe per EQ filter.
func buildSearchWhere(rt domain.ResourceType, groups []domain.FilterGroup) (string, []any) {
	args := []any{rt.String()}

	groupClauses := make([]string, 0, len(groups))
	for _, group := range groups {
		var filterClauses []string
		for _, f := range group.Filters {
			if f.Operator != "EQ" {
				continue
			}
			filterClauses = append(filterClauses,
				`EXISTS (SELECT 1 FROM property_values pv WHERE pv.resource_type = o.resource_type AND pv.object_id = o.id AND pv.property_name = ? AND pv.value = ?)`)
			args = append(args, f.PropertyName, f.Value)
		}
		if len(filterClauses) == 0 {
			groupClauses = append(groupClauses, "1=1")
			continue
		}
		groupClauses = append(groupClauses, "("+strings.Join(filterClauses, " AND ")+")")
	}

	where := "WHERE o.resource_type = ? AND (" + strings.Join(groupClauses, " OR ") + ")"
	return where, args
}
