package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// countedTables are the domain tables reported by CountRows.
var countedTables = []string{"users", "profiles", "posts", "tags", "follows"}

type tablesRepository struct {
	db *sqlx.DB
}

func NewTablesRepository(db *sqlx.DB) TablesRepository {
	return &tablesRepository{db: db}
}

func (r *tablesRepository) CountTablesDB(ctx context.Context) (int, error) {
	var count int

	err := r.db.GetContext(ctx, &count, `
			SELECT COUNT(*)
			FROM information_schema.tables
			WHERE table_schema = 'public'
		`)

	if err != nil {
		return 0, fmt.Errorf("count tables: %w", err)
	}

	return count, nil
}

func (r *tablesRepository) CountRows(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int, len(countedTables))

	for _, table := range countedTables {
		var count int
		// table names come from countedTables, never from input
		if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM "+table); err != nil {
			return nil, fmt.Errorf("count rows of %s: %w", table, err)
		}
		counts[table] = count
	}

	return counts, nil
}
