package adapter

import (
	"context"
	"database/sql"
	"fmt"
)

// scanColumns runs an information_schema-style column query and scans the
// results into Column values. The query must select column_name, data_type,
// is_nullable (YES/NO) and ordinal_position, in that order.
func scanColumns(ctx context.Context, db *sql.DB, query string, args ...any) ([]Column, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query column metadata: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var columns []Column
	for rows.Next() {
		var col Column
		var nullable string
		if err := rows.Scan(&col.Name, &col.Type, &nullable, &col.Position); err != nil {
			return nil, fmt.Errorf("failed to scan column metadata: %w", err)
		}
		col.Nullable = nullable == "YES"
		columns = append(columns, col)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating column metadata: %w", err)
	}

	return columns, nil
}

// scanPrimaryKeys runs a query selecting one column-name per row and returns
// the names as a set.
func scanPrimaryKeys(ctx context.Context, db *sql.DB, query string, args ...any) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query primary-key metadata: %w", err)
	}
	defer func() { _ = rows.Close() }()

	pk := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan primary-key metadata: %w", err)
		}
		pk[name] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating primary-key metadata: %w", err)
	}

	return pk, nil
}

// markPrimaryKeys flags the columns whose names appear in the pk set.
func markPrimaryKeys(columns []Column, pk map[string]bool) {
	for i := range columns {
		if pk[columns[i].Name] {
			columns[i].PrimaryKey = true
		}
	}
}
