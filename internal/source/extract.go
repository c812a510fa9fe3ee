package source

import (
	"context"

	"github.com/leapstack-labs/dbtgen/internal/adapter"
)

// Tests derived for primary-key columns. Exactly these two, in this order.
var primaryKeyTests = []string{"unique", "not_null"}

// Extract introspects schema.table through the given adapter and maps the
// result to a source Table: one Column per database column, with
// {unique, not_null} tests on primary-key columns and no tests elsewhere.
// The adapter is borrowed, not owned; Extract never closes it.
func Extract(ctx context.Context, a adapter.Adapter, schema, table string) (Table, error) {
	meta, err := a.TableMetadata(ctx, schema, table)
	if err != nil {
		return Table{}, err
	}

	columns := make([]Column, 0, len(meta.Columns))
	for _, col := range meta.Columns {
		c := Column{
			Name:        col.Name,
			Description: col.Type,
		}
		if col.PrimaryKey {
			c.Tests = append([]string(nil), primaryKeyTests...)
		}
		columns = append(columns, c)
	}

	return Table{
		Name:    meta.Name,
		Columns: columns,
	}, nil
}
