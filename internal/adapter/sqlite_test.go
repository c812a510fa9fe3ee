package adapter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteAdapter_TableMetadata(t *testing.T) {
	ctx := context.Background()
	adapter := NewSQLiteAdapter(nil)

	require.NoError(t, adapter.Connect(ctx, Config{Path: ":memory:"}))
	defer adapter.Close()

	_, err := adapter.db.ExecContext(ctx, `
		CREATE TABLE orders (
			id INTEGER PRIMARY KEY,
			customer_id INTEGER NOT NULL,
			amount REAL
		)
	`)
	require.NoError(t, err)

	meta, err := adapter.TableMetadata(ctx, "", "orders")
	require.NoError(t, err)
	require.Len(t, meta.Columns, 3)

	assert.Equal(t, "main", meta.Schema)
	assert.Equal(t, "orders", meta.Name)

	assert.True(t, meta.Columns[0].PrimaryKey)
	assert.Equal(t, "customer_id", meta.Columns[1].Name)
	assert.False(t, meta.Columns[1].Nullable)
	assert.False(t, meta.Columns[1].PrimaryKey)
	assert.True(t, meta.Columns[2].Nullable)
}

func TestSQLiteAdapter_TableMetadataNotFound(t *testing.T) {
	ctx := context.Background()
	adapter := NewSQLiteAdapter(nil)

	require.NoError(t, adapter.Connect(ctx, Config{Path: ":memory:"}))
	defer adapter.Close()

	_, err := adapter.TableMetadata(ctx, "main", "missing")
	require.Error(t, err)

	var notFound *TableNotFoundError
	assert.ErrorAs(t, err, &notFound)
}
