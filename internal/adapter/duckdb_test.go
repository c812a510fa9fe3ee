package adapter

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestDuckDBAdapter_ConnectInMemory(t *testing.T) {
	ctx := context.Background()
	adapter := NewDuckDBAdapter(nil)

	err := adapter.Connect(ctx, Config{Path: ":memory:"})
	if err != nil {
		t.Fatalf("failed to connect to in-memory DuckDB: %v", err)
	}
	defer adapter.Close()
}

func TestDuckDBAdapter_ConnectFileBased(t *testing.T) {
	ctx := context.Background()
	adapter := NewDuckDBAdapter(nil)

	// Create a temporary file for the database
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.duckdb")

	err := adapter.Connect(ctx, Config{Path: dbPath})
	if err != nil {
		t.Fatalf("failed to connect to file-based DuckDB: %v", err)
	}
	defer adapter.Close()

	// Verify the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestDuckDBAdapter_TableMetadata(t *testing.T) {
	ctx := context.Background()
	adapter := NewDuckDBAdapter(nil)

	if err := adapter.Connect(ctx, Config{Path: ":memory:"}); err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer adapter.Close()

	_, err := adapter.db.ExecContext(ctx, `
		CREATE TABLE customers (
			id INTEGER PRIMARY KEY,
			email VARCHAR,
			created_at TIMESTAMP
		)
	`)
	if err != nil {
		t.Fatalf("failed to create table: %v", err)
	}

	meta, err := adapter.TableMetadata(ctx, "main", "customers")
	if err != nil {
		t.Fatalf("failed to get table metadata: %v", err)
	}

	if meta.Schema != "main" || meta.Name != "customers" {
		t.Errorf("unexpected identity %s.%s", meta.Schema, meta.Name)
	}
	if len(meta.Columns) != 3 {
		t.Fatalf("expected 3 columns, got %d", len(meta.Columns))
	}
	if meta.Columns[0].Name != "id" || !meta.Columns[0].PrimaryKey {
		t.Errorf("expected id to be the primary key, got %+v", meta.Columns[0])
	}
	if meta.Columns[1].Name != "email" || meta.Columns[1].PrimaryKey {
		t.Errorf("expected email to be a non-key column, got %+v", meta.Columns[1])
	}
}

func TestDuckDBAdapter_TableMetadataNotFound(t *testing.T) {
	ctx := context.Background()
	adapter := NewDuckDBAdapter(nil)

	if err := adapter.Connect(ctx, Config{Path: ":memory:"}); err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer adapter.Close()

	_, err := adapter.TableMetadata(ctx, "main", "nope")
	if err == nil {
		t.Fatal("expected error for missing table")
	}
	if _, ok := err.(*TableNotFoundError); !ok {
		t.Errorf("expected *TableNotFoundError, got %T", err)
	}
}
