// Package adapter provides database adapter interfaces and implementations
// for dbtgen's source introspection.
package adapter

import (
	"context"
	"fmt"
)

// Config holds the configuration for connecting to a database.
type Config struct {
	// Type specifies the database type (e.g., "duckdb", "postgres", "sqlite")
	Type string `koanf:"type" yaml:"type"`

	// Path is the file path for file-based databases (DuckDB, SQLite).
	// Use ":memory:" for an in-memory database.
	Path string `koanf:"path" yaml:"path"`

	// Host is the hostname for network-based databases
	Host string `koanf:"host" yaml:"host"`

	// Port is the port number for network-based databases
	Port int `koanf:"port" yaml:"port"`

	// Database is the database name
	Database string `koanf:"database" yaml:"database"`

	// Username for authentication
	Username string `koanf:"user" yaml:"user"`

	// Password for authentication
	Password string `koanf:"password" yaml:"password"`

	// Options contains additional driver-specific options
	Options map[string]string `koanf:"options" yaml:"options"`
}

// Column represents a column in a database table.
type Column struct {
	// Name is the column name
	Name string

	// Type is the data type of the column as reported by the catalog
	Type string

	// Nullable indicates whether the column allows NULL values
	Nullable bool

	// PrimaryKey indicates whether the column is part of the primary key
	PrimaryKey bool

	// Position is the ordinal position of the column in the table
	Position int
}

// TableMetadata holds introspected metadata about a database table.
type TableMetadata struct {
	// Schema is the schema containing the table
	Schema string

	// Name is the table name
	Name string

	// Columns contains metadata for each column, in ordinal order
	Columns []Column
}

// Adapter defines the interface that all database adapters must implement.
// It covers exactly the capability the manifest builder needs: connect,
// list columns and primary-key membership for a schema-qualified table,
// and close. Adapters never mutate the database.
type Adapter interface {
	// Connect establishes a connection to the database using the provided config.
	Connect(ctx context.Context, cfg Config) error

	// Close closes the database connection and releases resources.
	Close() error

	// TableMetadata retrieves column metadata for schema.table.
	// It returns a *TableNotFoundError when the table is absent from the
	// catalog and a *ConnectionError when the catalog cannot be reached.
	TableMetadata(ctx context.Context, schema, table string) (*TableMetadata, error)

	// DialectName returns the SQL dialect name for this adapter (e.g., "duckdb").
	DialectName() string
}

// TableNotFoundError is returned when a schema.table does not exist in the
// introspected catalog.
type TableNotFoundError struct {
	Schema string
	Table  string
}

func (e *TableNotFoundError) Error() string {
	return fmt.Sprintf("table %s.%s not found", e.Schema, e.Table)
}

// ConnectionError is returned when the database cannot be reached, either at
// connect time or during an introspection query.
type ConnectionError struct {
	Dialect string
	Err     error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("%s connection failed: %v", e.Dialect, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }
