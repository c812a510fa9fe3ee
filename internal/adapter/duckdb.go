package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver
)

func init() {
	Register("duckdb", func(logger *slog.Logger) Adapter { return NewDuckDBAdapter(logger) })
}

// DuckDBAdapter implements the Adapter interface for DuckDB.
type DuckDBAdapter struct {
	db     *sql.DB
	config Config
	logger *slog.Logger
}

// NewDuckDBAdapter creates a new DuckDB adapter instance.
// If logger is nil, a discard logger is used.
func NewDuckDBAdapter(logger *slog.Logger) *DuckDBAdapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &DuckDBAdapter{logger: logger}
}

// DialectName returns the SQL dialect for this adapter.
func (a *DuckDBAdapter) DialectName() string {
	return "duckdb"
}

// Connect establishes a connection to DuckDB.
// Use ":memory:" as the path for an in-memory database.
func (a *DuckDBAdapter) Connect(ctx context.Context, cfg Config) error {
	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}

	a.logger.Debug("connecting to duckdb", slog.String("path", path))

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return &ConnectionError{Dialect: "duckdb", Err: err}
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return &ConnectionError{Dialect: "duckdb", Err: err}
	}

	a.db = db
	a.config = cfg

	return nil
}

// Close closes the DuckDB connection.
func (a *DuckDBAdapter) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// TableMetadata retrieves column and primary-key metadata for schema.table.
func (a *DuckDBAdapter) TableMetadata(ctx context.Context, schema, table string) (*TableMetadata, error) {
	if a.db == nil {
		return nil, fmt.Errorf("database connection not established")
	}

	if schema == "" {
		schema = "main"
	}

	query := `
		SELECT
			column_name,
			data_type,
			is_nullable,
			ordinal_position
		FROM information_schema.columns
		WHERE table_schema = ? AND table_name = ?
		ORDER BY ordinal_position
	`

	columns, err := scanColumns(ctx, a.db, query, schema, table)
	if err != nil {
		return nil, &ConnectionError{Dialect: "duckdb", Err: err}
	}
	if len(columns) == 0 {
		return nil, &TableNotFoundError{Schema: schema, Table: table}
	}

	// Primary-key membership comes from duckdb_constraints(), which reports
	// the constrained column names per constraint.
	pkQuery := `
		SELECT unnest(constraint_column_names)
		FROM duckdb_constraints()
		WHERE schema_name = ? AND table_name = ? AND constraint_type = 'PRIMARY KEY'
	`

	pkCols, err := scanPrimaryKeys(ctx, a.db, pkQuery, schema, table)
	if err != nil {
		return nil, &ConnectionError{Dialect: "duckdb", Err: err}
	}
	markPrimaryKeys(columns, pkCols)

	return &TableMetadata{
		Schema:  schema,
		Name:    table,
		Columns: columns,
	}, nil
}

// Ensure DuckDBAdapter implements Adapter interface
var _ Adapter = (*DuckDBAdapter)(nil)
