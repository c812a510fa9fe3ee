package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite" // cgo-free sqlite driver
)

func init() {
	Register("sqlite", func(logger *slog.Logger) Adapter { return NewSQLiteAdapter(logger) })
}

// SQLiteAdapter implements the Adapter interface for SQLite.
type SQLiteAdapter struct {
	db     *sql.DB
	config Config
	logger *slog.Logger
}

// NewSQLiteAdapter creates a new SQLite adapter instance.
// If logger is nil, a discard logger is used.
func NewSQLiteAdapter(logger *slog.Logger) *SQLiteAdapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SQLiteAdapter{logger: logger}
}

// DialectName returns the SQL dialect for this adapter.
func (a *SQLiteAdapter) DialectName() string {
	return "sqlite"
}

// Connect establishes a connection to SQLite.
// Use ":memory:" as the path for an in-memory database.
func (a *SQLiteAdapter) Connect(ctx context.Context, cfg Config) error {
	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}

	a.logger.Debug("connecting to sqlite", slog.String("path", path))

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return &ConnectionError{Dialect: "sqlite", Err: err}
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return &ConnectionError{Dialect: "sqlite", Err: err}
	}

	a.db = db
	a.config = cfg
	return nil
}

// Close closes the SQLite connection.
func (a *SQLiteAdapter) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// TableMetadata retrieves column and primary-key metadata for a table.
// SQLite has a single flat namespace per database file; the schema argument
// is recorded on the result but does not scope the lookup.
func (a *SQLiteAdapter) TableMetadata(ctx context.Context, schema, table string) (*TableMetadata, error) {
	if a.db == nil {
		return nil, fmt.Errorf("database connection not established")
	}

	if schema == "" {
		schema = "main"
	}

	// pragma_table_info reports one row per column: name, declared type,
	// notnull flag and 1-based primary-key ordinal (0 for non-key columns).
	query := `SELECT name, type, "notnull", pk FROM pragma_table_info(?) ORDER BY cid`

	rows, err := a.db.QueryContext(ctx, query, table)
	if err != nil {
		return nil, &ConnectionError{Dialect: "sqlite", Err: err}
	}
	defer func() { _ = rows.Close() }()

	var columns []Column
	pos := 1
	for rows.Next() {
		var col Column
		var notNull, pkOrdinal int
		if err := rows.Scan(&col.Name, &col.Type, &notNull, &pkOrdinal); err != nil {
			return nil, &ConnectionError{Dialect: "sqlite", Err: err}
		}
		col.Nullable = notNull == 0
		col.PrimaryKey = pkOrdinal > 0
		col.Position = pos
		pos++
		columns = append(columns, col)
	}

	if err := rows.Err(); err != nil {
		return nil, &ConnectionError{Dialect: "sqlite", Err: err}
	}

	if len(columns) == 0 {
		return nil, &TableNotFoundError{Schema: schema, Table: table}
	}

	return &TableMetadata{
		Schema:  schema,
		Name:    table,
		Columns: columns,
	}, nil
}

// Ensure SQLiteAdapter implements Adapter interface
var _ Adapter = (*SQLiteAdapter)(nil)
