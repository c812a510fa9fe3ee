package source

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/dbtgen/internal/adapter"
)

// TableConfig declares a table to introspect, with optional user overrides.
// Declared fields win over introspected and default values.
type TableConfig struct {
	Name          string     `yaml:"name"`
	Description   string     `yaml:"description"`
	Freshness     *Freshness `yaml:"freshness"`
	LoadedAtField string     `yaml:"loaded_at_field"`
}

// SourceConfig declares a source whose tables are introspected from the
// target database.
type SourceConfig struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Database    string        `yaml:"database"`
	Schema      string        `yaml:"schema"`
	Tables      []TableConfig `yaml:"tables"`
}

// Validate checks the declaration before any database work happens.
func (s *SourceConfig) Validate() error {
	if s.Schema == "" {
		return fmt.Errorf("source %q: schema is required", s.Name)
	}
	if len(s.Tables) == 0 {
		return fmt.Errorf("source %q: at least one table is required", s.Name)
	}
	for _, tbl := range s.Tables {
		if tbl.Name == "" {
			return fmt.Errorf("source %q: table name is required", s.Name)
		}
		if tbl.Freshness != nil {
			if err := tbl.Freshness.Validate(); err != nil {
				return fmt.Errorf("source %q table %q: %w", s.Name, tbl.Name, err)
			}
		}
	}
	return nil
}

// mergeTable combines an introspected table with its declaration.
// Precedence: declared > introspected > defaults. The introspected table
// contributes columns and tests; the declaration contributes description,
// freshness and loaded_at_field; the default freshness policy fills the gap
// when neither supplies one.
func mergeTable(decl TableConfig, extracted Table, defaults *Freshness) Table {
	merged := extracted
	merged.Name = decl.Name
	merged.Description = decl.Description
	merged.LoadedAtField = decl.LoadedAtField

	if decl.Freshness != nil {
		merged.Freshness = decl.Freshness
	} else {
		merged.Freshness = defaults
	}

	return merged
}

// Build introspects every declared source table and assembles the source
// manifest. The database connection is acquired once for the whole build and
// released on every exit path. A failure on any table aborts the build; no
// partial manifest is returned.
func Build(ctx context.Context, target adapter.Config, sources []SourceConfig, logger *slog.Logger) (*Manifest, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	for i := range sources {
		if err := sources[i].Validate(); err != nil {
			return nil, err
		}
	}

	conn, err := adapter.New(target, logger)
	if err != nil {
		return nil, err
	}
	if err := conn.Connect(ctx, target); err != nil {
		return nil, err
	}
	defer func() { _ = conn.Close() }()

	defaults := DefaultFreshness()

	out := make([]Source, 0, len(sources))
	for _, src := range sources {
		logger.Debug("introspecting source",
			slog.String("source", src.Name),
			slog.String("schema", src.Schema),
			slog.Int("tables", len(src.Tables)))

		tables := make([]Table, 0, len(src.Tables))
		for _, decl := range src.Tables {
			extracted, err := Extract(ctx, conn, src.Schema, decl.Name)
			if err != nil {
				return nil, fmt.Errorf("source %q table %q: %w", src.Name, decl.Name, err)
			}
			tables = append(tables, mergeTable(decl, extracted, defaults))
		}

		name := src.Name
		if name == "" {
			name = src.Schema
		}
		out = append(out, Source{
			Name:        name,
			Description: src.Description,
			Database:    src.Database,
			Schema:      src.Schema,
			Tables:      tables,
		})
	}

	return NewManifest(out), nil
}
