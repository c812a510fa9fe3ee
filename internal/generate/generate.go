package generate

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/leapstack-labs/dbtgen/internal/model"
	"github.com/leapstack-labs/dbtgen/internal/project"
	"github.com/leapstack-labs/dbtgen/internal/source"
)

// Generator runs generation passes. The zero value is usable; a nil logger
// discards debug output.
type Generator struct {
	Logger *slog.Logger
}

// Result reports what a generation pass produced.
type Result struct {
	// RunID uniquely identifies this generation pass in logs.
	RunID string

	// ProjectDir is the scaffolded project directory.
	ProjectDir string

	// Files lists every file written after scaffolding, in write order.
	Files []string

	// Manifest is the source manifest written by the pass, if any.
	Manifest *source.Manifest
}

func (g *Generator) logger() *slog.Logger {
	if g.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return g.Logger
}

// Run executes the declaration-file flow: scaffold the project, write the
// static source manifest when sources are declared, then render every model.
// SQL file references are resolved against baseDir. Scaffolding always runs
// first; a failing model aborts the pass with an error naming the model.
func (g *Generator) Run(ctx context.Context, spec *Spec, baseDir string) (*Result, error) {
	logger := g.logger()
	res := &Result{RunID: uuid.NewString()}

	logger.Debug("starting generation run",
		slog.String("run_id", res.RunID),
		slog.String("project", spec.Project.Name),
		slog.Int("models", len(spec.Models)))

	dir, err := project.Scaffold(project.Config{Name: spec.Project.Name, Root: spec.Project.Dir})
	if err != nil {
		return nil, err
	}
	res.ProjectDir = dir

	if len(spec.Sources) > 0 {
		manifest := source.NewManifest(spec.Sources)
		path, err := manifest.Write(dir)
		if err != nil {
			return nil, err
		}
		res.Manifest = manifest
		res.Files = append(res.Files, path)
	}

	for _, m := range spec.Models {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		sqlText, err := resolveSQL(m, baseDir)
		if err != nil {
			return nil, fmt.Errorf("model %q: %w", m.Name, err)
		}

		config, err := configEntries(m.Config)
		if err != nil {
			return nil, fmt.Errorf("model %q: %w", m.Name, err)
		}

		path, err := model.RenderToFile(dir, sqlText, m.Name, m.Layer, config)
		if err != nil {
			return nil, fmt.Errorf("model %q: %w", m.Name, err)
		}

		logger.Debug("rendered model", slog.String("model", m.Name), slog.String("path", path))
		res.Files = append(res.Files, path)
	}

	return res, nil
}

// RunSources executes the database-driven flow: scaffold the project, build
// the source manifest by introspecting the configured target, and write it.
func (g *Generator) RunSources(ctx context.Context, spec *Spec) (*Result, error) {
	if spec.Introspect == nil {
		return nil, fmt.Errorf("spec has no introspect section")
	}
	if len(spec.Introspect.Sources) == 0 {
		return nil, fmt.Errorf("introspect.sources is empty")
	}

	logger := g.logger()
	res := &Result{RunID: uuid.NewString()}

	logger.Debug("starting source introspection run",
		slog.String("run_id", res.RunID),
		slog.String("project", spec.Project.Name),
		slog.String("target", spec.Introspect.Target.Type))

	dir, err := project.Scaffold(project.Config{Name: spec.Project.Name, Root: spec.Project.Dir})
	if err != nil {
		return nil, err
	}
	res.ProjectDir = dir

	manifest, err := source.Build(ctx, spec.Introspect.Target, spec.Introspect.Sources, logger)
	if err != nil {
		return nil, err
	}

	path, err := manifest.Write(dir)
	if err != nil {
		return nil, err
	}

	res.Manifest = manifest
	res.Files = append(res.Files, path)
	return res, nil
}

// resolveSQL returns a model's SQL text, reading sql_file relative to
// baseDir when inline SQL is absent.
func resolveSQL(m ModelSpec, baseDir string) (string, error) {
	if m.SQL != "" {
		return m.SQL, nil
	}

	path := m.SQLFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read sql file: %w", err)
	}
	return string(raw), nil
}
