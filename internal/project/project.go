// Package project scaffolds the dbt project skeleton: the fixed directory
// layout plus the project, package, and ignore manifests.
package project

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config identifies a project to scaffold. It is immutable for the duration
// of a generation run.
type Config struct {
	// Name is the dbt project name, used as directory name and profile.
	Name string

	// Root is the directory under which the project directory is created.
	Root string
}

// Dir returns the project directory for this config.
func (c Config) Dir() string {
	return filepath.Join(c.Root, c.Name)
}

// Model layer names. These are the only valid values for a model's layer and
// each maps to a subdirectory of models/.
const (
	LayerStaging      = "staging"
	LayerIntermediate = "intermediate"
	LayerMart         = "mart"
)

// Layers lists the valid model layers.
var Layers = []string{LayerStaging, LayerIntermediate, LayerMart}

// directories is the fixed directory set created under the project dir.
// It does not depend on project content.
var directories = []string{
	"models",
	"models/" + LayerStaging,
	"models/" + LayerIntermediate,
	"models/" + LayerMart,
	"seeds",
	"macros",
	"tests",
	"analyses",
	"snapshots",
	"docs",
}

// Scaffold creates the project directory layout and writes the project
// manifest (dbt_project.yml), the dependency manifest (packages.yml) and the
// ignore file (.gitignore). It is idempotent: existing directories are left
// alone and manifest files are overwritten in full.
func Scaffold(cfg Config) (string, error) {
	dir := cfg.Dir()

	for _, d := range directories {
		if err := os.MkdirAll(filepath.Join(dir, d), 0750); err != nil {
			return "", fmt.Errorf("failed to create directory %s: %w", d, err)
		}
	}

	if err := writeProjectManifest(dir, cfg.Name); err != nil {
		return "", err
	}
	if err := writePackagesManifest(dir); err != nil {
		return "", err
	}
	if err := writeIgnoreFile(dir); err != nil {
		return "", err
	}

	return dir, nil
}

// Entries returns the relative paths Scaffold creates, directories first.
// Used by the CLI to report what was written.
func Entries() []string {
	entries := make([]string, 0, len(directories)+3)
	entries = append(entries, directories...)
	entries = append(entries, ProjectManifestName, PackagesManifestName, IgnoreFileName)
	return entries
}
