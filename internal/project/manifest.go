package project

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Manifest file names written into the project directory.
const (
	ProjectManifestName  = "dbt_project.yml"
	PackagesManifestName = "packages.yml"
	IgnoreFileName       = ".gitignore"
)

// Literals pinned by the dbt project format.
const (
	projectVersion = "1.0.0"
	configVersion  = 2
)

// defaultPackage is the dependency every generated project starts with.
var defaultPackage = Package{Package: "dbt-labs/dbt_utils", Version: "1.3.0"}

// ignorePatterns is the fixed .gitignore content for generated projects.
const ignorePatterns = "target/\ndbt_packages/\nlogs/\n.user.yml\n"

// LayerDefaults holds the per-layer model defaults written into
// dbt_project.yml.
type LayerDefaults struct {
	Materialized string `yaml:"materialized"`
	Schema       string `yaml:"schema"`
}

// ModelDefaults groups the layer defaults under a project.
// Field order fixes the emitted key order.
type ModelDefaults struct {
	Staging      LayerDefaults `yaml:"staging"`
	Intermediate LayerDefaults `yaml:"intermediate"`
	Mart         LayerDefaults `yaml:"mart"`
}

// ProjectManifest mirrors dbt_project.yml. Field order is significant:
// yaml.v3 emits struct fields in declaration order, which keeps generated
// manifests stable and diff-friendly.
type ProjectManifest struct {
	Name          string                   `yaml:"name"`
	Version       string                   `yaml:"version"`
	ConfigVersion int                      `yaml:"config-version"`
	Profile       string                   `yaml:"profile"`
	ModelPaths    []string                 `yaml:"model-paths"`
	SeedPaths     []string                 `yaml:"seed-paths"`
	TestPaths     []string                 `yaml:"test-paths"`
	AnalysisPaths []string                 `yaml:"analysis-paths"`
	MacroPaths    []string                 `yaml:"macro-paths"`
	SnapshotPaths []string                 `yaml:"snapshot-paths"`
	Models        map[string]ModelDefaults `yaml:"models"`
}

// Package is a single dbt package dependency.
type Package struct {
	Package string `yaml:"package"`
	Version string `yaml:"version"`
}

// PackagesManifest mirrors packages.yml.
type PackagesManifest struct {
	Packages []Package `yaml:"packages"`
}

// NewProjectManifest builds the manifest for a project name with the fixed
// path lists and per-layer materialization defaults.
func NewProjectManifest(name string) ProjectManifest {
	return ProjectManifest{
		Name:          name,
		Version:       projectVersion,
		ConfigVersion: configVersion,
		Profile:       name,
		ModelPaths:    []string{"models"},
		SeedPaths:     []string{"seeds"},
		TestPaths:     []string{"tests"},
		AnalysisPaths: []string{"analyses"},
		MacroPaths:    []string{"macros"},
		SnapshotPaths: []string{"snapshots"},
		Models: map[string]ModelDefaults{
			name: {
				Staging:      LayerDefaults{Materialized: "view", Schema: LayerStaging},
				Intermediate: LayerDefaults{Materialized: "table", Schema: LayerIntermediate},
				Mart:         LayerDefaults{Materialized: "table", Schema: LayerMart},
			},
		},
	}
}

func writeProjectManifest(dir, name string) error {
	return writeYAML(filepath.Join(dir, ProjectManifestName), NewProjectManifest(name))
}

func writePackagesManifest(dir string) error {
	return writeYAML(filepath.Join(dir, PackagesManifestName), PackagesManifest{
		Packages: []Package{defaultPackage},
	})
}

func writeIgnoreFile(dir string) error {
	path := filepath.Join(dir, IgnoreFileName)
	if err := os.WriteFile(path, []byte(ignorePatterns), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", IgnoreFileName, err)
	}
	return nil
}

// writeYAML marshals v with two-space indentation and writes it, replacing
// any existing file.
func writeYAML(path string, v any) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}
