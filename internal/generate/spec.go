// Package generate drives a full generation pass: scaffold the project, then
// write source manifests and model files from a declaration spec.
package generate

import (
	"fmt"
	"os"

	"github.com/leapstack-labs/dbtgen/internal/adapter"
	"github.com/leapstack-labs/dbtgen/internal/model"
	"github.com/leapstack-labs/dbtgen/internal/source"
	"gopkg.in/yaml.v3"
)

// ProjectSpec names the project to generate and where to put it.
type ProjectSpec struct {
	Name string `yaml:"name"`
	Dir  string `yaml:"dir"`
}

// ModelSpec declares one model file to render. SQL may be given inline (sql)
// or as a path to a file (sql_file) resolved against the spec's directory.
// Config is kept as a yaml node so entry order survives into the rendered
// config block.
type ModelSpec struct {
	Name    string    `yaml:"name"`
	Layer   string    `yaml:"layer"`
	SQL     string    `yaml:"sql"`
	SQLFile string    `yaml:"sql_file"`
	Config  yaml.Node `yaml:"config"`
}

// IntrospectSpec configures the database-driven source manifest flow.
type IntrospectSpec struct {
	Target  adapter.Config        `yaml:"target"`
	Sources []source.SourceConfig `yaml:"sources"`
}

// Spec is the full generation declaration, usually loaded from dbtgen.yaml.
type Spec struct {
	Project    ProjectSpec     `yaml:"project"`
	Models     []ModelSpec     `yaml:"models"`
	Sources    []source.Source `yaml:"sources"`
	Introspect *IntrospectSpec `yaml:"introspect"`
}

// LoadSpec reads and validates a generation spec from path.
func LoadSpec(path string) (*Spec, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read spec %s: %w", path, err)
	}

	var spec Spec
	if err := yaml.Unmarshal(raw, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse spec %s: %w", path, err)
	}

	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid spec %s: %w", path, err)
	}

	return &spec, nil
}

// Validate checks the declaration before any file is written.
func (s *Spec) Validate() error {
	if s.Project.Name == "" {
		return fmt.Errorf("project.name is required")
	}

	for _, m := range s.Models {
		if m.Name == "" {
			return fmt.Errorf("model name is required")
		}
		if m.SQL == "" && m.SQLFile == "" {
			return fmt.Errorf("model %q: either sql or sql_file is required", m.Name)
		}
		if m.SQL != "" && m.SQLFile != "" {
			return fmt.Errorf("model %q: sql and sql_file are mutually exclusive", m.Name)
		}
	}

	return nil
}

// configEntries decodes a model's config node into ordered entries. A yaml
// mapping node stores keys and values as interleaved content, so iterating
// pairs preserves declaration order.
func configEntries(node yaml.Node) ([]model.ConfigEntry, error) {
	if node.Kind == 0 {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("config must be a mapping")
	}

	entries := make([]model.ConfigEntry, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var value any
		if err := node.Content[i+1].Decode(&value); err != nil {
			return nil, fmt.Errorf("config option %q: %w", node.Content[i].Value, err)
		}
		entries = append(entries, model.ConfigEntry{
			Key:   node.Content[i].Value,
			Value: value,
		})
	}

	return entries, nil
}
