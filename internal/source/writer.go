package source

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ManifestFileName is the file the source manifest is written to, relative
// to the project's models directory.
const ManifestFileName = "sources.yml"

// Write serializes the manifest into projectDir/models/sources.yml,
// overwriting any existing file. Normalize is applied first so every table
// carries a freshness policy in the output.
func (m *Manifest) Write(projectDir string) (string, error) {
	m.Normalize()

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return "", fmt.Errorf("failed to marshal source manifest: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("failed to marshal source manifest: %w", err)
	}

	path := filepath.Join(projectDir, "models", ManifestFileName)
	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		return "", fmt.Errorf("failed to write source manifest: %w", err)
	}
	return path, nil
}
