// Package model renders dbt model files from raw SQL: it validates the
// target layer, sanitizes the model name, and prepends an optional config
// block. The templating syntax inside the SQL ({{ ref(...) }}, {{ source(...) }})
// is opaque passthrough text owned by dbt's own engine.
package model

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/leapstack-labs/dbtgen/internal/project"
)

// invalidNameChars matches every character that may not appear in a model
// identifier. Each match is replaced by an underscore.
var invalidNameChars = regexp.MustCompile(`[^a-zA-Z0-9_]`)

// InvalidLayerError is returned when a model declares a layer outside the
// closed staging/intermediate/mart set. Nothing is written in that case.
type InvalidLayerError struct {
	Layer string
}

func (e *InvalidLayerError) Error() string {
	return fmt.Sprintf("invalid layer %q (must be one of %s)", e.Layer, strings.Join(project.Layers, ", "))
}

// ConfigEntry is a single option in a model's config block. Entries keep the
// order they were declared in.
type ConfigEntry struct {
	Key   string
	Value any
}

// SanitizeName replaces every character outside [A-Za-z0-9_] with an
// underscore.
func SanitizeName(name string) string {
	return invalidNameChars.ReplaceAllString(name, "_")
}

// Render produces the file name and content for a model. The layer is
// validated against the closed set, the name is sanitized, the SQL body is
// trimmed, and when config entries are present a config block is prepended,
// separated from the body by a blank line. When the config omits a schema,
// the layer name is injected as the schema.
func Render(sqlText, name, layer string, config []ConfigEntry) (string, string, error) {
	if !slices.Contains(project.Layers, layer) {
		return "", "", &InvalidLayerError{Layer: layer}
	}

	sanitized := SanitizeName(name)

	var parts []string
	if len(config) > 0 {
		if !hasKey(config, "schema") {
			config = append(config, ConfigEntry{Key: "schema", Value: layer})
		}
		parts = append(parts, configBlock(config))
	}
	parts = append(parts, strings.TrimSpace(sqlText))

	return sanitized, strings.Join(parts, "\n\n"), nil
}

// RenderToFile renders the model and writes it to
// projectDir/models/<layer>/<sanitized>.sql, overwriting any existing file.
// It returns the written path.
func RenderToFile(projectDir, sqlText, name, layer string, config []ConfigEntry) (string, error) {
	sanitized, content, err := Render(sqlText, name, layer, config)
	if err != nil {
		return "", err
	}

	path := filepath.Join(projectDir, "models", layer, sanitized+".sql")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return "", fmt.Errorf("failed to write model %s: %w", sanitized, err)
	}
	return path, nil
}

func hasKey(config []ConfigEntry, key string) bool {
	for _, e := range config {
		if e.Key == key {
			return true
		}
	}
	return false
}

// configBlock renders the dbt config invocation for the given entries, in
// order. The produced text is an opaque literal for dbt's templating engine;
// nothing here parses it back.
func configBlock(config []ConfigEntry) string {
	var b strings.Builder
	b.WriteString("{{ config(\n")
	for i, e := range config {
		b.WriteString("    ")
		b.WriteString(e.Key)
		b.WriteString("=")
		b.WriteString(configValue(e.Value))
		if i < len(config)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(") }}")
	return b.String()
}

// configValue renders a config option value as a Jinja literal. Strings are
// single-quoted; numbers and booleans pass through bare.
func configValue(v any) string {
	switch t := v.(type) {
	case string:
		return "'" + t + "'"
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return fmt.Sprintf("%v", t)
	default:
		return fmt.Sprintf("'%v'", t)
	}
}
