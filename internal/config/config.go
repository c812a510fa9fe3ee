// Package config loads dbtgen's tool configuration from file, environment
// and flags. The generation spec itself (projects, models, sources) is
// loaded separately by the generate package; this package only covers the
// knobs that control how the tool runs.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config file names searched in the working directory.
const (
	ConfigFileName    = "dbtgen.yaml"
	ConfigFileNameAlt = "dbtgen.yml"
)

// Default configuration values.
const (
	DefaultOutput = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)

// Config holds all CLI configuration options.
type Config struct {
	// SpecPath is the generation spec file driving build/sources runs.
	SpecPath     string `koanf:"spec"`
	Verbose      bool   `koanf:"verbose"`
	OutputFormat string `koanf:"output"`
}

var configFileUsed string

// GetConfigFileUsed returns the config file loaded by the last Load call.
func GetConfigFileUsed() string {
	return configFileUsed
}

// findConfigFile finds the config file to use.
// Priority: explicit path > dbtgen.yaml > dbtgen.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(ConfigFileName); err == nil {
		return ConfigFileName
	}
	if _, err := os.Stat(ConfigFileNameAlt); err == nil {
		return ConfigFileNameAlt
	}
	return ""
}

// Load loads configuration from file, environment variables, and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Load defaults
	if err := k.Load(confmap.Provider(map[string]any{
		"verbose": false,
		"output":  DefaultOutput,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Find and load config file. The spec file doubles as the config
	// file: tool-level keys live at its top level and unknown keys (project,
	// models, sources) are simply not unmarshalled here.
	configFileUsed = findConfigFile(cfgFile)
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
	}

	// 3. Load environment variables (DBTGEN_ prefix)
	// Transform: DBTGEN_OUTPUT -> output
	if err := k.Load(env.Provider("DBTGEN_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "DBTGEN_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Load flags (highest priority - overrides env vars and config file)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			// Only load flags that were explicitly set
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			TagName:          "koanf",
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// 6. The spec defaults to the config file itself, or dbtgen.yaml.
	if cfg.SpecPath == "" {
		if configFileUsed != "" {
			cfg.SpecPath = configFileUsed
		} else {
			cfg.SpecPath = ConfigFileName
		}
	}

	return &cfg, nil
}

// SpecDir returns the directory the spec file lives in. Relative sql_file
// references in the spec are resolved against it.
func (c *Config) SpecDir() string {
	dir := filepath.Dir(c.SpecPath)
	if dir == "" {
		return "."
	}
	return dir
}
