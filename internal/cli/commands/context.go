// Package commands implements the dbtgen subcommands.
package commands

import (
	"context"
	"log/slog"

	"github.com/leapstack-labs/dbtgen/internal/cli/output"
	"github.com/leapstack-labs/dbtgen/internal/config"
	"github.com/spf13/cobra"
)

type configKey struct{}
type loggerKey struct{}

// WithConfig stores the loaded config in a command context.
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// WithLogger stores the logger in a command context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// getConfig retrieves the config from the command context, falling back to
// defaults when the root command did not load one (tests invoke subcommands
// directly).
func getConfig(cmd *cobra.Command) *config.Config {
	if cfg, ok := cmd.Context().Value(configKey{}).(*config.Config); ok {
		return cfg
	}
	return &config.Config{SpecPath: config.ConfigFileName, OutputFormat: config.DefaultOutput}
}

// getLogger retrieves the logger from the command context.
func getLogger(cmd *cobra.Command) *slog.Logger {
	if logger, ok := cmd.Context().Value(loggerKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.New(slog.DiscardHandler)
}

// newRenderer creates a renderer for the command using the configured mode.
func newRenderer(cmd *cobra.Command) *output.Renderer {
	cfg := getConfig(cmd)
	return output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))
}
