// Package commands implements the kinotek subcommands.
package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kinotek/kinotek/internal/cli/config"
	"github.com/kinotek/kinotek/pkg/adapter"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg    *config.Config
	Logger *slog.Logger
}

// NewCommandContext builds the shared command context from the loaded
// configuration and the context logger.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	return &CommandContext{
		Cfg:    getConfig(),
		Logger: config.GetLogger(cmd.Context()),
	}
}

// getConfig returns the current configuration, falling back to defaults
// when a command runs without the root PersistentPreRunE (tests).
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return &config.Config{
		BatchSize:   config.DefaultBatchSize,
		Environment: config.DefaultEnv,
	}
}

// openTarget connects to the configured target database.
// The returned adapter must be closed by the caller.
func (c *CommandContext) openTarget(ctx context.Context) (adapter.Adapter, error) {
	target, err := c.Cfg.RequireTarget()
	if err != nil {
		return nil, err
	}

	cfg := target.AdapterConfig()
	a, err := adapter.NewAdapter(cfg, c.Logger)
	if err != nil {
		return nil, err
	}

	if err := a.Connect(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to connect to target: %w", err)
	}
	return a, nil
}

// openSource connects to the configured SQLite catalog file.
// The returned adapter must be closed by the caller.
func (c *CommandContext) openSource(ctx context.Context) (adapter.Adapter, error) {
	path, err := c.Cfg.RequireSource()
	if err != nil {
		return nil, err
	}

	cfg := adapter.Config{Type: "sqlite", Path: path}
	a, err := adapter.NewAdapter(cfg, c.Logger)
	if err != nil {
		return nil, err
	}

	if err := a.Connect(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to open source database: %w", err)
	}
	return a, nil
}
