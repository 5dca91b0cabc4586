package config

import (
	"fmt"

	"github.com/kinotek/kinotek/pkg/adapter"
)

// Validate checks the loaded configuration for values that would only
// fail later, at connection time.
func (c *Config) Validate() error {
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be positive, got %d", c.BatchSize)
	}

	if c.Target != nil {
		if c.Target.Type == "" {
			return fmt.Errorf("target.type is required")
		}
		if !adapter.IsRegistered(c.Target.Type) {
			return &adapter.UnknownAdapterError{
				Type:      c.Target.Type,
				Available: adapter.ListAdapters(),
			}
		}
		if c.Target.Port < 0 || c.Target.Port > 65535 {
			return fmt.Errorf("target.port out of range: %d", c.Target.Port)
		}
	}

	return nil
}

// RequireTarget returns the target config or an error when the command
// needs a database and none is configured.
func (c *Config) RequireTarget() (*TargetConfig, error) {
	if c.Target == nil {
		return nil, fmt.Errorf("no target database configured: set target in kinotek.yaml or KINOTEK_TARGET__* env vars")
	}
	if c.Target.Database == "" {
		return nil, fmt.Errorf("target.database is required")
	}
	return c.Target, nil
}

// RequireSource returns the source path or an error when the command
// needs the SQLite catalog and none is configured.
func (c *Config) RequireSource() (string, error) {
	if c.SourcePath == "" {
		return "", fmt.Errorf("no source database configured: set source_path in kinotek.yaml or pass --source")
	}
	return c.SourcePath, nil
}
