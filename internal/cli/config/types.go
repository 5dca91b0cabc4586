// Package config provides configuration management for the kinotek CLI.
//
// Configuration is merged from four layers with increasing precedence:
// built-in defaults, a kinotek.yaml file, KINOTEK_* environment
// variables, and command-line flags.
package config

import "github.com/kinotek/kinotek/pkg/adapter"

// Default configuration values.
const (
	DefaultBatchSize = 100
	DefaultEnv       = "dev"
	DefaultSchema    = "content"
)

// TargetConfig describes the PostgreSQL database the catalog schema
// and data are applied to.
type TargetConfig struct {
	Type     string            `koanf:"type"`
	Host     string            `koanf:"host"`
	Port     int               `koanf:"port"`
	Database string            `koanf:"database"`
	User     string            `koanf:"user"`
	Password string            `koanf:"password"`
	Schema   string            `koanf:"schema"`
	Options  map[string]string `koanf:"options"`
}

// AdapterConfig converts the target into an adapter configuration.
func (t *TargetConfig) AdapterConfig() adapter.Config {
	schema := t.Schema
	if schema == "" {
		schema = DefaultSchema
	}
	return adapter.Config{
		Type:     t.Type,
		Host:     t.Host,
		Port:     t.Port,
		Database: t.Database,
		Username: t.User,
		Password: t.Password,
		Schema:   schema,
		Options:  t.Options,
	}
}

// Config holds all CLI configuration options.
type Config struct {
	// SourcePath is the SQLite catalog file read during transfer.
	SourcePath string `koanf:"source_path"`

	// BatchSize is the number of rows per transfer/verification batch.
	BatchSize int `koanf:"batch_size"`

	// Environment selects an entry from Environments.
	Environment string `koanf:"environment"`

	Verbose bool `koanf:"verbose"`

	// Plain disables styled table output.
	Plain bool `koanf:"plain"`

	Target *TargetConfig `koanf:"target"`

	// Environments holds per-environment overrides (dev, staging, prod).
	Environments map[string]EnvConfig `koanf:"environments"`
}

// EnvConfig holds environment-specific configuration overrides.
type EnvConfig struct {
	SourcePath string        `koanf:"source_path"`
	Target     *TargetConfig `koanf:"target"`
}

// TargetSchema returns the configured target schema, falling back to
// the default `content` namespace.
func (c *Config) TargetSchema() string {
	if c.Target != nil && c.Target.Schema != "" {
		return c.Target.Schema
	}
	return DefaultSchema
}
