package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kinotek/kinotek/internal/cli/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// scaffoldConfig mirrors the Config shape for generating kinotek.yaml.
// yaml.v3 preserves field order, so the file reads top to bottom the
// way the documentation describes it.
type scaffoldConfig struct {
	SourcePath   string                    `yaml:"source_path"`
	BatchSize    int                       `yaml:"batch_size"`
	Target       scaffoldTarget            `yaml:"target"`
	Environments map[string]scaffoldTarget `yaml:"environments,omitempty"`
}

type scaffoldTarget struct {
	Type     string `yaml:"type"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Schema   string `yaml:"schema"`
}

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a starter kinotek.yaml",
		Long: `Create a kinotek.yaml configuration file with the default target
layout. Credentials are referenced as ${VAR} placeholders and expanded
from the environment at load time.`,
		Example: `  # Create kinotek.yaml in the current directory
  kinotek init

  # Create it in another directory
  kinotek init deploy/

  # Overwrite an existing file
  kinotek init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runInit(cmd, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing kinotek.yaml")

	return cmd
}

func runInit(cmd *cobra.Command, dir string, force bool) error {
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	path := filepath.Join(dir, "kinotek.yaml")
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists. Use --force to overwrite", path)
	}

	scaffold := scaffoldConfig{
		SourcePath: "db.sqlite",
		BatchSize:  config.DefaultBatchSize,
		Target: scaffoldTarget{
			Type:     "postgres",
			Host:     "127.0.0.1",
			Port:     5432,
			Database: "movies_database",
			User:     "${DB_USER}",
			Password: "${DB_PASSWORD}",
			Schema:   config.DefaultSchema,
		},
	}

	data, err := yaml.Marshal(scaffold)
	if err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created %s\n\n", path)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Set DB_USER and DB_PASSWORD in the environment")
	fmt.Fprintln(out, "  2. Run 'kinotek migrate' to create the content schema")
	fmt.Fprintln(out, "  3. Run 'kinotek transfer --verify' to load the catalog")

	return nil
}
