package commands

import (
	"fmt"

	"github.com/kinotek/kinotek/internal/schema"
	"github.com/spf13/cobra"
)

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand() *cobra.Command {
	var printOnly bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the content schema to the target database",
		Long: `Apply all pending schema migrations to the target PostgreSQL database.

Migrations are embedded in the binary and applied in order. Running
migrate against an up-to-date database is a no-op: every statement uses
IF NOT EXISTS semantics and applied versions are tracked.`,
		Example: `  # Apply all pending migrations
  kinotek migrate

  # Print the schema DDL without connecting
  kinotek migrate --print`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if printOnly {
				ddl, err := schema.DDL()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), ddl)
				return nil
			}
			return runMigrate(cmd)
		},
	}

	cmd.Flags().BoolVar(&printOnly, "print", false, "Print the schema DDL instead of applying it")

	return cmd
}

func runMigrate(cmd *cobra.Command) error {
	cmdCtx := NewCommandContext(cmd)
	ctx := cmd.Context()

	target, err := cmdCtx.openTarget(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = target.Close() }()

	cmdCtx.Logger.Info("applying migrations",
		"database", cmdCtx.Cfg.Target.Database,
		"schema", cmdCtx.Cfg.TargetSchema())

	if err := schema.Up(ctx, target.SQLDB()); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	version, err := schema.Version(ctx, target.SQLDB())
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Schema is up to date (version %d)\n", version)
	return nil
}
