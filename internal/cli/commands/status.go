package commands

import (
	"fmt"

	"github.com/kinotek/kinotek/internal/catalog"
	"github.com/kinotek/kinotek/internal/schema"
	"github.com/spf13/cobra"
)

// NewStatusCommand creates the status command.
func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show schema version and table row counts",
		Long: `Show the applied migration version and the row count of every
catalog table in the target database.`,
		Args: cobra.NoArgs,
		RunE: runStatus,
	}
}

func runStatus(cmd *cobra.Command, _ []string) error {
	cmdCtx := NewCommandContext(cmd)
	ctx := cmd.Context()

	target, err := cmdCtx.openTarget(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = target.Close() }()

	statuses, err := schema.Status(ctx, target.SQLDB())
	if err != nil {
		return fmt.Errorf("failed to read migration status: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Database: %s\n", cmdCtx.Cfg.Target.Database)
	fmt.Fprintf(out, "Schema:   %s\n\n", cmdCtx.Cfg.TargetSchema())

	mt := newTable(out, cmdCtx.Cfg.Plain)
	mt.AppendHeader(headerRow("version", "migration", "applied"))
	for _, s := range statuses {
		applied := "pending"
		if s.Applied {
			applied = "yes"
		}
		mt.AppendRow([]any{s.Version, s.Name, applied})
	}
	mt.Render()
	fmt.Fprintln(out)

	targetSchema := cmdCtx.Cfg.TargetSchema()
	t := newTable(out, cmdCtx.Cfg.Plain)
	t.AppendHeader(headerRow("table", "rows"))

	total := 0
	for _, spec := range catalog.Specs() {
		var count int
		if err := target.SQLDB().QueryRowContext(ctx, spec.CountSQL(targetSchema)).Scan(&count); err != nil {
			return fmt.Errorf("failed to count %s: %w", spec.Name, err)
		}
		t.AppendRow([]any{spec.Name, count})
		total += count
	}
	t.AppendFooter([]any{"total", total})
	t.Render()

	return nil
}
