package commands

import (
	"fmt"

	"github.com/kinotek/kinotek/internal/catalog"
	"github.com/kinotek/kinotek/pkg/adapter"
	"github.com/spf13/cobra"
)

// NewTablesCommand creates the tables command.
func NewTablesCommand() *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "tables [table]",
		Short: "Describe catalog table structure",
		Long: `Describe the columns of the catalog tables as the database reports
them. By default the target PostgreSQL database is inspected; use
--from source to inspect the SQLite file instead.`,
		Example: `  # Describe all catalog tables in the target
  kinotek tables

  # Describe one table in the source file
  kinotek tables film_work --from source`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTables(cmd, args, from)
		},
	}

	cmd.Flags().StringVar(&from, "from", "target", "Database to inspect (target|source)")

	return cmd
}

func runTables(cmd *cobra.Command, args []string, from string) error {
	cmdCtx := NewCommandContext(cmd)
	ctx := cmd.Context()

	var (
		db  adapter.Adapter
		err error
	)
	switch from {
	case "target":
		db, err = cmdCtx.openTarget(ctx)
	case "source":
		db, err = cmdCtx.openSource(ctx)
	default:
		return fmt.Errorf("invalid --from value %q: must be target or source", from)
	}
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	names := catalogTableNames()
	if len(args) == 1 {
		if !containsTable(names, args[0]) {
			return fmt.Errorf("unknown catalog table %q", args[0])
		}
		names = []string{args[0]}
	}

	out := cmd.OutOrStdout()
	for i, name := range names {
		qualified := name
		if from == "target" {
			qualified = cmdCtx.Cfg.TargetSchema() + "." + name
		}

		meta, err := db.GetTableMetadata(ctx, qualified)
		if err != nil {
			return fmt.Errorf("failed to describe %s: %w", name, err)
		}

		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "%s (%d rows)\n", name, meta.RowCount)

		t := newTable(out, cmdCtx.Cfg.Plain)
		t.AppendHeader(headerRow("column", "type", "nullable"))
		for _, col := range meta.Columns {
			nullable := "yes"
			if !col.Nullable {
				nullable = "no"
			}
			t.AppendRow([]any{col.Name, col.Type, nullable})
		}
		t.Render()
	}

	return nil
}

func catalogTableNames() []string {
	specs := catalog.Specs()
	names := make([]string, len(specs))
	for i, sp := range specs {
		names[i] = sp.Name
	}
	return names
}

func containsTable(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
