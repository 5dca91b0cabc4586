package commands

import (
	"fmt"

	"github.com/kinotek/kinotek/internal/transfer"
	"github.com/spf13/cobra"
)

// NewTransferCommand creates the transfer command.
func NewTransferCommand() *cobra.Command {
	var verify bool

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Copy the catalog from SQLite into PostgreSQL",
		Long: `Copy every catalog table from the SQLite source file into the
target PostgreSQL database.

Rows are streamed and inserted with conflict-ignoring semantics, so
re-running transfer never duplicates rows. Tables load in dependency
order: entities before the junction tables that reference them.`,
		Example: `  # Transfer using the configured source and target
  kinotek transfer

  # Transfer a specific file and verify the result
  kinotek transfer --source db.sqlite --verify`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTransfer(cmd, verify)
		},
	}

	cmd.Flags().BoolVar(&verify, "verify", false, "Verify row counts and data after the transfer")

	return cmd
}

func runTransfer(cmd *cobra.Command, verify bool) error {
	cmdCtx := NewCommandContext(cmd)
	ctx := cmd.Context()

	source, err := cmdCtx.openSource(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = source.Close() }()

	target, err := cmdCtx.openTarget(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = target.Close() }()

	opts := transfer.Options{
		Schema:    cmdCtx.Cfg.TargetSchema(),
		BatchSize: cmdCtx.Cfg.BatchSize,
		Logger:    cmdCtx.Logger,
	}

	copier := transfer.NewCopier(source.SQLDB(), target.SQLDB(), opts)
	results, err := copier.CopyAll(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	t := newTable(out, cmdCtx.Cfg.Plain)
	t.AppendHeader(headerRow("table", "rows_copied"))
	var total int64
	for _, res := range results {
		t.AppendRow([]any{res.Table, res.Rows})
		total += res.Rows
	}
	t.AppendFooter([]any{"total", total})
	t.Render()

	if !verify {
		return nil
	}

	fmt.Fprintln(out)
	return runVerifyPass(cmd, cmdCtx, source, target)
}
