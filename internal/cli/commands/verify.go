package commands

import (
	"fmt"

	"github.com/kinotek/kinotek/internal/transfer"
	"github.com/kinotek/kinotek/pkg/adapter"
	"github.com/spf13/cobra"
)

// NewVerifyCommand creates the verify command.
func NewVerifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Compare source and target catalog data",
		Long: `Re-read both databases and compare every catalog table: row counts
plus the data fields of each row. Timestamps are excluded from the
comparison because the loader regenerates them for film_work.

The command exits non-zero when any table has missing or mismatched
rows.`,
		Args: cobra.NoArgs,
		RunE: runVerify,
	}
}

func runVerify(cmd *cobra.Command, _ []string) error {
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

	return runVerifyPass(cmd, cmdCtx, source, target)
}

// runVerifyPass runs verification over open connections and renders the
// per-table report. Shared by verify and transfer --verify.
func runVerifyPass(cmd *cobra.Command, cmdCtx *CommandContext, source, target adapter.Adapter) error {
	opts := transfer.Options{
		Schema:    cmdCtx.Cfg.TargetSchema(),
		BatchSize: cmdCtx.Cfg.BatchSize,
		Logger:    cmdCtx.Logger,
	}

	verifier := transfer.NewVerifier(source.SQLDB(), target.SQLDB(), opts)
	reports, err := verifier.VerifyAll(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	t := newTable(out, cmdCtx.Cfg.Plain)
	t.AppendHeader(headerRow("table", "source_rows", "target_rows", "missing", "mismatched", "status"))

	failed := 0
	for _, r := range reports {
		status := "ok"
		if !r.OK() {
			status = "FAIL"
			failed++
		}
		t.AppendRow([]any{r.Table, r.SourceRows, r.TargetRows, r.Missing, r.Mismatched, status})
	}
	t.Render()

	if failed > 0 {
		return fmt.Errorf("verification failed for %d of %d tables", failed, len(reports))
	}

	fmt.Fprintln(out, "All tables verified")
	return nil
}
