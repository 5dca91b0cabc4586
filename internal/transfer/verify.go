package transfer

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/kinotek/kinotek/internal/catalog"
	"golang.org/x/sync/errgroup"
)

// TableReport is the verification outcome for one table.
type TableReport struct {
	Table      string
	SourceRows int64
	TargetRows int64
	Missing    int64
	Mismatched int64
}

// OK reports whether the table transferred without loss or corruption.
func (r TableReport) OK() bool {
	return r.SourceRows == r.TargetRows && r.Missing == 0 && r.Mismatched == 0
}

// Verifier re-reads both databases after a transfer and compares row
// counts and data fields. Timestamps are outside the comparison: the
// loader regenerates film_work's created/modified on insert.
type Verifier struct {
	source *sql.DB
	target *sql.DB
	opts   Options
}

// NewVerifier creates a Verifier over the given connections.
func NewVerifier(source, target *sql.DB, opts Options) *Verifier {
	return &Verifier{
		source: source,
		target: target,
		opts:   opts.withDefaults(),
	}
}

// VerifyAll checks every catalog table concurrently and returns the
// reports in spec order. A non-nil error means verification itself
// failed; data discrepancies are reported per table.
func (v *Verifier) VerifyAll(ctx context.Context) ([]TableReport, error) {
	specs := catalog.Specs()
	reports := make([]TableReport, len(specs))

	g, ctx := errgroup.WithContext(ctx)
	for i, sp := range specs {
		g.Go(func() error {
			report, err := v.verifyTable(ctx, sp)
			if err != nil {
				return fmt.Errorf("failed to verify %s: %w", sp.Name, err)
			}
			reports[i] = report
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// verifyTable compares one table between source and target.
func (v *Verifier) verifyTable(ctx context.Context, sp *catalog.Spec) (TableReport, error) {
	logger := v.opts.Logger.With(slog.String("table", sp.Name))
	report := TableReport{Table: sp.Name}

	if err := v.source.QueryRowContext(ctx, sp.SourceCountSQL()).Scan(&report.SourceRows); err != nil {
		return report, fmt.Errorf("source count failed: %w", err)
	}
	if err := v.target.QueryRowContext(ctx, sp.CountSQL(v.opts.Schema)).Scan(&report.TargetRows); err != nil {
		return report, fmt.Errorf("target count failed: %w", err)
	}

	rows, err := v.source.QueryContext(ctx, sp.SourceSelectSQL())
	if err != nil {
		return report, fmt.Errorf("source query failed: %w", err)
	}
	defer func() { _ = rows.Close() }()

	batch := make([]catalog.Entry, 0, v.opts.BatchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		missing, mismatched, err := v.compareBatch(ctx, sp, batch)
		if err != nil {
			return err
		}
		report.Missing += missing
		report.Mismatched += mismatched
		batch = batch[:0]
		return nil
	}

	for rows.Next() {
		entry, err := sp.ScanSource(rows)
		if err != nil {
			return report, fmt.Errorf("failed to scan source row: %w", err)
		}
		batch = append(batch, entry)
		if len(batch) >= v.opts.BatchSize {
			if err := flush(); err != nil {
				return report, err
			}
		}
	}
	if err := rows.Err(); err != nil {
		return report, fmt.Errorf("source iteration failed: %w", err)
	}
	if err := flush(); err != nil {
		return report, err
	}

	if report.OK() {
		logger.Debug("table verified", slog.Int64("rows", report.SourceRows))
	} else {
		logger.Warn("table verification failed",
			slog.Int64("source_rows", report.SourceRows),
			slog.Int64("target_rows", report.TargetRows),
			slog.Int64("missing", report.Missing),
			slog.Int64("mismatched", report.Mismatched))
	}

	return report, nil
}

// compareBatch fetches the target rows for one batch of source entries
// and compares their data fields.
func (v *Verifier) compareBatch(ctx context.Context, sp *catalog.Spec, batch []catalog.Entry) (missing, mismatched int64, err error) {
	ids := make([]any, len(batch))
	for i, entry := range batch {
		ids[i] = entry.Key().String()
	}

	rows, err := v.target.QueryContext(ctx, sp.VerifySelectSQL(v.opts.Schema, len(ids)), ids...)
	if err != nil {
		return 0, 0, fmt.Errorf("target query failed: %w", err)
	}
	defer func() { _ = rows.Close() }()

	found := make(map[uuid.UUID]catalog.Entry, len(batch))
	for rows.Next() {
		entry, err := sp.ScanVerify(rows)
		if err != nil {
			return 0, 0, fmt.Errorf("failed to scan target row: %w", err)
		}
		found[entry.Key()] = entry
	}
	if err := rows.Err(); err != nil {
		return 0, 0, fmt.Errorf("target iteration failed: %w", err)
	}

	for _, src := range batch {
		dst, ok := found[src.Key()]
		if !ok {
			missing++
			continue
		}
		if !equalFields(src.DataFields(), dst.DataFields()) {
			mismatched++
		}
	}
	return missing, mismatched, nil
}

// equalFields compares two data-field slices element-wise. All catalog
// field types are comparable.
func equalFields(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
