// Package transfer moves the movie catalog from a source SQLite
// database into the target PostgreSQL `content` schema, and verifies
// the result afterwards.
package transfer

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/kinotek/kinotek/internal/catalog"
	"github.com/kinotek/kinotek/internal/schema"
)

// DefaultBatchSize is the default batch size: the verifier reads
// target rows in batches of this many ids, and the copier logs
// progress at the same cadence.
const DefaultBatchSize = 100

// Options configures a Copier or Verifier.
type Options struct {
	// Schema is the target schema namespace (default "content").
	Schema string

	// BatchSize sets the verifier's read-batch size and the copier's
	// progress-log cadence (default 100).
	BatchSize int

	// Logger receives progress output. Nil discards.
	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Schema == "" {
		o.Schema = schema.DefaultSchema
	}
	if o.BatchSize <= 0 {
		o.BatchSize = DefaultBatchSize
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// TableResult reports the outcome of copying one table.
type TableResult struct {
	Table string
	Rows  int64
}

// Copier streams catalog rows from the source database into the target.
// Inserts use ON CONFLICT (id) DO NOTHING, so re-running a transfer
// never duplicates rows.
type Copier struct {
	source *sql.DB
	target *sql.DB
	opts   Options
}

// NewCopier creates a Copier over the given connections.
func NewCopier(source, target *sql.DB, opts Options) *Copier {
	return &Copier{
		source: source,
		target: target,
		opts:   opts.withDefaults(),
	}
}

// CopyAll copies every catalog table in load order (parents before
// children) and returns per-table results.
func (c *Copier) CopyAll(ctx context.Context) ([]TableResult, error) {
	results := make([]TableResult, 0, len(catalog.Specs()))
	for _, sp := range catalog.Specs() {
		res, err := c.copyTable(ctx, sp)
		if err != nil {
			return results, fmt.Errorf("failed to copy %s: %w", sp.Name, err)
		}
		results = append(results, res)
	}
	return results, nil
}

// copyTable copies one table inside a single target transaction.
func (c *Copier) copyTable(ctx context.Context, sp *catalog.Spec) (TableResult, error) {
	logger := c.opts.Logger.With(slog.String("table", sp.Name))
	logger.Debug("copying table")

	rows, err := c.source.QueryContext(ctx, sp.SourceSelectSQL())
	if err != nil {
		return TableResult{}, fmt.Errorf("source query failed: %w", err)
	}
	defer func() { _ = rows.Close() }()

	tx, err := c.target.BeginTx(ctx, nil)
	if err != nil {
		return TableResult{}, fmt.Errorf("failed to begin target transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, sp.InsertSQL(c.opts.Schema))
	if err != nil {
		return TableResult{}, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	var count int64
	for rows.Next() {
		entry, err := sp.ScanSource(rows)
		if err != nil {
			return TableResult{}, fmt.Errorf("failed to scan source row: %w", err)
		}

		if _, err := stmt.ExecContext(ctx, entry.Values()...); err != nil {
			return TableResult{}, fmt.Errorf("failed to insert row %s: %w", entry.Key(), err)
		}

		count++
		if count%int64(c.opts.BatchSize) == 0 {
			logger.Info("loaded batch", slog.Int64("rows", count))
		}
	}

	if err := rows.Err(); err != nil {
		return TableResult{}, fmt.Errorf("source iteration failed: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return TableResult{}, fmt.Errorf("failed to commit: %w", err)
	}

	logger.Info("table copied", slog.Int64("rows", count))
	return TableResult{Table: sp.Name, Rows: count}, nil
}
