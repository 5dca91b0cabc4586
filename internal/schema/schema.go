// Package schema owns the `content` catalog schema and applies it with
// embedded database migrations.
package schema

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// DefaultSchema is the schema namespace the catalog lives in.
const DefaultSchema = "content"

// Up applies all pending migrations to the target database.
// Re-running it against an up-to-date database is a no-op: goose tracks
// applied versions and every DDL statement uses IF NOT EXISTS.
func Up(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("database not opened")
	}

	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// Version returns the current migration version of the target database.
func Version(ctx context.Context, db *sql.DB) (int64, error) {
	if db == nil {
		return 0, fmt.Errorf("database not opened")
	}

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return 0, fmt.Errorf("failed to set dialect: %w", err)
	}

	return goose.GetDBVersionContext(ctx, db)
}

// Migration describes one embedded migration file.
type Migration struct {
	Version int64
	Name    string
}

// MigrationStatus pairs an embedded migration with whether the target
// database has applied it.
type MigrationStatus struct {
	Migration
	Applied bool
}

// Status reports every embedded migration and its applied state on the
// target database.
func Status(ctx context.Context, db *sql.DB) ([]MigrationStatus, error) {
	ms, err := Migrations()
	if err != nil {
		return nil, err
	}

	version, err := Version(ctx, db)
	if err != nil {
		return nil, err
	}

	out := make([]MigrationStatus, len(ms))
	for i, m := range ms {
		out[i] = MigrationStatus{Migration: m, Applied: m.Version <= version}
	}
	return out, nil
}

// Migrations lists the embedded migrations sorted by version.
func Migrations() ([]Migration, error) {
	entries, err := fs.ReadDir(migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded migrations: %w", err)
	}

	var out []Migration
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		m, err := parseMigrationName(e.Name())
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

// parseMigrationName splits a goose migration filename
// ("00001_content_schema.sql") into version and name.
func parseMigrationName(filename string) (Migration, error) {
	base := strings.TrimSuffix(filename, ".sql")
	idx := strings.Index(base, "_")
	if idx <= 0 {
		return Migration{}, fmt.Errorf("malformed migration filename %q", filename)
	}

	version, err := strconv.ParseInt(base[:idx], 10, 64)
	if err != nil {
		return Migration{}, fmt.Errorf("malformed migration version in %q: %w", filename, err)
	}

	return Migration{Version: version, Name: base[idx+1:]}, nil
}

// DDL returns the raw SQL of all embedded migrations, in version order.
// Exposed for structural checks on the schema definition.
func DDL() (string, error) {
	ms, err := Migrations()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, m := range ms {
		data, err := fs.ReadFile(migrations, fmt.Sprintf("migrations/%05d_%s.sql", m.Version, m.Name))
		if err != nil {
			return "", fmt.Errorf("failed to read migration %d: %w", m.Version, err)
		}
		b.Write(data)
		b.WriteString("\n")
	}
	return b.String(), nil
}
