package sqlite

import (
	"context"
	"testing"

	"github.com/kinotek/kinotek/pkg/adapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAdapter(t *testing.T) *Adapter {
	t.Helper()
	a := New(nil)
	err := a.Connect(context.Background(), adapter.Config{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestConnect_MissingPath(t *testing.T) {
	a := New(nil)
	err := a.Connect(context.Background(), adapter.Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires a database path")
}

func TestConnect_InMemory(t *testing.T) {
	a := setupAdapter(t)
	assert.True(t, a.IsConnected())
	assert.Equal(t, "sqlite", a.DialectName())
}

func TestGetTableMetadata(t *testing.T) {
	ctx := context.Background()
	a := setupAdapter(t)

	err := a.Exec(ctx, `CREATE TABLE genre (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT
	)`)
	require.NoError(t, err)

	err = a.Exec(ctx, `INSERT INTO genre (id, name) VALUES ('g1', 'Drama'), ('g2', 'Comedy')`)
	require.NoError(t, err)

	meta, err := a.GetTableMetadata(ctx, "genre")
	require.NoError(t, err)

	assert.Equal(t, "genre", meta.Name)
	assert.Equal(t, int64(2), meta.RowCount)
	require.Len(t, meta.Columns, 3)
	assert.Equal(t, "id", meta.Columns[0].Name)
	assert.Equal(t, "name", meta.Columns[1].Name)
	assert.False(t, meta.Columns[1].Nullable)
	assert.True(t, meta.Columns[2].Nullable)
}

func TestGetTableMetadata_NotFound(t *testing.T) {
	a := setupAdapter(t)

	_, err := a.GetTableMetadata(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestRegistered(t *testing.T) {
	assert.True(t, adapter.IsRegistered("sqlite"), "sqlite adapter should self-register")
}
