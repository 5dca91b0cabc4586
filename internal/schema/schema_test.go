package schema

import (
	"strings"
	"testing"

	"github.com/kinotek/kinotek/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations(t *testing.T) {
	ms, err := Migrations()
	require.NoError(t, err)
	require.NotEmpty(t, ms)

	assert.Equal(t, int64(1), ms[0].Version)
	assert.Equal(t, "content_schema", ms[0].Name)
}

func TestParseMigrationName(t *testing.T) {
	tests := []struct {
		name      string
		filename  string
		want      Migration
		expectErr bool
	}{
		{
			name:     "valid",
			filename: "00001_content_schema.sql",
			want:     Migration{Version: 1, Name: "content_schema"},
		},
		{
			name:      "missing version",
			filename:  "_schema.sql",
			expectErr: true,
		},
		{
			name:      "non-numeric version",
			filename:  "abc_schema.sql",
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseMigrationName(tt.filename)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// The schema script must stay safe to re-apply: every object is
// created with IF NOT EXISTS.
func TestDDL_Idempotent(t *testing.T) {
	ddl, err := DDL()
	require.NoError(t, err)

	for _, line := range strings.Split(ddl, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "CREATE ") {
			assert.Contains(t, trimmed, "IF NOT EXISTS", "statement must be idempotent: %s", trimmed)
		}
	}
}

func TestDDL_DefinesCatalogTables(t *testing.T) {
	ddl, err := DDL()
	require.NoError(t, err)

	assert.Contains(t, ddl, "CREATE SCHEMA IF NOT EXISTS content")

	for _, sp := range catalog.Specs() {
		assert.Contains(t, ddl, "CREATE TABLE IF NOT EXISTS content."+sp.Name,
			"every catalog table must be defined")
	}
}

func TestDDL_Constraints(t *testing.T) {
	ddl, err := DDL()
	require.NoError(t, err)

	// Both junction tables cascade deletes from both parents.
	assert.Equal(t, 4, strings.Count(ddl, "ON DELETE CASCADE"))

	// Association uniqueness.
	assert.Contains(t, ddl, "CREATE UNIQUE INDEX IF NOT EXISTS film_work_person_role_idx")
	assert.Contains(t, ddl, "(film_work_id, person_id, role)")
	assert.Contains(t, ddl, "CREATE UNIQUE INDEX IF NOT EXISTS film_work_genre_idx")
	assert.Contains(t, ddl, "(film_work_id, genre_id)")

	// Genre names are globally unique.
	assert.Contains(t, ddl, "name TEXT NOT NULL UNIQUE")

	// Query-acceleration indexes.
	assert.Contains(t, ddl, "(title, description, creation_date)")
	assert.Contains(t, ddl, "(full_name)")
}

func TestDDL_ParentTablesBeforeChildren(t *testing.T) {
	ddl, err := DDL()
	require.NoError(t, err)

	filmWork := strings.Index(ddl, "content.film_work (")
	person := strings.Index(ddl, "content.person (")
	genre := strings.Index(ddl, "content.genre (")
	genreFilmWork := strings.Index(ddl, "content.genre_film_work (")
	personFilmWork := strings.Index(ddl, "content.person_film_work (")

	assert.Less(t, filmWork, genreFilmWork)
	assert.Less(t, genre, genreFilmWork)
	assert.Less(t, filmWork, personFilmWork)
	assert.Less(t, person, personFilmWork)
}
