// Package catalog defines the movie-catalog row types and the
// declarative table specs used by the schema and transfer layers.
//
// The catalog lives in the `content` schema: film_work, person and
// genre entities plus two junction tables implementing the
// many-to-many associations.
package catalog

import (
	"database/sql"

	"github.com/google/uuid"
)

// Entry is a single catalog row read from a database.
type Entry interface {
	// Key returns the row's primary key.
	Key() uuid.UUID

	// Values returns the insert arguments in the order of the owning
	// spec's placeholder columns.
	Values() []any

	// DataFields returns the comparable domain fields. Timestamps are
	// excluded: film_work regenerates them on load, so they are not
	// part of the transfer contract.
	DataFields() []any
}

// FilmWork is a media title (movie or series) record.
// CreationDate is normalized to YYYY-MM-DD text.
type FilmWork struct {
	ID           uuid.UUID
	Title        string
	Description  sql.NullString
	CreationDate sql.NullString
	Rating       sql.NullFloat64
	Type         string
}

// Key returns the primary key.
func (f *FilmWork) Key() uuid.UUID { return f.ID }

// Values returns insert arguments; created/modified are filled with
// NOW() expressions by the spec, not carried from the source.
func (f *FilmWork) Values() []any {
	return []any{f.ID.String(), f.Title, f.Description, f.CreationDate, f.Rating, f.Type}
}

// DataFields returns the comparable domain fields.
func (f *FilmWork) DataFields() []any {
	return []any{f.ID, f.Title, f.Description, f.CreationDate, f.Rating, f.Type}
}

// Genre is a categorical tag applicable to films. Name is unique
// across all genres.
type Genre struct {
	ID          uuid.UUID
	Name        string
	Description sql.NullString
	CreatedAt   sql.NullString
	UpdatedAt   sql.NullString
}

// Key returns the primary key.
func (g *Genre) Key() uuid.UUID { return g.ID }

// Values returns insert arguments including the carried timestamps.
func (g *Genre) Values() []any {
	return []any{g.ID.String(), g.Name, g.Description, g.CreatedAt, g.UpdatedAt}
}

// DataFields returns the comparable domain fields.
func (g *Genre) DataFields() []any {
	return []any{g.ID, g.Name, g.Description}
}

// Person is an individual who may be associated with films
// (actor, director, writer, etc.).
type Person struct {
	ID        uuid.UUID
	FullName  string
	CreatedAt sql.NullString
	UpdatedAt sql.NullString
}

// Key returns the primary key.
func (p *Person) Key() uuid.UUID { return p.ID }

// Values returns insert arguments including the carried timestamps.
func (p *Person) Values() []any {
	return []any{p.ID.String(), p.FullName, p.CreatedAt, p.UpdatedAt}
}

// DataFields returns the comparable domain fields.
func (p *Person) DataFields() []any {
	return []any{p.ID, p.FullName}
}

// GenreFilmWork links a genre to a film work. The combination of
// (film_work_id, genre_id) is unique.
type GenreFilmWork struct {
	ID         uuid.UUID
	GenreID    uuid.UUID
	FilmWorkID uuid.UUID
	CreatedAt  sql.NullString
}

// Key returns the primary key.
func (g *GenreFilmWork) Key() uuid.UUID { return g.ID }

// Values returns insert arguments including the carried timestamp.
func (g *GenreFilmWork) Values() []any {
	return []any{g.ID.String(), g.GenreID.String(), g.FilmWorkID.String(), g.CreatedAt}
}

// DataFields returns the comparable domain fields.
func (g *GenreFilmWork) DataFields() []any {
	return []any{g.ID, g.GenreID, g.FilmWorkID}
}

// PersonFilmWork links a person to a film work with a role. The
// combination of (film_work_id, person_id, role) is unique.
type PersonFilmWork struct {
	ID         uuid.UUID
	FilmWorkID uuid.UUID
	PersonID   uuid.UUID
	Role       string
	CreatedAt  sql.NullString
}

// Key returns the primary key.
func (p *PersonFilmWork) Key() uuid.UUID { return p.ID }

// Values returns insert arguments including the carried timestamp.
func (p *PersonFilmWork) Values() []any {
	return []any{p.ID.String(), p.FilmWorkID.String(), p.PersonID.String(), p.Role, p.CreatedAt}
}

// DataFields returns the comparable domain fields.
func (p *PersonFilmWork) DataFields() []any {
	return []any{p.ID, p.FilmWorkID, p.PersonID, p.Role}
}
