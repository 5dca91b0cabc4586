package catalog

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// RowScanner abstracts *sql.Row and *sql.Rows for scan functions.
type RowScanner interface {
	Scan(dest ...any) error
}

// Spec declaratively describes one catalog table: how to read it from
// the source database, how to write it to the target, and how to read
// it back for verification.
type Spec struct {
	// Name is the bare table name (schema added by the SQL builders).
	Name string

	// SourceColumns is the select list for the source database.
	SourceColumns []string

	// InsertColumns is the target insert column list.
	InsertColumns []string

	// InsertExprs is the VALUES expression list. Positional
	// placeholders reference Values() output in order; non-placeholder
	// expressions (e.g. NOW()) are evaluated by the target engine.
	InsertExprs []string

	// VerifyColumns is the target select list for the comparable data
	// fields, with casts where the wire type differs from the source.
	VerifyColumns []string

	// ScanSource scans one source row.
	ScanSource func(s RowScanner) (Entry, error)

	// ScanVerify scans one target row selected via VerifyColumns.
	ScanVerify func(s RowScanner) (Entry, error)
}

// SourceSelectSQL returns the batched extraction query for the source
// database.
func (sp *Spec) SourceSelectSQL() string {
	return fmt.Sprintf("SELECT %s FROM %s ORDER BY id",
		strings.Join(sp.SourceColumns, ", "), sp.Name)
}

// InsertSQL returns the conflict-ignoring insert statement for the
// target database.
func (sp *Spec) InsertSQL(schema string) string {
	return fmt.Sprintf("INSERT INTO %s.%s (%s) VALUES (%s) ON CONFLICT (id) DO NOTHING",
		schema, sp.Name,
		strings.Join(sp.InsertColumns, ", "),
		strings.Join(sp.InsertExprs, ", "))
}

// VerifySelectSQL returns the target-side query fetching the
// comparable fields for n ids.
func (sp *Spec) VerifySelectSQL(schema string, n int) string {
	placeholders := make([]string, n)
	for i := range placeholders {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf("SELECT %s FROM %s.%s WHERE id IN (%s)",
		strings.Join(sp.VerifyColumns, ", "), schema, sp.Name,
		strings.Join(placeholders, ", "))
}

// CountSQL returns the row-count query for the target database.
func (sp *Spec) CountSQL(schema string) string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s.%s", schema, sp.Name)
}

// SourceCountSQL returns the row-count query for the source database.
func (sp *Spec) SourceCountSQL() string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s", sp.Name)
}

// Specs returns the table specs in load order: parent tables first,
// junction tables after the entities they reference.
func Specs() []*Spec {
	return []*Spec{
		FilmWorkSpec(),
		GenreSpec(),
		GenreFilmWorkSpec(),
		PersonSpec(),
		PersonFilmWorkSpec(),
	}
}

// FilmWorkSpec describes the film_work table. The source carries
// created_at/updated_at, but the loader stamps created/modified with
// NOW() instead (matching the admin side's auto-managed timestamps).
func FilmWorkSpec() *Spec {
	scan := func(s RowScanner) (Entry, error) {
		var (
			id string
			fw FilmWork
		)
		if err := s.Scan(&id, &fw.Title, &fw.Description, &fw.CreationDate, &fw.Rating, &fw.Type); err != nil {
			return nil, err
		}
		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("film_work: invalid id %q: %w", id, err)
		}
		fw.ID = parsed
		return &fw, nil
	}

	return &Spec{
		Name:          "film_work",
		SourceColumns: []string{"id", "title", "description", "creation_date", "rating", "type"},
		InsertColumns: []string{"id", "title", "description", "creation_date", "rating", "type", "created", "modified"},
		InsertExprs:   []string{"$1", "$2", "$3", "$4", "$5", "$6", "NOW()", "NOW()"},
		VerifyColumns: []string{"id", "title", "description", "creation_date::text", "rating", "type"},
		ScanSource:    scan,
		ScanVerify:    scan,
	}
}

// GenreSpec describes the genre table.
func GenreSpec() *Spec {
	return &Spec{
		Name:          "genre",
		SourceColumns: []string{"id", "name", "description", "created_at", "updated_at"},
		InsertColumns: []string{"id", "name", "description", "created", "modified"},
		InsertExprs:   []string{"$1", "$2", "$3", "$4", "$5"},
		VerifyColumns: []string{"id", "name", "description"},
		ScanSource: func(s RowScanner) (Entry, error) {
			var (
				id string
				g  Genre
			)
			if err := s.Scan(&id, &g.Name, &g.Description, &g.CreatedAt, &g.UpdatedAt); err != nil {
				return nil, err
			}
			parsed, err := uuid.Parse(id)
			if err != nil {
				return nil, fmt.Errorf("genre: invalid id %q: %w", id, err)
			}
			g.ID = parsed
			return &g, nil
		},
		ScanVerify: func(s RowScanner) (Entry, error) {
			var (
				id string
				g  Genre
			)
			if err := s.Scan(&id, &g.Name, &g.Description); err != nil {
				return nil, err
			}
			parsed, err := uuid.Parse(id)
			if err != nil {
				return nil, fmt.Errorf("genre: invalid id %q: %w", id, err)
			}
			g.ID = parsed
			return &g, nil
		},
	}
}

// PersonSpec describes the person table.
func PersonSpec() *Spec {
	return &Spec{
		Name:          "person",
		SourceColumns: []string{"id", "full_name", "created_at", "updated_at"},
		InsertColumns: []string{"id", "full_name", "created", "modified"},
		InsertExprs:   []string{"$1", "$2", "$3", "$4"},
		VerifyColumns: []string{"id", "full_name"},
		ScanSource: func(s RowScanner) (Entry, error) {
			var (
				id string
				p  Person
			)
			if err := s.Scan(&id, &p.FullName, &p.CreatedAt, &p.UpdatedAt); err != nil {
				return nil, err
			}
			parsed, err := uuid.Parse(id)
			if err != nil {
				return nil, fmt.Errorf("person: invalid id %q: %w", id, err)
			}
			p.ID = parsed
			return &p, nil
		},
		ScanVerify: func(s RowScanner) (Entry, error) {
			var (
				id string
				p  Person
			)
			if err := s.Scan(&id, &p.FullName); err != nil {
				return nil, err
			}
			parsed, err := uuid.Parse(id)
			if err != nil {
				return nil, fmt.Errorf("person: invalid id %q: %w", id, err)
			}
			p.ID = parsed
			return &p, nil
		},
	}
}

// GenreFilmWorkSpec describes the genre_film_work junction table.
func GenreFilmWorkSpec() *Spec {
	scanIDs := func(id, genreID, filmWorkID string) (*GenreFilmWork, error) {
		var (
			g   GenreFilmWork
			err error
		)
		if g.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("genre_film_work: invalid id %q: %w", id, err)
		}
		if g.GenreID, err = uuid.Parse(genreID); err != nil {
			return nil, fmt.Errorf("genre_film_work: invalid genre_id %q: %w", genreID, err)
		}
		if g.FilmWorkID, err = uuid.Parse(filmWorkID); err != nil {
			return nil, fmt.Errorf("genre_film_work: invalid film_work_id %q: %w", filmWorkID, err)
		}
		return &g, nil
	}

	return &Spec{
		Name:          "genre_film_work",
		SourceColumns: []string{"id", "genre_id", "film_work_id", "created_at"},
		InsertColumns: []string{"id", "genre_id", "film_work_id", "created"},
		InsertExprs:   []string{"$1", "$2", "$3", "$4"},
		VerifyColumns: []string{"id", "genre_id::text", "film_work_id::text"},
		ScanSource: func(s RowScanner) (Entry, error) {
			var id, genreID, filmWorkID string
			var createdAt sql.NullString
			if err := s.Scan(&id, &genreID, &filmWorkID, &createdAt); err != nil {
				return nil, err
			}
			g, err := scanIDs(id, genreID, filmWorkID)
			if err != nil {
				return nil, err
			}
			g.CreatedAt = createdAt
			return g, nil
		},
		ScanVerify: func(s RowScanner) (Entry, error) {
			var id, genreID, filmWorkID string
			if err := s.Scan(&id, &genreID, &filmWorkID); err != nil {
				return nil, err
			}
			return scanIDs(id, genreID, filmWorkID)
		},
	}
}

// PersonFilmWorkSpec describes the person_film_work junction table.
func PersonFilmWorkSpec() *Spec {
	scanIDs := func(id, filmWorkID, personID string) (*PersonFilmWork, error) {
		var (
			p   PersonFilmWork
			err error
		)
		if p.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("person_film_work: invalid id %q: %w", id, err)
		}
		if p.FilmWorkID, err = uuid.Parse(filmWorkID); err != nil {
			return nil, fmt.Errorf("person_film_work: invalid film_work_id %q: %w", filmWorkID, err)
		}
		if p.PersonID, err = uuid.Parse(personID); err != nil {
			return nil, fmt.Errorf("person_film_work: invalid person_id %q: %w", personID, err)
		}
		return &p, nil
	}

	return &Spec{
		Name:          "person_film_work",
		SourceColumns: []string{"id", "film_work_id", "person_id", "role", "created_at"},
		InsertColumns: []string{"id", "film_work_id", "person_id", "role", "created"},
		InsertExprs:   []string{"$1", "$2", "$3", "$4", "$5"},
		VerifyColumns: []string{"id", "film_work_id::text", "person_id::text", "role"},
		ScanSource: func(s RowScanner) (Entry, error) {
			var id, filmWorkID, personID string
			var p PersonFilmWork
			if err := s.Scan(&id, &filmWorkID, &personID, &p.Role, &p.CreatedAt); err != nil {
				return nil, err
			}
			parsed, err := scanIDs(id, filmWorkID, personID)
			if err != nil {
				return nil, err
			}
			parsed.Role = p.Role
			parsed.CreatedAt = p.CreatedAt
			return parsed, nil
		},
		ScanVerify: func(s RowScanner) (Entry, error) {
			var id, filmWorkID, personID, role string
			if err := s.Scan(&id, &filmWorkID, &personID, &role); err != nil {
				return nil, err
			}
			p, err := scanIDs(id, filmWorkID, personID)
			if err != nil {
				return nil, err
			}
			p.Role = role
			return p, nil
		},
	}
}
