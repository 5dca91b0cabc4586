package transfer

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/kinotek/kinotek/internal/catalog"
	"github.com/kinotek/kinotek/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopier_CopyTable(t *testing.T) {
	source, sourceMock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer source.Close()

	target, targetMock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer target.Close()

	sp := catalog.GenreSpec()

	sourceMock.ExpectQuery(sp.SourceSelectSQL()).WillReturnRows(
		sqlmock.NewRows(sp.SourceColumns).
			AddRow("237fd1e4-c98e-454e-aa13-8a13fb7547b5", "Drama", nil, "2021-06-16 20:14:09", "2021-06-16 20:14:09").
			AddRow("526769d7-df18-4661-9aa6-49ed24e9dfd8", "Thriller", "Tense stories", "2021-06-16 20:14:09", "2021-06-16 20:14:09"))

	targetMock.ExpectBegin()
	prep := targetMock.ExpectPrepare(sp.InsertSQL("content"))
	prep.ExpectExec().
		WithArgs("237fd1e4-c98e-454e-aa13-8a13fb7547b5", "Drama", nil, "2021-06-16 20:14:09", "2021-06-16 20:14:09").
		WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().
		WithArgs("526769d7-df18-4661-9aa6-49ed24e9dfd8", "Thriller", "Tense stories", "2021-06-16 20:14:09", "2021-06-16 20:14:09").
		WillReturnResult(sqlmock.NewResult(0, 1))
	targetMock.ExpectCommit()

	c := NewCopier(source, target, Options{Logger: testutil.NewTestLogger(t)})

	res, err := c.copyTable(context.Background(), sp)
	require.NoError(t, err)
	assert.Equal(t, TableResult{Table: "genre", Rows: 2}, res)

	assert.NoError(t, sourceMock.ExpectationsWereMet())
	assert.NoError(t, targetMock.ExpectationsWereMet())
}

func TestCopier_CopyAll_TableOrder(t *testing.T) {
	source, sourceMock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer source.Close()

	target, targetMock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer target.Close()

	// Expectations are ordered: CopyAll must walk the specs parents-first.
	for _, sp := range catalog.Specs() {
		sourceMock.ExpectQuery(sp.SourceSelectSQL()).
			WillReturnRows(sqlmock.NewRows(sp.SourceColumns))
		targetMock.ExpectBegin()
		targetMock.ExpectPrepare(sp.InsertSQL("content"))
		targetMock.ExpectCommit()
	}

	c := NewCopier(source, target, Options{Logger: testutil.NewTestLogger(t)})

	results, err := c.CopyAll(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 5)
	assert.Equal(t, "film_work", results[0].Table)
	assert.Equal(t, "person_film_work", results[4].Table)

	assert.NoError(t, sourceMock.ExpectationsWereMet())
	assert.NoError(t, targetMock.ExpectationsWereMet())
}

func TestCopier_SourceQueryError(t *testing.T) {
	source, sourceMock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer source.Close()

	target, _, err := sqlmock.New()
	require.NoError(t, err)
	defer target.Close()

	sourceMock.ExpectQuery(catalog.FilmWorkSpec().SourceSelectSQL()).
		WillReturnError(assert.AnError)

	c := NewCopier(source, target, Options{})

	_, err = c.CopyAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to copy film_work")
}

func TestCopier_InsertErrorRollsBack(t *testing.T) {
	source, sourceMock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer source.Close()

	target, targetMock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer target.Close()

	sp := catalog.PersonSpec()

	sourceMock.ExpectQuery(sp.SourceSelectSQL()).WillReturnRows(
		sqlmock.NewRows(sp.SourceColumns).
			AddRow("ef86b8ff-3c82-4d31-ad8e-72b69f4e3f95", "George Lucas", "2021-06-16 20:14:09", "2021-06-16 20:14:09"))

	targetMock.ExpectBegin()
	prep := targetMock.ExpectPrepare(sp.InsertSQL("content"))
	prep.ExpectExec().WillReturnError(assert.AnError)
	targetMock.ExpectRollback()

	c := NewCopier(source, target, Options{})

	_, err = c.copyTable(context.Background(), sp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert row ef86b8ff-3c82-4d31-ad8e-72b69f4e3f95")

	assert.NoError(t, targetMock.ExpectationsWereMet())
}

func TestCopier_BatchSizeSetsProgressCadence(t *testing.T) {
	source, sourceMock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer source.Close()

	target, targetMock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer target.Close()

	sp := catalog.PersonSpec()

	sourceMock.ExpectQuery(sp.SourceSelectSQL()).WillReturnRows(
		sqlmock.NewRows(sp.SourceColumns).
			AddRow("ef86b8ff-3c82-4d31-ad8e-72b69f4e3f95", "George Lucas", "2021-06-16 20:14:09", "2021-06-16 20:14:09").
			AddRow("26e83050-29ef-4163-a99d-b546cac208f8", "Mark Hamill", "2021-06-16 20:14:09", "2021-06-16 20:14:09").
			AddRow("5b4bf1bc-3397-4e83-9b17-8b10c6544ed1", "Harrison Ford", "2021-06-16 20:14:09", "2021-06-16 20:14:09"))

	targetMock.ExpectBegin()
	prep := targetMock.ExpectPrepare(sp.InsertSQL("content"))
	for i := 0; i < 3; i++ {
		prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
	}
	targetMock.ExpectCommit()

	var logBuf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuf, nil))

	c := NewCopier(source, target, Options{BatchSize: 2, Logger: logger})

	res, err := c.copyTable(context.Background(), sp)
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Rows)

	// 3 rows at batch size 2: one batch mark, then the final summary.
	assert.Equal(t, 1, strings.Count(logBuf.String(), "loaded batch"))
	assert.Equal(t, 1, strings.Count(logBuf.String(), "table copied"))
}

func TestOptions_Defaults(t *testing.T) {
	opts := Options{}.withDefaults()

	assert.Equal(t, "content", opts.Schema)
	assert.Equal(t, DefaultBatchSize, opts.BatchSize)
	assert.NotNil(t, opts.Logger)
}
