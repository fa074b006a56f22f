package pagination

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanID(rows pgx.Rows) (int64, error) {
	var id int64
	err := rows.Scan(&id)
	return id, err
}

func TestPaginate_MiddlePage(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT id FROM items ORDER BY id DESC LIMIT \$1 OFFSET \$2`).
		WithArgs(2, 2).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(3)).AddRow(int64(2)))
	mock.ExpectQuery(`SELECT COUNT`).
		WillReturnRows(pgxmock.NewRows([]string{"total"}).AddRow(int64(5)))

	page, err := Paginate(context.Background(), mock,
		"SELECT id FROM items ORDER BY id DESC",
		"SELECT COUNT(*) AS total FROM items",
		2, 2, []any{}, scanID)

	require.NoError(t, err)
	assert.Equal(t, []int64{3, 2}, page.Data)
	assert.Equal(t, int64(5), page.TotalCount)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 2, page.CurrentPage)
	require.NotNil(t, page.PrevPage)
	assert.Equal(t, 1, *page.PrevPage)
	require.NotNil(t, page.NextPage)
	assert.Equal(t, 3, *page.NextPage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaginate_FirstPageOfEmptyTable(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT id FROM items ORDER BY id DESC LIMIT \$1 OFFSET \$2`).
		WithArgs(10, 0).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT COUNT`).
		WillReturnRows(pgxmock.NewRows([]string{"total"}).AddRow(int64(0)))

	page, err := Paginate(context.Background(), mock,
		"SELECT id FROM items ORDER BY id DESC",
		"SELECT COUNT(*) AS total FROM items",
		1, 10, []any{}, scanID)

	require.NoError(t, err)
	assert.NotNil(t, page.Data)
	assert.Empty(t, page.Data)
	assert.Equal(t, int64(0), page.TotalCount)
	assert.Equal(t, 1, page.TotalPages) // floored at 1 even with no rows
	assert.Nil(t, page.PrevPage)
	assert.Nil(t, page.NextPage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaginate_LastPage(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT id FROM items ORDER BY id DESC LIMIT \$1 OFFSET \$2`).
		WithArgs(2, 4).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectQuery(`SELECT COUNT`).
		WillReturnRows(pgxmock.NewRows([]string{"total"}).AddRow(int64(5)))

	page, err := Paginate(context.Background(), mock,
		"SELECT id FROM items ORDER BY id DESC",
		"SELECT COUNT(*) AS total FROM items",
		3, 2, []any{}, scanID)

	require.NoError(t, err)
	assert.Nil(t, page.NextPage)
	require.NotNil(t, page.PrevPage)
	assert.Equal(t, 2, *page.PrevPage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaginate_FilterParamsSharedByBothQueries(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	// The select gets LIMIT/OFFSET appended after the filter params; the
	// count reuses the filter params untouched.
	mock.ExpectQuery(`SELECT id FROM items WHERE name ILIKE \$1 ORDER BY id DESC LIMIT \$2 OFFSET \$3`).
		WithArgs("%go%", 10, 0).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))
	mock.ExpectQuery(`SELECT COUNT`).
		WithArgs("%go%").
		WillReturnRows(pgxmock.NewRows([]string{"total"}).AddRow(int64(1)))

	page, err := Paginate(context.Background(), mock,
		"SELECT id FROM items WHERE name ILIKE $1 ORDER BY id DESC",
		"SELECT COUNT(*) AS total FROM items WHERE name ILIKE $1",
		1, 10, []any{"%go%"}, scanID)

	require.NoError(t, err)
	assert.Equal(t, []int64{7}, page.Data)
	assert.Equal(t, int64(1), page.TotalCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaginate_SelectErrorPropagates(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT id FROM items`).
		WithArgs(10, 0).
		WillReturnError(assert.AnError)

	_, err = Paginate(context.Background(), mock,
		"SELECT id FROM items ORDER BY id DESC",
		"SELECT COUNT(*) AS total FROM items",
		1, 10, []any{}, scanID)

	assert.ErrorIs(t, err, assert.AnError)
}
