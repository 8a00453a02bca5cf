package seam_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seamql/seam"
)

func newMock(t *testing.T) (*seam.Runner, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return seam.NewRunner(db), mock
}

func TestRunner_Query(t *testing.T) {
	runner, mock := newMock(t)

	mock.ExpectQuery("SELECT u.id AS id, u.name AS name FROM users AS u WHERE (u.active = ?)").
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(int64(1), "ann").
			AddRow(int64(2), "bob"))

	rows, err := runner.Query(context.Background(), &seam.Query{
		Table: "users",
		Alias: "u",
		Fields: []seam.Field{
			{Name: "id", Expr: "u.id"},
			{Name: "name", Expr: "u.name"},
		},
		Filter: "u.active = ?active",
	}, &seam.Options{Params: map[string]any{"active": true}})
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, int64(1), rows[0]["id"])
	assert.Equal(t, "ann", rows[0]["name"])
	assert.Equal(t, int64(2), rows[1]["id"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunner_QueryPage(t *testing.T) {
	runner, mock := newMock(t)

	mock.ExpectQuery("SELECT u.id AS id, u.name AS name, " +
		"ROW_NUMBER() OVER (ORDER BY u.id ASC) AS num, " +
		"(COUNT(*) OVER (ORDER BY u.id DESC)) - 1 AS remaining " +
		"FROM users AS u ORDER BY u.id ASC LIMIT 2 OFFSET 0").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "num", "remaining"}).
			AddRow(int64(1), "ann", int64(1), int64(2)).
			AddRow(int64(2), "bob", int64(2), int64(1)))

	res, err := runner.QueryPage(context.Background(), &seam.Query{
		Table: "users",
		Alias: "u",
		Fields: []seam.Field{
			{Name: "id", Expr: "u.id"},
			{Name: "name", Expr: "u.name"},
		},
	}, &seam.Options{OrderBy: []string{"u.id ASC"}}, 0, 2)
	require.NoError(t, err)

	assert.Equal(t, 3, res.Pagination.Total)
	assert.True(t, res.Pagination.HasMore)
	require.Len(t, res.Data, 2)
	assert.NotContains(t, res.Data[0], seam.NumColumn)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunner_QueryPage_RequiresOrderTerms(t *testing.T) {
	runner, _ := newMock(t)

	_, err := runner.QueryPage(context.Background(), &seam.Query{
		Table:  "users",
		Alias:  "u",
		Fields: []seam.Field{{Name: "id", Expr: "u.id"}},
	}, nil, 0, 10)
	require.Error(t, err)
	assert.True(t, seam.IsBuildErr(err))
	assert.Contains(t, err.Error(), "order term")
}

func TestRunner_ComposeErrorSurfaces(t *testing.T) {
	runner, _ := newMock(t)

	_, err := runner.Query(context.Background(), &seam.Query{}, nil)
	require.Error(t, err)
	assert.True(t, seam.IsBuildErr(err))
}
