package test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seamql/seam"
	"github.com/seamql/seam/test/testutil"
)

func newRunner(t *testing.T) *seam.Runner {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	db := testutil.DB(t)
	return seam.NewRunner(db, seam.WithPlaceholder(seam.Dollar))
}

func TestQueryFiltersAndOrder(t *testing.T) {
	runner := newRunner(t)

	q := &seam.Query{
		Table: "users",
		Alias: "u",
		Fields: []seam.Field{
			{Name: "id", Expr: "u.id"},
			{Name: "name", Expr: "u.name"},
		},
		Filter: "u.active = ?active",
	}
	opts := &seam.Options{
		Filter:  "u.org_id = ?org",
		Params:  map[string]any{"active": true, "org": 1},
		OrderBy: []string{"u.name ASC"},
	}

	rows, err := runner.Query(context.Background(), q, opts)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "ada", rows[0]["name"])
	assert.Equal(t, "brian", rows[1]["name"])
	assert.Equal(t, "edith", rows[2]["name"])
}

func TestSubqueryJoinWithViews(t *testing.T) {
	runner := newRunner(t)

	q := &seam.Query{
		Table: "users",
		Alias: "u",
		Fields: []seam.Field{
			{Name: "id", Expr: "u.id"},
			{Name: "name", Expr: "u.name"},
		},
		Subqueries: []seam.Subquery{
			{
				Name:  "user_orders",
				Alias: "o",
				Query: "SELECT user_id, SUM(total) AS total, COUNT(*) AS n FROM big_orders GROUP BY user_id",
				Join:  seam.JoinInner,
				On:    "o.user_id = u.id",
				Fields: []seam.Field{
					{Name: "order_total", Expr: "o.total"},
					{Name: "order_count", Expr: "o.n"},
				},
				Params: map[string]any{"min": 20},
				Views: []seam.ViewDef{
					{Name: "big_orders", Query: "SELECT * FROM orders WHERE total >= ?min"},
				},
			},
		},
	}
	opts := &seam.Options{OrderBy: []string{"u.id ASC"}}

	rows, err := runner.Query(context.Background(), q, opts)
	require.NoError(t, err)

	// Orders >= 20: user 1 has two (25 + 75), user 3 has one (50).
	require.Len(t, rows, 2)
	assert.Equal(t, "ada", rows[0]["name"])
	assert.EqualValues(t, 2, rows[0]["order_count"])
	assert.Equal(t, "carla", rows[1]["name"])
	assert.EqualValues(t, 1, rows[1]["order_count"])
}

func TestQueryPageWindow(t *testing.T) {
	runner := newRunner(t)

	q := &seam.Query{
		Table: "users",
		Alias: "u",
		Fields: []seam.Field{
			{Name: "id", Expr: "u.id"},
			{Name: "name", Expr: "u.name"},
		},
	}
	opts := &seam.Options{OrderBy: []string{"u.id ASC"}}
	ctx := context.Background()

	first, err := runner.QueryPage(ctx, q, opts, 0, 2)
	require.NoError(t, err)
	require.Len(t, first.Data, 2)
	assert.Equal(t, 5, first.Pagination.Total)
	assert.True(t, first.Pagination.HasMore)
	assert.Equal(t, "ada", first.Data[0]["name"])
	assert.NotContains(t, first.Data[0], seam.NumColumn)
	assert.NotContains(t, first.Data[0], seam.RemainingColumn)

	last, err := runner.QueryPage(ctx, q, opts, 2, 2)
	require.NoError(t, err)
	require.Len(t, last.Data, 1)
	assert.Equal(t, 5, last.Pagination.Total)
	assert.False(t, last.Pagination.HasMore)
	assert.Equal(t, "edith", last.Data[0]["name"])
}

func TestQueryPageDescendingOrder(t *testing.T) {
	runner := newRunner(t)

	q := &seam.Query{
		Table: "orders",
		Alias: "o",
		Fields: []seam.Field{
			{Name: "id", Expr: "o.id"},
			{Name: "total", Expr: "o.total"},
		},
	}
	opts := &seam.Options{OrderBy: []string{"o.total DESC", "o.id ASC"}}

	res, err := runner.QueryPage(context.Background(), q, opts, 0, 3)
	require.NoError(t, err)
	require.Len(t, res.Data, 3)
	assert.Equal(t, 4, res.Pagination.Total)
	assert.True(t, res.Pagination.HasMore)
	assert.EqualValues(t, 11, res.Data[0]["id"])
	assert.EqualValues(t, 13, res.Data[1]["id"])
}

func TestRawFromSource(t *testing.T) {
	runner := newRunner(t)

	q := &seam.Query{
		From:  "SELECT id, name FROM users WHERE active",
		Alias: "a",
		Fields: []seam.Field{
			{Name: "name", Expr: "a.name"},
		},
	}
	opts := &seam.Options{OrderBy: []string{"a.id DESC"}}

	rows, err := runner.Query(context.Background(), q, opts)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "edith", rows[0]["name"])
}
