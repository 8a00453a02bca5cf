package seam

import (
	"context"
	"fmt"
)

// Runner glues composed statements to a database handle. It composes, executes
// through the minimal Querier interface, and scans results into Rows.
//
// Runners are lightweight and safe to create per request; they hold no state
// beyond the database handle and the placeholder format. The handle can be
// *sql.DB, *sql.Tx, or *sql.Conn, so composed statements can observe
// uncommitted changes within a transaction.
type Runner struct {
	db       Querier
	composer Composer
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithPlaceholder sets the positional marker style for the target engine.
// Use Dollar for PostgreSQL; the default Question suits SQLite and MySQL.
func WithPlaceholder(f PlaceholderFormat) RunnerOption {
	return func(r *Runner) {
		r.composer.Placeholder = f
	}
}

// NewRunner creates a Runner over the given database handle.
func NewRunner(db Querier, opts ...RunnerOption) *Runner {
	r := &Runner{db: db}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Query composes the statement and executes it, returning every result row
// keyed by output column name.
func (r *Runner) Query(ctx context.Context, q *Query, opts *Options) ([]Row, error) {
	res, err := r.composer.Compose(q, opts)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, res.Text, res.Args...)
	if err != nil {
		return nil, fmt.Errorf("executing composed query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading result columns: %w", err)
	}

	var out []Row
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		row := make(Row, len(columns))
		for i, c := range columns {
			row[c] = values[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return out, nil
}

// QueryPage composes with the given page, executes, and decorates the result
// with pagination metadata from the window-count columns. Order terms are
// required; without them the statement cannot carry the window columns the
// metadata is derived from.
func (r *Runner) QueryPage(ctx context.Context, q *Query, opts *Options, page, pageSize int) (*PageResult, error) {
	if opts == nil {
		opts = &Options{}
	}
	if len(opts.OrderBy) == 0 {
		return nil, buildErrf("paged queries require at least one order term")
	}

	paged := *opts
	paged.Page = &page
	paged.PageSize = &pageSize

	rows, err := r.Query(ctx, q, &paged)
	if err != nil {
		return nil, err
	}
	return Paginate(rows, PageRequest{Page: page, Limit: pageSize})
}
