// Package seam assembles composable SQL statements from declarative query
// descriptions: a primary source, named subqueries expanded as Common Table
// Expressions, ordered field projections, join conditions, filters, ordering,
// and pagination.
//
// The output of a composition is a single executable SQL string plus a
// positionally ordered argument list safe for parameterized execution. Seam
// emits text, not a dialect-bound AST; it targets engines with CTE and
// window-function support but stays syntactically engine-agnostic.
//
// # Basic Usage
//
//	res, err := seam.Compose(&seam.Query{
//	    Table: "users",
//	    Alias: "u",
//	    Fields: []seam.Field{
//	        {Name: "id", Expr: "u.id"},
//	        {Name: "name", Expr: "u.name"},
//	    },
//	    Filter: "u.active = ?active",
//	}, &seam.Options{
//	    Params: map[string]any{"active": true},
//	})
//	// res.Text: SELECT u.id AS id, u.name AS name FROM users AS u WHERE (u.active = ?)
//	// res.Args: [true]
//
// # Subqueries and View Dependencies
//
// Each Subquery becomes a CTE joined back to the primary source. Subqueries
// may declare nested ViewDef dependencies; these are expanded depth-first into
// the WITH clause in dependency order, de-duplicated by name across the whole
// request.
//
// # Parameters
//
// Named placeholders use ?name syntax in filters, join predicates, and
// subquery bodies. The rewriter replaces each occurrence with the engine's
// positional marker and collects the bound values in occurrence order. A name
// appearing k times contributes k arguments, one per occurrence.
//
// # Execution
//
// Composition itself performs no I/O. Runner glues a composed statement to any
// database/sql-compatible handle via the minimal Querier interface, and
// Paginate decorates windowed result sets with total/has-more metadata.
//
// Every composition call is pure over its inputs: no shared state, identical
// inputs yield byte-identical output.
package seam

import (
	"context"
	"database/sql"
)

// Field maps an output column name to the SQL expression that produces it.
// Projections are slices of Field because column order is significant: it
// follows declaration order, main-query fields before subquery fields.
type Field struct {
	Name string `json:"name"`
	Expr string `json:"expr"`
}

// JoinKind selects how a subquery CTE is joined to the primary source.
type JoinKind string

const (
	// JoinInner drops primary rows with no match in the subquery.
	JoinInner JoinKind = "INNER"
	// JoinLeft preserves primary rows with no match, joined columns null.
	JoinLeft JoinKind = "LEFT"
)

// ViewDef is a named SQL fragment that other fragments may depend on. Views
// form a dependency DAG; each view is emitted into the WITH clause after its
// own dependencies. Names are trusted structural configuration and are used
// verbatim. Cyclic definitions are rejected during composition.
type ViewDef struct {
	Name  string    `json:"name"`
	Query string    `json:"query"`
	Views []ViewDef `json:"views,omitempty"`
}

// Subquery is a named, aliased CTE-eligible unit joined to the primary source.
//
// Name, Alias, Query, Join, and On are all required. Fields follow the same
// contract as Query.Fields. Params supplies values for named placeholders the
// subquery body references; Options.Params win on collision. Views lists
// nested view definitions the subquery body depends on.
type Subquery struct {
	Name   string         `json:"name"`
	Alias  string         `json:"alias"`
	Query  string         `json:"query"`
	Join   JoinKind       `json:"join"`
	On     string         `json:"on"`
	Fields []Field        `json:"fields,omitempty"`
	Params map[string]any `json:"params,omitempty"`
	Views  []ViewDef      `json:"views,omitempty"`
}

// Query is the root composition unit.
//
// Exactly one of Table (a bare table name) or From (raw subquery text) must be
// set, Alias must be non-empty, and at least one Field is required. Table and
// Alias are sanitized before emission; From, Filter, and all field expressions
// are trusted verbatim.
type Query struct {
	Table      string     `json:"table,omitempty"`
	From       string     `json:"from,omitempty"`
	Alias      string     `json:"alias"`
	Fields     []Field    `json:"fields"`
	Filter     string     `json:"filter,omitempty"`
	Subqueries []Subquery `json:"subqueries,omitempty"`
}

// Options carries per-invocation overrides.
//
// Filter is ANDed with the query's own filter. Params supplies values for
// named placeholders. Page is zero-based; PageSize yields LIMIT, and OFFSET is
// emitted only when both Page and PageSize are set. OrderBy terms are raw
// "<expr> ASC|DESC" strings emitted verbatim.
type Options struct {
	Filter   string         `json:"filter,omitempty"`
	Params   map[string]any `json:"params,omitempty"`
	Page     *int           `json:"page,omitempty"`
	PageSize *int           `json:"page_size,omitempty"`
	OrderBy  []string       `json:"order_by,omitempty"`
}

// Result is the outcome of a composition: the final SQL text and the bound
// values, index-aligned with placeholder occurrence order in the text.
type Result struct {
	Text string
	Args []any
}

// Row is a single result record keyed by output column name.
type Row map[string]any

// Names of the synthetic window-count columns appended to the projection when
// a composition orders and fully paginates. Paginate consumes them to derive
// total/has-more metadata.
const (
	// NumColumn is the row's absolute position in the effective ordering.
	NumColumn = "num"
	// RemainingColumn counts rows strictly after this row in the effective
	// ordering.
	RemainingColumn = "remaining"
)

// Querier executes queries against a SQL database.
// Implemented by *sql.DB, *sql.Tx, and *sql.Conn.
//
// The minimal interface lets Runner work in transaction contexts without
// requiring a full database handle, so composed statements can observe
// uncommitted changes within a transaction.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}
