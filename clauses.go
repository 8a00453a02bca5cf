package seam

import (
	"fmt"
	"strings"
)

// Ident sanitizes a name for use as a SQL identifier by stripping every
// character outside [A-Za-z0-9_]. Characters are removed, not escaped.
//
// Only structural identifiers pass through here: table names, aliases, and
// subquery CTE names. Field expressions, predicates, and order terms are
// caller-controlled SQL and are emitted verbatim; that trust boundary is
// deliberate.
func Ident(name string) string {
	var b strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// withClause renders the WITH clause for the query's subqueries, preceded by
// their expanded view dependencies in dependency-then-declaration order.
// Returns an empty string when the query has no subqueries.
func withClause(q *Query) (string, error) {
	if len(q.Subqueries) == 0 {
		return "", nil
	}

	views, err := expandViews(q.Subqueries)
	if err != nil {
		return "", err
	}

	parts := make([]string, 0, len(views)+len(q.Subqueries))
	for _, v := range views {
		// View names originate as structural configuration and are trusted
		// verbatim; only subquery CTE names are sanitized.
		parts = append(parts, v.name+" AS ("+v.query+")")
	}
	for _, s := range q.Subqueries {
		parts = append(parts, Ident(s.Name)+" AS ("+s.Query+")")
	}
	return "WITH " + strings.Join(parts, ", "), nil
}

// selectClause renders the projection: main-query fields first, then each
// subquery's fields in declaration order, each as "expr AS name". When the
// invocation orders and fully paginates, two synthetic window-count columns
// are appended; their ORDER BY macros are resolved by the parameter rewriter.
func selectClause(q *Query, opts *Options) string {
	var parts []string
	for _, f := range q.Fields {
		parts = append(parts, f.Expr+" AS "+Ident(f.Name))
	}
	for _, s := range q.Subqueries {
		for _, f := range s.Fields {
			parts = append(parts, f.Expr+" AS "+Ident(f.Name))
		}
	}

	if windowed(opts) {
		parts = append(parts,
			"ROW_NUMBER() OVER (ORDER BY $order_by) AS "+NumColumn,
			"(COUNT(*) OVER (ORDER BY $rev_order_by)) - 1 AS "+RemainingColumn,
		)
	}
	return "SELECT " + strings.Join(parts, ", ")
}

// fromClause renders the primary source. Table names and aliases are
// sanitized; raw From text is emitted inside parentheses untouched.
func fromClause(q *Query) string {
	if q.Table != "" {
		return "FROM " + Ident(q.Table) + " AS " + Ident(q.Alias)
	}
	return "FROM (" + q.From + ") AS " + Ident(q.Alias)
}

// joinClauses renders one JOIN line per subquery in declaration order,
// newline-joined. The joined relation is the subquery's CTE.
func joinClauses(q *Query) string {
	if len(q.Subqueries) == 0 {
		return ""
	}
	lines := make([]string, len(q.Subqueries))
	for i, s := range q.Subqueries {
		lines[i] = string(s.Join) + " JOIN " + Ident(s.Name) + " AS " + Ident(s.Alias) + " ON " + s.On
	}
	return strings.Join(lines, "\n")
}

// tailClause renders WHERE, ORDER BY, LIMIT, and OFFSET. The query's filter
// and the per-invocation filter are each parenthesized and AND-joined. OFFSET
// is emitted only when both page and page size are present; page size alone
// yields a bare LIMIT.
func tailClause(q *Query, opts *Options) string {
	var parts []string

	var filters []string
	if q.Filter != "" {
		filters = append(filters, "("+q.Filter+")")
	}
	if opts != nil && opts.Filter != "" {
		filters = append(filters, "("+opts.Filter+")")
	}
	if len(filters) > 0 {
		parts = append(parts, "WHERE "+strings.Join(filters, " AND "))
	}

	if opts != nil {
		if len(opts.OrderBy) > 0 {
			parts = append(parts, "ORDER BY "+strings.Join(opts.OrderBy, ", "))
		}
		if opts.PageSize != nil {
			parts = append(parts, fmt.Sprintf("LIMIT %d", *opts.PageSize))
			if opts.Page != nil {
				parts = append(parts, fmt.Sprintf("OFFSET %d", *opts.Page**opts.PageSize))
			}
		}
	}
	return strings.Join(parts, " ")
}

// windowed reports whether the synthetic window-count columns apply: order
// terms present and both page and page size supplied.
func windowed(opts *Options) bool {
	return opts != nil && len(opts.OrderBy) > 0 && opts.Page != nil && opts.PageSize != nil
}
