package seam

import "strings"

// Composer builds SQL statements for a particular engine's placeholder style.
// The zero value emits ? markers.
//
// Composers hold no state beyond the placeholder format; they are safe for
// concurrent use and every call is independent.
type Composer struct {
	Placeholder PlaceholderFormat
}

// Compose assembles the query and options into a single SQL statement and its
// positionally ordered argument list.
//
// The pipeline is fixed: validation, then the WITH, SELECT, FROM/JOIN, and
// WHERE/ORDER/LIMIT/OFFSET builders, fragment concatenation, and finally the
// parameter rewrite. Any failure surfaces as a BuildError with no partial
// result.
func (c Composer) Compose(q *Query, opts *Options) (*Result, error) {
	if err := validate(q, opts); err != nil {
		return nil, asBuildErr(err)
	}

	with, err := withClause(q)
	if err != nil {
		return nil, asBuildErr(err)
	}

	fragments := []string{
		with,
		selectClause(q, opts),
		fromClause(q),
		joinClauses(q),
		tailClause(q, opts),
	}
	var nonEmpty []string
	for _, f := range fragments {
		if f != "" {
			nonEmpty = append(nonEmpty, f)
		}
	}
	text := strings.Join(nonEmpty, " ")

	text, args, err := rewrite(text, mergeParams(q, opts), orderTerms(opts), c.Placeholder)
	if err != nil {
		return nil, asBuildErr(err)
	}
	return &Result{Text: text, Args: args}, nil
}

// Compose assembles a statement with the default ? placeholder markers.
// Use a Composer with PlaceholderFormat Dollar for engines that bind $n.
func Compose(q *Query, opts *Options) (*Result, error) {
	return Composer{}.Compose(q, opts)
}

// mergeParams combines subquery-declared parameter values with the
// per-invocation map. Invocation values win on name collision.
func mergeParams(q *Query, opts *Options) map[string]any {
	merged := make(map[string]any)
	for _, s := range q.Subqueries {
		for k, v := range s.Params {
			merged[k] = v
		}
	}
	if opts != nil {
		for k, v := range opts.Params {
			merged[k] = v
		}
	}
	return merged
}

func orderTerms(opts *Options) []string {
	if opts == nil {
		return nil
	}
	return opts.OrderBy
}
