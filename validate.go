package seam

// validate checks a composition request for structural completeness before any
// text is assembled. Checks run in a fixed order and fail on the first
// violation so error messages stay stable across releases:
//
//  1. source presence (exactly one of Table/From)
//  2. alias presence
//  3. at least one field
//  4. page not negative, when provided
//  5. page size positive, when provided
//  6. per-subquery completeness and join kind
func validate(q *Query, opts *Options) error {
	if q == nil {
		return buildErrf("query is required")
	}

	switch {
	case q.Table == "" && q.From == "":
		return buildErrf("query requires a source: set Table or From")
	case q.Table != "" && q.From != "":
		return buildErrf("query source is ambiguous: Table and From are mutually exclusive")
	}

	if q.Alias == "" {
		return buildErrf("query alias is required")
	}
	if len(q.Fields) == 0 {
		return buildErrf("query requires at least one field")
	}

	if opts != nil {
		if opts.Page != nil && *opts.Page < 0 {
			return buildErrf("page must not be negative, got %d", *opts.Page)
		}
		if opts.PageSize != nil && *opts.PageSize <= 0 {
			return buildErrf("page size must be positive, got %d", *opts.PageSize)
		}
	}

	for i, s := range q.Subqueries {
		if err := validateSubquery(i, s); err != nil {
			return err
		}
	}
	return nil
}

func validateSubquery(i int, s Subquery) error {
	switch {
	case s.Name == "":
		return buildErrf("subquery %d: name is required", i)
	case s.Alias == "":
		return buildErrf("subquery %q: alias is required", s.Name)
	case s.Query == "":
		return buildErrf("subquery %q: query text is required", s.Name)
	case s.Join == "":
		return buildErrf("subquery %q: join kind is required", s.Name)
	case s.On == "":
		return buildErrf("subquery %q: join predicate is required", s.Name)
	}
	if s.Join != JoinInner && s.Join != JoinLeft {
		return buildErrf("subquery %q: join kind %q is not supported (INNER or LEFT)", s.Name, s.Join)
	}
	return nil
}
