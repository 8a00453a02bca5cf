package seam

// PageRequest describes the page a result set was fetched with.
type PageRequest struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Pagination is the metadata derived from the synthetic window-count columns.
type Pagination struct {
	Page    int  `json:"page"`
	Limit   int  `json:"limit"`
	Total   int  `json:"total"`
	HasMore bool `json:"has_more"`
}

// PageResult pairs a page of rows with its pagination metadata.
type PageResult struct {
	Data       []Row      `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// Paginate decorates a page of rows with total/has-more metadata computed from
// the num and remaining window-count columns the composer appends to ordered,
// fully paginated statements.
//
// The first row's position plus its remaining count gives the total across all
// pages; the last row's remaining count decides has_more. Every row must carry
// both columns or a BuildError is returned. The synthetic columns are stripped
// from the returned rows.
func Paginate(rows []Row, req PageRequest) (*PageResult, error) {
	res := &PageResult{
		Data: rows,
		Pagination: Pagination{
			Page:  req.Page,
			Limit: req.Limit,
		},
	}
	if len(rows) == 0 {
		return res, nil
	}

	firstNum, err := windowCount(rows[0], NumColumn)
	if err != nil {
		return nil, err
	}
	firstRemaining, err := windowCount(rows[0], RemainingColumn)
	if err != nil {
		return nil, err
	}
	lastRemaining, err := windowCount(rows[len(rows)-1], RemainingColumn)
	if err != nil {
		return nil, err
	}

	res.Pagination.Total = firstRemaining + firstNum
	res.Pagination.HasMore = lastRemaining > 0

	for _, row := range rows {
		delete(row, NumColumn)
		delete(row, RemainingColumn)
	}
	return res, nil
}

// windowCount extracts an integer window-count column from a row, tolerating
// the numeric types drivers actually hand back.
func windowCount(row Row, column string) (int, error) {
	v, ok := row[column]
	if !ok {
		return 0, buildErrf("row is missing window count field %q; compose with order terms, page, and page size", column)
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case uint64:
		return int(n), nil
	case float64:
		return int(n), nil
	case []byte:
		return atoiBytes(n, column)
	default:
		return 0, buildErrf("window count field %q has non-numeric value %T", column, v)
	}
}

func atoiBytes(b []byte, column string) (int, error) {
	n := 0
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, buildErrf("window count field %q has non-numeric value %q", column, string(b))
		}
		n = n*10 + int(c-'0')
	}
	return n, nil
}
