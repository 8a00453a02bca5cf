package seam

import "strings"

// color represents the state of a view during DFS expansion.
type color int

const (
	white color = iota // unvisited
	gray               // in current DFS path (cycle if revisited)
	black              // emitted
)

// cteEntry is a flattened WITH-clause entry produced by view expansion.
type cteEntry struct {
	name  string
	query string
}

// expandViews flattens the view-dependency graphs of all subqueries into a
// single dependency-ordered CTE list: a view's own dependencies are emitted
// before it, and names are de-duplicated across the whole request with
// first-seen-wins ordering.
//
// Cyclic definitions are a caller error; they are detected with three-color
// marking and reported as a BuildError naming the cycle path rather than
// recursing forever or silently truncating.
func expandViews(subqueries []Subquery) ([]cteEntry, error) {
	colors := make(map[string]color)
	var out []cteEntry

	var visit func(v ViewDef, trail []string) error
	visit = func(v ViewDef, trail []string) error {
		switch colors[v.Name] {
		case black:
			return nil // already emitted under an earlier definition
		case gray:
			return buildErrf("cyclic view dependency: %s", formatCycle(trail, v.Name))
		}

		colors[v.Name] = gray
		trail = append(trail, v.Name)
		for _, dep := range v.Views {
			if err := visit(dep, trail); err != nil {
				return err
			}
		}
		colors[v.Name] = black
		out = append(out, cteEntry{name: v.Name, query: v.Query})
		return nil
	}

	for _, s := range subqueries {
		for _, v := range s.Views {
			if err := visit(v, nil); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// formatCycle renders the offending path, closing the loop on the revisited
// view. Example: "a -> b -> a".
func formatCycle(trail []string, repeat string) string {
	start := 0
	for i, name := range trail {
		if name == repeat {
			start = i
			break
		}
	}
	return strings.Join(append(trail[start:], repeat), " -> ")
}
