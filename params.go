package seam

import (
	"regexp"
	"strconv"
	"strings"
)

// PlaceholderFormat selects the positional marker the rewriter emits for each
// named placeholder occurrence.
type PlaceholderFormat int

const (
	// Question emits ? for every occurrence (SQLite, MySQL).
	Question PlaceholderFormat = iota
	// Dollar emits $1, $2, ... in occurrence order (PostgreSQL).
	Dollar
)

// marker returns the positional marker for the n-th bound argument, 1-based.
func (f PlaceholderFormat) marker(n int) string {
	if f == Dollar {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

const (
	orderMacro    = "$order_by"
	revOrderMacro = "$rev_order_by"
)

// placeholderPattern matches ?name tokens: a question mark followed by an
// identifier. A bare ? (already-positional marker) is left alone.
var placeholderPattern = regexp.MustCompile(`\?([A-Za-z_][A-Za-z0-9_]*)`)

// rewrite runs the two-pass parameter rewrite over fully assembled SQL text:
// macros first, then named placeholders. It returns the rewritten text and
// the bound values in placeholder occurrence order, left to right.
func rewrite(text string, params map[string]any, orderBy []string, f PlaceholderFormat) (string, []any, error) {
	text, err := expandMacros(text, orderBy)
	if err != nil {
		return "", nil, err
	}
	return bindPlaceholders(text, params, f)
}

// expandMacros substitutes $order_by with the joined order-term list and
// $rev_order_by with the same list direction-flipped. Using either macro
// without order terms is an error: the macro has nothing to expand to and
// emitting an empty ORDER BY would be silently wrong.
func expandMacros(text string, orderBy []string) (string, error) {
	if !strings.Contains(text, orderMacro) && !strings.Contains(text, revOrderMacro) {
		return text, nil
	}
	if len(orderBy) == 0 {
		return "", buildErrf("order_by macro used but no order terms were supplied")
	}

	text = strings.ReplaceAll(text, revOrderMacro, strings.Join(reverseOrder(orderBy), ", "))
	text = strings.ReplaceAll(text, orderMacro, strings.Join(orderBy, ", "))
	return text, nil
}

// reverseOrder flips every ASC/DESC token in each order term. Terms without an
// explicit direction are left untouched; supplying one is the caller's
// responsibility when reverse ordering matters.
func reverseOrder(terms []string) []string {
	out := make([]string, len(terms))
	for i, term := range terms {
		words := strings.Fields(term)
		for j, w := range words {
			switch {
			case strings.EqualFold(w, "ASC"):
				words[j] = "DESC"
			case strings.EqualFold(w, "DESC"):
				words[j] = "ASC"
			}
		}
		out[i] = strings.Join(words, " ")
	}
	return out
}

// bindPlaceholders scans left-to-right for ?name tokens and folds over them,
// threading the rewritten text and argument list forward instead of mutating
// shared state. Every occurrence contributes its own argument, so a name used
// k times binds k values; some binding protocols require exactly one argument
// per marker.
func bindPlaceholders(text string, params map[string]any, f PlaceholderFormat) (string, []any, error) {
	matches := placeholderPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text, nil, nil
	}

	var (
		b    strings.Builder
		args []any
		pos  int
	)
	for _, m := range matches {
		name := text[m[2]:m[3]]
		value, ok := params[name]
		if !ok {
			return "", nil, buildErrf("Missing parameter: %s", name)
		}
		args = append(args, value)
		b.WriteString(text[pos:m[0]])
		b.WriteString(f.marker(len(args)))
		pos = m[1]
	}
	b.WriteString(text[pos:])
	return b.String(), args, nil
}
