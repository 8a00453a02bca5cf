package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/seamql/seam"
	"github.com/seamql/seam/internal/cli"
)

// queryFile is the on-disk shape of a query definition.
type queryFile struct {
	Query   seam.Query    `json:"query"`
	Options *seam.Options `json:"options,omitempty"`
}

// loadQueryFile reads and parses a YAML query definition.
func loadQueryFile(path string) (*queryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, cli.QueryParseError("reading query file", err)
	}

	var qf queryFile
	if err := yaml.UnmarshalStrict(data, &qf); err != nil {
		return nil, cli.QueryParseError(fmt.Sprintf("parsing query file %s", path), err)
	}

	return &qf, nil
}

// applyParamOverrides merges --param key=value pairs into the options,
// creating options if the file had none. Values that parse as integers,
// floats, or booleans are bound as such; everything else binds as a string.
func applyParamOverrides(opts *seam.Options, pairs []string) (*seam.Options, error) {
	if len(pairs) == 0 {
		return opts, nil
	}

	if opts == nil {
		opts = &seam.Options{}
	}
	if opts.Params == nil {
		opts.Params = make(map[string]any, len(pairs))
	}

	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, cli.QueryParseError(fmt.Sprintf("invalid --param %q (expected key=value)", pair), nil)
		}
		opts.Params[key] = coerceParam(raw)
	}

	return opts, nil
}

func coerceParam(raw string) any {
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	return raw
}

// placeholderFromName maps a config placeholder name to a format.
func placeholderFromName(name string) (seam.PlaceholderFormat, error) {
	switch name {
	case "question", "":
		return seam.Question, nil
	case "dollar":
		return seam.Dollar, nil
	default:
		return seam.Question, cli.ConfigError(fmt.Sprintf("unknown placeholder style %q (question or dollar)", name), nil)
	}
}
