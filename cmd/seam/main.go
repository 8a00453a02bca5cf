// Package main provides the seam CLI for composing and running queries.
//
// The CLI supports:
//   - compose: Assemble a query definition file into SQL text and arguments
//   - run: Execute a query definition against a configured database
//   - version: Print version information
//
// Query definitions are YAML files holding a query shape and its runtime
// options. Database settings come from seam.yaml, environment variables
// with the SEAM_ prefix, or flags.
package main

func main() {
	Execute()
}
