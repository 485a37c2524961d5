package cql

import "github.com/roach88/sruq/internal/config"

// Node is a CQL expression: a leaf or a Boolean node.
type Node interface {
	// Format returns the URL-encoded CQL text of the whole expression.
	Format() (string, error)

	// Validate checks the expression against a server configuration.
	Validate(cfg *config.Configuration) error

	// render formats the node as a child. nested is false only for the
	// root; first reports whether the node is the first child of its
	// parent (the root counts as first).
	render(nested, first bool) (string, error)
}

// Must unwraps a constructor result, panicking on error. Use it only with
// literal arguments known to be valid.
func Must[T Node](n T, err error) T {
	if err != nil {
		panic(err)
	}
	return n
}
