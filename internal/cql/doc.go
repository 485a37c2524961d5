// Package cql builds Contextual Query Language expression trees and
// serializes them into the query parameter of an SRU searchRetrieve URL.
//
// A tree is made of leaves (SearchClause, Raw) and Boolean nodes (and, or,
// not, prox) holding one or more children. Node is a sealed interface: only
// this package can add variants, so every switch over nodes is exhaustive.
//
//	q := cql.And(
//	    cql.Must(cql.NewSearchClause("alma", "title", "=", "dune")),
//	    cql.Or(cql.Must(cql.NewSearchClause("alma", "title", "=", "arrakis"))),
//	)
//	s, err := q.Format() // alma.title%20=%20"dune"%20or%20alma.title%20=%20"arrakis"
//
// # Serialization
//
// Spaces are written as the literal token %20 and every term is wrapped in
// double quotes, even when empty. Operator tokens are lower case.
//
// A Boolean node with a single child is not a unary operator: its operator
// name is injected into the parent's token stream in front of the child,
// which lets a single-child NOT or OR override the parent's operator inline.
// Such a node may therefore never be the first operand of its parent, nor
// the whole expression; Format reports it as an error wherever it occurs.
// Nodes with two or more children are parenthesized when nested.
//
// # Validation
//
// Validate walks the tree depth first and returns the first violation of
// the server configuration, delegating leaf checks to package validate.
//
// # Maps
//
// FromMap and ToMap convert between trees and the nested map shape used in
// request files: a "type" discriminator of searchClause, booleanOperator or
// rawCQL, with operator children under "conditions".
package cql
