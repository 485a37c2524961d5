package cql

import (
	"strings"

	"github.com/roach88/sruq/internal/config"
	"github.com/roach88/sruq/internal/sruerr"
)

// Operator is a CQL boolean operator.
type Operator string

const (
	OpAnd  Operator = "and"
	OpOr   Operator = "or"
	OpNot  Operator = "not"
	OpProx Operator = "prox"
)

// ParseOperator accepts an operator name in any case.
func ParseOperator(s string) (Operator, error) {
	switch op := Operator(strings.ToLower(s)); op {
	case OpAnd, OpOr, OpNot, OpProx:
		return op, nil
	default:
		return "", sruerr.Invalidf("Operator '%s' is not supported; use AND, OR, NOT or PROX.", s)
	}
}

const unaryFirstError = "Operator '%s' has a single condition and is the first condition of its parent (or the whole query); single-condition operators must follow another condition."

// Boolean joins one or more child expressions with an operator.
type Boolean struct {
	op        Operator
	children  []Node
	modifiers []*Modifier
}

// NewBoolean builds an operator node. children must be non-empty and free
// of nils; modifiers must suit the operator.
func NewBoolean(op Operator, children []Node, modifiers ...*Modifier) (*Boolean, error) {
	if _, err := ParseOperator(string(op)); err != nil {
		return nil, err
	}
	if len(children) == 0 {
		return nil, sruerr.Invalidf("Operator '%s' has no conditions; an operator must have a minimum of one condition.", op)
	}
	for i, child := range children {
		if child == nil {
			return nil, sruerr.Invalidf("Condition %d of operator '%s' is nil.", i, op)
		}
	}
	for _, m := range modifiers {
		if m == nil {
			return nil, sruerr.Invalidf("Modifier on operator '%s' is nil.", op)
		}
		if !modifierFits(op, m.kind) {
			return nil, sruerr.Invalidf("Modifier '%s' of type '%s' cannot modify operator '%s'.", m.Format(), m.kind, op)
		}
	}
	return &Boolean{
		op:        op,
		children:  append([]Node(nil), children...),
		modifiers: append([]*Modifier(nil), modifiers...),
	}, nil
}

func modifierFits(op Operator, kind ModifierKind) bool {
	switch kind {
	case GenericModifier, BooleanModifier:
		return true
	case ProxModifier:
		return op == OpProx
	default:
		return false
	}
}

func build(op Operator, first Node, rest []Node) *Boolean {
	children := make([]Node, 0, len(rest)+1)
	children = append(children, first)
	children = append(children, rest...)
	return &Boolean{op: op, children: children}
}

// And joins the children with "and".
func And(first Node, rest ...Node) *Boolean { return build(OpAnd, first, rest) }

// Or joins the children with "or".
func Or(first Node, rest ...Node) *Boolean { return build(OpOr, first, rest) }

// Not joins the children with "not".
func Not(first Node, rest ...Node) *Boolean { return build(OpNot, first, rest) }

// Prox joins the children with "prox".
func Prox(first Node, rest ...Node) *Boolean { return build(OpProx, first, rest) }

// WithModifiers returns a copy of b carrying the given modifiers.
func (b *Boolean) WithModifiers(modifiers ...*Modifier) (*Boolean, error) {
	return NewBoolean(b.op, b.children, modifiers...)
}

// Operator returns the node's operator.
func (b *Boolean) Operator() Operator { return b.op }

// Format returns the expression text.
func (b *Boolean) Format() (string, error) {
	return b.render(false, true)
}

func (b *Boolean) render(nested, first bool) (string, error) {
	unary := len(b.children) == 1
	if first && unary {
		return "", sruerr.Invalidf(unaryFirstError, b.op)
	}

	var out strings.Builder
	for i, child := range b.children {
		if child == nil {
			return "", sruerr.Invalidf("Condition %d of operator '%s' is nil.", i, b.op)
		}
		childFirst := i == 0
		if b.precedes(child, childFirst, first, unary) {
			out.WriteString(b.token())
		}
		text, err := child.render(true, childFirst)
		if err != nil {
			return "", err
		}
		out.WriteString(text)
	}

	if nested && !unary {
		return "(" + out.String() + ")", nil
	}
	return out.String(), nil
}

// precedes decides whether b's operator token goes in front of a child.
// selfFirst and selfUnary describe b itself.
func (b *Boolean) precedes(child Node, childFirst, selfFirst, selfUnary bool) bool {
	switch c := child.(type) {
	case *Boolean:
		if len(c.children) == 1 {
			return !selfFirst
		}
		return !childFirst
	case *SearchClause, *Raw:
		return !childFirst || (selfUnary && !selfFirst)
	default:
		return false
	}
}

func (b *Boolean) token() string {
	return "%20" + string(b.op) + "%20" + formatModifiers(b.modifiers)
}

// Validate checks every child in order, then the operator's modifiers.
func (b *Boolean) Validate(cfg *config.Configuration) error {
	for i, child := range b.children {
		if child == nil {
			return sruerr.Invalidf("Condition %d of operator '%s' is nil.", i, b.op)
		}
		if err := child.Validate(cfg); err != nil {
			return err
		}
	}
	for _, m := range b.modifiers {
		if err := m.Validate(cfg); err != nil {
			return err
		}
	}
	return nil
}
