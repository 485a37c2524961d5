package cql

import (
	"strings"

	"github.com/roach88/sruq/internal/config"
	"github.com/roach88/sruq/internal/sruerr"
	"github.com/roach88/sruq/internal/validate"
)

// termEscaper keeps a term inside the query parameter.
var termEscaper = strings.NewReplacer(" ", "%20", "&", "%26", "#", "%23", "+", "%2B")

// SearchClause is [set.]index relation[/modifiers] "term", or just "term".
type SearchClause struct {
	contextSet string
	index      string
	relation   string
	term       string
	modifiers  []*Modifier
}

// NewSearchClause builds a search clause. Index and relation must be given
// together, a context set needs an index, and modifiers must be relation
// modifiers attached to a relation. Empty strings mean "omitted"; the term
// itself may be empty.
func NewSearchClause(contextSet, index, relation, term string, modifiers ...*Modifier) (*SearchClause, error) {
	if index != "" && relation == "" {
		return nil, sruerr.Invalidf("Index '%s' needs a relation.", index)
	}
	if relation != "" && index == "" {
		return nil, sruerr.Invalidf("Relation '%s' needs an index.", relation)
	}
	if contextSet != "" && index == "" {
		return nil, sruerr.Invalidf("Context set '%s' needs an index.", contextSet)
	}
	for _, m := range modifiers {
		if m == nil {
			return nil, sruerr.Invalidf("Modifier on index '%s' is nil.", index)
		}
		if relation == "" {
			return nil, sruerr.Invalidf("Modifier '%s' needs a relation to attach to.", m.Format())
		}
		if m.kind != RelationModifier && m.kind != GenericModifier {
			return nil, sruerr.Invalidf("Modifier '%s' of type '%s' cannot modify a relation.", m.Format(), m.kind)
		}
	}
	return &SearchClause{
		contextSet: contextSet,
		index:      index,
		relation:   relation,
		term:       term,
		modifiers:  append([]*Modifier(nil), modifiers...),
	}, nil
}

// Term builds a clause holding only a search term, validated against the
// default context set and index.
func Term(term string) *SearchClause {
	return &SearchClause{term: term}
}

// Format returns the clause text.
func (c *SearchClause) Format() (string, error) {
	return c.render(false, true)
}

func (c *SearchClause) render(nested, first bool) (string, error) {
	var b strings.Builder
	if c.contextSet != "" {
		b.WriteString(c.contextSet)
		b.WriteByte('.')
	}
	if c.index != "" {
		b.WriteString(c.index)
		b.WriteString("%20")
		b.WriteString(c.relation)
		if len(c.modifiers) == 0 {
			b.WriteString("%20")
		}
	}
	b.WriteString(formatModifiers(c.modifiers))
	b.WriteByte('"')
	b.WriteString(termEscaper.Replace(c.term))
	b.WriteByte('"')
	return b.String(), nil
}

// Validate checks the clause, then each modifier.
func (c *SearchClause) Validate(cfg *config.Configuration) error {
	term := c.term
	err := validate.CQL(cfg, validate.Clause{
		ContextSet: c.contextSet,
		Index:      c.index,
		Relation:   c.relation,
		Term:       &term,
	})
	if err != nil {
		return err
	}
	for _, m := range c.modifiers {
		if err := m.Validate(cfg); err != nil {
			return err
		}
	}
	return nil
}

// Raw is a literal CQL fragment passed through unchanged.
type Raw struct {
	text   string
	padded bool
}

// NewRaw builds a raw fragment. When padded, the text is wrapped in %20 on
// both sides.
func NewRaw(text string, padded bool) (*Raw, error) {
	if text == "" {
		return nil, sruerr.Invalidf("Raw CQL '' is empty.")
	}
	return &Raw{text: text, padded: padded}, nil
}

// Format returns the raw text, padded if requested.
func (r *Raw) Format() (string, error) {
	return r.render(false, true)
}

func (r *Raw) render(nested, first bool) (string, error) {
	if r.padded {
		return "%20" + r.text + "%20", nil
	}
	return r.text, nil
}

// Validate always succeeds; raw fragments are not inspected.
func (r *Raw) Validate(*config.Configuration) error {
	return nil
}
