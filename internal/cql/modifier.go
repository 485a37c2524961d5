package cql

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/roach88/sruq/internal/config"
	"github.com/roach88/sruq/internal/sruerr"
	"github.com/roach88/sruq/internal/validate"
)

// ModifierKind selects which base names and values a modifier accepts.
type ModifierKind string

const (
	// GenericModifier accepts any base name.
	GenericModifier ModifierKind = "Generic"
	// BooleanModifier attaches to and, or, not and prox.
	BooleanModifier ModifierKind = "AndOrNot"
	// ProxModifier attaches to prox and accepts unit and distance.
	ProxModifier ModifierKind = "Prox"
	// RelationModifier attaches to the relation of a search clause.
	RelationModifier ModifierKind = "Relation"
)

// defaultModifierContextSet applies when a modifier names no context set.
const defaultModifierContextSet = "cql"

// ComparisonSymbols are the comparisons a modifier may use.
var ComparisonSymbols = []string{"=", "<", "<=", ">", ">=", "<>"}

type modifierRules struct {
	// baseNames is a whitelist; nil accepts any base name.
	baseNames []string
	// values restricts values per context set and base name.
	values map[string]map[string][]string
}

var rulesByKind = map[ModifierKind]modifierRules{
	GenericModifier:  {},
	BooleanModifier:  {},
	RelationModifier: {},
	ProxModifier: {
		baseNames: []string{"unit", "distance"},
		values: map[string]map[string][]string{
			"cql": {"unit": {"word", "sentence", "paragraph", "element"}},
		},
	},
}

// Modifier is a /[set.]name[symbol"value"] fragment refining an operator or
// relation.
type Modifier struct {
	kind       ModifierKind
	contextSet string
	baseName   string
	comparison string
	value      string
}

// ModifierOption sets an optional part of a Modifier.
type ModifierOption func(*Modifier)

// InContextSet qualifies the base name with a context set.
func InContextSet(contextSet string) ModifierOption {
	return func(m *Modifier) { m.contextSet = contextSet }
}

// Compare adds a comparison and its value.
func Compare(symbol, value string) ModifierOption {
	return func(m *Modifier) {
		m.comparison = symbol
		m.value = value
	}
}

// NewModifier builds a modifier, checking its shape independently of any
// configuration.
func NewModifier(kind ModifierKind, baseName string, opts ...ModifierOption) (*Modifier, error) {
	rules, ok := rulesByKind[kind]
	if !ok {
		return nil, sruerr.Invalidf("Modifier kind '%s' is not supported.", kind)
	}
	if baseName == "" {
		return nil, sruerr.Invalidf("Modifier base name '' is empty; a base name is required.")
	}

	m := &Modifier{kind: kind, baseName: baseName}
	for _, opt := range opts {
		opt(m)
	}

	if m.comparison != "" && m.value == "" {
		return nil, sruerr.Invalidf("Comparison '%s' on modifier '%s' needs a value.", m.comparison, baseName)
	}
	if m.value != "" && m.comparison == "" {
		return nil, sruerr.Invalidf("Value '%s' on modifier '%s' needs a comparison symbol.", m.value, baseName)
	}
	if m.comparison != "" && !slices.Contains(ComparisonSymbols, m.comparison) {
		return nil, sruerr.Invalidf("Comparison symbol '%s' is not supported.", m.comparison)
	}
	if rules.baseNames != nil && !slices.Contains(rules.baseNames, baseName) {
		return nil, sruerr.Invalidf("Base name '%s' is not valid for modifier type '%s'.", baseName, kind)
	}
	return m, nil
}

// Kind returns the modifier kind.
func (m *Modifier) Kind() ModifierKind { return m.kind }

// Format returns the modifier text, e.g. /cql.unit="word".
func (m *Modifier) Format() string {
	var b strings.Builder
	b.WriteByte('/')
	if m.contextSet != "" {
		b.WriteString(m.contextSet)
		b.WriteByte('.')
	}
	b.WriteString(m.baseName)
	if m.comparison != "" {
		b.WriteString(m.comparison)
		b.WriteByte('"')
		b.WriteString(m.value)
		b.WriteByte('"')
	}
	return b.String()
}

// Validate checks the modifier's context set and value restrictions, and
// for relation modifiers the server's published modifier list.
func (m *Modifier) Validate(cfg *config.Configuration) error {
	contextSet := defaultModifierContextSet
	if m.contextSet != "" {
		contextSet = cases.Lower(language.Und).String(m.contextSet)
	}

	if contextSet != defaultModifierContextSet {
		if err := validate.ContextSet(cfg, m.contextSet); err != nil {
			return err
		}
	}

	if m.kind == RelationModifier && len(cfg.SupportedRelationModifiers) > 0 &&
		!slices.Contains(cfg.SupportedRelationModifiers, m.baseName) {
		return sruerr.Invalidf("Relation modifier '%s' is not supported by the server.", m.baseName)
	}

	if m.value == "" {
		return nil
	}
	allowed, ok := rulesByKind[m.kind].values[contextSet][m.baseName]
	if ok && !slices.Contains(allowed, m.value) {
		return sruerr.Invalidf("Value '%s' invalid for base name '%s' in context '%s'.", m.value, m.baseName, contextSet)
	}
	return nil
}

// formatModifiers renders each modifier followed by %20.
func formatModifiers(mods []*Modifier) string {
	var b strings.Builder
	for _, m := range mods {
		b.WriteString(m.Format())
		b.WriteString("%20")
	}
	return b.String()
}
