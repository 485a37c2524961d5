package cql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sruq/internal/sruerr"
	"github.com/roach88/sruq/internal/testutil"
)

func clause(t *testing.T, contextSet, index, relation, term string, mods ...*Modifier) *SearchClause {
	t.Helper()
	c, err := NewSearchClause(contextSet, index, relation, term, mods...)
	require.NoError(t, err)
	return c
}

func modifier(t *testing.T, kind ModifierKind, base string, opts ...ModifierOption) *Modifier {
	t.Helper()
	m, err := NewModifier(kind, base, opts...)
	require.NoError(t, err)
	return m
}

func format(t *testing.T, n Node) string {
	t.Helper()
	s, err := n.Format()
	require.NoError(t, err)
	return s
}

func TestSearchClause_Format(t *testing.T) {
	tests := []struct {
		name   string
		clause *SearchClause
		want   string
	}{
		{"full clause", clause(t, "alma", "bib_holding_count", "==", "10"), `alma.bib_holding_count%20==%20"10"`},
		{"no context set", clause(t, "", "bib_count", "==", "10"), `bib_count%20==%20"10"`},
		{"term only", Term("10"), `"10"`},
		{"empty term", clause(t, "alma", "test_attribute", "all", ""), `alma.test_attribute%20all%20""`},
		{"relation modifier", clause(t, "alma", "test_attribute", "all", "hello",
			modifier(t, RelationModifier, "relevant")), `alma.test_attribute%20all/relevant%20"hello"`},
		{"two modifiers", clause(t, "dc", "title", "any", "fish",
			modifier(t, RelationModifier, "relevant"),
			modifier(t, RelationModifier, "stem")), `dc.title%20any/relevant%20/stem%20"fish"`},
		{"spaces in term", Term("dune messiah"), `"dune%20messiah"`},
		{"reserved characters in term", Term("a&b #1+2"), `"a%26b%20%231%2B2"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, format(t, tt.clause))
		})
	}
}

func TestNewSearchClause_Errors(t *testing.T) {
	prox := modifier(t, ProxModifier, "unit")
	relevant := modifier(t, RelationModifier, "relevant")

	tests := []struct {
		name       string
		contextSet string
		index      string
		relation   string
		mods       []*Modifier
		wantErr    string
	}{
		{"index without relation", "", "title", "", nil, "Index 'title' needs a relation"},
		{"relation without index", "", "", "=", nil, "Relation '=' needs an index"},
		{"context set without index", "alma", "", "", nil, "Context set 'alma' needs an index"},
		{"modifier without relation", "", "", "", []*Modifier{relevant}, "needs a relation"},
		{"wrong modifier kind", "", "title", "=", []*Modifier{prox}, "cannot modify a relation"},
		{"nil modifier", "", "title", "=", []*Modifier{nil}, "nil"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSearchClause(tt.contextSet, tt.index, tt.relation, "x", tt.mods...)
			require.Error(t, err)
			assert.True(t, sruerr.IsInvalid(err))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRaw(t *testing.T) {
	raw, err := NewRaw(`alma.title=="dune"`, false)
	require.NoError(t, err)
	assert.Equal(t, `alma.title=="dune"`, format(t, raw))

	padded, err := NewRaw("and", true)
	require.NoError(t, err)
	assert.Equal(t, "%20and%20", format(t, padded))

	assert.NoError(t, padded.Validate(testutil.AlmaConfig()))

	_, err = NewRaw("", true)
	assert.True(t, sruerr.IsInvalid(err))
}

func TestModifier_Format(t *testing.T) {
	assert.Equal(t, "/relevant", modifier(t, RelationModifier, "relevant").Format())
	assert.Equal(t, `/unit="word"`, modifier(t, ProxModifier, "unit", Compare("=", "word")).Format())
	assert.Equal(t, `/cql.distance<"3"`,
		modifier(t, ProxModifier, "distance", InContextSet("cql"), Compare("<", "3")).Format())
}

func TestNewModifier_Errors(t *testing.T) {
	tests := []struct {
		name    string
		kind    ModifierKind
		base    string
		opts    []ModifierOption
		wantErr string
	}{
		{"empty base", BooleanModifier, "", nil, "base name"},
		{"symbol without value", BooleanModifier, "x", []ModifierOption{Compare("=", "")}, "needs a value"},
		{"value without symbol", BooleanModifier, "x", []ModifierOption{Compare("", "v")}, "needs a comparison"},
		{"unsupported symbol", BooleanModifier, "x", []ModifierOption{Compare("==", "v")}, "'=='"},
		{"prox base name", ProxModifier, "window", nil, "Base name 'window'"},
		{"unknown kind", ModifierKind("Sort"), "x", nil, "'Sort'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewModifier(tt.kind, tt.base, tt.opts...)
			require.Error(t, err)
			assert.True(t, sruerr.IsInvalid(err))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestModifier_Validate(t *testing.T) {
	cfg := testutil.AlmaConfig()

	assert.NoError(t, modifier(t, ProxModifier, "unit", Compare("=", "word")).Validate(cfg))
	assert.NoError(t, modifier(t, ProxModifier, "unit", InContextSet("CQL"), Compare("=", "sentence")).Validate(cfg))
	assert.NoError(t, modifier(t, ProxModifier, "distance", Compare(">", "2")).Validate(cfg))

	err := modifier(t, ProxModifier, "unit", Compare("=", "line")).Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Value 'line' invalid for base name 'unit' in context 'cql'")

	// Restrictions apply only within the cql context set.
	assert.NoError(t, modifier(t, ProxModifier, "unit", InContextSet("alma"), Compare("=", "line")).Validate(cfg))

	err = modifier(t, BooleanModifier, "rel", InContextSet("dc")).Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Context set 'dc' is not available.")
}

func TestModifier_ValidateServerRelationModifiers(t *testing.T) {
	cfg := testutil.AlmaConfig()
	cfg.SupportedRelationModifiers = []string{"relevant", "stem"}

	assert.NoError(t, modifier(t, RelationModifier, "stem").Validate(cfg))

	err := modifier(t, RelationModifier, "fuzzy").Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'fuzzy'")

	// Operator modifiers are not checked against the relation list.
	assert.NoError(t, modifier(t, BooleanModifier, "fuzzy").Validate(cfg))
}
