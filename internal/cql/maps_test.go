package cql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/roach88/sruq/internal/sruerr"
	"github.com/roach88/sruq/internal/testutil"
)

func TestFromMap_MatchesConstructors(t *testing.T) {
	tests := []struct {
		name string
		in   map[string]any
		want Node
	}{
		{
			name: "search clause",
			in: map[string]any{
				"type": "searchClause", "context_set": "alma", "index_name": "bib_holding_count",
				"relation": "==", "search_term": "10",
			},
			want: clause(t, "alma", "bib_holding_count", "==", "10"),
		},
		{
			name: "term only",
			in:   map[string]any{"type": "searchClause", "search_term": "10"},
			want: Term("10"),
		},
		{
			name: "clause with modifier",
			in: map[string]any{
				"type": "searchClause", "context_set": "alma", "index_name": "test_attribute",
				"relation": "all", "search_term": "hello",
				"modifiers": []any{map[string]any{"base_name": "relevant"}},
			},
			want: clause(t, "alma", "test_attribute", "all", "hello", modifier(t, RelationModifier, "relevant")),
		},
		{
			name: "raw defaults to padded",
			in:   map[string]any{"type": "rawCQL", "cql": "and"},
			want: Must(NewRaw("and", true)),
		},
		{
			name: "raw without padding",
			in:   map[string]any{"type": "rawCQL", "cql": `dc.title="x"`, "add_padding": false},
			want: Must(NewRaw(`dc.title="x"`, false)),
		},
		{
			name: "operator",
			in: map[string]any{
				"type": "booleanOperator", "operator": "AND",
				"conditions": []any{
					map[string]any{"type": "searchClause", "context_set": "alma", "index_name": "bib_holding_count", "relation": ">", "search_term": "15"},
					map[string]any{
						"type": "booleanOperator", "operator": "or",
						"conditions": []any{
							map[string]any{"type": "searchClause", "context_set": "rec", "index_name": "mms_id", "relation": "==", "search_term": "112233"},
						},
					},
				},
			},
			want: And(
				clause(t, "alma", "bib_holding_count", ">", "15"),
				Or(clause(t, "rec", "mms_id", "==", "112233")),
			),
		},
		{
			name: "prox with modifiers",
			in: map[string]any{
				"type": "booleanOperator", "operator": "PROX",
				"modifiers": []any{map[string]any{"base_name": "unit", "comparison_symbol": "=", "value": "word"}},
				"conditions": []any{
					map[string]any{"type": "searchClause", "search_term": "a"},
					map[string]any{"type": "searchClause", "search_term": "b"},
				},
			},
			want: Must(NewBoolean(OpProx, []Node{Term("a"), Term("b")},
				modifier(t, ProxModifier, "unit", Compare("=", "word")))),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromMap(tt.in)
			require.NoError(t, err)
			assert.Equal(t, format(t, tt.want), format(t, got))
		})
	}
}

func TestFromMap_YAMLDocument(t *testing.T) {
	doc := `
type: booleanOperator
operator: and
conditions:
  - type: searchClause
    context_set: alma
    index_name: title
    relation: all
    search_term: dune
  - type: booleanOperator
    operator: not
    conditions:
      - type: rawCQL
        cql: alma.title all "messiah"
        add_padding: false
`
	var m map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(doc), &m))

	node, err := FromMap(m)
	require.NoError(t, err)
	assert.Equal(t, `alma.title%20all%20"dune"%20not%20alma.title all "messiah"`, format(t, node))
}

func TestFromMap_Errors(t *testing.T) {
	tests := []struct {
		name    string
		in      map[string]any
		wantErr string
	}{
		{"missing type", map[string]any{"search_term": "x"}, "'type'"},
		{"wrong type", map[string]any{"type": "sortKey"}, "'sortKey'"},
		{"missing term", map[string]any{"type": "searchClause", "index_name": "title", "relation": "="}, "'search_term'"},
		{"index without relation", map[string]any{"type": "searchClause", "index_name": "title", "search_term": "x"}, "needs a relation"},
		{"missing operator", map[string]any{"type": "booleanOperator", "conditions": []any{}}, "'operator'"},
		{"missing conditions", map[string]any{"type": "booleanOperator", "operator": "and"}, "'conditions'"},
		{"empty conditions", map[string]any{"type": "booleanOperator", "operator": "and", "conditions": []any{}}, "minimum of one condition"},
		{"bad nested condition", map[string]any{
			"type": "booleanOperator", "operator": "and",
			"conditions": []any{map[string]any{"type": "index"}},
		}, "'index'"},
		{"condition not a map", map[string]any{
			"type": "booleanOperator", "operator": "and", "conditions": []any{"x"},
		}, "Expected a map"},
		{"empty raw", map[string]any{"type": "rawCQL", "cql": ""}, "Raw CQL"},
		{"unknown modifier kind", map[string]any{
			"type": "searchClause", "index_name": "t", "relation": "=", "search_term": "x",
			"modifiers": []any{map[string]any{"kind": "Sideways", "base_name": "v"}},
		}, "'Sideways'"},
		{"kind not allowed in position", map[string]any{
			"type": "searchClause", "index_name": "t", "relation": "=", "search_term": "x",
			"modifiers": []any{map[string]any{"kind": "Prox", "base_name": "unit"}},
		}, "cannot modify a relation"},
		{"modifier without base name", map[string]any{
			"type": "searchClause", "index_name": "t", "relation": "=", "search_term": "x",
			"modifiers": []any{map[string]any{"value": "v"}},
		}, "'base_name'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromMap(tt.in)
			require.Error(t, err)
			assert.True(t, sruerr.IsInvalid(err))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestToMap_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		tree Node
	}{
		{"mixed tree", And(
			clause(t, "alma", "title", "all", "dune", modifier(t, RelationModifier, "relevant")),
			Or(Term("arrakis"), Must(NewRaw("x", false))),
			Not(clause(t, "rec", "mms_id", "==", "1")),
		)},
		{"prox with and-or-not modifier", Must(NewBoolean(OpProx, []Node{Term("a"), Term("b")},
			modifier(t, BooleanModifier, "rel", Compare("=", "x"))))},
		{"prox with prox modifier", Must(NewBoolean(OpProx, []Node{Term("a"), Term("b")},
			modifier(t, ProxModifier, "distance", Compare("<", "3"))))},
		{"generic modifier on a relation", clause(t, "alma", "title", "all", "dune",
			modifier(t, GenericModifier, "fuzzy"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			back, err := FromMap(ToMap(tt.tree))
			require.NoError(t, err)
			assert.Equal(t, format(t, tt.tree), format(t, back))
		})
	}
}

func TestToMap_KeepsModifierKind(t *testing.T) {
	cfg := testutil.AlmaConfig()
	cfg.SupportedRelationModifiers = []string{"stem"}

	c := clause(t, "alma", "title", "all", "dune", modifier(t, GenericModifier, "fuzzy"))
	require.NoError(t, c.Validate(cfg))

	m := ToMap(c)
	mods := m["modifiers"].([]any)
	assert.Equal(t, "Generic", mods[0].(map[string]any)["kind"])

	back, err := FromMap(m)
	require.NoError(t, err)
	assert.NoError(t, back.Validate(cfg), "generic modifiers skip the server's relation modifier list")
}
