package cql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sruq/internal/sruerr"
	"github.com/roach88/sruq/internal/testutil"
)

func TestBoolean_Format(t *testing.T) {
	a := clause(t, "alma", "title", "=", "a")
	b := clause(t, "alma", "title", "=", "b")
	c := clause(t, "alma", "title", "=", "c")
	d := clause(t, "alma", "title", "=", "d")
	fa, fb, fc, fd := format(t, a), format(t, b), format(t, c), format(t, d)

	tests := []struct {
		name string
		node Node
		want string
	}{
		{"two leaves", And(a, b), fa + "%20and%20" + fb},
		{"three leaves", Or(a, b, c), fa + "%20or%20" + fb + "%20or%20" + fc},
		{"lower-case tokens", Not(a, b), fa + "%20not%20" + fb},
		{"prox", Prox(a, b), fa + "%20prox%20" + fb},
		{"nested first operand", And(And(a, b), c), "(" + fa + "%20and%20" + fb + ")%20and%20" + fc},
		{"nested last operand", And(a, Or(b, c)), fa + "%20and%20(" + fb + "%20or%20" + fc + ")"},
		{"two nested operands", Or(And(a, b), And(c, d)),
			"(" + fa + "%20and%20" + fb + ")%20or%20(" + fc + "%20and%20" + fd + ")"},
		{"single-condition operator inline", And(a, Or(b), c), fa + "%20or%20" + fb + "%20and%20" + fc},
		{"single-condition not", And(a, Not(b)), fa + "%20not%20" + fb},
		{"single-condition operator inside nested operand", And(a, Or(b, Not(c))),
			fa + "%20and%20(" + fb + "%20or%20" + "%20not%20" + fc + ")"},
		{"raw fragments", And(Must(NewRaw(`dc.title="x"`, false)), Must(NewRaw(`dc.creator="y"`, false))),
			`dc.title="x"%20and%20dc.creator="y"`},
		{"deep nesting", And(Or(And(a, b), c), d),
			"((" + fa + "%20and%20" + fb + ")%20or%20" + fc + ")%20and%20" + fd},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, format(t, tt.node))
		})
	}
}

func TestBoolean_Format_UnaryFirstIsError(t *testing.T) {
	a := clause(t, "alma", "title", "=", "a")
	b := clause(t, "alma", "title", "=", "b")
	c := clause(t, "alma", "title", "=", "c")

	tests := []struct {
		name string
		node Node
	}{
		{"alone", Not(a)},
		{"first operand", And(Or(a), b)},
		{"first operand of nested operand", And(a, Or(Not(b), c))},
		{"nested twice", Or(a, And(b, And(Not(c), a)))},
		{"first operand of first operand", And(And(Not(a), b), c)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.node.Format()
			require.Error(t, err)
			assert.True(t, sruerr.IsInvalid(err))
			assert.Contains(t, err.Error(), "single condition")
		})
	}
}

func TestBoolean_FormatWithModifiers(t *testing.T) {
	a := Term("a")
	b := Term("b")

	prox, err := Prox(a, b).WithModifiers(
		modifier(t, ProxModifier, "unit", Compare("=", "word")),
		modifier(t, ProxModifier, "distance", Compare("<", "3")),
	)
	require.NoError(t, err)
	assert.Equal(t, `"a"%20prox%20/unit="word"%20/distance<"3"%20"b"`, format(t, prox))

	and, err := And(a, b).WithModifiers(modifier(t, BooleanModifier, "rel"))
	require.NoError(t, err)
	assert.Equal(t, `"a"%20and%20/rel%20"b"`, format(t, and))
}

func TestNewBoolean_Errors(t *testing.T) {
	a := Term("a")

	tests := []struct {
		name     string
		op       Operator
		children []Node
		mods     []*Modifier
		wantErr  string
	}{
		{"no children", OpAnd, nil, nil, "minimum of one condition"},
		{"nil child", OpOr, []Node{a, nil}, nil, "Condition 1"},
		{"unknown operator", Operator("xor"), []Node{a}, nil, "'xor'"},
		{"prox modifier on and", OpAnd, []Node{a, a}, []*Modifier{modifier(t, ProxModifier, "unit")}, "cannot modify operator 'and'"},
		{"relation modifier on or", OpOr, []Node{a, a}, []*Modifier{modifier(t, RelationModifier, "stem")}, "cannot modify operator 'or'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBoolean(tt.op, tt.children, tt.mods...)
			require.Error(t, err)
			assert.True(t, sruerr.IsInvalid(err))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewBoolean_CopiesChildren(t *testing.T) {
	children := []Node{Term("a"), Term("b")}
	node, err := NewBoolean(OpAnd, children)
	require.NoError(t, err)

	children[1] = Term("changed")
	assert.Equal(t, `"a"%20and%20"b"`, format(t, node))
}

func TestParseOperator(t *testing.T) {
	for in, want := range map[string]Operator{"AND": OpAnd, "or": OpOr, "Not": OpNot, "PROX": OpProx} {
		op, err := ParseOperator(in)
		require.NoError(t, err)
		assert.Equal(t, want, op)
	}
	_, err := ParseOperator("near")
	assert.Error(t, err)
}

func TestBoolean_Validate(t *testing.T) {
	cfg := testutil.AlmaConfig()

	valid := And(
		clause(t, "alma", "bib_holding_count", ">", "15"),
		Or(clause(t, "rec", "mms_id", "==", "112233")),
	)
	assert.NoError(t, valid.Validate(cfg))

	t.Run("first failing leaf wins", func(t *testing.T) {
		node := And(
			clause(t, "alma", "title", "=", "ok"),
			Or(clause(t, "alma", "general_note", "=", ""), clause(t, "alma", "nope", "=", "x")),
		)
		err := node.Validate(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "'general_note'")
	})

	t.Run("modifiers checked after children", func(t *testing.T) {
		node, err := Prox(Term("a"), Term("b")).WithModifiers(modifier(t, ProxModifier, "unit", Compare("=", "line")))
		require.NoError(t, err)
		cfg := testutil.GapinesConfig()
		err = node.Validate(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "'line'")
	})

	t.Run("raw fragments always pass", func(t *testing.T) {
		node := And(Must(NewRaw("anything at all", true)), clause(t, "alma", "title", "==", "x"))
		assert.NoError(t, node.Validate(cfg))
	})

	t.Run("validation does not require formattable arity", func(t *testing.T) {
		assert.NoError(t, Not(clause(t, "alma", "title", "=", "x")).Validate(cfg))
	})
}

func TestEndToEnd_AlmaClause(t *testing.T) {
	cfg := testutil.AlmaConfig()
	c := clause(t, "alma", "bib_holding_count", "==", "10")

	require.NoError(t, c.Validate(cfg))
	assert.Equal(t, `alma.bib_holding_count%20==%20"10"`, format(t, c))
}
