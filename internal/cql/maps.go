package cql

import (
	"fmt"

	"github.com/roach88/sruq/internal/dict"
	"github.com/roach88/sruq/internal/sruerr"
)

// Map discriminators.
const (
	TypeSearchClause = "searchClause"
	TypeBoolean      = "booleanOperator"
	TypeRaw          = "rawCQL"
)

// FromMap rebuilds an expression from its nested map form.
func FromMap(m map[string]any) (Node, error) {
	typ, err := dict.RequiredString(m, "type")
	if err != nil {
		return nil, err
	}

	switch typ {
	case TypeSearchClause:
		return searchClauseFromMap(m)
	case TypeBoolean:
		return booleanFromMap(m)
	case TypeRaw:
		return rawFromMap(m)
	default:
		return nil, sruerr.Invalidf("Condition type '%s' is not valid; use '%s', '%s' or '%s'.",
			typ, TypeSearchClause, TypeBoolean, TypeRaw)
	}
}

func searchClauseFromMap(m map[string]any) (*SearchClause, error) {
	term, err := dict.RequiredString(m, "search_term")
	if err != nil {
		return nil, err
	}
	var fields [3]string
	for i, key := range []string{"context_set", "index_name", "relation"} {
		if fields[i], _, err = dict.String(m, key); err != nil {
			return nil, err
		}
	}
	mods, err := modifiersFromMap(m, RelationModifier)
	if err != nil {
		return nil, err
	}
	return NewSearchClause(fields[0], fields[1], fields[2], term, mods...)
}

func booleanFromMap(m map[string]any) (*Boolean, error) {
	name, err := dict.RequiredString(m, "operator")
	if err != nil {
		return nil, err
	}
	op, err := ParseOperator(name)
	if err != nil {
		return nil, err
	}

	if _, present := m["conditions"]; !present {
		return nil, sruerr.Invalidf("Missing required field 'conditions'.")
	}
	conditions, err := dict.Maps(m, "conditions")
	if err != nil {
		return nil, err
	}
	children := make([]Node, 0, len(conditions))
	for i, cond := range conditions {
		child, err := FromMap(cond)
		if err != nil {
			return nil, fmt.Errorf("condition %d of operator '%s': %w", i, op, err)
		}
		children = append(children, child)
	}

	kind := BooleanModifier
	if op == OpProx {
		kind = ProxModifier
	}
	mods, err := modifiersFromMap(m, kind)
	if err != nil {
		return nil, err
	}
	return NewBoolean(op, children, mods...)
}

func rawFromMap(m map[string]any) (*Raw, error) {
	text, err := dict.RequiredString(m, "cql")
	if err != nil {
		return nil, err
	}
	padded, ok, err := dict.Bool(m, "add_padding")
	if err != nil {
		return nil, err
	}
	if !ok {
		padded = true
	}
	return NewRaw(text, padded)
}

// modifiersFromMap reads a node's modifiers. An item without a "kind" key
// takes the kind implied by its position.
func modifiersFromMap(m map[string]any, kind ModifierKind) ([]*Modifier, error) {
	items, err := dict.Maps(m, "modifiers")
	if err != nil {
		return nil, err
	}
	mods := make([]*Modifier, 0, len(items))
	for _, item := range items {
		base, err := dict.RequiredString(item, "base_name")
		if err != nil {
			return nil, err
		}
		var opts []ModifierOption
		if cs, ok, err := dict.String(item, "context_set"); err != nil {
			return nil, err
		} else if ok {
			opts = append(opts, InContextSet(cs))
		}
		symbol, _, err := dict.String(item, "comparison_symbol")
		if err != nil {
			return nil, err
		}
		value, _, err := dict.String(item, "value")
		if err != nil {
			return nil, err
		}
		if symbol != "" || value != "" {
			opts = append(opts, Compare(symbol, value))
		}
		itemKind := kind
		if k, ok, err := dict.String(item, "kind"); err != nil {
			return nil, err
		} else if ok {
			itemKind = ModifierKind(k)
		}
		mod, err := NewModifier(itemKind, base, opts...)
		if err != nil {
			return nil, err
		}
		mods = append(mods, mod)
	}
	return mods, nil
}

// ToMap converts an expression to its nested map form; FromMap(ToMap(n))
// formats identically to n.
func ToMap(n Node) map[string]any {
	switch v := n.(type) {
	case *SearchClause:
		m := map[string]any{"type": TypeSearchClause, "search_term": v.term}
		if v.contextSet != "" {
			m["context_set"] = v.contextSet
		}
		if v.index != "" {
			m["index_name"] = v.index
			m["relation"] = v.relation
		}
		if len(v.modifiers) > 0 {
			m["modifiers"] = modifiersToMaps(v.modifiers)
		}
		return m
	case *Raw:
		return map[string]any{"type": TypeRaw, "cql": v.text, "add_padding": v.padded}
	case *Boolean:
		conditions := make([]any, len(v.children))
		for i, child := range v.children {
			conditions[i] = ToMap(child)
		}
		m := map[string]any{"type": TypeBoolean, "operator": string(v.op), "conditions": conditions}
		if len(v.modifiers) > 0 {
			m["modifiers"] = modifiersToMaps(v.modifiers)
		}
		return m
	default:
		return nil
	}
}

func modifiersToMaps(mods []*Modifier) []any {
	out := make([]any, len(mods))
	for i, mod := range mods {
		m := map[string]any{"kind": string(mod.kind), "base_name": mod.baseName}
		if mod.contextSet != "" {
			m["context_set"] = mod.contextSet
		}
		if mod.comparison != "" {
			m["comparison_symbol"] = mod.comparison
			m["value"] = mod.value
		}
		out[i] = m
	}
	return out
}
