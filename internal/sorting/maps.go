package sorting

import (
	"fmt"

	"github.com/roach88/sruq/internal/dict"
	"github.com/roach88/sruq/internal/sruerr"
)

// Map discriminators.
const (
	TypeSortKey = "sortKey"
	TypeSort    = "sort"
)

// FromMaps rebuilds a sort clause from decoded maps. Every entry must share
// one type: "sortKey" yields Keys, "sort" yields By. An empty list yields nil.
func FromMaps(items []map[string]any) (Clause, error) {
	if len(items) == 0 {
		return nil, nil
	}

	first, err := dict.RequiredString(items[0], "type")
	if err != nil {
		return nil, fmt.Errorf("sort query 0: %w", err)
	}

	switch first {
	case TypeSortKey:
		keys := make(Keys, 0, len(items))
		for i, item := range items {
			if err := expectType(item, TypeSortKey, i); err != nil {
				return nil, err
			}
			key, err := KeyFromMap(item)
			if err != nil {
				return nil, fmt.Errorf("sort query %d: %w", i, err)
			}
			keys = append(keys, key)
		}
		return keys, nil
	case TypeSort:
		by := make(By, 0, len(items))
		for i, item := range items {
			if err := expectType(item, TypeSort, i); err != nil {
				return nil, err
			}
			idx, err := IndexFromMap(item)
			if err != nil {
				return nil, fmt.Errorf("sort query %d: %w", i, err)
			}
			by = append(by, idx)
		}
		return by, nil
	default:
		return nil, sruerr.Invalidf("Sort query type '%s' is not valid; use '%s' or '%s'.", first, TypeSort, TypeSortKey)
	}
}

func expectType(item map[string]any, want string, i int) error {
	got, err := dict.RequiredString(item, "type")
	if err != nil {
		return fmt.Errorf("sort query %d: %w", i, err)
	}
	if got != want {
		return sruerr.Invalidf("Sort query %d has type '%s'; sort styles '%s' and '%s' cannot be mixed.", i, got, TypeSort, TypeSortKey)
	}
	return nil
}

// KeyFromMap rebuilds a legacy sort key. Booleans accept true/false or the
// strings "true"/"false".
func KeyFromMap(m map[string]any) (*Key, error) {
	xpath, err := dict.RequiredString(m, "xpath")
	if err != nil {
		return nil, err
	}

	var opts []KeyOption
	if schema, ok, err := dict.String(m, "schema"); err != nil {
		return nil, err
	} else if ok {
		opts = append(opts, WithSchema(schema))
	}
	if asc, ok, err := dict.Bool(m, "ascending"); err != nil {
		return nil, err
	} else if ok {
		opts = append(opts, WithAscending(asc))
	}
	if cs, ok, err := dict.Bool(m, "case_sensitive"); err != nil {
		return nil, err
	} else if ok {
		opts = append(opts, WithCaseSensitive(cs))
	}
	if mv, ok, err := dict.String(m, "missing_value"); err != nil {
		return nil, err
	} else if ok {
		opts = append(opts, WithMissingValue(mv))
	}
	return NewKey(xpath, opts...)
}

// IndexFromMap rebuilds a sortBy entry.
func IndexFromMap(m map[string]any) (Index, error) {
	var idx Index
	var err error
	if idx.Set, err = dict.RequiredString(m, "index_set"); err != nil {
		return Index{}, err
	}
	if idx.Name, err = dict.RequiredString(m, "index_name"); err != nil {
		return Index{}, err
	}
	if idx.Order, err = dict.RequiredString(m, "sort_order"); err != nil {
		return Index{}, err
	}
	return idx, nil
}

// ToMaps is the inverse of FromMaps.
func ToMaps(c Clause) []map[string]any {
	switch v := c.(type) {
	case Keys:
		out := make([]map[string]any, len(v))
		for i, k := range v {
			m := map[string]any{"type": TypeSortKey, "xpath": k.XPath}
			if k.Schema != "" {
				m["schema"] = k.Schema
			}
			if k.Ascending != nil {
				m["ascending"] = *k.Ascending
			}
			if k.CaseSensitive != nil {
				m["case_sensitive"] = *k.CaseSensitive
			}
			if k.MissingValue != "" {
				m["missing_value"] = k.MissingValue
			}
			out[i] = m
		}
		return out
	case By:
		out := make([]map[string]any, len(v))
		for i, idx := range v {
			out[i] = map[string]any{
				"type":       TypeSort,
				"index_set":  idx.Set,
				"index_name": idx.Name,
				"sort_order": idx.Order,
			}
		}
		return out
	default:
		return nil
	}
}
