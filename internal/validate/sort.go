package validate

import (
	"github.com/roach88/sruq/internal/config"
	"github.com/roach88/sruq/internal/sorting"
	"github.com/roach88/sruq/internal/sruerr"
)

// Sort checks a sort clause. recordSchema is the request's effective record
// schema, used by legacy keys that name none of their own.
func Sort(cfg *config.Configuration, clause sorting.Clause, recordSchema string) error {
	switch c := clause.(type) {
	case nil:
		return nil
	case sorting.Keys:
		for _, key := range c {
			if err := sortKey(cfg, key, recordSchema); err != nil {
				return err
			}
		}
		return nil
	case sorting.By:
		return sortBy(cfg, c)
	default:
		return sruerr.Invalidf("Sort clause '%T' is not supported.", clause)
	}
}

func sortKey(cfg *config.Configuration, key *sorting.Key, recordSchema string) error {
	name := key.Schema
	if name == "" {
		name = recordSchema
	}
	schema, ok := cfg.Schema(name)
	if !ok {
		return sruerr.Invalidf("Record schema '%s' is not valid for sort key '%s'.", name, key.XPath)
	}
	if !schema.Sortable {
		return sruerr.Invalidf("Record schema '%s' is not available to sort.", name)
	}
	return nil
}

func sortBy(cfg *config.Configuration, by sorting.By) error {
	seen := make(map[string]bool, len(by))
	for i, idx := range by {
		if seen[idx.Name] {
			return sruerr.Invalidf("Index '%s' is repeated; an index can appear only once in a sort.", idx.Name)
		}
		seen[idx.Name] = true

		if idx.Order != sorting.OrderAscending && idx.Order != sorting.OrderDescending {
			return sruerr.Invalidf("Sort order '%s' in sort index %d is invalid; use '%s' or '%s'.",
				idx.Order, i+1, sorting.OrderAscending, sorting.OrderDescending)
		}
		err := CQL(cfg, Clause{ContextSet: idx.Set, Index: idx.Name, CheckSortable: true})
		if err != nil {
			return err
		}
	}
	return nil
}
