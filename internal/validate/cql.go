package validate

import (
	"slices"

	"github.com/roach88/sruq/internal/config"
	"github.com/roach88/sruq/internal/sruerr"
)

// Clause is the subject of a CQL check. Empty strings mean "omitted".
type Clause struct {
	ContextSet string
	Index      string
	Relation   string

	// Term is the search term; nil skips the empty-term check.
	Term *string

	// CheckSortable checks only that the index can sort, then stops.
	CheckSortable bool
}

// CQL checks a context set, index, relation and term against the
// configuration, substituting defaults for omitted values.
func CQL(cfg *config.Configuration, c Clause) error {
	enabled := cfg.DefaultsEnabled()
	contextSet, ctxRes := resolve(c.ContextSet, cfg.DefaultContextSet, enabled)
	index, idxRes := resolve(c.Index, cfg.DefaultIndex, enabled)

	if ctxRes == unresolved {
		return sruerr.Invalidf("Cannot validate context set '%s'; ensure you have set a default context set or have disabled validation for cql defaults.", c.ContextSet)
	}
	if idxRes == unresolved {
		return sruerr.Invalidf("Cannot validate index '%s'; ensure you have set a default index or have disabled validation for cql defaults.", c.Index)
	}
	if ctxRes == skipped {
		return nil
	}

	if err := ContextSet(cfg, contextSet); err != nil {
		return err
	}
	if idxRes == skipped {
		return nil
	}

	info, ok := cfg.Index(contextSet, index)
	if !ok {
		return sruerr.Invalidf("Index '%s' not available on context set '%s'.", index, contextSet)
	}

	if c.CheckSortable {
		if info.Sortable != nil && !*info.Sortable {
			return sruerr.Invalidf("Index '%s' in context set '%s' does not support sorting.", index, contextSet)
		}
		return nil
	}

	if len(info.SupportedRelations) > 0 {
		relation, relRes := resolve(c.Relation, cfg.DefaultRelation, enabled)
		switch relRes {
		case unresolved:
			return sruerr.Invalidf("Index '%s' in context set '%s' requires a relation; none was given and no default relation is configured.", index, contextSet)
		case resolvedExplicit, resolvedDefault:
			if !slices.Contains(info.SupportedRelations, relation) {
				return sruerr.Invalidf("Relation '%s' is not supported on index '%s' in context set '%s'.", relation, index, contextSet)
			}
		}
	}

	if c.Term != nil && *c.Term == "" && info.EmptyTermSupported != nil && !*info.EmptyTermSupported {
		return sruerr.Invalidf("Index '%s' in context set '%s' does not support empty terms.", index, contextSet)
	}
	return nil
}

// ContextSet checks that a context set is available.
func ContextSet(cfg *config.Configuration, name string) error {
	if !cfg.HasContextSet(name) {
		return sruerr.Invalidf("Context set '%s' is not available.", name)
	}
	return nil
}
