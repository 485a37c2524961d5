package validate

import (
	"slices"

	"github.com/roach88/sruq/internal/config"
	"github.com/roach88/sruq/internal/sruerr"
)

// BaseParams are the searchRetrieve parameters outside the query. Zero
// values mean "omitted".
type BaseParams struct {
	StartRecord    int
	MaximumRecords int
	RecordSchema   string
	RecordPacking  string
}

// BaseQuery checks record window, schema and packing.
func BaseQuery(cfg *config.Configuration, p BaseParams) error {
	if p.StartRecord < 0 {
		return sruerr.Invalidf("Start record '%d' must be greater than 0.", p.StartRecord)
	}
	if p.MaximumRecords < 0 {
		return sruerr.Invalidf("Maximum records '%d' must not be negative.", p.MaximumRecords)
	}
	if p.MaximumRecords > 0 && cfg.MaxRecordsSupported > 0 && p.MaximumRecords > cfg.MaxRecordsSupported {
		return sruerr.Invalidf("Maximum records '%d' exceeds the server limit; it must be no more than '%d'.", p.MaximumRecords, cfg.MaxRecordsSupported)
	}
	if p.RecordSchema != "" {
		if _, ok := cfg.Schema(p.RecordSchema); !ok {
			return sruerr.Invalidf("Record schema '%s' is not available.", p.RecordSchema)
		}
	}
	if p.RecordPacking != "" && !slices.Contains(cfg.PackingValues(), p.RecordPacking) {
		return sruerr.Invalidf("Record packing value '%s' is not available.", p.RecordPacking)
	}
	return nil
}

// Defaults checks that the configured defaults are themselves valid.
func Defaults(cfg *config.Configuration) error {
	if cfg.DefaultContextSet != "" && cfg.DefaultsEnabled() {
		err := CQL(cfg, Clause{
			ContextSet: cfg.DefaultContextSet,
			Index:      cfg.DefaultIndex,
			Relation:   cfg.DefaultRelation,
		})
		if err != nil {
			return err
		}
	}

	if cfg.DefaultRecordSchema != "" {
		if _, ok := cfg.Schema(cfg.DefaultRecordSchema); !ok {
			return sruerr.Invalidf("Record schema '%s' is not available.", cfg.DefaultRecordSchema)
		}
	}

	if cfg.DefaultSortSchema != "" {
		schema, ok := cfg.Schema(cfg.DefaultSortSchema)
		if !ok {
			return sruerr.Invalidf("Sort schema '%s' is not available.", cfg.DefaultSortSchema)
		}
		if !schema.Sortable {
			return sruerr.Invalidf("Sort schema '%s' cannot sort.", cfg.DefaultSortSchema)
		}
	}
	return nil
}
