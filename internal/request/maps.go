package request

import (
	"fmt"

	"github.com/roach88/sruq/internal/config"
	"github.com/roach88/sruq/internal/cql"
	"github.com/roach88/sruq/internal/dict"
	"github.com/roach88/sruq/internal/sorting"
	"github.com/roach88/sruq/internal/sruerr"
)

// FromMap rebuilds a searchRetrieve operation from its map form:
//
//	start_record, maximum_records, record_schema, record_packing (optional)
//	cql_query    (required, a cql map)
//	sort_queries (optional, a list of sort maps of one style)
func FromMap(cfg *config.Configuration, m map[string]any) (*SearchRetrieve, error) {
	var p Params
	var err error

	if p.StartRecord, _, err = dict.Int(m, "start_record"); err != nil {
		return nil, err
	}
	if p.MaximumRecords, _, err = dict.Int(m, "maximum_records"); err != nil {
		return nil, err
	}
	if p.RecordSchema, _, err = dict.String(m, "record_schema"); err != nil {
		return nil, err
	}
	if p.RecordPacking, _, err = dict.String(m, "record_packing"); err != nil {
		return nil, err
	}

	queryMap, err := dict.Map(m, "cql_query")
	if err != nil {
		return nil, err
	}
	if queryMap == nil {
		return nil, sruerr.Invalidf("Missing required field 'cql_query'.")
	}
	query, err := cql.FromMap(queryMap)
	if err != nil {
		return nil, fmt.Errorf("cql_query: %w", err)
	}

	sorts, err := dict.Maps(m, "sort_queries")
	if err != nil {
		return nil, err
	}
	if p.Sort, err = sorting.FromMaps(sorts); err != nil {
		return nil, err
	}

	return New(cfg, query, p)
}

// ToMap is the inverse of FromMap.
func (s *SearchRetrieve) ToMap() map[string]any {
	m := map[string]any{"cql_query": cql.ToMap(s.query)}
	if s.params.StartRecord != 0 {
		m["start_record"] = s.params.StartRecord
	}
	if s.params.MaximumRecords != 0 {
		m["maximum_records"] = s.params.MaximumRecords
	}
	if s.params.RecordSchema != "" {
		m["record_schema"] = s.params.RecordSchema
	}
	if s.params.RecordPacking != "" {
		m["record_packing"] = s.params.RecordPacking
	}
	if sorts := sorting.ToMaps(s.params.Sort); len(sorts) > 0 {
		items := make([]any, len(sorts))
		for i := range sorts {
			items[i] = sorts[i]
		}
		m["sort_queries"] = items
	}
	return m
}
