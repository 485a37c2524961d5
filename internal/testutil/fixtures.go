package testutil

import (
	"maps"

	"github.com/roach88/sruq/internal/config"
)

var testSchemas = map[string]config.Schema{
	"marcxml":    {Identifier: "http://www.loc.gov/standards/marcxml/schema/MARC21slim.xsd", Sortable: true},
	"dc":         {Identifier: "info:srw/schema/1/dc-v1.1", Sortable: true},
	"mods":       {Identifier: "info:srw/schema/1/mods-v3.5", Sortable: true},
	"dcx":        {Identifier: "info:srw/schema/1/dcx-v1.0", Sortable: true},
	"unimarcxml": {Identifier: "info:srw/schema/8/unimarcxml-v0.1", Sortable: true},
	"kormarcxml": {Identifier: "http://www.nl.go.kr/kormarc/", Sortable: true},
	"cnmarcxml":  {Identifier: "http://www.nlc.cn/", Sortable: false},
	"isohold":    {Identifier: "http://www.loc.gov/standards/iso20775/", Sortable: true},
}

func schemas() map[string]config.Schema {
	return maps.Clone(testSchemas)
}

func index(title string, sortable bool, emptyTerm bool, relations ...string) config.IndexInfo {
	return config.IndexInfo{
		Title:              title,
		Sortable:           config.Bool(sortable),
		SupportedRelations: relations,
		EmptyTermSupported: config.Bool(emptyTerm),
	}
}

// AlmaConfig mirrors an Alma SRU endpoint: full sort, relation and empty
// term information, SRU 1.2, no defaults.
func AlmaConfig() *config.Configuration {
	return &config.Configuration{
		ContextSets: map[string]map[string]config.IndexInfo{
			"alma": {
				"bib_holding_count":   index("Bib Holding Count (Alma)", true, true, ">", ">=", "==", "<", "<="),
				"general_note":        index("Public Note (Title)", false, false, "all", "=", "=="),
				"library":             index("Library Code", false, true, "==", "all"),
				"library_status":      index("Library Status", false, true, "==", "all"),
				"unique_serial_title": index("Serial Title", false, false, "all", "=", "=="),
				"title":               index("Title", true, true, "all", "=", "=="),
			},
			"rec": {
				"mms_id": index("Bib MMS ID", false, true, "==", "all"),
			},
		},
		RecordSchemas:          schemas(),
		MaxRecordsSupported:    50,
		DefaultRecordsReturned: 10,
		ServerURL:              "https://example.com",
		SRUVersion:             config.Version12,
	}
}

// GapinesConfig mirrors an Evergreen endpoint: SRU 1.1 with every default
// populated and no relation or sort information on its indexes.
func GapinesConfig() *config.Configuration {
	unknown := func(title string) config.IndexInfo { return config.IndexInfo{Title: title} }
	return &config.Configuration{
		ContextSets: map[string]map[string]config.IndexInfo{
			"eg": {
				"keyword": unknown("Keyword"),
				"title":   unknown("Title"),
				"author":  unknown("Author"),
				"subject": unknown("Subject"),
				"series":  unknown("Series"),
			},
			"dc": {
				"title":   unknown("Title"),
				"creator": unknown("Creator"),
			},
		},
		RecordSchemas:          schemas(),
		DefaultContextSet:      "eg",
		DefaultIndex:           "keyword",
		DefaultRelation:        "all",
		DefaultRecordSchema:    "marcxml",
		DefaultSortSchema:      "marcxml",
		MaxRecordsSupported:    50,
		DefaultRecordsReturned: 10,
		ServerURL:              "https://gapines.example.org/opac/extras/sru",
		SRUVersion:             config.Version11,
	}
}

// LOCConfig mirrors a Library of Congress endpoint: no sort, relation or
// limit information at all.
func LOCConfig() *config.Configuration {
	unknown := func(id, title string) config.IndexInfo { return config.IndexInfo{ID: id, Title: title} }
	return &config.Configuration{
		ContextSets: map[string]map[string]config.IndexInfo{
			"cql": {
				"anywhere": unknown("1016", "Keyword Anywhere"),
			},
			"dc": {
				"title":   unknown("4", "Title"),
				"creator": unknown("1003", "Creator"),
				"subject": unknown("21", "Subject"),
			},
			"bath": {
				"name": unknown("1002", "Name"),
				"isbn": unknown("7", "ISBN"),
				"issn": unknown("8", "ISSN"),
				"lccn": unknown("9", "LC Control Number"),
			},
		},
		RecordSchemas: schemas(),
		ServerURL:     "http://lx2.loc.gov:210/LCDB",
		SRUVersion:    config.Version11,
	}
}
