// Package harness runs request-building scenarios against a fixed
// configuration and compares the rendered requests with golden files.
//
// # Scenario Format
//
// Scenarios are YAML files with the following structure:
//
//	name: alma_title_search
//	description: "Title search against an Alma snapshot"
//	configuration: configs/alma.yaml   # relative to the scenario file
//	overrides:
//	  default_records_returned: 5
//	steps:
//	  - name: exact title
//	    request:
//	      maximum_records: 10
//	      cql_query:
//	        type: searchClause
//	        context_set: alma
//	        index_name: title
//	        relation: "=="
//	        search_term: dune
//	    expect:
//	      url: "https://example.com?version=1.2&..."
//	  - name: unknown index
//	    validate: true
//	    request: { ... }
//	    expect:
//	      error: "not available on context set"
//
// A scenario names either a configuration file or an inline_configuration
// map, never both. Each step is rebuilt from its request map, validated
// unless validate is false, and rendered. Expectations are optional: url
// must match exactly, error is a substring of the failure, header entries
// must be present with the given values.
//
// # Golden Files
//
// RunWithGolden renders every step's outcome as text and compares it with
// testdata/golden/<name>.golden. Regenerate with:
//
//	go test ./internal/harness -update
//
// Nothing in a scenario touches the network.
package harness
