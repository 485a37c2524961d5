// Package config holds the capability record of an SRU server.
//
// A Configuration is built once, either from a parsed explain response or
// from a persisted snapshot, optionally overridden field by field, and then
// treated as read-only. Every validator in the module reads it; nothing
// mutates it after it has been handed out. Share it by pointer across
// goroutines without synchronization.
//
// Optional scalar fields use their zero value as "absent". Tri-state index
// capabilities (sortable, empty term support) use *bool where nil means the
// server did not say.
package config

import (
	"maps"
	"slices"
)

// Supported SRU protocol versions.
const (
	Version11 = "1.1"
	Version12 = "1.2"
)

// DefaultRecordPackingValues are the record packing values defined by SRU.
var DefaultRecordPackingValues = []string{"string", "xml"}

// IndexInfo describes one index inside a context set.
type IndexInfo struct {
	ID    string `json:"id,omitempty" yaml:"id,omitempty"`
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Sortable is nil when the server does not publish sort capabilities.
	Sortable *bool `json:"sortable" yaml:"sortable"`

	// SupportedRelations is the relation whitelist. Empty means unknown,
	// in which case relations are not checked.
	SupportedRelations []string `json:"supported_relations" yaml:"supported_relations"`

	// EmptyTermSupported is nil when unknown.
	EmptyTermSupported *bool `json:"empty_term_supported" yaml:"empty_term_supported"`
}

// Schema describes a record schema offered by the server.
type Schema struct {
	Identifier string `json:"identifier,omitempty" yaml:"identifier,omitempty"`
	Sortable   bool   `json:"sortable" yaml:"sortable"`
}

// Configuration is the capability record consumed by validation and
// request assembly.
type Configuration struct {
	// ContextSets maps context set name to index name to capabilities.
	ContextSets map[string]map[string]IndexInfo `json:"available_context_sets_and_indexes" yaml:"available_context_sets_and_indexes"`

	// RecordSchemas maps schema name to its description.
	RecordSchemas map[string]Schema `json:"available_record_schemas" yaml:"available_record_schemas"`

	SupportedRelationModifiers []string `json:"supported_relation_modifiers,omitempty" yaml:"supported_relation_modifiers,omitempty"`

	DefaultContextSet   string `json:"default_context_set,omitempty" yaml:"default_context_set,omitempty"`
	DefaultIndex        string `json:"default_index,omitempty" yaml:"default_index,omitempty"`
	DefaultRelation     string `json:"default_relation,omitempty" yaml:"default_relation,omitempty"`
	DefaultRecordSchema string `json:"default_record_schema,omitempty" yaml:"default_record_schema,omitempty"`
	DefaultSortSchema   string `json:"default_sort_schema,omitempty" yaml:"default_sort_schema,omitempty"`

	DefaultRecordsReturned int `json:"default_records_returned,omitempty" yaml:"default_records_returned,omitempty"`
	MaxRecordsSupported    int `json:"max_records_supported,omitempty" yaml:"max_records_supported,omitempty"`

	RecordPackingValues []string `json:"available_record_packing_values,omitempty" yaml:"available_record_packing_values,omitempty"`

	ServerURL  string `json:"server_url,omitempty" yaml:"server_url,omitempty"`
	SRUVersion string `json:"sru_version,omitempty" yaml:"sru_version,omitempty"`
	Username   string `json:"username,omitempty" yaml:"username,omitempty"`
	Password   string `json:"password,omitempty" yaml:"password,omitempty"`

	// DisableValidationForCQLDefaults skips context set and index checks
	// for clauses that omit them, instead of substituting the defaults.
	DisableValidationForCQLDefaults bool `json:"disable_validation_for_cql_defaults,omitempty" yaml:"disable_validation_for_cql_defaults,omitempty"`
}

// HasContextSet reports whether the context set is available.
func (c *Configuration) HasContextSet(name string) bool {
	_, ok := c.ContextSets[name]
	return ok
}

// Index looks up an index within a context set.
func (c *Configuration) Index(contextSet, name string) (IndexInfo, bool) {
	indexes, ok := c.ContextSets[contextSet]
	if !ok {
		return IndexInfo{}, false
	}
	info, ok := indexes[name]
	return info, ok
}

// Schema looks up a record schema by name.
func (c *Configuration) Schema(name string) (Schema, bool) {
	s, ok := c.RecordSchemas[name]
	return s, ok
}

// PackingValues returns the accepted record packing values.
func (c *Configuration) PackingValues() []string {
	if len(c.RecordPackingValues) == 0 {
		return DefaultRecordPackingValues
	}
	return c.RecordPackingValues
}

// Version returns the SRU version, defaulting to 1.2.
func (c *Configuration) Version() string {
	if c.SRUVersion == "" {
		return Version12
	}
	return c.SRUVersion
}

// DefaultsEnabled reports whether omitted context sets and indexes are
// replaced by the configured defaults during validation.
func (c *Configuration) DefaultsEnabled() bool {
	return !c.DisableValidationForCQLDefaults
}

// Clone returns a deep copy.
func (c *Configuration) Clone() *Configuration {
	out := *c
	if c.ContextSets != nil {
		out.ContextSets = make(map[string]map[string]IndexInfo, len(c.ContextSets))
		for set, indexes := range c.ContextSets {
			copied := make(map[string]IndexInfo, len(indexes))
			for name, info := range indexes {
				copied[name] = info.clone()
			}
			out.ContextSets[set] = copied
		}
	}
	out.RecordSchemas = maps.Clone(c.RecordSchemas)
	out.SupportedRelationModifiers = slices.Clone(c.SupportedRelationModifiers)
	out.RecordPackingValues = slices.Clone(c.RecordPackingValues)
	return &out
}

func (i IndexInfo) clone() IndexInfo {
	out := i
	out.SupportedRelations = slices.Clone(i.SupportedRelations)
	if i.Sortable != nil {
		v := *i.Sortable
		out.Sortable = &v
	}
	if i.EmptyTermSupported != nil {
		v := *i.EmptyTermSupported
		out.EmptyTermSupported = &v
	}
	return out
}

// Bool returns a pointer to b, for populating tri-state capability fields.
func Bool(b bool) *bool {
	return &b
}
