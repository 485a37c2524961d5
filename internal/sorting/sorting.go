// Package sorting builds the two SRU sort styles.
//
// SRU 1.1 sends legacy sort keys as a separate sortKeys parameter; SRU 1.2
// appends a CQL sortBy clause to the query itself. A request uses exactly
// one style, chosen by its protocol version.
package sorting

import (
	"strings"

	"github.com/roach88/sruq/internal/sruerr"
)

// Sort orders accepted in a sortBy clause.
const (
	OrderAscending  = "ascending"
	OrderDescending = "descending"
)

// Missing value keywords accepted by a legacy sort key.
var missingValueKeywords = []string{"abort", "highValue", "lowValue", "omit"}

// Clause is a complete sort specification for one request.
type Clause interface {
	// Format returns the URL fragment appended after the query.
	Format() string
	isClause()
}

// Keys is a legacy (SRU 1.1) sort specification.
type Keys []*Key

// By is a CQL sortBy (SRU 1.2) specification.
type By []Index

func (Keys) isClause() {}
func (By) isClause()   {}

// Format renders "&sortKeys=" followed by the keys separated by %20.
func (k Keys) Format() string {
	if len(k) == 0 {
		return ""
	}
	parts := make([]string, len(k))
	for i, key := range k {
		parts[i] = key.Format()
	}
	return "&sortKeys=" + strings.Join(parts, "%20")
}

// Format renders "%20sortBy" followed by one "%20set.name/sort.order" per
// index.
func (b By) Format() string {
	if len(b) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("%20sortBy")
	for _, idx := range b {
		sb.WriteString("%20")
		sb.WriteString(idx.Format())
	}
	return sb.String()
}

// Index is one sortBy entry.
type Index struct {
	Set   string
	Name  string
	Order string
}

// Format renders "set.name/sort.order".
func (i Index) Format() string {
	return i.Set + "." + i.Name + "/sort." + i.Order
}

// Key is one legacy sort key: up to five positional, comma separated fields.
type Key struct {
	XPath         string
	Schema        string
	Ascending     *bool
	CaseSensitive *bool
	MissingValue  string
}

// KeyOption sets an optional field of a Key.
type KeyOption func(*Key)

// WithSchema sets the schema the xpath refers to.
func WithSchema(schema string) KeyOption {
	return func(k *Key) { k.Schema = schema }
}

// WithAscending sets the sort direction.
func WithAscending(ascending bool) KeyOption {
	return func(k *Key) { k.Ascending = &ascending }
}

// WithCaseSensitive sets case sensitivity.
func WithCaseSensitive(caseSensitive bool) KeyOption {
	return func(k *Key) { k.CaseSensitive = &caseSensitive }
}

// WithMissingValue sets the behaviour for records lacking the field: one of
// abort, highValue, lowValue, omit, or a double-quoted literal.
func WithMissingValue(value string) KeyOption {
	return func(k *Key) { k.MissingValue = value }
}

// NewKey builds a legacy sort key.
func NewKey(xpath string, opts ...KeyOption) (*Key, error) {
	if xpath == "" {
		return nil, sruerr.Invalidf("Sort key xpath '' is empty; an xpath is required.")
	}
	k := &Key{XPath: xpath}
	for _, opt := range opts {
		opt(k)
	}
	if k.MissingValue != "" && !validMissingValue(k.MissingValue) {
		return nil, sruerr.Invalidf("Value '%s' is not a valid option for missing value.", k.MissingValue)
	}
	return k, nil
}

func validMissingValue(v string) bool {
	for _, kw := range missingValueKeywords {
		if v == kw {
			return true
		}
	}
	return len(v) >= 2 && strings.HasPrefix(v, `"`) && strings.HasSuffix(v, `"`)
}

// Format emits every position up to the rightmost one that is set, leaving
// unset interior positions empty.
func (k *Key) Format() string {
	fields := []string{k.XPath, k.Schema, flag(k.Ascending), flag(k.CaseSensitive), k.MissingValue}

	last := 0
	for i, f := range fields {
		if f != "" {
			last = i
		}
	}
	return strings.Join(fields[:last+1], ",")
}

func flag(b *bool) string {
	switch {
	case b == nil:
		return ""
	case *b:
		return "1"
	default:
		return "0"
	}
}
