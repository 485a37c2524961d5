package config

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// FilterIndexes returns the context sets restricted to indexes whose title
// contains filter, compared case-insensitively after NFC normalization.
// Context sets left without indexes are dropped. An empty filter returns
// every index.
func (c *Configuration) FilterIndexes(filter string) map[string]map[string]IndexInfo {
	out := make(map[string]map[string]IndexInfo)
	needle := foldTitle(filter)
	for set, indexes := range c.ContextSets {
		for name, info := range indexes {
			if needle != "" && !strings.Contains(foldTitle(info.Title), needle) {
				continue
			}
			if out[set] == nil {
				out[set] = make(map[string]IndexInfo)
			}
			out[set][name] = info
		}
	}
	return out
}

func foldTitle(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}

// WriteIndexes renders the human-readable index listing, context sets and
// indexes in name order.
func WriteIndexes(w io.Writer, sets map[string]map[string]IndexInfo) error {
	var b strings.Builder
	for _, set := range slices.Sorted(maps.Keys(sets)) {
		fmt.Fprintf(&b, "------INDEX SET: %s------\n\n", set)
		indexes := sets[set]
		for _, name := range slices.Sorted(maps.Keys(indexes)) {
			info := indexes[name]
			title := info.Title
			if title == "" {
				title = name
			}
			fmt.Fprintf(&b, "Index: %s\n", title)
			if info.ID != "" {
				fmt.Fprintf(&b, "     Index ID:               | %s\n", info.ID)
			}
			fmt.Fprintf(&b, "     Index Set:              | %s\n", set)
			fmt.Fprintf(&b, "     Index Code:             | %s\n", name)
			if len(info.SupportedRelations) > 0 {
				fmt.Fprintf(&b, "     Supported Operations:   | %s\n", strings.Join(info.SupportedRelations, ", "))
			}
			if info.Sortable != nil {
				fmt.Fprintf(&b, "     Sortable:               | %t\n", *info.Sortable)
			}
			b.WriteString("\n")
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
