// Package explain turns an SRU explain response into a Configuration.
//
// Elements are matched by local name only, so the srw, zr and diag
// namespace prefixes used by different servers all decode the same way.
package explain

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/htmlindex"

	"github.com/roach88/sruq/internal/config"
)

var (
	// ErrNoExplainResponse means the document is XML but not an explain
	// response, usually because the server answered with a diagnostic.
	ErrNoExplainResponse = errors.New("explain response could not be found")

	// ErrContent means the body is not XML at all.
	ErrContent = errors.New("explain response is not XML")
)

type response struct {
	XMLName xml.Name
	Version string      `xml:"version"`
	Explain explainInfo `xml:"record>recordData>explain"`
}

type explainInfo struct {
	Indexes  []indexInfo  `xml:"indexInfo>index"`
	Schemas  []schemaInfo `xml:"schemaInfo>schema"`
	Defaults []typed      `xml:"configInfo>default"`
	Settings []typed      `xml:"configInfo>setting"`
	Supports []typed      `xml:"configInfo>supports"`
}

type indexInfo struct {
	ID       string    `xml:"id,attr"`
	Sort     *string   `xml:"sort,attr"`
	Titles   []string  `xml:"title"`
	Maps     []nameMap `xml:"map"`
	Supports []typed   `xml:"configInfo>supports"`
}

type nameMap struct {
	Name struct {
		Set  string `xml:"set,attr"`
		Text string `xml:",chardata"`
	} `xml:"name"`
}

type schemaInfo struct {
	Name       string  `xml:"name,attr"`
	Identifier string  `xml:"identifier,attr"`
	Sort       *string `xml:"sort,attr"`
}

type typed struct {
	Type  string `xml:"type,attr"`
	Value string `xml:",chardata"`
}

func (t typed) text() string { return strings.TrimSpace(t.Value) }

// Parse decodes an explain response body.
func Parse(data []byte) (*config.Configuration, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charsetReader

	var resp response
	if err := dec.Decode(&resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrContent, err)
	}
	if resp.XMLName.Local != "explainResponse" {
		return nil, fmt.Errorf("%w: root element is '%s'", ErrNoExplainResponse, resp.XMLName.Local)
	}

	cfg := &config.Configuration{
		SRUVersion:    strings.TrimSpace(resp.Version),
		ContextSets:   contextSets(resp.Explain.Indexes),
		RecordSchemas: schemas(resp.Explain.Schemas),
	}
	if err := applyConfigInfo(cfg, resp.Explain); err != nil {
		return nil, err
	}
	return cfg, nil
}

// charsetReader handles servers that declare a legacy encoding such as
// ISO-8859-1 in the XML prolog.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, err
	}
	return enc.NewDecoder().Reader(input), nil
}

func contextSets(indexes []indexInfo) map[string]map[string]config.IndexInfo {
	sortDeclared := false
	for _, idx := range indexes {
		if idx.Sort != nil {
			sortDeclared = true
			break
		}
	}

	sets := make(map[string]map[string]config.IndexInfo)
	for _, idx := range indexes {
		info := config.IndexInfo{ID: idx.ID}
		if len(idx.Titles) > 0 {
			info.Title = strings.TrimSpace(idx.Titles[0])
		}
		if sortDeclared {
			info.Sortable = config.Bool(idx.Sort != nil && *idx.Sort == "true")
		}
		info.SupportedRelations, info.EmptyTermSupported = relations(idx.Supports)

		for _, m := range idx.Maps {
			set, name := splitName(m.Name.Set, strings.TrimSpace(m.Name.Text))
			if set == "" || name == "" {
				continue
			}
			if sets[set] == nil {
				sets[set] = make(map[string]config.IndexInfo)
			}
			sets[set][name] = info
		}
	}
	return sets
}

// splitName strips a "set." prefix from an index name; the prefix names the
// set when the element carries no set attribute.
func splitName(set, name string) (string, string) {
	prefix, rest, found := strings.Cut(name, ".")
	if !found {
		return set, name
	}
	if set == "" {
		set = prefix
	}
	return set, rest
}

func relations(supports []typed) ([]string, *bool) {
	if len(supports) == 0 {
		return nil, nil
	}
	var rels []string
	empty := false
	for _, s := range supports {
		switch s.Type {
		case "relation":
			rels = append(rels, s.text())
		case "emptyTerm":
			empty = true
		}
	}
	return rels, config.Bool(empty)
}

func schemas(items []schemaInfo) map[string]config.Schema {
	out := make(map[string]config.Schema, len(items))
	for _, s := range items {
		if s.Name == "" {
			continue
		}
		out[s.Name] = config.Schema{
			Identifier: s.Identifier,
			Sortable:   s.Sort == nil || *s.Sort != "false",
		}
	}
	return out
}

func applyConfigInfo(cfg *config.Configuration, info explainInfo) error {
	for _, d := range info.Defaults {
		switch d.Type {
		case "numberOfRecords":
			n, err := strconv.Atoi(d.text())
			if err != nil {
				return fmt.Errorf("default numberOfRecords: %w", err)
			}
			cfg.DefaultRecordsReturned = n
		case "contextSet":
			cfg.DefaultContextSet = d.text()
		case "index":
			cfg.DefaultIndex = d.text()
		case "relation":
			cfg.DefaultRelation = d.text()
		case "retrieveSchema":
			cfg.DefaultRecordSchema = d.text()
		case "sortSchema":
			cfg.DefaultSortSchema = d.text()
		}
	}

	for _, s := range info.Settings {
		if s.Type == "maximumRecords" {
			n, err := strconv.Atoi(s.text())
			if err != nil {
				return fmt.Errorf("setting maximumRecords: %w", err)
			}
			cfg.MaxRecordsSupported = n
		}
	}

	for _, s := range info.Supports {
		if s.Type == "relationModifier" {
			cfg.SupportedRelationModifiers = append(cfg.SupportedRelationModifiers, s.text())
		}
	}
	return nil
}
