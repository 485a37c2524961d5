// Package request assembles SRU searchRetrieve and explain requests.
//
// A SearchRetrieve couples a read-only server configuration with a CQL
// expression, optional record window and schema parameters, and an
// optional sort clause. Build renders it into a Request descriptor that a
// transport can send as is.
package request

import (
	"encoding/base64"
	"net/http"
	"strconv"
	"strings"

	"github.com/roach88/sruq/internal/config"
	"github.com/roach88/sruq/internal/cql"
	"github.com/roach88/sruq/internal/sorting"
	"github.com/roach88/sruq/internal/sruerr"
	"github.com/roach88/sruq/internal/validate"
)

// Params are the optional searchRetrieve parameters. Zero values are
// omitted; record schema and maximum records fall back to the
// configuration's defaults.
type Params struct {
	StartRecord    int
	MaximumRecords int
	RecordSchema   string
	RecordPacking  string
	Sort           sorting.Clause
}

// Request is a ready-to-send HTTP request description.
type Request struct {
	Method string
	URL    string
	Header http.Header
}

// SearchRetrieve is one searchRetrieve operation.
type SearchRetrieve struct {
	cfg    *config.Configuration
	query  cql.Node
	params Params
}

// New creates a searchRetrieve operation. The sort style must match the
// configuration's SRU version: legacy keys for 1.1, sortBy for 1.2.
func New(cfg *config.Configuration, query cql.Node, params Params) (*SearchRetrieve, error) {
	if cfg == nil {
		return nil, sruerr.Invalidf("A configuration is required to build a request.")
	}
	if query == nil {
		return nil, sruerr.Invalidf("A CQL query is required to build a request.")
	}

	version := cfg.Version()
	switch params.Sort.(type) {
	case sorting.Keys:
		if version != config.Version11 {
			return nil, sruerr.Invalidf("You cannot use sort keys with SRU version '%s'; sort with sortBy indexes instead.", version)
		}
	case sorting.By:
		if version == config.Version11 {
			return nil, sruerr.Invalidf("You must use sort keys for sorting with SRU version '%s'.", version)
		}
	}
	return &SearchRetrieve{cfg: cfg, query: query, params: params}, nil
}

// Query returns the CQL expression.
func (s *SearchRetrieve) Query() cql.Node { return s.query }

// Params returns the request parameters as given.
func (s *SearchRetrieve) Params() Params { return s.params }

// RecordSchema is the schema sent with the request.
func (s *SearchRetrieve) RecordSchema() string {
	if s.params.RecordSchema != "" {
		return s.params.RecordSchema
	}
	return s.cfg.DefaultRecordSchema
}

// MaximumRecords is the record count sent with the request.
func (s *SearchRetrieve) MaximumRecords() int {
	if s.params.MaximumRecords > 0 {
		return s.params.MaximumRecords
	}
	return s.cfg.DefaultRecordsReturned
}

// Validate checks configuration defaults, the base parameters, the query
// and the sort clause, in that order, and returns the first violation.
func (s *SearchRetrieve) Validate() error {
	if err := validate.Defaults(s.cfg); err != nil {
		return err
	}
	err := validate.BaseQuery(s.cfg, validate.BaseParams{
		StartRecord:    s.params.StartRecord,
		MaximumRecords: s.params.MaximumRecords,
		RecordSchema:   s.params.RecordSchema,
		RecordPacking:  s.params.RecordPacking,
	})
	if err != nil {
		return err
	}
	if err := s.query.Validate(s.cfg); err != nil {
		return err
	}
	return validate.Sort(s.cfg, s.params.Sort, s.RecordSchema())
}

// URL renders the full searchRetrieve URL.
func (s *SearchRetrieve) URL() (string, error) {
	if s.cfg.ServerURL == "" {
		return "", sruerr.Invalidf("Server URL '' is empty; the configuration must name the server.")
	}
	query, err := s.query.Format()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(s.cfg.ServerURL)
	b.WriteString("?version=")
	b.WriteString(s.cfg.Version())
	b.WriteString("&operation=searchRetrieve")
	if schema := s.RecordSchema(); schema != "" {
		b.WriteString("&recordSchema=")
		b.WriteString(schema)
	}
	if s.params.StartRecord > 0 {
		b.WriteString("&startRecord=")
		b.WriteString(strconv.Itoa(s.params.StartRecord))
	}
	if max := s.MaximumRecords(); max > 0 {
		b.WriteString("&maximumRecords=")
		b.WriteString(strconv.Itoa(max))
	}
	if s.params.RecordPacking != "" {
		b.WriteString("&recordPacking=")
		b.WriteString(s.params.RecordPacking)
	}
	b.WriteString("&query=")
	b.WriteString(query)
	if s.params.Sort != nil {
		b.WriteString(s.params.Sort.Format())
	}
	return b.String(), nil
}

// Build renders the request descriptor, adding basic authentication when
// the configuration carries credentials.
func (s *SearchRetrieve) Build() (*Request, error) {
	u, err := s.URL()
	if err != nil {
		return nil, err
	}
	return &Request{
		Method: http.MethodGet,
		URL:    u,
		Header: authHeader(s.cfg.Username, s.cfg.Password),
	}, nil
}

// Explain builds the explain request for a server.
func Explain(serverURL, version, username, password string) *Request {
	return &Request{
		Method: http.MethodGet,
		URL:    ExplainURL(serverURL, version),
		Header: authHeader(username, password),
	}
}

// ExplainURL renders the explain URL for a server.
func ExplainURL(serverURL, version string) string {
	return serverURL + "?version=" + version + "&operation=explain"
}

// BasicAuth returns the Authorization header value for the credentials.
func BasicAuth(username, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}

func authHeader(username, password string) http.Header {
	h := http.Header{}
	if username != "" && password != "" {
		h.Set("Authorization", BasicAuth(username, password))
	}
	return h
}
