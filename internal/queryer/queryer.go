// Package queryer is the client entry point: it learns a server's
// capabilities from its explain response, merges caller overrides, and
// then builds, validates and sends searchRetrieve requests against that
// configuration.
//
// A Queryer is safe for concurrent use. Its configuration is fixed at
// construction.
package queryer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/roach88/sruq/internal/config"
	"github.com/roach88/sruq/internal/cql"
	"github.com/roach88/sruq/internal/explain"
	"github.com/roach88/sruq/internal/request"
	"github.com/roach88/sruq/internal/transport"
	"github.com/roach88/sruq/internal/validate"
)

// DefaultRelation is used when the server publishes no default relation.
const DefaultRelation = "="

var supportedVersions = []string{config.Version12, config.Version11}

// Options configure a Queryer. Zero values select defaults.
type Options struct {
	// SRUVersion is the version requested in the explain call. Empty or
	// unsupported values fall back to 1.2.
	SRUVersion string

	// Overrides replace or fill server-published values. Username and
	// Password here also authenticate the explain call.
	Overrides config.Overrides

	HTTPClient transport.Doer
	Logger     *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Queryer issues requests against one SRU server.
type Queryer struct {
	cfg    *config.Configuration
	client *transport.Client
	logger *slog.Logger
}

// New fetches and parses the server's explain response, then applies the
// overrides in opts. Unless default validation is disabled, the resulting
// defaults must themselves be valid.
func New(ctx context.Context, serverURL string, opts Options) (*Queryer, error) {
	logger := opts.logger()
	version := requestedVersion(opts.SRUVersion, logger)
	client := transport.New(transport.Options{HTTPClient: opts.HTTPClient, Logger: logger})

	body, err := client.Do(ctx, request.Explain(serverURL, version, opts.Overrides.Username, opts.Overrides.Password))
	if err != nil {
		return nil, fmt.Errorf("fetch explain response: %w", err)
	}
	cfg, err := explain.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse explain response from %s: %w", serverURL, err)
	}

	switch {
	case cfg.SRUVersion == "":
		cfg.SRUVersion = version
	case !slices.Contains(supportedVersions, cfg.SRUVersion):
		logger.Warn("server reported an unsupported SRU version", "reported", cfg.SRUVersion, "using", version)
		cfg.SRUVersion = version
	case cfg.SRUVersion != version && opts.SRUVersion == version:
		logger.Warn("server reported a different SRU version", "requested", version, "reported", cfg.SRUVersion)
	case cfg.SRUVersion != version:
		logger.Debug("server reported a different SRU version", "requested", version, "reported", cfg.SRUVersion)
	}
	if opts.SRUVersion == "" {
		logger.Info("using SRU version", "version", cfg.SRUVersion)
	}

	if cfg.DefaultRelation == "" {
		cfg.DefaultRelation = DefaultRelation
	}
	cfg.ServerURL = serverURL

	return build(cfg, opts, client, logger)
}

// FromConfiguration wraps an existing configuration, such as a restored
// snapshot, without contacting the server.
func FromConfiguration(cfg *config.Configuration, opts Options) (*Queryer, error) {
	if cfg == nil {
		return nil, errors.New("configuration is nil")
	}
	logger := opts.logger()
	client := transport.New(transport.Options{HTTPClient: opts.HTTPClient, Logger: logger})
	return build(cfg, opts, client, logger)
}

func build(cfg *config.Configuration, opts Options, client *transport.Client, logger *slog.Logger) (*Queryer, error) {
	merged, err := cfg.Apply(opts.Overrides, logger)
	if err != nil {
		return nil, err
	}
	if merged.DefaultsEnabled() {
		if err := validate.Defaults(merged); err != nil {
			return nil, err
		}
	}
	return &Queryer{cfg: merged, client: client, logger: logger}, nil
}

func requestedVersion(v string, logger *slog.Logger) string {
	switch {
	case v == "":
		return config.Version12
	case slices.Contains(supportedVersions, v):
		return v
	default:
		logger.Warn("SRU version is not supported; defaulting to 1.2", "requested", v)
		return config.Version12
	}
}

// Configuration returns a copy of the merged configuration.
func (q *Queryer) Configuration() *config.Configuration {
	return q.cfg.Clone()
}

// NewSearch builds a searchRetrieve operation against the configuration.
func (q *Queryer) NewSearch(query cql.Node, params request.Params) (*request.SearchRetrieve, error) {
	return request.New(q.cfg, query, params)
}

// ConstructRequest builds, optionally validates, and renders a
// searchRetrieve request without sending it.
func (q *Queryer) ConstructRequest(query cql.Node, params request.Params, check bool) (*request.Request, error) {
	sr, err := q.NewSearch(query, params)
	if err != nil {
		return nil, err
	}
	return q.Render(sr, check)
}

// SearchFromMap rebuilds a searchRetrieve operation from its map form.
func (q *Queryer) SearchFromMap(m map[string]any) (*request.SearchRetrieve, error) {
	return request.FromMap(q.cfg, m)
}

// Render optionally validates an assembled operation and renders it.
func (q *Queryer) Render(sr *request.SearchRetrieve, check bool) (*request.Request, error) {
	if check {
		if err := sr.Validate(); err != nil {
			return nil, err
		}
	}
	return sr.Build()
}

// SearchRetrieve sends a searchRetrieve request and returns the raw
// response body. The response itself is not interpreted.
func (q *Queryer) SearchRetrieve(ctx context.Context, query cql.Node, params request.Params, check bool) ([]byte, error) {
	sr, err := q.NewSearch(query, params)
	if err != nil {
		return nil, err
	}
	return q.Send(ctx, sr, check)
}

// Send renders and sends an already assembled operation.
func (q *Queryer) Send(ctx context.Context, sr *request.SearchRetrieve, check bool) ([]byte, error) {
	req, err := q.Render(sr, check)
	if err != nil {
		return nil, err
	}
	q.logger.Info("querying", "url", req.URL)
	return q.client.Do(ctx, req)
}

// AvailableIndexes writes the index listing, restricted to indexes whose
// title contains filter when filter is not empty.
func (q *Queryer) AvailableIndexes(w io.Writer, filter string) error {
	return config.WriteIndexes(w, q.cfg.FilterIndexes(filter))
}
