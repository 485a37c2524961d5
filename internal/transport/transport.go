// Package transport sends assembled SRU requests over HTTP.
package transport

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/roach88/sruq/internal/request"
)

// DefaultTimeout bounds a single exchange when the caller supplies no
// HTTP client of its own.
const DefaultTimeout = 60 * time.Second

// maxBody caps how much of a response is read into memory.
const maxBody = 64 << 20

// Doer is satisfied by *http.Client.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Options configure a Client. Zero values select defaults.
type Options struct {
	HTTPClient Doer
	Logger     *slog.Logger
}

// Client performs SRU GET requests.
type Client struct {
	http   Doer
	logger *slog.Logger
}

// New creates a client.
func New(opts Options) *Client {
	c := &Client{http: opts.HTTPClient, logger: opts.Logger}
	if c.http == nil {
		c.http = &http.Client{Timeout: DefaultTimeout}
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c
}

// Do sends req and returns the response body. Non-2xx statuses become a
// *PermissionError (401, 403) or a *StatusError.
func (c *Client) Do(ctx context.Context, req *request.Request) ([]byte, error) {
	target := Requote(req.URL)
	operation := operationOf(target)
	requestID := uuid.NewString()

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", operation, err)
	}
	for key, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}

	c.logger.Debug("sending request",
		"request_id", requestID,
		"operation", operation,
		"url", target)

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		requestsTotal.WithLabelValues(operation, "error").Inc()
		return nil, fmt.Errorf("%s request: %w", operation, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	requestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	requestsTotal.WithLabelValues(operation, strconv.Itoa(resp.StatusCode)).Inc()
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", operation, err)
	}

	c.logger.Debug("received response",
		"request_id", requestID,
		"operation", operation,
		"status", resp.StatusCode,
		"bytes", len(body))

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &PermissionError{URL: target, StatusCode: resp.StatusCode}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &StatusError{URL: target, StatusCode: resp.StatusCode, Body: body}
	}
	return body, nil
}

func operationOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "unknown"
	}
	if op := u.Query().Get("operation"); op != "" {
		return op
	}
	return "unknown"
}
