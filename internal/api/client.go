// Package api talks to the host-health backend and adapts its responses,
// whatever the schema version, into health.Host values.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rileyhilliard/healthdash/internal/errors"
	"github.com/rileyhilliard/healthdash/internal/health"
	"github.com/rileyhilliard/healthdash/internal/logger"
	"go.uber.org/multierr"
)

// RequestIDHeader carries a per-request uuid so client and backend logs line up.
const RequestIDHeader = "X-Request-ID"

// Endpoint labels used for logging and metrics.
const (
	EndpointHealth = "health"
	EndpointHosts  = "hosts"
	EndpointHost   = "host"
)

// Fetch outcomes reported to the Observer.
const (
	OutcomeOK       = "ok"
	OutcomeError    = "error"
	OutcomeNotFound = "not_found"
	OutcomeCanceled = "canceled"
)

const maxBodyBytes = 16 << 20

// Observer receives one call per completed request.
type Observer interface {
	ObserveFetch(endpoint, outcome string, took time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveFetch(string, string, time.Duration) {}

// Client is a JSON client for /api/health and /api/hosts.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        logger.Logger
	observer   Observer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout bounds each request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithLogger sets the request logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithObserver reports request outcomes, typically to metrics.
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// NewClient creates a client for the backend at baseURL, e.g.
// "http://localhost:8080". A trailing slash is ignored.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 5 * time.Second},
		log:        logger.Noop(),
		observer:   nopObserver{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured backend address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CurrentHost fetches /api/health.
func (c *Client) CurrentHost(ctx context.Context) (health.Host, error) {
	body, err := c.get(ctx, EndpointHealth, "/api/health")
	if err != nil {
		return health.Host{}, err
	}
	if isNull(body) {
		return health.Host{}, errors.New(errors.ErrDecode,
			"GET /api/health returned no host",
			"Check the backend is fully started")
	}

	var w wireHost
	if err := decode("/api/health", body, &w); err != nil {
		return health.Host{}, err
	}
	return normalizeHost(w), nil
}

// Hosts fetches /api/hosts. A null list is an empty fleet.
func (c *Client) Hosts(ctx context.Context) ([]health.Host, error) {
	body, err := c.get(ctx, EndpointHosts, "/api/hosts")
	if err != nil {
		return nil, err
	}
	if isNull(body) {
		return []health.Host{}, nil
	}

	var ws []wireHost
	if err := decode("/api/hosts", body, &ws); err != nil {
		return nil, err
	}
	return normalizeHosts(ws), nil
}

// Host fetches /api/hosts/{id} including its check history. A 404, empty body
// or null body is reported as a NOT_FOUND error.
func (c *Client) Host(ctx context.Context, id string) (*health.Host, error) {
	path := "/api/hosts/" + url.PathEscape(id)
	body, err := c.get(ctx, EndpointHost, path)
	if err != nil {
		return nil, err
	}
	if isNull(body) {
		return nil, errors.New(errors.ErrNotFound,
			fmt.Sprintf("Host %s not found", id),
			"It may have been removed from the fleet")
	}

	var w wireHost
	if err := decode(path, body, &w); err != nil {
		return nil, err
	}
	h := normalizeHost(w)
	if h.ID == "" {
		h.ID = id
	}
	return &h, nil
}

// Fleet fetches the current host and the host list concurrently. Both must
// succeed; failures are combined.
func (c *Client) Fleet(ctx context.Context) (health.FleetSummary, error) {
	var (
		wg         sync.WaitGroup
		current    health.Host
		hosts      []health.Host
		currentErr error
		hostsErr   error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		current, currentErr = c.CurrentHost(ctx)
	}()
	go func() {
		defer wg.Done()
		hosts, hostsErr = c.Hosts(ctx)
	}()
	wg.Wait()

	if err := multierr.Combine(currentErr, hostsErr); err != nil {
		return health.FleetSummary{}, err
	}
	return health.FleetSummary{Current: current, Hosts: hosts}, nil
}

func (c *Client) get(ctx context.Context, endpoint, path string) ([]byte, error) {
	reqID := uuid.NewString()
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrFetch,
			"Cannot build request for "+path,
			"Check api.base_url is a valid URL")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, reqID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		outcome := OutcomeError
		if ctx.Err() != nil {
			outcome = OutcomeCanceled
		}
		c.finish(endpoint, outcome, start)
		c.log.Warn("GET %s request_id=%s failed: %v", path, reqID, err)
		return nil, errors.WrapWithCode(err, errors.ErrFetch,
			"GET "+path+" failed",
			"Check the backend is reachable at "+c.baseURL)
	}
	defer resp.Body.Close()

	c.log.Debug("GET %s request_id=%s status=%d took=%s", path, reqID, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		c.finish(endpoint, OutcomeNotFound, start)
		return nil, errors.New(errors.ErrNotFound,
			"GET "+path+" returned 404",
			"")
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.finish(endpoint, OutcomeError, start)
		c.log.Warn("GET %s request_id=%s status=%d", path, reqID, resp.StatusCode)
		return nil, errors.WrapWithCode(
			fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet))),
			errors.ErrStatus,
			fmt.Sprintf("GET %s returned %d", path, resp.StatusCode),
			"Check the backend logs")
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		c.finish(endpoint, OutcomeError, start)
		return nil, errors.WrapWithCode(err, errors.ErrFetch,
			"Reading "+path+" response failed",
			"")
	}

	c.finish(endpoint, OutcomeOK, start)
	return body, nil
}

func (c *Client) finish(endpoint, outcome string, start time.Time) {
	c.observer.ObserveFetch(endpoint, outcome, time.Since(start))
}

func isNull(body []byte) bool {
	b := bytes.TrimSpace(body)
	return len(b) == 0 || bytes.Equal(b, []byte("null"))
}

func decode(path string, body []byte, out interface{}) error {
	if err := json.Unmarshal(body, out); err != nil {
		return errors.WrapWithCode(err, errors.ErrDecode,
			"Malformed response from "+path,
			"Check the backend version matches this dashboard")
	}
	return nil
}
