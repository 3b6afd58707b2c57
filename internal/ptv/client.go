// Package ptv provides the authenticated client for the PTV (Public Transport
// Victoria) Timetable API.
//
// Construction is two-phase: a [Descriptor] carries the non-secret connection
// settings and is always buildable, even without credentials, so that servers
// can expose configuration metadata before any signed call is possible.
// [Descriptor.Activate] validates the credential pair and yields a [Client]
// capable of issuing signed requests. There is no ambient global state; the
// activated client is passed explicitly to every operation that needs it.
package ptv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/melbtransit/ptvmcp/internal/observe"
)

const (
	// DefaultBaseURL is the production endpoint of the PTV Timetable API.
	DefaultBaseURL = "https://timetableapi.ptv.vic.gov.au"

	// DefaultVersion is the API version used when none is configured.
	DefaultVersion = "v3"

	// defaultTimeout bounds a single request, connect and read included.
	defaultTimeout = 30 * time.Second
)

// Environment variable names for the credential pair and optional overrides.
const (
	EnvDevID   = "PTV_DEV_ID"
	EnvDevKey  = "PTV_DEV_KEY"
	EnvVersion = "PTV_API_VERSION"
	EnvBaseURL = "PTV_BASE_URL"
)

// ErrMissingCredentials is returned when a signed call is attempted, or
// activation is requested, without a configured developer id and key.
var ErrMissingCredentials = errors.New(
	"ptv: developer credentials are not configured; set " + EnvDevID + " and " + EnvDevKey)

// Descriptor holds the connection settings for the PTV Timetable API. The
// zero value is not usable; build one with [NewDescriptor] or
// [DescriptorFromEnv].
type Descriptor struct {
	// BaseURL is the scheme-and-host prefix of the API, without a trailing slash.
	BaseURL string

	// Version is the API version path segment (e.g. "v3").
	Version string

	// DevID is the developer id issued by PTV. Not secret; it appears in
	// every request URL.
	DevID string

	key string
}

// NewDescriptor builds a Descriptor from explicit values. Empty baseURL and
// version fall back to [DefaultBaseURL] and [DefaultVersion]. No validation
// of the credential pair happens here; see [Descriptor.Activate].
func NewDescriptor(baseURL, version, devID, key string) Descriptor {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if version == "" {
		version = DefaultVersion
	}
	return Descriptor{BaseURL: baseURL, Version: version, DevID: devID, key: key}
}

// DescriptorFromEnv builds a Descriptor from the process environment,
// reading [EnvDevID], [EnvDevKey], and the optional [EnvVersion] and
// [EnvBaseURL] overrides.
func DescriptorFromEnv() Descriptor {
	return NewDescriptor(
		os.Getenv(EnvBaseURL),
		os.Getenv(EnvVersion),
		os.Getenv(EnvDevID),
		os.Getenv(EnvDevKey),
	)
}

// KeyConfigured reports whether a shared secret is present, without
// revealing it.
func (d Descriptor) KeyConfigured() bool {
	return d.key != ""
}

// Option is a functional option for configuring a [Client] during activation.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client. Useful in tests to point
// the client at an httptest server or to adjust the timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithMetrics sets the metrics instance used to record upstream request
// counts and latencies. Defaults to [observe.DefaultMetrics].
func WithMetrics(m *observe.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// Client issues signed GET requests against the PTV Timetable API. It is
// safe for concurrent use; the underlying [http.Client] manages its own
// connection pool.
//
// Create instances with [Descriptor.Activate].
type Client struct {
	desc       Descriptor
	httpClient *http.Client
	metrics    *observe.Metrics
}

// Activate validates the credential pair and returns a Client able to
// perform signed calls. It fails with [ErrMissingCredentials] before any
// network activity when either the developer id or the key is absent.
func (d Descriptor) Activate(opts ...Option) (*Client, error) {
	if d.DevID == "" || d.key == "" {
		return nil, ErrMissingCredentials
	}
	c := &Client{
		desc:       d,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, o := range opts {
		o(c)
	}
	if c.metrics == nil {
		c.metrics = observe.DefaultMetrics()
	}
	return c, nil
}

// Descriptor returns the connection settings this client was activated with.
func (c *Client) Descriptor() Descriptor {
	return c.desc
}

// Version returns the API version path segment (e.g. "v3").
func (c *Client) Version() string {
	return c.desc.Version
}

// Get signs and issues a single GET request for path with the given query
// parameters and decodes the JSON response body into out. Non-2xx responses
// and decode failures are reported as errors; nothing is retried.
func (c *Client) Get(ctx context.Context, path string, params url.Values, out any) error {
	signed, err := SignedPath(path, params, c.desc.DevID, c.desc.key)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.desc.BaseURL+signed, nil)
	if err != nil {
		return fmt.Errorf("ptv: build request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.record(ctx, path, start, resp, err)
	if err != nil {
		return fmt.Errorf("ptv: request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("ptv: %s returned HTTP %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("ptv: decode %s response: %w", path, err)
	}
	return nil
}

// record updates the upstream request metrics for a completed (or failed)
// HTTP round trip.
func (c *Client) record(ctx context.Context, path string, start time.Time, resp *http.Response, err error) {
	status := "error"
	if err == nil {
		status = strconv.Itoa(resp.StatusCode)
	}
	attrs := metric.WithAttributes(
		attribute.String("endpoint", path),
		attribute.String("status", status),
	)
	c.metrics.UpstreamRequests.Add(ctx, 1, attrs)
	c.metrics.UpstreamRequestDuration.Record(ctx, time.Since(start).Seconds(), attrs)
}
