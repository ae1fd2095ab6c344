package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const maxResponseSize = 10 << 20 // 10 MB

const (
	DefaultBaseURL   = "https://pypi.org"
	DefaultTimeout   = 5 * time.Second
	DefaultUserAgent = "conda-env-detector"
)

// Option configures a Client.
type Option func(*Client)

// Client looks up package metadata on a PyPI-compatible registry.
// It keeps no state between lookups.
type Client struct {
	baseURL    string
	userAgent  string
	timeout    time.Duration
	httpClient *http.Client
}

// NewClient creates a new registry client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		userAgent:  DefaultUserAgent,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

// WithBaseURL sets the registry root, e.g. https://pypi.org or an httptest server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(baseURL, "/") }
}

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout bounds each lookup, overriding the HTTP client's own timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithUserAgent sets the User-Agent header sent with each request.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// BaseURL returns the registry root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Fetch performs one lookup for name. It never fails: every error is turned
// into placeholder text and reported through Info.Outcome.
func (c *Client) Fetch(ctx context.Context, name string) Info {
	data, err := c.get(ctx, ProjectURL(c.baseURL, name))
	if err != nil {
		return degraded(err)
	}

	var resp projectResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return degraded(fmt.Errorf("parsing response for %s: %w", name, err))
	}

	return resp.Info.toInfo()
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: url}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w", url, err)
	}

	return data, nil
}
