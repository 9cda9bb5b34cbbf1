package pagespeed

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/nao1215/pagescore/internal/log"
	"github.com/nao1215/pagescore/internal/model"
)

const (
	// DefaultEndpoint is the PageSpeed Insights v5 API.
	DefaultEndpoint = "https://www.googleapis.com/pagespeedonline/v5/runPagespeed"

	// DefaultUserAgent is sent with every request.
	DefaultUserAgent = "pagescore (+https://github.com/nao1215/pagescore)"

	// DefaultMaxBodySize caps a single response. Lighthouse reports with
	// screenshots are a few megabytes.
	DefaultMaxBodySize = 32 * 1024 * 1024

	// errorBodyLimit caps how much of a failed response is read for its message.
	errorBodyLimit = 64 * 1024
)

// Client queries the scoring API for one profile at a time.
// It is safe for concurrent use; the API key may be replaced while
// requests are in flight.
type Client struct {
	endpoint    string
	httpClient  *http.Client
	userAgent   string
	maxBodySize int64
	logger      *slog.Logger

	mu     sync.RWMutex
	apiKey string
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the scoring API URL.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets a timeout on the default HTTP client. Zero keeps the
// client default, which never times out.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient = &http.Client{Timeout: d}
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithMaxBodySize caps the size of a response body.
func WithMaxBodySize(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxBodySize = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a client using apiKey. An empty key is accepted; every
// Fetch then fails with ErrMissingAPIKey until SetAPIKey is called.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	c := &Client{
		endpoint:    DefaultEndpoint,
		httpClient:  &http.Client{},
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
		logger:      log.Discard(),
		apiKey:      apiKey,
	}
	for _, opt := range opts {
		opt(c)
	}

	u, err := url.Parse(c.endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, errors.WithDetailf(ErrInvalidEndpoint, "endpoint %q", c.endpoint)
	}
	return c, nil
}

// SetAPIKey replaces the API key used by subsequent requests.
func (c *Client) SetAPIKey(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.apiKey = key
}

func (c *Client) key() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.apiKey
}

// CheckCredential returns ErrMissingAPIKey when no key is set.
func (c *Client) CheckCredential() error {
	if c.key() == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// RequestURL builds the scoring API URL for target and profile.
func (c *Client) RequestURL(target string, profile model.Profile) string {
	return c.requestURL(target, profile, c.key())
}

func (c *Client) requestURL(target string, profile model.Profile, key string) string {
	q := url.Values{}
	q.Set("url", target)
	q.Set("strategy", profile.String())
	q.Set("key", key)

	u, _ := url.Parse(c.endpoint) // validated in NewClient
	existing := u.Query()
	for k, vs := range q {
		existing[k] = vs
	}
	u.RawQuery = existing.Encode()
	return u.String()
}

// Fetch runs one analysis of target with the given profile and returns the
// response body untouched.
func (c *Client) Fetch(ctx context.Context, target string, profile model.Profile) (json.RawMessage, error) {
	key := c.key()
	if key == "" {
		return nil, ErrMissingAPIKey
	}

	reqURL := c.requestURL(target, profile, key)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(unwrapURLError(err), "%s: build request", profile), ErrUpstreamUnavailable)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	c.logger.Debug("requesting analysis", "url", reqURL, "strategy", profile)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(unwrapURLError(err), "%s: request failed", profile), ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		statusErr := &StatusError{
			Profile:    profile,
			StatusCode: resp.StatusCode,
			Message:    upstreamMessage(body),
		}
		c.logger.Debug("analysis rejected", "strategy", profile, "status", resp.StatusCode, "error", statusErr)
		return nil, statusErr
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize+1))
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(unwrapURLError(err), "%s: read response", profile), ErrUpstreamUnavailable)
	}
	if int64(len(body)) > c.maxBodySize {
		return nil, errors.Wrapf(ErrInvalidResponse, "%s: response exceeds %d bytes", profile, c.maxBodySize)
	}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' || !json.Valid(trimmed) {
		return nil, errors.Wrapf(ErrInvalidResponse, "%s: body is not a JSON object", profile)
	}

	c.logger.Debug("analysis received", "strategy", profile, "bytes", len(body), "elapsed", time.Since(start))
	return json.RawMessage(trimmed), nil
}

// upstreamMessage extracts error.message from a Google API error body.
func upstreamMessage(body []byte) string {
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Error.Message
}

// unwrapURLError drops the *url.Error wrapper, whose text repeats the
// request URL and with it the API key.
func unwrapURLError(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return uerr.Err
	}
	return err
}
