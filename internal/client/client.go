package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/nao1215/pagescore/internal/log"
	"github.com/nao1215/pagescore/internal/model"
	"github.com/nao1215/pagescore/internal/pagespeed"
)

// sendURLPath is the evaluation endpoint of the aggregator service.
const sendURLPath = "/sendUrl"

// DefaultMaxResponseSize caps the service answer. It carries two Lighthouse
// reports, each bounded by the pagespeed client, plus the JSON envelope.
const DefaultMaxResponseSize int64 = 2*pagespeed.DefaultMaxBodySize + 1024*1024

// Client calls a running aggregator service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	maxSize    int64
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets a per-request timeout. Zero keeps the client default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient = &http.Client{Timeout: d}
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

// WithMaxResponseSize sets the largest accepted answer in bytes.
// Non-positive values keep DefaultMaxResponseSize.
func WithMaxResponseSize(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxSize = n
		}
	}
}

// New creates a client for the service at baseURL, e.g. http://localhost:8000.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, errors.WithDetailf(ErrInvalidBaseURL, "base URL %q", baseURL)
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     log.Discard(),
		maxSize:    DefaultMaxResponseSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the service base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Evaluate asks the service to score target.
func (c *Client) Evaluate(ctx context.Context, target string) (*model.ScoreResult, error) {
	body, err := json.Marshal(struct {
		URL string `json:"url"`
	}{URL: target})
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+sendURLPath, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "failed to build request"), ErrServiceUnavailable)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("requesting evaluation", "target", target, "service", c.baseURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "evaluation request failed"), ErrServiceUnavailable)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxSize+1))
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "failed to read response"), ErrServiceUnavailable)
	}
	if int64(len(data)) > c.maxSize {
		return nil, errors.Wrapf(ErrResponseTooLarge, "response exceeds %d bytes", c.maxSize)
	}

	if resp.StatusCode != http.StatusOK {
		var payload struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(data, &payload)
		return nil, &ServiceError{StatusCode: resp.StatusCode, Message: payload.Error}
	}

	var result model.ScoreResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "failed to decode response"), ErrServiceUnavailable)
	}
	result.URL = target
	return &result, nil
}

// Health calls GET / and returns the service message.
func (c *Client) Health(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return "", errors.Mark(errors.Wrap(err, "failed to build request"), ErrServiceUnavailable)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Mark(errors.Wrap(err, "health request failed"), ErrServiceUnavailable)
	}
	defer resp.Body.Close()

	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", errors.Mark(errors.Wrap(err, "failed to decode health response"), ErrServiceUnavailable)
	}
	if resp.StatusCode != http.StatusOK {
		return "", &ServiceError{StatusCode: resp.StatusCode, Message: payload.Message}
	}
	return payload.Message, nil
}
