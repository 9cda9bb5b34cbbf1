package config

import "github.com/cockroachdb/errors"

// Configuration validation errors returned by Config.Validate and the loaders.
var (
	// ErrMissingAPIKey is returned when no scoring API key is configured.
	// The server starts without one; every evaluation then fails with this error.
	ErrMissingAPIKey = errors.New("API key not configured: set PAGESPEED_API_KEY or Google_API")

	// ErrInvalidPort is returned when the listen port is outside 1-65535.
	ErrInvalidPort = errors.New("invalid port: must be between 1 and 65535")

	// ErrInvalidTimeout is returned when a timeout is negative.
	// Zero means the HTTP client default (no timeout).
	ErrInvalidTimeout = errors.New("invalid timeout: must be non-negative")

	// ErrInvalidServerURL is returned when the aggregator base URL is not an absolute http(s) URL.
	ErrInvalidServerURL = errors.New("invalid server URL: must be an absolute http or https URL")

	// ErrInvalidEndpoint is returned when the scoring API endpoint is not an absolute http(s) URL.
	ErrInvalidEndpoint = errors.New("invalid PageSpeed endpoint: must be an absolute http or https URL")

	// ErrConfigNotFound is returned when the configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")
)
