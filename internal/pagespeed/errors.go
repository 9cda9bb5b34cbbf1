package pagespeed

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"

	"github.com/nao1215/pagescore/internal/model"
)

// Scoring API errors.
var (
	// ErrMissingAPIKey is returned before any request is sent when the
	// client has no API key.
	ErrMissingAPIKey = errors.New("API key not configured")

	// ErrUpstreamStatus is returned when the scoring API answers with a
	// non-success HTTP status. Use errors.As with *StatusError for details.
	ErrUpstreamStatus = errors.New("scoring API rejected the request")

	// ErrUpstreamUnavailable is returned when the request could not be
	// completed at all (connection failure, cancelled context, read error).
	ErrUpstreamUnavailable = errors.New("scoring API unavailable")

	// ErrInvalidResponse is returned when a success response is not a JSON object.
	ErrInvalidResponse = errors.New("scoring API returned an invalid response")

	// ErrInvalidEndpoint is returned by NewClient for a malformed endpoint.
	ErrInvalidEndpoint = errors.New("invalid scoring API endpoint")
)

// StatusError describes a non-success answer of the scoring API.
type StatusError struct {
	// Profile is the strategy whose request failed.
	Profile model.Profile

	// StatusCode is the HTTP status returned upstream.
	StatusCode int

	// Message is the upstream error message, when the body carried one.
	Message string
}

// Error implements error.
func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s: scoring API returned %d %s", e.Profile, e.StatusCode, http.StatusText(e.StatusCode))
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Unwrap lets errors.Is match ErrUpstreamStatus.
func (e *StatusError) Unwrap() error {
	return ErrUpstreamStatus
}
