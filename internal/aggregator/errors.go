package aggregator

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/nao1215/pagescore/internal/pagespeed"
)

var (
	// ErrMissingAPIKey is returned when the service has no scoring API key.
	// It is a configuration error: no outbound request is made.
	ErrMissingAPIKey = pagespeed.ErrMissingAPIKey

	// ErrEmptyURL is returned when the URL to evaluate is empty.
	ErrEmptyURL = errors.New("URL is required")
)

// Outcome classifies the result of an evaluation.
type Outcome string

const (
	// OutcomeSuccess means both profiles were scored.
	OutcomeSuccess Outcome = "success"
	// OutcomeInvalidInput means the request was rejected before any upstream call.
	OutcomeInvalidInput Outcome = "invalid_input"
	// OutcomeConfiguration means the service is missing its API key.
	OutcomeConfiguration Outcome = "configuration_error"
	// OutcomeUpstreamRejected means the scoring API answered with a non-success status.
	OutcomeUpstreamRejected Outcome = "upstream_rejected"
	// OutcomeCancelled means the caller went away before the evaluation finished.
	OutcomeCancelled Outcome = "cancelled"
	// OutcomeFailed covers every other failure.
	OutcomeFailed Outcome = "failed"
)

// Classify maps an error returned by Evaluate (or by a Fetcher) to an Outcome.
func Classify(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, ErrMissingAPIKey):
		return OutcomeConfiguration
	case errors.Is(err, ErrEmptyURL):
		return OutcomeInvalidInput
	case errors.Is(err, pagespeed.ErrUpstreamStatus):
		return OutcomeUpstreamRejected
	case errors.Is(err, context.Canceled):
		return OutcomeCancelled
	default:
		return OutcomeFailed
	}
}
