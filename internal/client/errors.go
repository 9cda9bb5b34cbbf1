package client

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	// ErrServiceRejected is returned when the aggregator service answers
	// with a non-200 status. Use errors.As with *ServiceError for details.
	ErrServiceRejected = errors.New("aggregator service rejected the request")

	// ErrServiceUnavailable is returned when the service cannot be reached
	// or its answer cannot be read.
	ErrServiceUnavailable = errors.New("aggregator service unavailable")

	// ErrResponseTooLarge is returned when the answer exceeds the size limit.
	ErrResponseTooLarge = errors.New("aggregator service response too large")

	// ErrInvalidBaseURL is returned by New for a malformed base URL.
	ErrInvalidBaseURL = errors.New("invalid aggregator service URL")
)

// ServiceError is a non-200 answer of the aggregator service.
type ServiceError struct {
	StatusCode int
	Message    string
}

// Error implements error.
func (e *ServiceError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("aggregator service returned %d", e.StatusCode)
	}
	return fmt.Sprintf("aggregator service returned %d: %s", e.StatusCode, e.Message)
}

// Unwrap lets errors.Is match ErrServiceRejected.
func (e *ServiceError) Unwrap() error {
	return ErrServiceRejected
}
