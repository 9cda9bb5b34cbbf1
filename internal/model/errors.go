package model

import "github.com/cockroachdb/errors"

var (
	// ErrMissingPayload is returned when a profile payload is absent or not a JSON object.
	ErrMissingPayload = errors.New("profile payload is missing")

	// ErrBatchRunFull is returned when appending beyond the number of submitted URLs.
	ErrBatchRunFull = errors.New("batch run already holds a record for every URL")
)
