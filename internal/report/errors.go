package report

import "github.com/cockroachdb/errors"

var (
	// ErrNoRecords is returned by file exporters when the run holds no
	// records. Callers treat it as a warning: there is nothing to export.
	ErrNoRecords = errors.New("no data to export")

	// ErrUnknownFormat is returned for an unsupported report format.
	ErrUnknownFormat = errors.New("unknown report format")
)
