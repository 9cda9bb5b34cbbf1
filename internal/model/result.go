package model

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// ScoreResult is the combined answer of the scoring API for one URL.
// Both payloads are kept exactly as the upstream returned them.
type ScoreResult struct {
	// URL is the evaluated address. It is not part of the wire format.
	URL string `json:"-"`

	// Mobile is the raw payload of the mobile strategy.
	Mobile json.RawMessage `json:"mobile"`

	// Desktop is the raw payload of the desktop strategy.
	Desktop json.RawMessage `json:"desktop"`
}

// Payload returns the raw payload of profile p.
func (r *ScoreResult) Payload(p Profile) json.RawMessage {
	switch p {
	case ProfileMobile:
		return r.Mobile
	case ProfileDesktop:
		return r.Desktop
	default:
		return nil
	}
}

// Documents decodes both payloads. A result lacking either one is
// rejected with ErrMissingPayload.
func (r *ScoreResult) Documents() (map[Profile]Document, error) {
	docs := make(map[Profile]Document, 2)
	for _, p := range Profiles() {
		doc, err := ParseDocument(r.Payload(p))
		if err != nil {
			return nil, errors.Wrapf(err, "%s", p)
		}
		docs[p] = doc
	}
	return docs, nil
}

// Record is the flattened outcome of one URL, success or failure.
type Record struct {
	URL     string  `json:"url"`
	Mobile  Metrics `json:"mobile"`
	Desktop Metrics `json:"desktop"`
	Status  Status  `json:"status"`
	Error   string  `json:"error,omitempty"`
}

// NewSuccessRecord flattens result into a record. A result missing either
// payload yields a failed record instead.
func NewSuccessRecord(url string, result *ScoreResult) Record {
	if result == nil {
		return NewFailedRecord(url, ErrMissingPayload)
	}
	docs, err := result.Documents()
	if err != nil {
		return NewFailedRecord(url, err)
	}
	return Record{
		URL:     url,
		Mobile:  ExtractMetrics(docs[ProfileMobile]),
		Desktop: ExtractMetrics(docs[ProfileDesktop]),
		Status:  StatusSuccess,
	}
}

// NewFailedRecord returns the placeholder record of a URL that could not
// be evaluated.
func NewFailedRecord(url string, err error) Record {
	rec := Record{
		URL:     url,
		Mobile:  ErrorMetrics(),
		Desktop: ErrorMetrics(),
		Status:  StatusFailed,
	}
	if err != nil {
		rec.Error = err.Error()
	}
	return rec
}

// Metrics returns the metrics of profile p.
func (r Record) Metrics(p Profile) Metrics {
	if p == ProfileDesktop {
		return r.Desktop
	}
	return r.Mobile
}

// Succeeded reports whether the record carries real metrics.
func (r Record) Succeeded() bool {
	return r.Status == StatusSuccess
}
