package model

import "github.com/google/uuid"

// BatchRun is the ordered outcome of one batch of URLs. It is owned by
// the caller that started the batch and is filled by a single writer.
type BatchRun struct {
	// ID identifies the run in logs.
	ID string `json:"id"`

	// Total is the number of non-blank URLs submitted.
	Total int `json:"total"`

	// Records holds one record per processed URL, in input order.
	Records []Record `json:"records"`
}

// NewBatchRun returns an empty run expecting total records.
func NewBatchRun(total int) *BatchRun {
	if total < 0 {
		total = 0
	}
	return &BatchRun{
		ID:      uuid.NewString(),
		Total:   total,
		Records: make([]Record, 0, total),
	}
}

// NewSingleRun wraps one record in a complete run.
func NewSingleRun(rec Record) *BatchRun {
	run := NewBatchRun(1)
	run.Records = append(run.Records, rec)
	return run
}

// Append adds the next record. It fails once every URL has a record.
func (r *BatchRun) Append(rec Record) error {
	if len(r.Records) >= r.Total {
		return ErrBatchRunFull
	}
	r.Records = append(r.Records, rec)
	return nil
}

// Processed returns the number of URLs that have a record.
func (r *BatchRun) Processed() int {
	return len(r.Records)
}

// Progress returns the completion percentage, from 0 to 100.
// An empty run is complete.
func (r *BatchRun) Progress() int {
	if r.Total == 0 {
		return 100
	}
	return r.Processed() * 100 / r.Total
}

// Complete reports whether every submitted URL has a record.
func (r *BatchRun) Complete() bool {
	return r.Processed() == r.Total
}

// Succeeded returns the number of successful records.
func (r *BatchRun) Succeeded() int {
	n := 0
	for _, rec := range r.Records {
		if rec.Succeeded() {
			n++
		}
	}
	return n
}

// Failed returns the number of failed records.
func (r *BatchRun) Failed() int {
	return r.Processed() - r.Succeeded()
}
