// Package batch drives the evaluation of a list of URLs.
//
// URLs are processed one at a time in input order, so the records of a
// BatchRun always line up with the input and the scoring API never sees
// more than one URL in flight from a batch. Failures do not stop a batch:
// they become records whose metrics are all model.ErrorValue.
//
// ParseURLs reads the accepted input format: one URL per line, taken from
// the first comma-separated field, with blank lines ignored.
package batch
