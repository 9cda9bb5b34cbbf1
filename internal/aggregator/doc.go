// Package aggregator implements the evaluation of one URL: two concurrent
// calls to the scoring API, one per device profile, joined into a single
// result. Evaluation is all or nothing. Nothing is cached or retried.
package aggregator
