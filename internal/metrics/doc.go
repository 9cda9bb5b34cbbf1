// Package metrics counts evaluations and scoring API calls and exposes them
// in the Prometheus text format on the service's /metrics endpoint.
package metrics
