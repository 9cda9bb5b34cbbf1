// Package server exposes the aggregator service over HTTP.
//
// Routes:
//   - GET  /         health check
//   - POST /sendUrl  {"url": "..."} -> {"mobile": ..., "desktop": ...}
//   - GET  /metrics  Prometheus text exposition
//
// Errors are answered as {"error": "..."}: 400 for a bad body, an empty
// URL or a URL the scoring API rejected, 500 when the API key is missing
// or anything else fails.
package server
