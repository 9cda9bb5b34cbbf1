// Package pagespeed is a client for the PageSpeed Insights scoring API.
//
// A Client sends one GET request per (URL, profile) pair and returns the
// response body as-is. It never retries and never caches. Failures are
// classified with sentinel errors:
//   - ErrMissingAPIKey: no key configured, nothing was sent
//   - ErrUpstreamStatus (*StatusError): the API answered with a non-2xx status
//   - ErrUpstreamUnavailable: the request did not complete
//   - ErrInvalidResponse: a 2xx answer that is not a JSON object
package pagespeed
