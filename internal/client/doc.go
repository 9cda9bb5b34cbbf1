// Package client talks to a running aggregator service. The batch driver
// uses it by default so that the API key only lives on the server.
package client
