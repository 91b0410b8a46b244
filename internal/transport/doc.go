// Package transport provides the HTTP client used to deliver widget
// payloads to the push API.
//
// This package is internal to geckopush. It wraps net/http with per-request
// timeouts, a response size limit and latency capture. Failures are reported
// in the returned [Response] rather than as a separate error value.
//
// Users of the geckopush library should not need to interact with this
// package directly.
package transport
