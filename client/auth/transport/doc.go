// Package transport implements an http.RoundTripper that attaches the current
// access token to outgoing requests and performs the single refresh-and-retry
// protocol when the server challenges a call with `401 Unauthorized`.
//
// A successful refresh is invisible to the caller: the original request is
// replayed once with the new token and only the final outcome surfaces.
// Concurrent 401s are deduplicated behind a single in-flight refresh call.
// The RoundTripper integrates with the higher-level `client` package but can
// also be used directly to secure arbitrary HTTP traffic.
package transport
