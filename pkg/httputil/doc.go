// Package httputil downloads remote mask images over HTTP.
//
// # Overview
//
// The CLI accepts an http(s):// URL anywhere it accepts a mask file path.
// [Fetcher] is the client behind that:
//
//   - Automatic retry with exponential backoff for transient failures
//   - Response caching through any [cache.Cache] backend
//   - Request instrumentation via [observability.HTTPHooks]
//
// # Caching
//
// Responses are stored under the keyer's HTTP key space with a short TTL
// ([cache.TTLHTTP]), so repeated runs against the same URL skip the network
// entirely. Pass refresh=true to bypass the cache and re-download.
//
// Usage:
//
//	c, _ := cache.NewFileCache(dir)
//	fetcher := httputil.NewFetcher(c, nil)
//	img, err := fetcher.Fetch(ctx, "https://example.com/mask.png", false)
//
// # Retry
//
// Transient failures are retried up to 3 times with exponential backoff:
//
//   - Network errors (timeouts, connection resets)
//   - 5xx server errors
//   - 429 rate limit responses
//
// Client errors other than 404 fail immediately with ErrCodeNetwork; a 404
// maps to ErrCodeNotFound so callers can tell a missing resource from a
// flaky one.
package httputil
