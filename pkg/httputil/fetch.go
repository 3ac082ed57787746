package httputil

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/matzehuels/linetrace/pkg/buildinfo"
	"github.com/matzehuels/linetrace/pkg/cache"
	"github.com/matzehuels/linetrace/pkg/errors"
	"github.com/matzehuels/linetrace/pkg/observability"
)

const (
	// httpTimeout bounds a single request attempt end to end.
	httpTimeout = 10 * time.Second

	// maxBodySize caps how much of a response body is read. Masks larger
	// than this are rejected rather than buffered.
	maxBodySize = 32 << 20 // 32 MiB

	// maskNamespace scopes cached responses within the HTTP key space.
	maskNamespace = "mask"
)

// NewHTTPClient creates an HTTP client with the standard timeout.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// Fetcher downloads mask images with retries and response caching.
type Fetcher struct {
	http  *http.Client
	cache cache.Cache
	keyer cache.Keyer
}

// NewFetcher creates a Fetcher backed by c. A nil cache disables response
// caching and a nil keyer selects the default key scheme.
func NewFetcher(c cache.Cache, keyer cache.Keyer) *Fetcher {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	return &Fetcher{
		http:  NewHTTPClient(),
		cache: c,
		keyer: keyer,
	}
}

// Fetch downloads the resource at rawURL and returns the response body.
// Cached responses are served unless refresh is true. Transient failures
// (network errors, 429 and 5xx responses) are retried with backoff.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string, refresh bool) ([]byte, error) {
	key := f.keyer.HTTPKey(maskNamespace, rawURL)
	hooks := observability.Cache()

	if !refresh {
		if data, ok, _ := f.cache.Get(ctx, key); ok {
			hooks.OnCacheHit(ctx, "http")
			return data, nil
		}
		hooks.OnCacheMiss(ctx, "http")
	}

	var body []byte
	err := cache.RetryWithBackoff(ctx, func() error {
		data, err := f.doRequest(ctx, rawURL)
		if err != nil {
			return err
		}
		body = data
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = f.cache.Set(ctx, key, body, cache.TTLHTTP)
	hooks.OnCacheSet(ctx, "http", len(body))
	return body, nil
}

func (f *Fetcher) doRequest(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid url %q", rawURL)
	}
	req.Header.Set("User-Agent", "linetrace/"+buildinfo.Version)

	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, req.URL.Host, req.URL.Path)
	start := time.Now()

	resp, err := f.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, req.URL.Host, req.URL.Path, err)
		return nil, cache.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", rawURL))
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode, rawURL); err != nil {
		return nil, err
	}

	// Read one byte past the cap to tell "exactly at the limit" from "over".
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, cache.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "read response from %s", rawURL))
	}
	if len(body) > maxBodySize {
		return nil, errors.New(errors.ErrCodeInvalidMask, "response from %s exceeds %d bytes", rawURL, maxBodySize)
	}
	return body, nil
}

// checkStatus maps an HTTP status code to an error. Rate limits and server
// errors are retryable; other failures return immediately.
func checkStatus(code int, rawURL string) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodeNotFound, "%s not found", rawURL)
	case code == http.StatusTooManyRequests || code >= 500:
		return cache.Retryable(errors.New(errors.ErrCodeNetwork, "fetch %s: status %d", rawURL, code))
	default:
		return errors.New(errors.ErrCodeNetwork, "fetch %s: status %d", rawURL, code)
	}
}

// IsURL reports whether s looks like an http(s) URL rather than a file path.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
