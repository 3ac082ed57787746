// Package observability defines instrumentation hooks for the vectorization
// pipeline and its supporting cache and HTTP layers.
//
// Core packages emit events through the package-level accessors Pipeline,
// Cache, and HTTP. All three default to no-op implementations, so importing
// this package costs nothing until a backend is registered. A main package
// wires one in once at startup:
//
//	observability.SetPipelineHooks(&promPipelineHooks{})
//
// and the pipeline reports stage boundaries as it runs:
//
//	observability.Pipeline().OnTraceStart(ctx, source)
//	// ... trace the mask ...
//	observability.Pipeline().OnTraceComplete(ctx, source, pathCount, duration, err)
//
// Hooks are registered by main, never by library code. That keeps the
// libraries free of any dependency on a particular metrics or tracing
// framework and avoids import cycles.
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Hook Interfaces
// =============================================================================

// PipelineHooks receives events from the vectorization pipeline.
type PipelineHooks interface {
	// Trace events. source identifies the mask input (path, URL, or "inline").
	OnTraceStart(ctx context.Context, source string)
	OnTraceComplete(ctx context.Context, source string, pathCount int, duration time.Duration, err error)

	// Refine events
	OnRefineStart(ctx context.Context, filters string, pathCount int)
	OnRefineComplete(ctx context.Context, filters string, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks observes the artifact cache. keyType names what was cached:
// "trace", "refine", "artifact", or "http".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks observes outgoing mask fetches.
type HTTPHooks interface {
	// OnRequest fires before the request is sent.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse fires once a response arrives, whatever the status.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError fires on a transport failure or timeout.
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Defaults
// =============================================================================

// NoopPipelineHooks discards all pipeline events.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnTraceStart(context.Context, string) {}
func (NoopPipelineHooks) OnTraceComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnRefineStart(context.Context, string, int)                       {}
func (NoopPipelineHooks) OnRefineComplete(context.Context, string, time.Duration, error)   {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// NoopCacheHooks discards all cache events.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks discards all HTTP events.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Registry
// =============================================================================

var (
	hooksMu       sync.RWMutex
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	httpHooks     HTTPHooks     = NoopHTTPHooks{}
)

// SetPipelineHooks installs h as the active pipeline hooks. Call once at
// startup, before the pipeline runs. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h == nil {
		return
	}
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = h
}

// SetCacheHooks installs h as the active cache hooks. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h == nil {
		return
	}
	hooksMu.Lock()
	defer hooksMu.Unlock()
	cacheHooks = h
}

// SetHTTPHooks installs h as the active HTTP hooks. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h == nil {
		return
	}
	hooksMu.Lock()
	defer hooksMu.Unlock()
	httpHooks = h
}

// Pipeline returns the active pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the active cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the active HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores the no-op defaults. Tests use it to undo registrations.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
