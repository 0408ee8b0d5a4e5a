// Package observability provides hooks for metrics, tracing, and logging.
//
// Libraries emit events through package-level hook registries; main
// registers implementations at startup. The defaults are no-ops, so
// instrumented code costs nothing when nobody listens.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetLoopHooks(observability.NewLogHooks(logger))
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Loop().OnIntent(ctx, "expand")
//	// ... apply the transition ...
//	observability.Loop().OnTransition(ctx, "expand", accepted, time.Since(start))
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Loop Hooks
// =============================================================================

// LoopHooks receives events from the interaction loop.
type LoopHooks interface {
	// OnIntent records an intent received from the surface.
	OnIntent(ctx context.Context, kind string)

	// OnTransition records the outcome of applying an intent. accepted is
	// false when the guard kept the previous state.
	OnTransition(ctx context.Context, kind string, accepted bool, duration time.Duration)

	// OnPresetLoad records a preset load, successful or not.
	OnPresetLoad(ctx context.Context, name string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopLoopHooks is a no-op implementation of LoopHooks.
type NoopLoopHooks struct{}

func (NoopLoopHooks) OnIntent(context.Context, string)                            {}
func (NoopLoopHooks) OnTransition(context.Context, string, bool, time.Duration)   {}
func (NoopLoopHooks) OnPresetLoad(context.Context, string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	loopHooks  LoopHooks  = NoopLoopHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	httpHooks  HTTPHooks  = NoopHTTPHooks{}
	hooksMu    sync.RWMutex
)

// SetLoopHooks registers custom loop hooks.
// This should be called once at application startup before the loop runs.
func SetLoopHooks(h LoopHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		loopHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before any HTTP operations.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Loop returns the registered loop hooks.
func Loop() LoopHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return loopHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	loopHooks = NoopLoopHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
