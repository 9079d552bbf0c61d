// Package observability provides hooks for metrics and progress reporting.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about save parsing, placement optimization, and cache
// operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// The prom subpackage provides a Prometheus-backed implementation.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    m := prom.New()
//	    observability.SetOptimizerHooks(m)
//	    observability.SetCacheHooks(m)
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Optimizer().OnOptimizeStart(ctx, components, movable)
//	// ... anneal ...
//	observability.Optimizer().OnOptimizeComplete(ctx, summary, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Optimizer Hooks
// =============================================================================

// Progress is a snapshot of a running placement optimization.
type Progress struct {
	Iteration   int
	Total       int
	Temperature float64
	AverageLoss float64
	Accepted    int
	Rejected    int
	Skipped     int
}

// Summary describes a finished optimization run.
type Summary struct {
	Iterations  int
	Accepted    int
	Rejected    int
	Skipped     int
	EnergyDelta float64
}

// OptimizerHooks receives events from the placement optimizer.
type OptimizerHooks interface {
	OnOptimizeStart(ctx context.Context, components, movable int)
	OnProgress(ctx context.Context, p Progress)
	OnOptimizeComplete(ctx context.Context, s Summary, duration time.Duration, err error)
}

// =============================================================================
// Codec Hooks
// =============================================================================

// CodecHooks receives events from save file reads and writes.
type CodecHooks interface {
	// OnDecode records a parsed save.
	OnDecode(ctx context.Context, components, bytes int, duration time.Duration, err error)

	// OnEncode records a written save.
	OnEncode(ctx context.Context, components, bytes int, duration time.Duration, err error)
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
// No-op Implementations
// =============================================================================

// NoopOptimizerHooks is a no-op implementation of OptimizerHooks.
type NoopOptimizerHooks struct{}

func (NoopOptimizerHooks) OnOptimizeStart(context.Context, int, int)                         {}
func (NoopOptimizerHooks) OnProgress(context.Context, Progress)                              {}
func (NoopOptimizerHooks) OnOptimizeComplete(context.Context, Summary, time.Duration, error) {}

// NoopCodecHooks is a no-op implementation of CodecHooks.
type NoopCodecHooks struct{}

func (NoopCodecHooks) OnDecode(context.Context, int, int, time.Duration, error) {}
func (NoopCodecHooks) OnEncode(context.Context, int, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	optimizerHooks OptimizerHooks = NoopOptimizerHooks{}
	codecHooks     CodecHooks     = NoopCodecHooks{}
	cacheHooks     CacheHooks     = NoopCacheHooks{}
	hooksMu        sync.RWMutex
)

// SetOptimizerHooks registers custom optimizer hooks.
// This should be called once at application startup before any optimization runs.
func SetOptimizerHooks(h OptimizerHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		optimizerHooks = h
	}
}

// SetCodecHooks registers custom codec hooks.
func SetCodecHooks(h CodecHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		codecHooks = h
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

// Optimizer returns the registered optimizer hooks.
func Optimizer() OptimizerHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return optimizerHooks
}

// Codec returns the registered codec hooks.
func Codec() CodecHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return codecHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	optimizerHooks = NoopOptimizerHooks{}
	codecHooks = NoopCodecHooks{}
	cacheHooks = NoopCacheHooks{}
}
