// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about placement operations and board store access.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the placement engine dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetEngineHooks(&myEngineHooks{})
//	    observability.SetStoreHooks(&myStoreHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Engine().OnOptimizeStart(ctx, widgetCount)
//	// ... run compaction ...
//	observability.Engine().OnOptimizeComplete(ctx, widgetCount, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Engine Hooks
// =============================================================================

// EngineHooks receives events from the placement operations at the wire
// boundary. The pure engine itself never calls hooks; pkg/board does, so the
// engine stays a value-in/value-out function.
type EngineHooks interface {
	// Compaction events
	OnOptimizeStart(ctx context.Context, widgetCount int)
	OnOptimizeComplete(ctx context.Context, widgetCount int, duration time.Duration, err error)

	// Drag conflict resolution events
	OnResolveStart(ctx context.Context, widgetCount int, draggedID string)
	OnResolveComplete(ctx context.Context, widgetCount int, draggedID string, duration time.Duration, err error)

	// Best-position search events
	OnPlaceStart(ctx context.Context, widgetCount int)
	OnPlaceComplete(ctx context.Context, widgetCount int, duration time.Duration, err error)
}

// =============================================================================
// Store Hooks
// =============================================================================

// StoreHooks receives events from board store operations.
type StoreHooks interface {
	// OnLoad records a successful board load.
	OnLoad(ctx context.Context, backend, name string)

	// OnMiss records a load of a board that does not exist.
	OnMiss(ctx context.Context, backend, name string)

	// OnSave records a board write.
	OnSave(ctx context.Context, backend, name string, widgetCount int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopEngineHooks is a no-op implementation of EngineHooks.
type NoopEngineHooks struct{}

func (NoopEngineHooks) OnOptimizeStart(context.Context, int)                               {}
func (NoopEngineHooks) OnOptimizeComplete(context.Context, int, time.Duration, error)      {}
func (NoopEngineHooks) OnResolveStart(context.Context, int, string)                        {}
func (NoopEngineHooks) OnResolveComplete(context.Context, int, string, time.Duration, error) {
}
func (NoopEngineHooks) OnPlaceStart(context.Context, int)                          {}
func (NoopEngineHooks) OnPlaceComplete(context.Context, int, time.Duration, error) {}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnLoad(context.Context, string, string)      {}
func (NoopStoreHooks) OnMiss(context.Context, string, string)      {}
func (NoopStoreHooks) OnSave(context.Context, string, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	engineHooks EngineHooks = NoopEngineHooks{}
	storeHooks  StoreHooks  = NoopStoreHooks{}
	hooksMu     sync.RWMutex
)

// SetEngineHooks registers custom engine hooks.
// This should be called once at application startup before any operations.
func SetEngineHooks(h EngineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		engineHooks = h
	}
}

// SetStoreHooks registers custom store hooks.
// This should be called once at application startup before any store access.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// Engine returns the registered engine hooks.
func Engine() EngineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return engineHooks
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	engineHooks = NoopEngineHooks{}
	storeHooks = NoopStoreHooks{}
}
