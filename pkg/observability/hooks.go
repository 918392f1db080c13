// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about name resolution and indexing runs.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetIndexHooks(&myHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Index().OnIndexStart(ctx, dir, repo)
//	// ... run zoekt-index ...
//	observability.Index().OnIndexComplete(ctx, dir, repo, status, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// IndexHooks receives events from resolution and indexing.
type IndexHooks interface {
	// OnResolve records the directories a distribution name resolved to.
	// dirs is empty when the distribution was not found.
	OnResolve(ctx context.Context, dist string, dirs []string, duration time.Duration)

	// OnIndexStart records the start of an indexer run for one directory.
	OnIndexStart(ctx context.Context, dir, repo string)

	// OnIndexComplete records the outcome of an indexer run.
	OnIndexComplete(ctx context.Context, dir, repo, status string, duration time.Duration, err error)
}

// NoopIndexHooks is a no-op implementation of IndexHooks.
type NoopIndexHooks struct{}

func (NoopIndexHooks) OnResolve(context.Context, string, []string, time.Duration) {}
func (NoopIndexHooks) OnIndexStart(context.Context, string, string)               {}
func (NoopIndexHooks) OnIndexComplete(context.Context, string, string, string, time.Duration, error) {
}

var (
	indexHooks IndexHooks = NoopIndexHooks{}
	hooksMu    sync.RWMutex
)

// SetIndexHooks registers custom index hooks.
// This should be called once at application startup before any runs.
func SetIndexHooks(h IndexHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		indexHooks = h
	}
}

// Index returns the registered index hooks.
func Index() IndexHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return indexHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	indexHooks = NoopIndexHooks{}
}
