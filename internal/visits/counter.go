// Package visits counts page visits against a local store or a remote
// document store.
package visits

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mmynk/gpacalc/internal/storage"
)

// Counter increments the global visit count and returns the new total.
type Counter interface {
	Increment(ctx context.Context) (int64, error)
}

// StoreCounter counts visits with an atomic increment in a storage.Store.
type StoreCounter struct {
	store storage.Store
}

// NewStoreCounter creates a Counter backed by store.
func NewStoreCounter(store storage.Store) *StoreCounter {
	return &StoreCounter{store: store}
}

// Increment implements Counter.
func (c *StoreCounter) Increment(ctx context.Context) (int64, error) {
	return c.store.IncrementCounter(ctx, storage.VisitsCounter)
}

// Visit is the outcome of recording one visit.
type Visit struct {
	Count int64

	// Fallback is true when the count came from the in-process counter
	// because the backend failed.
	Fallback bool
}

// Fallback wraps a Counter and never fails: when the backend errors it logs
// a warning and continues from the last count it saw.
type Fallback struct {
	primary Counter

	mu    sync.Mutex
	local int64
}

// NewFallback wraps primary.
func NewFallback(primary Counter) *Fallback {
	return &Fallback{primary: primary}
}

// Record increments the backend counter, falling back to the local count.
func (f *Fallback) Record(ctx context.Context) Visit {
	count, err := f.primary.Increment(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()

	if err != nil {
		f.local++
		slog.Warn("Visit counter unavailable, using local count", "error", err, "local_count", f.local)
		return Visit{Count: f.local, Fallback: true}
	}
	if count > f.local {
		f.local = count
	}
	return Visit{Count: count}
}
