// Package storage provides abstractions for persistent data storage.
package storage

import "context"

// VisitsCounter is the name of the counter tracking page visits.
const VisitsCounter = "visits"

// Store defines the interface for counter storage operations.
// Course lists are session scoped and never stored.
type Store interface {
	// IncrementCounter atomically adds one to the named counter, creating it
	// at 1 if missing, and returns the new value.
	IncrementCounter(ctx context.Context, name string) (int64, error)

	// GetCounter returns the current value of the named counter.
	// A counter that was never incremented reads as 0.
	GetCounter(ctx context.Context, name string) (int64, error)

	// Close releases any resources held by the store.
	Close() error
}
