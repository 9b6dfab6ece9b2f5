// Package storage provides abstractions for persistent data storage.
package storage

import "context"

// KV defines the interface for the durable key-value store backing the
// application state. Each collection is persisted as one JSON blob under a
// fixed key. This abstraction allows swapping storage backends (SQLite, flat
// files, etc.) without changing the store layer.
//
// Implementations must guarantee last-write-wins durability across process
// restarts. No multi-key atomicity is required: the store layer never relies
// on cross-key consistency surviving a crash mid-write.
type KV interface {
	// Get retrieves the value stored under key.
	// ok is false when the key has never been written.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Close releases any resources held by the store.
	Close() error
}
