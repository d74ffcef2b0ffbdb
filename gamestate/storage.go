package gamestate

import (
	"context"
)

// PrimitiveStorage is the durable key-value layer an EntityStore writes
// through to. The redis implementation is the production one; tests run it
// against miniredis.
type PrimitiveStorage[K comparable] interface {
	GetUInt64(ctx context.Context, key K) (uint64, error)
	GetBytes(ctx context.Context, key K) ([]byte, error)
	Set(ctx context.Context, key K, value any) error
	Delete(ctx context.Context, key K) error
	Keys(ctx context.Context) ([]K, error)
	// StartTransaction returns a storage whose writes are buffered until
	// EndTransaction is called on it, then applied atomically.
	StartTransaction(ctx context.Context) (PrimitiveStorage[K], error)
	EndTransaction(ctx context.Context) error
	Close(ctx context.Context) error
}

// VolatileStorage is the in-memory mirror used for indices and read caches.
// Contents do not survive the process.
type VolatileStorage[K comparable, V any] interface {
	Get(key K) (V, error)
	Set(key K, value V) error
	Delete(key K) error
	Keys() ([]K, error)
}
