package store

import "context"

// CacheStore handles generic key-value caching. The source fetcher uses it
// to keep the last good copy of the placemark document.
type CacheStore interface {
	GetCache(ctx context.Context, key string) ([]byte, bool)
	SetCache(ctx context.Context, key string, val []byte) error
	HasCache(ctx context.Context, key string) (bool, error)
}

// StateStore handles small persistent key-value state.
type StateStore interface {
	GetState(ctx context.Context, key string) (string, bool)
	SetState(ctx context.Context, key, val string) error
	DeleteState(ctx context.Context, key string) error
}

// Store composes all sub-interfaces for full store access. Consumers should
// depend on the specific sub-interfaces when possible.
type Store interface {
	CacheStore
	StateStore

	// Close closes the store connection.
	Close() error
}
