package cache

import (
	"context"
	"errors"
	"sort"
	"sync"
)

// Constructor is a function that returns a new cache.
type Constructor func(context.Context, ...Option) (Cache, error)

var (
	registry = map[string]Constructor{}
	mtx      sync.RWMutex

	// ErrCacheNotFound is returned when a cache backend is not registered.
	ErrCacheNotFound = errors.New("cache not found")
)

// Register registers a cache backend under name.
func Register(name string, fn Constructor) {
	mtx.Lock()
	defer mtx.Unlock()

	registry[name] = fn
}

// Backends returns the registered backend names, sorted.
func Backends() []string {
	mtx.RLock()
	defer mtx.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New returns a new cache using the named backend.
func New(ctx context.Context, name string, opts ...Option) (Cache, error) {
	mtx.RLock()
	fn, ok := registry[name]
	mtx.RUnlock()

	if !ok {
		return nil, ErrCacheNotFound
	}

	return fn(ctx, opts...)
}
