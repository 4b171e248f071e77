// Package cache holds per-visitor state for the web surface behind a small,
// pluggable key-value interface.
package cache

import (
	"context"
)

// Option is an option for creating a new cache.
type Option func(Cache)

// Cache is a caching interface.
//
// Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (value any, ok bool)
	Set(ctx context.Context, key string, val any)
	Keys(ctx context.Context) []string
	Len(ctx context.Context) int64
	Contains(ctx context.Context, key string) bool
	Delete(ctx context.Context, key string)
	Purge(ctx context.Context)
}

// Lookup returns the value stored under key if it holds a T.
func Lookup[T any](ctx context.Context, c Cache, key string) (T, bool) {
	var zero T
	if c == nil {
		return zero, false
	}
	v, ok := c.Get(ctx, key)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}
