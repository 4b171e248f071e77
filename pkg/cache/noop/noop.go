// Package noop provides a cache that never stores anything. With it every web
// request mounts a fresh panel.
package noop

import (
	"context"

	"github.com/charmbracelet/lorem/pkg/cache"
)

func init() {
	cache.Register("noop", NewCache)
}

type noopCache struct{}

// NewCache returns a new Cache.
func NewCache(_ context.Context, _ ...cache.Option) (cache.Cache, error) {
	return &noopCache{}, nil
}

// Contains implements Cache.
func (*noopCache) Contains(_ context.Context, _ string) bool {
	return false
}

// Delete implements Cache.
func (*noopCache) Delete(_ context.Context, _ string) {}

// Get implements Cache.
func (*noopCache) Get(_ context.Context, _ string) (any, bool) {
	return nil, false
}

// Keys implements Cache.
func (*noopCache) Keys(_ context.Context) []string {
	return []string{}
}

// Len implements Cache.
func (*noopCache) Len(_ context.Context) int64 {
	return -1
}

// Set implements Cache.
func (*noopCache) Set(_ context.Context, _ string, _ any) {}

// Purge implements Cache.
func (*noopCache) Purge(_ context.Context) {}

var _ cache.Cache = &noopCache{}
