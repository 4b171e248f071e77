package cache_test

import (
	"context"
	"errors"
	"testing"

	"github.com/charmbracelet/lorem/pkg/cache"
	_ "github.com/charmbracelet/lorem/pkg/cache/lru"
	"github.com/charmbracelet/lorem/pkg/cache/noop"
	"github.com/matryer/is"
)

func TestRegistry(t *testing.T) {
	is := is.New(t)
	is.Equal(cache.Backends(), []string{"lru", "noop"})

	_, err := cache.New(context.Background(), "memcached")
	is.True(errors.Is(err, cache.ErrCacheNotFound))
}

func TestNoop(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	c, err := noop.NewCache(ctx)
	is.NoErr(err)

	c.Set(ctx, "k", "v")
	_, ok := c.Get(ctx, "k")
	is.True(!ok)
	is.True(!c.Contains(ctx, "k"))
	is.Equal(c.Len(ctx), int64(-1))
	is.Equal(len(c.Keys(ctx)), 0)
}

func TestContext(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	is.Equal(cache.FromContext(ctx), nil)
	is.Equal(cache.WithContext(ctx, nil), ctx)

	c, err := noop.NewCache(ctx)
	is.NoErr(err)
	ctx = cache.WithContext(ctx, c)
	is.Equal(cache.FromContext(ctx), c)
}
