package lru

import (
	"context"
	"testing"

	"github.com/charmbracelet/lorem/pkg/cache"
	"github.com/matryer/is"
)

func TestLRUEvicts(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	var evicted []string
	c, err := cache.New(ctx, "lru",
		WithSize(2),
		WithEvictCallback(func(key string, _ any) {
			evicted = append(evicted, key)
		}),
	)
	is.NoErr(err)

	c.Set(ctx, "a", 1)
	c.Set(ctx, "b", 2)
	_, ok := c.Get(ctx, "a") // a is now most recently used
	is.True(ok)
	c.Set(ctx, "c", 3)

	is.Equal(evicted, []string{"b"})
	is.Equal(c.Len(ctx), int64(2))
	is.True(c.Contains(ctx, "a"))
	is.True(!c.Contains(ctx, "b"))

	c.Delete(ctx, "a")
	is.Equal(evicted, []string{"b", "a"})
	is.Equal(c.Keys(ctx), []string{"c"})

	c.Purge(ctx)
	is.Equal(c.Len(ctx), int64(0))
}

func TestLRUDefaultSize(t *testing.T) {
	is := is.New(t)
	c, err := newCache(context.Background())
	is.NoErr(err)
	is.Equal(c.(*Cache).size, DefaultSize)
}

func TestLookup(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	c, err := cache.New(ctx, "lru")
	is.NoErr(err)

	c.Set(ctx, "n", 42)
	n, ok := cache.Lookup[int](ctx, c, "n")
	is.True(ok)
	is.Equal(n, 42)

	_, ok = cache.Lookup[string](ctx, c, "n")
	is.True(!ok) // wrong type

	_, ok = cache.Lookup[int](ctx, nil, "n")
	is.True(!ok)
}
