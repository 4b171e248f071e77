package panel

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/lorem/pkg/config"
)

// FetcherContextKey is the context key for the Fetcher.
var FetcherContextKey = &struct{ string }{"fetcher"}

// WithFetcher returns a new context carrying f.
func WithFetcher(ctx context.Context, f Fetcher) context.Context {
	if f == nil {
		return ctx
	}
	return context.WithValue(ctx, FetcherContextKey, f)
}

// FetcherFromContext returns the Fetcher stored in ctx, or nil.
func FetcherFromContext(ctx context.Context) Fetcher {
	f, _ := ctx.Value(FetcherContextKey).(Fetcher)
	return f
}

// NewFromContext returns a new session built from the config, fetcher and
// logger carried by ctx. It doesn't fetch anything.
func NewFromContext(ctx context.Context) (*Session, error) {
	sources, err := SourcesFromConfig(config.FromContext(ctx))
	if err != nil {
		return nil, err
	}
	return New(
		FetcherFromContext(ctx),
		sources,
		WithLogger(log.FromContext(ctx).WithPrefix("panel")),
	), nil
}
