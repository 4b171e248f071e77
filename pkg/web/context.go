package web

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/lorem/pkg/config"
	"github.com/charmbracelet/lorem/pkg/panel"
)

// NewContextHandler returns a new context middleware.
// This middleware adds the config, fetcher, and logger to the request context.
func NewContextHandler(ctx context.Context) func(http.Handler) http.Handler {
	cfg := config.FromContext(ctx)
	fetcher := panel.FetcherFromContext(ctx)
	logger := log.FromContext(ctx).WithPrefix("http")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ctx = config.WithContext(ctx, cfg)
			ctx = panel.WithFetcher(ctx, fetcher)
			ctx = log.WithContext(ctx, logger.With(
				"method", r.Method,
				"path", r.URL,
				"addr", r.RemoteAddr,
			))
			r = r.WithContext(ctx)

			next.ServeHTTP(w, r)
		})
	}
}
