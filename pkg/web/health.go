package web

import (
	"context"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/lorem/pkg/config"
	"github.com/charmbracelet/lorem/pkg/panel"
	"github.com/gorilla/mux"
)

// HealthController registers the health check routes for the web server.
func HealthController(_ context.Context, r *mux.Router) {
	r.HandleFunc("/livez", getLiveness)
	r.HandleFunc("/readyz", getReadiness)
}

func getLiveness(w http.ResponseWriter, _ *http.Request) {
	renderStatus(http.StatusOK)(w, nil)
}

// getReadiness reports whether new panels can be mounted: the content
// sources must resolve and a fetcher must be configured.
func getReadiness(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	errs := make([]error, 0)
	if _, err := panel.SourcesFromConfig(config.FromContext(ctx)); err != nil {
		errs = append(errs, fmt.Errorf("readiness check failed: %w", err))
	}
	if panel.FetcherFromContext(ctx) == nil {
		errs = append(errs, fmt.Errorf("readiness check failed: no fetcher"))
	}

	if len(errs) > 0 {
		log.FromContext(ctx).Error("not ready", "errs", errs)
		renderStatus(http.StatusServiceUnavailable)(w, nil)
		return
	}

	renderStatus(http.StatusOK)(w, nil)
}
