// Package stats serves the Prometheus metrics of lorem.
package stats

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/lorem/pkg/config"
	"github.com/charmbracelet/lorem/pkg/version"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var buildInfo = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "lorem",
	Name:      "build_info",
	Help:      "Build information of the running lorem server",
}, []string{"version", "commit"})

// StatsServer is a server for collecting and reporting statistics.
type StatsServer struct { //nolint:revive
	ctx    context.Context
	cfg    *config.Config
	server *http.Server
}

// NewStatsServer returns a new StatsServer.
func NewStatsServer(ctx context.Context) (*StatsServer, error) {
	cfg := config.FromContext(ctx)
	if cfg == nil {
		return nil, config.ErrNilConfig
	}

	buildInfo.WithLabelValues(orDev(version.Version), orDev(version.CommitSHA)).Set(1)

	return &StatsServer{
		ctx: ctx,
		cfg: cfg,
		server: &http.Server{
			Addr:              cfg.Stats.ListenAddr,
			Handler:           Handler(),
			ReadHeaderTimeout: time.Second * 10,
			ReadTimeout:       time.Second * 10,
			WriteTimeout:      time.Second * 10,
			MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
		},
	}, nil
}

// Handler returns the metrics handler.
func Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// Addr returns the address the server listens on.
func (s *StatsServer) Addr() string {
	return s.server.Addr
}

// ListenAndServe starts the StatsServer.
func (s *StatsServer) ListenAndServe() error {
	return s.server.ListenAndServe() //nolint:wrapcheck
}

// Shutdown gracefully shuts down the StatsServer.
func (s *StatsServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx) //nolint:wrapcheck
}

// Close closes the StatsServer.
func (s *StatsServer) Close() error {
	return s.server.Close() //nolint:wrapcheck
}

func orDev(s string) string {
	if s == "" {
		return "dev"
	}
	return s
}
