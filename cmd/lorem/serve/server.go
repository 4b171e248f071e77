package serve

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/lorem/pkg/cache"
	"github.com/charmbracelet/lorem/pkg/cache/lru"
	_ "github.com/charmbracelet/lorem/pkg/cache/noop" // cache driver
	"github.com/charmbracelet/lorem/pkg/config"
	sshsrv "github.com/charmbracelet/lorem/pkg/ssh"
	"github.com/charmbracelet/lorem/pkg/stats"
	"github.com/charmbracelet/lorem/pkg/web"
	"github.com/charmbracelet/ssh"
	"golang.org/x/sync/errgroup"
)

// Server is the lorem server.
type Server struct {
	SSHServer   *sshsrv.SSHServer
	HTTPServer  *web.HTTPServer
	StatsServer *stats.StatsServer
	Config      *config.Config
	Sessions    cache.Cache

	logger *log.Logger
	ctx    context.Context
}

// NewServer returns a new *Server serving the panel over SSH and HTTP.
// It expects a context with *config.Config, *log.Logger and a panel.Fetcher
// attached.
func NewServer(ctx context.Context) (*Server, error) {
	var err error
	cfg := config.FromContext(ctx)
	if cfg == nil {
		return nil, config.ErrNilConfig
	}
	logger := log.FromContext(ctx).WithPrefix("server")
	srv := &Server{
		Config: cfg,
		logger: logger,
	}

	// Web panels live in the session cache.
	srv.Sessions, err = cache.New(ctx, cfg.Web.Cache,
		lru.WithSize(cfg.Web.MaxSessions),
		lru.WithEvictCallback(func(key string, _ any) {
			logger.Debug("web panel evicted", "session", key)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("create session cache: %w", err)
	}

	ctx = cache.WithContext(ctx, srv.Sessions)
	srv.ctx = ctx

	srv.SSHServer, err = sshsrv.NewSSHServer(ctx)
	if err != nil {
		return nil, fmt.Errorf("create ssh server: %w", err)
	}

	srv.HTTPServer, err = web.NewHTTPServer(ctx)
	if err != nil {
		return nil, fmt.Errorf("create http server: %w", err)
	}

	srv.StatsServer, err = stats.NewStatsServer(ctx)
	if err != nil {
		return nil, fmt.Errorf("create stats server: %w", err)
	}

	return srv, nil
}

// Start starts the enabled servers and blocks until they all stop.
func (s *Server) Start() error {
	errg, _ := errgroup.WithContext(s.ctx)

	if s.Config.SSH.Enabled {
		errg.Go(func() error {
			s.logger.Print("Starting SSH server", "addr", s.Config.SSH.ListenAddr)
			if err := s.SSHServer.ListenAndServe(); !errors.Is(err, ssh.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	if s.Config.HTTP.Enabled {
		errg.Go(func() error {
			s.logger.Print("Starting HTTP server", "addr", s.Config.HTTP.ListenAddr)
			if err := s.HTTPServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	if s.Config.Stats.Enabled {
		errg.Go(func() error {
			s.logger.Print("Starting Stats server", "addr", s.Config.Stats.ListenAddr)
			if err := s.StatsServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	return errg.Wait()
}

// Shutdown lets the server gracefully shutdown.
func (s *Server) Shutdown(ctx context.Context) error {
	errg, ctx := errgroup.WithContext(ctx)
	errg.Go(func() error {
		return s.HTTPServer.Shutdown(ctx)
	})
	errg.Go(func() error {
		return s.SSHServer.Shutdown(ctx)
	})
	errg.Go(func() error {
		return s.StatsServer.Shutdown(ctx)
	})
	err := errg.Wait()
	s.Sessions.Purge(s.ctx)
	return err
}

// Close closes all the servers.
func (s *Server) Close() error {
	var errg errgroup.Group
	errg.Go(s.HTTPServer.Close)
	errg.Go(s.SSHServer.Close)
	errg.Go(s.StatsServer.Close)
	return errg.Wait()
}
