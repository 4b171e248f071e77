package serve

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/lorem/cmd"
	"github.com/charmbracelet/lorem/pkg/config"
	"github.com/spf13/cobra"
)

// Command is the serve command.
var Command = &cobra.Command{
	Use:               "serve",
	Short:             "Start the server",
	Args:              cobra.NoArgs,
	PersistentPreRunE: cmd.InitFetcherContext,
	RunE: func(c *cobra.Command, _ []string) error {
		ctx := c.Context()
		cfg := config.FromContext(ctx)
		if !cfg.Exist() {
			if err := cfg.WriteConfig(); err != nil {
				return fmt.Errorf("write config file: %w", err)
			}
			log.FromContext(ctx).Info("wrote default config", "path", cfg.ConfigPath())
		}

		if err := config.EnsureKeyPair(cfg); err != nil {
			return fmt.Errorf("ensure host key: %w", err)
		}

		s, err := NewServer(ctx)
		if err != nil {
			return fmt.Errorf("start server: %w", err)
		}

		sctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		lch := make(chan error, 1)
		go func() {
			lch <- s.Start()
		}()

		select {
		case err := <-lch:
			if err != nil {
				return fmt.Errorf("server error: %w", err)
			}
		case <-sctx.Done():
		}

		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return s.Shutdown(ctx)
	},
}
