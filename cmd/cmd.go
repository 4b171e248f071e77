package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/lorem/pkg/config"
	"github.com/charmbracelet/lorem/pkg/content"
	"github.com/charmbracelet/lorem/pkg/panel"
	"github.com/spf13/cobra"
)

// InitFetcherContext makes sure the data directory exists and attaches a
// content client built from the config in context.
func InitFetcherContext(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)
	if cfg == nil {
		return config.ErrNilConfig
	}
	if _, err := os.Stat(cfg.DataPath); errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(cfg.DataPath, os.ModePerm); err != nil {
			return fmt.Errorf("create data directory: %w", err)
		}
	}

	client, err := content.NewClientFromConfig(cfg, log.FromContext(ctx).WithPrefix("content"))
	if err != nil {
		return fmt.Errorf("create content client: %w", err)
	}

	cmd.SetContext(panel.WithFetcher(ctx, client))
	return nil
}
