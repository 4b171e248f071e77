package browse

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/lorem/cmd"
	"github.com/charmbracelet/lorem/pkg/config"
	logr "github.com/charmbracelet/lorem/pkg/log"
	"github.com/charmbracelet/lorem/pkg/panel"
	"github.com/charmbracelet/lorem/pkg/ui"
	"github.com/charmbracelet/lorem/pkg/ui/common"
	"github.com/spf13/cobra"
)

var raw bool

// Command is the browse command.
var Command = &cobra.Command{
	Use:   "browse",
	Short: "Browse the panel in your terminal",
	Args:  cobra.NoArgs,
	PreRunE: func(c *cobra.Command, args []string) error {
		ctx := c.Context()
		cfg := config.FromContext(ctx)
		if cfg == nil {
			return config.ErrNilConfig
		}

		// The UI owns the terminal. Log to the configured file instead.
		logger, f, err := logr.NewUILogger(cfg)
		if err != nil {
			return fmt.Errorf("create ui logger: %w", err)
		}
		if f != nil {
			cobra.OnFinalize(func() { _ = f.Close() })
		}

		c.SetContext(log.WithContext(ctx, logger))
		return cmd.InitFetcherContext(c, args)
	},
	RunE: func(c *cobra.Command, _ []string) error {
		ctx := c.Context()
		if raw {
			config.FromContext(ctx).UI.RawHTML = true
		}

		s, err := panel.NewFromContext(ctx)
		if err != nil {
			return err
		}

		// Bubble Tea uses Termenv default output so we have to use the same
		// thing here.
		com := common.NewCommon(ctx, lipgloss.DefaultRenderer(), 0, 0)
		m := ui.New(com, s)
		p := tea.NewProgram(m,
			tea.WithAltScreen(),
			tea.WithMouseCellMotion(),
			tea.WithContext(ctx),
		)

		_, err = p.Run()
		return err
	},
}

func init() {
	Command.Flags().BoolVar(&raw, "raw", false, "show the fetched HTML instead of rendering it")
}
