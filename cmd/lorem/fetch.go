package main

import (
	"errors"
	"fmt"

	"github.com/caarlos0/duration"
	"github.com/charmbracelet/lorem/cmd"
	"github.com/charmbracelet/lorem/pkg/config"
	sshcmd "github.com/charmbracelet/lorem/pkg/ssh/cmd"
	"github.com/spf13/cobra"
)

var errNonPositiveTimeout = errors.New("must be greater than zero")

var (
	fetchTimeout string

	fetchCmd = sshcmd.FetchCommand()
	tabsCmd  = sshcmd.TabsCommand()
)

func init() {
	fetchCmd.PersistentPreRunE = func(c *cobra.Command, args []string) error {
		if fetchTimeout != "" {
			d, err := duration.Parse(fetchTimeout)
			if err != nil {
				return fmt.Errorf("invalid timeout: %w", err)
			}
			if d <= 0 {
				return fmt.Errorf("invalid timeout: %q %w", fetchTimeout, errNonPositiveTimeout)
			}
			if cfg := config.FromContext(c.Context()); cfg != nil {
				cfg.Content.Timeout = d
			}
		}
		return cmd.InitFetcherContext(c, args)
	}
	fetchCmd.Flags().StringVarP(&fetchTimeout, "timeout", "t", "", "give up on the fetch after this long, e.g. 500ms or 1m")
}
