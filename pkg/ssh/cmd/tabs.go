package cmd

import (
	"github.com/caarlos0/tablewriter"
	"github.com/charmbracelet/lorem/pkg/config"
	"github.com/charmbracelet/lorem/pkg/panel"
	"github.com/spf13/cobra"
)

// TabsCommand returns a command that lists the tabs and their sources.
func TabsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tabs",
		Short: "List the tabs and their sources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.FromContext(cmd.Context())
			sources, err := panel.SourcesFromConfig(cfg)
			if err != nil {
				return err
			}

			return tablewriter.Render(
				cmd.OutOrStdout(),
				panel.Tabs(),
				[]string{"Tab", "Source", "URL"},
				func(id panel.TabID) ([]string, error) {
					return []string{
						id.String(),
						cfg.Content.Sources[id.Index()],
						sources.URL(id),
					}, nil
				},
			)
		},
	}

	return cmd
}
