package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lorem/pkg/panel"
	"github.com/charmbracelet/lorem/pkg/render"
	"github.com/charmbracelet/lorem/pkg/ui/common"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

// FetchCommand returns a command that selects a tab in a fresh panel and
// prints its content.
func FetchCommand() *cobra.Command {
	var (
		renderOutput bool
		width        int
	)

	cmd := &cobra.Command{
		Use:   "fetch [TAB]",
		Short: "Print the content of a tab",
		Long:  "Print the HTML content of a tab. TAB is a number from 1 to 4 and defaults to 1.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := ParseTab(args)
			if err != nil {
				return err
			}

			s, err := panel.NewFromContext(ctx)
			if err != nil {
				return err
			}

			if err := s.SelectTab(ctx, id); err != nil {
				return err
			}

			v := s.View()
			if v.State == panel.ViewError {
				return errors.New(v.Message)
			}

			out := v.Content
			if renderOutput {
				profile := termenv.NewOutput(cmd.OutOrStdout()).EnvColorProfile()
				out, err = render.Terminal(v.Content, width, common.StyleConfig(profile))
				if err != nil {
					return err
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&renderOutput, "render", "r", false, "render the content for the terminal")
	cmd.Flags().IntVarP(&width, "width", "w", 80, "word wrap width of rendered content")

	return cmd
}

// ParseTab parses the optional TAB argument of a command. It defaults to
// the first tab.
func ParseTab(args []string) (panel.TabID, error) {
	if len(args) == 0 {
		return panel.Tab1, nil
	}
	return panel.ParseTabID(args[0])
}
