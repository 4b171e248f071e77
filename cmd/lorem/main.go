package main

import (
	"context"
	"os"
	"runtime/debug"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/lorem/cmd/lorem/browse"
	"github.com/charmbracelet/lorem/cmd/lorem/serve"
	"github.com/charmbracelet/lorem/pkg/config"
	logr "github.com/charmbracelet/lorem/pkg/log"
	"github.com/charmbracelet/lorem/pkg/version"
	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"
)

var (
	// Version contains the application version number. It's set via ldflags
	// when building.
	Version = ""

	// CommitSHA contains the SHA of the commit that this application was built
	// against. It's set via ldflags when building.
	CommitSHA = ""

	// CommitDate contains the date of the commit that this application was
	// built against. It's set via ldflags when building.
	CommitDate = ""

	rootCmd = &cobra.Command{
		Use:          "lorem",
		Short:        "A four-tab panel of placeholder text",
		Long:         "Lorem serves a four-tab panel of placeholder text over SSH, HTTP and your terminal.",
		SilenceUsage: true,
		// The panel is the default command.
		Args:              browse.Command.Args,
		PreRunE:           browse.Command.PreRunE,
		RunE:              browse.Command.RunE,
	}
)

func init() {
	rootCmd.AddCommand(
		serve.Command,
		browse.Command,
		fetchCmd,
		tabsCmd,
		manCmd,
	)
	rootCmd.Flags().AddFlagSet(browse.Command.Flags())
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Sum != "" {
			Version = info.Main.Version
		} else {
			Version = "unknown (built from source)"
		}
	}
	rootCmd.Version = Version

	version.Version = Version
	version.CommitSHA = CommitSHA
	version.CommitDate = CommitDate
}

func main() {
	os.Exit(run())
}

func run() int {
	ctx := context.Background()
	cfg := config.DefaultConfig()
	if err := cfg.Parse(); err != nil {
		log.Fatal("parse config", "err", err)
	}

	ctx = config.WithContext(ctx, cfg)
	logger, f, err := logr.NewLogger(cfg)
	if err != nil {
		log.Fatal("create logger", "err", err)
	}

	// Set global logger
	log.SetDefault(logger)

	// Set the max number of processes to the number of CPUs
	// This is useful when running lorem in a container
	if _, err := maxprocs.Set(maxprocs.Logger(log.Debugf)); err != nil {
		log.Warn("couldn't set automaxprocs", "error", err)
	}

	ctx = log.WithContext(ctx, logger)

	code := 0
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		code = 1
	}

	if f != nil {
		f.Close() // nolint: errcheck
	}

	return code
}
