// Package log provides logging functionality for lorem.
package log

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/lorem/pkg/config"
)

// NewLogger returns a new logger with default settings.
func NewLogger(cfg *config.Config) (*log.Logger, *os.File, error) {
	return newLogger(cfg, os.Stderr)
}

// NewUILogger returns a logger for a program that owns the terminal. Logs
// go to the configured file, or nowhere when no file is configured, so they
// don't draw over the UI.
func NewUILogger(cfg *config.Config) (*log.Logger, *os.File, error) {
	return newLogger(cfg, io.Discard)
}

func newLogger(cfg *config.Config, w io.Writer) (*log.Logger, *os.File, error) {
	if cfg == nil {
		return nil, nil, config.ErrNilConfig
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateOnly,
	})

	switch {
	case config.IsVerbose():
		logger.SetReportCaller(true)
		fallthrough
	case config.IsDebug():
		logger.SetLevel(log.DebugLevel)
	}

	if cfg.Log.TimeFormat != "" {
		logger.SetTimeFormat(cfg.Log.TimeFormat)
	}

	switch strings.ToLower(cfg.Log.Format) {
	case "json":
		logger.SetFormatter(log.JSONFormatter)
	case "logfmt":
		logger.SetFormatter(log.LogfmtFormatter)
	case "text":
		logger.SetFormatter(log.TextFormatter)
	}

	var f *os.File
	if cfg.Log.Path != "" {
		var err error
		f, err = os.OpenFile(cfg.Log.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec
		if err != nil {
			return nil, nil, err //nolint:wrapcheck
		}
		logger.SetOutput(f)
	}

	return logger, f, nil
}
