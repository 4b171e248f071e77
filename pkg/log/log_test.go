package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/lorem/pkg/config"
	"github.com/matryer/is"
)

func TestGoodNewLogger(t *testing.T) {
	for _, c := range []*config.Config{
		config.DefaultConfig(),
		{},
		{Log: config.LogConfig{Path: filepath.Join(t.TempDir(), "logfile.txt")}},
		{Log: config.LogConfig{Format: "json"}},
		{Log: config.LogConfig{Format: "logfmt"}},
	} {
		_, f, err := NewLogger(c)
		if err != nil {
			t.Errorf("NewLogger(%v) => _, _, %v, want _, _, nil", c, err)
		}
		if f != nil {
			f.Close()
		}
	}
}

func TestBadNewLogger(t *testing.T) {
	for _, c := range []*config.Config{
		nil,
		{Log: config.LogConfig{Path: "\x00"}},
	} {
		_, f, err := NewLogger(c)
		if err == nil {
			t.Errorf("NewLogger(%v) => _, _, nil, want _, _, %v", c, err)
		}
		if f != nil {
			f.Close()
		}
	}
}

func TestUILoggerWritesToFile(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "lorem.log")
	logger, f, err := NewUILogger(&config.Config{Log: config.LogConfig{Path: path}})
	is.NoErr(err)
	logger.Info("hello", "tab", 1)
	is.NoErr(f.Close())
	bts, err := os.ReadFile(path)
	is.NoErr(err)
	is.True(len(bts) > 0)
}
