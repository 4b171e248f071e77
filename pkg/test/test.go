// Package test has helpers shared by tests.
package test

import (
	"net"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/charmbracelet/lorem/pkg/config"
)

var (
	used = map[int]struct{}{}
	lock sync.Mutex
)

// RandomPort returns a free TCP port that no other test got yet.
func RandomPort() int {
	for {
		l, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			continue
		}
		port := l.Addr().(*net.TCPAddr).Port
		_ = l.Close()

		lock.Lock()
		_, taken := used[port]
		used[port] = struct{}{}
		lock.Unlock()
		if !taken {
			return port
		}
	}
}

// Config returns a validated config rooted in a temporary data path, with
// servers bound to random local ports. Sources, when given, replace the
// default ones and are fetched directly, without the proxy.
func Config(tb testing.TB, sources ...string) *config.Config {
	tb.Helper()
	cfg := config.DefaultConfig()
	cfg.DataPath = tb.TempDir()
	cfg.SSH.ListenAddr = addr()
	cfg.SSH.KeyPath = filepath.Join("ssh", "test_host_ed25519")
	cfg.HTTP.ListenAddr = addr()
	cfg.Stats.ListenAddr = addr()
	if len(sources) > 0 {
		cfg.Content.ProxyURL = ""
		cfg.Content.Sources = sources
	}
	if err := cfg.Validate(); err != nil {
		tb.Fatalf("invalid test config: %v", err)
	}
	return cfg
}

func addr() string {
	return net.JoinHostPort("127.0.0.1", strconv.Itoa(RandomPort()))
}
