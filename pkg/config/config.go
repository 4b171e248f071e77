package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/google/go-querystring/query"
	"gopkg.in/yaml.v3"
)

const envPrefix = "LOREM_"

// TabCount is the number of tabs the panel shows.
const TabCount = 4

// ContentConfig is the configuration for the content proxy.
type ContentConfig struct {
	// ProxyURL is the URL of the proxy that wraps upstream content into a
	// JSON document with a "contents" field.
	ProxyURL string `env:"PROXY_URL" yaml:"proxy_url"`

	// Sources are the upstream URLs, one per tab, in tab order.
	Sources []string `env:"SOURCES" envSeparator:"," yaml:"sources"`

	// Timeout is how long a fetch may take, e.g. "10s".
	// A value of 0 means no timeout.
	Timeout time.Duration `env:"TIMEOUT" yaml:"timeout"`

	// Sanitize passes fetched HTML through a sanitizer before it is
	// displayed.
	Sanitize bool `env:"SANITIZE" yaml:"sanitize"`
}

// UIConfig is the configuration for the terminal UI.
type UIConfig struct {
	// RawHTML shows the fetched HTML as is instead of rendering it.
	RawHTML bool `env:"RAW_HTML" yaml:"raw_html"`
}

// SSHConfig is the configuration for the SSH server.
type SSHConfig struct {
	// Enabled toggles the SSH server.
	Enabled bool `env:"ENABLED" yaml:"enabled"`

	// ListenAddr is the address on which the SSH server will listen.
	ListenAddr string `env:"LISTEN_ADDR" yaml:"listen_addr"`

	// PublicURL is the public URL of the SSH server.
	PublicURL string `env:"PUBLIC_URL" yaml:"public_url"`

	// KeyPath is the path to the SSH server's private key.
	KeyPath string `env:"KEY_PATH" yaml:"key_path"`

	// MaxTimeout is the maximum number of seconds a connection can take.
	MaxTimeout int `env:"MAX_TIMEOUT" yaml:"max_timeout"`

	// IdleTimeout is the number of seconds a connection can be idle before it is closed.
	IdleTimeout int `env:"IDLE_TIMEOUT" yaml:"idle_timeout"`
}

// HTTPConfig is the HTTP configuration for the server.
type HTTPConfig struct {
	// Enabled toggles the HTTP server.
	Enabled bool `env:"ENABLED" yaml:"enabled"`

	// ListenAddr is the address on which the HTTP server will listen.
	ListenAddr string `env:"LISTEN_ADDR" yaml:"listen_addr"`

	// PublicURL is the public URL of the HTTP server.
	PublicURL string `env:"PUBLIC_URL" yaml:"public_url"`
}

// WebConfig is the configuration for the web panel.
type WebConfig struct {
	// Cache is the cache backend used to keep web sessions.
	// Valid values are "lru" and "noop".
	Cache string `env:"CACHE" yaml:"cache"`

	// MaxSessions is the number of web sessions kept in memory.
	MaxSessions int `env:"MAX_SESSIONS" yaml:"max_sessions"`
}

// StatsConfig is the configuration for the stats server.
type StatsConfig struct {
	// Enabled toggles the stats server.
	Enabled bool `env:"ENABLED" yaml:"enabled"`

	// ListenAddr is the address on which the stats server will listen.
	ListenAddr string `env:"LISTEN_ADDR" yaml:"listen_addr"`
}

// LogConfig is the logger configuration.
type LogConfig struct {
	// Format is the format of the logs.
	// Valid values are "json", "logfmt", and "text".
	Format string `env:"FORMAT" yaml:"format"`

	// Time format for the log `ts` field.
	// Format must be described in Golang's time format.
	TimeFormat string `env:"TIME_FORMAT" yaml:"time_format"`

	// Path to a file to write logs to.
	// If not set, logs will be written to stderr.
	Path string `env:"PATH" yaml:"path"`
}

// Config is the configuration for Lorem.
type Config struct {
	// Name is the name shown next to the tabs.
	Name string `env:"NAME" yaml:"name"`

	// Content is the configuration for the content proxy.
	Content ContentConfig `envPrefix:"CONTENT_" yaml:"content"`

	// UI is the configuration for the terminal UI.
	UI UIConfig `envPrefix:"UI_" yaml:"ui"`

	// SSH is the configuration for the SSH server.
	SSH SSHConfig `envPrefix:"SSH_" yaml:"ssh"`

	// HTTP is the configuration for the HTTP server.
	HTTP HTTPConfig `envPrefix:"HTTP_" yaml:"http"`

	// Web is the configuration for the web panel.
	Web WebConfig `envPrefix:"WEB_" yaml:"web"`

	// Stats is the configuration for the stats server.
	Stats StatsConfig `envPrefix:"STATS_" yaml:"stats"`

	// Log is the logger configuration.
	Log LogConfig `envPrefix:"LOG_" yaml:"log"`

	// DataPath is the path to the directory where Lorem keeps its config,
	// host keys and logs.
	DataPath string `env:"DATA_PATH" yaml:"-"`
}

// Environ returns the config as a list of environment variables.
func (c *Config) Environ() []string {
	envs := []string{}
	if c == nil {
		return envs
	}

	// TODO: do this dynamically
	envs = append(envs, []string{
		fmt.Sprintf("LOREM_DATA_PATH=%s", c.DataPath),
		fmt.Sprintf("LOREM_NAME=%s", c.Name),
		fmt.Sprintf("LOREM_CONTENT_PROXY_URL=%s", c.Content.ProxyURL),
		fmt.Sprintf("LOREM_CONTENT_SOURCES=%s", strings.Join(c.Content.Sources, ",")),
		fmt.Sprintf("LOREM_CONTENT_TIMEOUT=%s", c.Content.Timeout),
		fmt.Sprintf("LOREM_CONTENT_SANITIZE=%t", c.Content.Sanitize),
		fmt.Sprintf("LOREM_UI_RAW_HTML=%t", c.UI.RawHTML),
		fmt.Sprintf("LOREM_SSH_ENABLED=%t", c.SSH.Enabled),
		fmt.Sprintf("LOREM_SSH_LISTEN_ADDR=%s", c.SSH.ListenAddr),
		fmt.Sprintf("LOREM_SSH_PUBLIC_URL=%s", c.SSH.PublicURL),
		fmt.Sprintf("LOREM_SSH_KEY_PATH=%s", c.SSH.KeyPath),
		fmt.Sprintf("LOREM_SSH_MAX_TIMEOUT=%d", c.SSH.MaxTimeout),
		fmt.Sprintf("LOREM_SSH_IDLE_TIMEOUT=%d", c.SSH.IdleTimeout),
		fmt.Sprintf("LOREM_HTTP_ENABLED=%t", c.HTTP.Enabled),
		fmt.Sprintf("LOREM_HTTP_LISTEN_ADDR=%s", c.HTTP.ListenAddr),
		fmt.Sprintf("LOREM_HTTP_PUBLIC_URL=%s", c.HTTP.PublicURL),
		fmt.Sprintf("LOREM_WEB_CACHE=%s", c.Web.Cache),
		fmt.Sprintf("LOREM_WEB_MAX_SESSIONS=%d", c.Web.MaxSessions),
		fmt.Sprintf("LOREM_STATS_ENABLED=%t", c.Stats.Enabled),
		fmt.Sprintf("LOREM_STATS_LISTEN_ADDR=%s", c.Stats.ListenAddr),
		fmt.Sprintf("LOREM_LOG_FORMAT=%s", c.Log.Format),
		fmt.Sprintf("LOREM_LOG_TIME_FORMAT=%s", c.Log.TimeFormat),
		fmt.Sprintf("LOREM_LOG_PATH=%s", c.Log.Path),
	}...)

	return envs
}

// IsDebug returns true if lorem is running in debug mode.
func IsDebug() bool {
	debug, _ := strconv.ParseBool(os.Getenv("LOREM_DEBUG"))
	return debug
}

// IsVerbose returns true if lorem is running in verbose mode.
// Verbose mode is only enabled if debug mode is enabled.
func IsVerbose() bool {
	verbose, _ := strconv.ParseBool(os.Getenv("LOREM_VERBOSE"))
	return IsDebug() && verbose
}

// parseFile parses the given file as a configuration file.
// The file must be in YAML format.
func parseFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}

	defer f.Close() // nolint: errcheck
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}

	return cfg.Validate()
}

// ParseFile parses the config from the default file path.
// This also calls Validate() on the config.
func (c *Config) ParseFile() error {
	return parseFile(c, c.ConfigPath())
}

// ParseConfig parses the config from the given file path.
// This also calls Validate() on the config.
func ParseConfig(cfg *Config, path string) error {
	return parseFile(cfg, path)
}

// parseEnv parses the environment variables as a configuration file.
func parseEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{
		Prefix: envPrefix,
	}); err != nil {
		return fmt.Errorf("parse environment variables: %w", err)
	}

	return cfg.Validate()
}

// ParseEnv parses the config from the environment variables.
// This also calls Validate() on the config.
func (c *Config) ParseEnv() error {
	return parseEnv(c)
}

// Parse parses the config from the default file path and environment
// variables. A missing config file is not an error.
// This also calls Validate() on the config.
func (c *Config) Parse() error {
	if c.Exist() {
		if err := c.ParseFile(); err != nil {
			return err
		}
	}

	return c.ParseEnv()
}

// writeConfig writes the configuration to the given file.
func writeConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(newConfigFile(cfg)), 0o644) // nolint: errcheck, gosec
}

// WriteConfig writes the configuration to the default file.
func (c *Config) WriteConfig() error {
	return writeConfig(c, c.ConfigPath())
}

// DefaultDataPath returns the path to the data directory.
// It uses the LOREM_DATA_PATH environment variable if set, otherwise it
// uses "data".
func DefaultDataPath() string {
	dp := os.Getenv("LOREM_DATA_PATH")
	if dp == "" {
		dp = "data"
	}

	return dp
}

// ConfigPath returns the path to the config file.
// LOREM_CONFIG_LOCATION overrides the default location inside the data
// path when the file it points to exists.
func (c *Config) ConfigPath() string { // nolint:revive
	if path := os.Getenv("LOREM_CONFIG_LOCATION"); exist(path) {
		return path
	}
	return filepath.Join(c.DataPath, "config.yaml")
}

func exist(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Exist returns true if the config file exists.
func (c *Config) Exist() bool {
	return exist(c.ConfigPath())
}

// DefaultSources are the upstream URLs the panel shows by default. Tab 1
// shows the most paragraphs.
var DefaultSources = []string{
	"https://loripsum.net/api/4/large",
	"https://loripsum.net/api/3/large",
	"https://loripsum.net/api/2/large",
	"https://loripsum.net/api/1/large",
}

// DefaultProxyURL is the default content proxy.
const DefaultProxyURL = "https://api.allorigins.win/get"

// DefaultConfig returns the default Config. All the path values are relative
// to the data directory.
// Use Validate() to validate the config and ensure absolute paths.
func DefaultConfig() *Config {
	return &Config{
		Name:     "Lorem",
		DataPath: DefaultDataPath(),
		Content: ContentConfig{
			ProxyURL: DefaultProxyURL,
			Sources:  append([]string{}, DefaultSources...),
		},
		SSH: SSHConfig{
			Enabled:     true,
			ListenAddr:  ":23234",
			PublicURL:   "ssh://localhost:23234",
			KeyPath:     filepath.Join("ssh", "lorem_host_ed25519"),
			MaxTimeout:  0,
			IdleTimeout: 10 * 60, // 10 minutes
		},
		HTTP: HTTPConfig{
			Enabled:    true,
			ListenAddr: ":23235",
			PublicURL:  "http://localhost:23235",
		},
		Web: WebConfig{
			Cache:       "lru",
			MaxSessions: 1000,
		},
		Stats: StatsConfig{
			Enabled:    true,
			ListenAddr: "localhost:23236",
		},
		Log: LogConfig{
			Format:     "text",
			TimeFormat: time.DateTime,
		},
	}
}

// Validate validates the configuration.
// It updates the configuration with absolute paths.
func (c *Config) Validate() error {
	// Use absolute paths
	if !filepath.IsAbs(c.DataPath) {
		dp, err := filepath.Abs(c.DataPath)
		if err != nil {
			return err
		}
		c.DataPath = dp
	}

	c.HTTP.PublicURL = strings.TrimSuffix(c.HTTP.PublicURL, "/")

	if c.SSH.KeyPath != "" && !filepath.IsAbs(c.SSH.KeyPath) {
		c.SSH.KeyPath = filepath.Join(c.DataPath, c.SSH.KeyPath)
	}

	if c.Log.Path != "" && !filepath.IsAbs(c.Log.Path) {
		c.Log.Path = filepath.Join(c.DataPath, c.Log.Path)
	}

	if len(c.Content.Sources) == 0 {
		if c.Content.ProxyURL == "" {
			c.Content.ProxyURL = DefaultProxyURL
		}
		c.Content.Sources = append([]string{}, DefaultSources...)
	}

	if len(c.Content.Sources) != TabCount {
		return fmt.Errorf("%w: want %d content sources, got %d",
			ErrInvalidSources, TabCount, len(c.Content.Sources))
	}

	if _, err := c.Content.URLs(); err != nil {
		return err
	}

	if c.Content.Timeout < 0 {
		return fmt.Errorf("invalid content timeout: %s", c.Content.Timeout)
	}

	return nil
}

// proxyQuery is the query the content proxy expects.
type proxyQuery struct {
	URL string `url:"url"`
}

// URLs returns the URLs to fetch, one per tab, in tab order. When a proxy
// URL is set, each source is wrapped as the proxy's "url" query parameter.
func (c ContentConfig) URLs() ([]string, error) {
	urls := make([]string, 0, len(c.Sources))
	for _, src := range c.Sources {
		if _, err := url.ParseRequestURI(src); err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidSources, src, err)
		}

		if c.ProxyURL == "" {
			urls = append(urls, src)
			continue
		}

		pu, err := url.Parse(c.ProxyURL)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy url %q: %w", c.ProxyURL, err)
		}

		v, err := query.Values(proxyQuery{URL: src})
		if err != nil {
			return nil, err //nolint:wrapcheck
		}

		q := pu.Query()
		for k := range v {
			q.Set(k, v.Get(k))
		}
		pu.RawQuery = q.Encode()
		urls = append(urls, pu.String())
	}

	return urls, nil
}
