package config

import (
	"bytes"
	"text/template"
)

var configFileTmpl = template.Must(template.New("config").Parse(`# Lorem configuration

# The name shown next to the tabs.
name: "{{ .Name }}"

# Logging configuration.
log:
  # Log format to use. Valid values are "json", "logfmt", and "text".
  format: "{{ .Log.Format }}"
  # Time format for the log "timestamp" field.
  # Should be described in Golang's time format.
  time_format: "{{ .Log.TimeFormat }}"
  # Path to the log file. Leave empty to write to stderr.
  #path: "{{ .Log.Path }}"

# Content configuration.
content:
  # The proxy that wraps each source into a JSON document with a "contents"
  # field. Leave empty to fetch the sources directly.
  proxy_url: "{{ .Content.ProxyURL }}"

  # The upstream sources, one per tab, in tab order.
  sources:{{ range .Content.Sources }}
    - "{{ . }}"{{ end }}

  # The maximum duration a fetch can take, e.g. "10s" or "1m".
  # A value of 0 means no timeout.
  timeout: "{{ .Content.Timeout }}"

  # Sanitize fetched HTML before it is displayed.
  sanitize: {{ .Content.Sanitize }}

# Terminal UI configuration.
ui:
  # Show the fetched HTML as is instead of rendering it.
  raw_html: {{ .UI.RawHTML }}

# The SSH server configuration.
ssh:
  # Enable the SSH server.
  enabled: {{ .SSH.Enabled }}

  # The address on which the SSH server will listen.
  listen_addr: "{{ .SSH.ListenAddr }}"

  # The public URL of the SSH server.
  # This is the address shown in command usage.
  public_url: "{{ .SSH.PublicURL }}"

  # The path to the SSH server's private key.
  key_path: "{{ .SSH.KeyPath }}"

  # The maximum number of seconds a connection can take.
  # A value of 0 means no timeout.
  max_timeout: {{ .SSH.MaxTimeout }}

  # The number of seconds a connection can be idle before it is closed.
  # A value of 0 means no timeout.
  idle_timeout: {{ .SSH.IdleTimeout }}

# The HTTP server configuration.
http:
  # Enable the HTTP server.
  enabled: {{ .HTTP.Enabled }}

  # The address on which the HTTP server will listen.
  listen_addr: "{{ .HTTP.ListenAddr }}"

  # The public URL of the HTTP server.
  public_url: "{{ .HTTP.PublicURL }}"

# The web panel configuration.
web:
  # The cache backend used to keep web sessions.
  # Valid values are "lru" and "noop".
  cache: "{{ .Web.Cache }}"

  # The number of web sessions kept in memory.
  max_sessions: {{ .Web.MaxSessions }}

# The stats server configuration.
stats:
  # Enable the stats server.
  enabled: {{ .Stats.Enabled }}

  # The address on which the stats server will listen.
  listen_addr: "{{ .Stats.ListenAddr }}"
`))

func newConfigFile(cfg *Config) string {
	var b bytes.Buffer
	configFileTmpl.Execute(&b, cfg) // nolint: errcheck
	return b.String()
}
