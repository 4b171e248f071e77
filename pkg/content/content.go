// Package content fetches tab content from a proxy that wraps an upstream
// page into a JSON document of the form {"contents": "..."}.
package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/lorem/pkg/config"
	"github.com/charmbracelet/lorem/pkg/version"
	"github.com/microcosm-cc/bluemonday"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ErrFetchFailed is returned for every failed fetch: network errors,
// non-success statuses and malformed payloads alike.
var ErrFetchFailed = errors.New("content fetch failed")

// maxBodySize caps the size of a proxy response.
const maxBodySize = 8 << 20

var (
	fetchCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lorem",
		Subsystem: "content",
		Name:      "fetch_total",
		Help:      "The total number of content fetches",
	}, []string{"result"})

	fetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "lorem",
		Subsystem: "content",
		Name:      "fetch_duration_seconds",
		Help:      "The duration of content fetches",
		Buckets:   prometheus.DefBuckets,
	}, []string{"result"})
)

// payload is the proxy response.
type payload struct {
	Contents *string `json:"contents"`
	Status   *struct {
		URL      string `json:"url"`
		HTTPCode int    `json:"http_code"`
	} `json:"status"`
}

// Client fetches content through the proxy.
type Client struct {
	http      *http.Client
	logger    *log.Logger
	sanitizer *bluemonday.Policy
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(l *log.Logger) Option {
	return func(cl *Client) {
		if l != nil {
			cl.logger = l
		}
	}
}

// WithSanitizer passes every fetched document through the given policy.
func WithSanitizer(p *bluemonday.Policy) Option {
	return func(cl *Client) {
		cl.sanitizer = p
	}
}

// NewClient returns a new Client. The default HTTP client has no timeout.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:   &http.Client{},
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewClientFromConfig returns a Client configured from cfg.
func NewClientFromConfig(cfg *config.Config, logger *log.Logger) (*Client, error) {
	if cfg == nil {
		return nil, config.ErrNilConfig
	}

	hc := &http.Client{
		Timeout: cfg.Content.Timeout,
	}

	opts := []Option{
		WithHTTPClient(hc),
		WithLogger(logger),
	}
	if cfg.Content.Sanitize {
		opts = append(opts, WithSanitizer(bluemonday.UGCPolicy()))
	}

	return NewClient(opts...), nil
}

// Fetch issues a single GET for url and returns the "contents" field of the
// response. Every error wraps ErrFetchFailed.
func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	start := time.Now()
	contents, err := c.fetch(ctx, url)
	result := "success"
	if err != nil {
		result = "failure"
	}
	fetchCounter.WithLabelValues(result).Inc()
	fetchDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
	c.logger.Debug("fetch", "url", url, "result", result, "time", time.Since(start))
	return contents, err
}

func (c *Client) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	res, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	defer res.Body.Close() // nolint: errcheck
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return "", fmt.Errorf("%w: unexpected status %s", ErrFetchFailed, res.Status)
	}

	contents, err := Decode(io.LimitReader(res.Body, maxBodySize))
	if err != nil {
		return "", err
	}

	if c.sanitizer != nil {
		contents = c.sanitizer.Sanitize(contents)
	}

	return contents, nil
}

// Decode reads a proxy response and returns its contents. A response
// without a "contents" string, or whose upstream status is not a success,
// is malformed.
func Decode(r io.Reader) (string, error) {
	var p payload
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrFetchFailed, err)
	}

	if p.Contents == nil {
		return "", fmt.Errorf("%w: response has no contents", ErrFetchFailed)
	}

	if p.Status != nil && p.Status.HTTPCode != 0 &&
		(p.Status.HTTPCode < 200 || p.Status.HTTPCode > 299) {
		return "", fmt.Errorf("%w: upstream status %d", ErrFetchFailed, p.Status.HTTPCode)
	}

	return *p.Contents, nil
}
