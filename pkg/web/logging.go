package web

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lorem",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "The total number of HTTP requests",
	}, []string{"method", "code"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "lorem",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "The time spent serving HTTP requests",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})
)

// statusWriter records the status code and the number of bytes written.
type statusWriter struct {
	http.ResponseWriter
	code, bytes int
}

var (
	_ http.ResponseWriter = (*statusWriter)(nil)
	_ http.Flusher        = (*statusWriter)(nil)
	_ http.Hijacker       = (*statusWriter)(nil)
)

// Write implements http.ResponseWriter.
func (w *statusWriter) Write(p []byte) (int, error) {
	n, err := w.ResponseWriter.Write(p)
	w.bytes += n
	return n, err
}

// WriteHeader implements http.ResponseWriter. Handlers that never call it
// answer 200, which is what code starts at.
func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

// Unwrap returns the underlying http.ResponseWriter.
func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// Flush implements http.Flusher.
func (w *statusWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Hijack implements http.Hijacker.
func (w *statusWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if h, ok := w.ResponseWriter.(http.Hijacker); ok {
		return h.Hijack()
	}
	return nil, nil, errors.New("http.Hijacker not implemented")
}

// NewLoggingMiddleware returns a middleware that logs and counts requests.
func NewLoggingMiddleware(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{code: http.StatusOK, ResponseWriter: w}
		next.ServeHTTP(sw, r)
		elapsed := time.Since(start)

		requestCounter.WithLabelValues(r.Method, strconv.Itoa(sw.code)).Inc()
		requestDuration.WithLabelValues(r.Method).Observe(elapsed.Seconds())

		logger.Debug("request",
			"method", r.Method,
			"path", r.URL,
			"addr", r.RemoteAddr,
			"status", sw.code,
			"bytes", humanize.Bytes(uint64(sw.bytes)), //nolint:gosec
			"time", elapsed)
	})
}
