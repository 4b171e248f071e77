package web

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/lorem/pkg/config"
	"github.com/charmbracelet/lorem/pkg/panel"
	"github.com/charmbracelet/lorem/pkg/test"
	"github.com/matryer/is"
)

var sources = []string{
	"https://lorem.test/1",
	"https://lorem.test/2",
	"https://lorem.test/3",
	"https://lorem.test/4",
}

type fetcher struct {
	mu    sync.Mutex
	calls map[string]int
}

func (f *fetcher) Fetch(_ context.Context, url string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[url]++
	if url == sources[2] {
		return "", errors.New("upstream down")
	}
	return "<p>content of " + url + "</p>", nil
}

func (f *fetcher) count(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[url]
}

func setup(t *testing.T, cacheName string) (*httptest.Server, *fetcher) {
	t.Helper()
	is := is.New(t)
	cfg := test.Config(t, sources...)
	cfg.Web.Cache = cacheName
	f := &fetcher{calls: map[string]int{}}

	ctx := config.WithContext(context.Background(), cfg)
	ctx = panel.WithFetcher(ctx, f)
	ctx = log.WithContext(ctx, log.New(io.Discard))

	h, err := NewRouter(ctx)
	is.NoErr(err)
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv, f
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	return &http.Client{Jar: jar}
}

func get(t *testing.T, c *http.Client, url string) (int, string) {
	t.Helper()
	res, err := c.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close() // nolint: errcheck
	body, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}
	return res.StatusCode, string(body)
}

func TestPanelMountsFirstTab(t *testing.T) {
	is := is.New(t)
	srv, f := setup(t, "lru")
	c := newClient(t)

	code, body := get(t, c, srv.URL+"/")
	is.Equal(code, http.StatusOK)
	is.True(strings.Contains(body, "<p>content of "+sources[0]+"</p>")) // injected unescaped
	is.True(strings.Contains(body, `class="tab active">Tab 1</button>`))
	is.True(strings.Contains(body, `class="tab">Tab 2</button>`))
	is.Equal(f.count(sources[0]), 1)

	// Reloading doesn't fetch again.
	get(t, c, srv.URL+"/")
	is.Equal(f.count(sources[0]), 1)
}

func TestPanelSelectTab(t *testing.T) {
	is := is.New(t)
	srv, f := setup(t, "lru")
	c := newClient(t)
	get(t, c, srv.URL+"/")

	code, body := get(t, c, srv.URL+"/tabs/2")
	is.Equal(code, http.StatusOK) // after redirect
	is.True(strings.Contains(body, "content of "+sources[1]))
	is.True(strings.Contains(body, `class="tab active">Tab 2</button>`))
	is.Equal(f.count(sources[1]), 1)

	// Cached.
	get(t, c, srv.URL+"/tabs/1")
	get(t, c, srv.URL+"/tabs/2")
	is.Equal(f.count(sources[0]), 1)
	is.Equal(f.count(sources[1]), 1)
}

func TestPanelFailure(t *testing.T) {
	is := is.New(t)
	srv, f := setup(t, "lru")
	c := newClient(t)

	_, body := get(t, c, srv.URL+"/tabs/3")
	is.True(strings.Contains(body, `<p class="error">`+panel.FailureMessage+`</p>`))

	// Switching to another tab shows its content, not the error.
	_, body = get(t, c, srv.URL+"/tabs/1")
	is.True(!strings.Contains(body, panel.FailureMessage))

	// Reselecting retries.
	get(t, c, srv.URL+"/tabs/3")
	is.Equal(f.count(sources[2]), 2)
}

func TestPanelTabLinkMountsFirstTab(t *testing.T) {
	is := is.New(t)
	srv, f := setup(t, "lru")
	c := newClient(t)

	_, body := get(t, c, srv.URL+"/tabs/2")
	is.True(strings.Contains(body, "content of "+sources[1]))
	is.Equal(f.count(sources[0]), 1) // the first tab is loaded on the first visit
	is.Equal(f.count(sources[1]), 1)

	_, body = get(t, c, srv.URL+"/tabs/1")
	is.True(strings.Contains(body, "content of "+sources[0]))
	is.Equal(f.count(sources[0]), 1)
}

func TestPanelInvalidTab(t *testing.T) {
	is := is.New(t)
	srv, _ := setup(t, "lru")
	code, _ := get(t, newClient(t), srv.URL+"/tabs/5")
	is.Equal(code, http.StatusNotFound)

	code, _ = get(t, newClient(t), srv.URL+"/tabs/one")
	is.Equal(code, http.StatusNotFound)
}

func TestPanelSessionsAreSeparate(t *testing.T) {
	is := is.New(t)
	srv, f := setup(t, "lru")
	get(t, newClient(t), srv.URL+"/")
	get(t, newClient(t), srv.URL+"/")
	is.Equal(f.count(sources[0]), 2)

	// Without a cookie jar every request is a new visitor.
	get(t, &http.Client{}, srv.URL+"/")
	is.Equal(f.count(sources[0]), 3)
}

func TestPanelNoopCache(t *testing.T) {
	is := is.New(t)
	srv, f := setup(t, "noop")
	c := newClient(t)
	get(t, c, srv.URL+"/")
	get(t, c, srv.URL+"/")
	is.Equal(f.count(sources[0]), 2)
}

func TestHealth(t *testing.T) {
	is := is.New(t)
	srv, _ := setup(t, "lru")
	code, body := get(t, newClient(t), srv.URL+"/livez")
	is.Equal(code, http.StatusOK)
	is.Equal(body, "200 OK")

	code, _ = get(t, newClient(t), srv.URL+"/readyz")
	is.Equal(code, http.StatusOK)

	code, _ = get(t, newClient(t), srv.URL+"/nope")
	is.Equal(code, http.StatusNotFound)
}

func TestUnknownCache(t *testing.T) {
	is := is.New(t)
	cfg := test.Config(t, sources...)
	cfg.Web.Cache = "memcached"
	_, err := NewRouter(config.WithContext(context.Background(), cfg))
	is.True(err != nil)
}

func TestNewHTTPServer(t *testing.T) {
	is := is.New(t)
	_, err := NewHTTPServer(context.Background())
	is.True(errors.Is(err, config.ErrNilConfig))

	cfg := test.Config(t, sources...)
	s, err := NewHTTPServer(config.WithContext(context.Background(), cfg))
	is.NoErr(err)
	is.Equal(s.Server.Addr, cfg.HTTP.ListenAddr)
	is.NoErr(s.Close())
}
