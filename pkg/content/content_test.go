package content

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lorem/pkg/config"
	"github.com/matryer/is"
)

func serve(t *testing.T, h http.HandlerFunc) string {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestFetchSuccess(t *testing.T) {
	is := is.New(t)
	var ua string
	url := serve(t, func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		is.Equal(r.Method, http.MethodGet)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"contents":"<p>hi</p>","status":{"url":"https://loripsum.net/api/4/large","http_code":200}}`)) //nolint:errcheck
	})

	c := NewClient()
	got, err := c.Fetch(context.Background(), url)
	is.NoErr(err)
	is.Equal(got, "<p>hi</p>")
	is.True(strings.HasPrefix(ua, "Lorem/"))
}

func TestFetchFailures(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"non-2xx": func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "nope", http.StatusBadGateway)
		},
		"not json": func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte("<html></html>")) //nolint:errcheck
		},
		"missing contents": func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"status":{"http_code":200}}`)) //nolint:errcheck
		},
		"wrong type": func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"contents":42}`)) //nolint:errcheck
		},
		"upstream failure": func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"contents":"","status":{"http_code":404}}`)) //nolint:errcheck
		},
	}
	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			is := is.New(t)
			url := serve(t, h)
			_, err := NewClient().Fetch(context.Background(), url)
			is.True(errors.Is(err, ErrFetchFailed))
		})
	}
}

func TestFetchNetworkError(t *testing.T) {
	is := is.New(t)
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	_, err := NewClient().Fetch(context.Background(), url)
	is.True(errors.Is(err, ErrFetchFailed))
}

func TestFetchBadURL(t *testing.T) {
	is := is.New(t)
	_, err := NewClient().Fetch(context.Background(), "://bad")
	is.True(errors.Is(err, ErrFetchFailed))
}

func TestSanitizer(t *testing.T) {
	is := is.New(t)
	url := serve(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"contents":"<p>hi</p><script>alert(1)</script>"}`)) //nolint:errcheck
	})

	raw, err := NewClient().Fetch(context.Background(), url)
	is.NoErr(err)
	is.True(strings.Contains(raw, "<script>"))

	cfg := config.DefaultConfig()
	cfg.Content.Sanitize = true
	c, err := NewClientFromConfig(cfg, nil)
	is.NoErr(err)
	clean, err := c.Fetch(context.Background(), url)
	is.NoErr(err)
	is.Equal(clean, "<p>hi</p>")
}

func TestTimeoutFromConfig(t *testing.T) {
	is := is.New(t)
	url := serve(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(3 * time.Second):
		case <-r.Context().Done():
		}
	})

	cfg := config.DefaultConfig()
	cfg.Content.Timeout = 200 * time.Millisecond
	c, err := NewClientFromConfig(cfg, nil)
	is.NoErr(err)
	_, err = c.Fetch(context.Background(), url)
	is.True(errors.Is(err, ErrFetchFailed))
}

func TestNilConfig(t *testing.T) {
	is := is.New(t)
	_, err := NewClientFromConfig(nil, nil)
	is.True(errors.Is(err, config.ErrNilConfig))
}

func TestDecode(t *testing.T) {
	is := is.New(t)
	got, err := Decode(strings.NewReader(`{"contents":""}`))
	is.NoErr(err)
	is.Equal(got, "")
}
