package main

import (
	"encoding/json"
	"flag"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rogpeppe/go-internal/testscript"
)

var update = flag.Bool("update", false, "update script files")

func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"lorem": run,
	}))
}

// proxy answers like the content proxy, echoing the requested url back as
// a paragraph. Sources on the fail.test host report an upstream error and
// sources on the slow.test host take seconds to answer.
func proxy(w http.ResponseWriter, r *http.Request) {
	src := r.URL.Query().Get("url")
	if strings.Contains(src, "slow.test") {
		select {
		case <-time.After(5 * time.Second):
		case <-r.Context().Done():
			return
		}
	}
	code := http.StatusOK
	if strings.Contains(src, "fail.test") {
		code = http.StatusInternalServerError
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{ // nolint: errcheck
		"contents": "<p>" + src + "</p>",
		"status":   map[string]any{"http_code": code},
	})
}

func TestScript(t *testing.T) {
	flag.Parse()
	srv := httptest.NewServer(http.HandlerFunc(proxy))
	defer srv.Close()

	testscript.Run(t, testscript.Params{
		Dir:           "./testdata/",
		UpdateScripts: *update,
		Setup: func(e *testscript.Env) error {
			e.Setenv("LOREM_DATA_PATH", filepath.Join(e.WorkDir, "data"))
			e.Setenv("LOREM_CONTENT_PROXY_URL", srv.URL+"/get")
			e.Setenv("LOREM_CONTENT_SOURCES", "https://a.test/1,https://a.test/2,https://fail.test/3,https://a.test/4")
			e.Setenv("LOREM_SSH_ENABLED", "false")
			e.Setenv("LOREM_HTTP_ENABLED", "false")
			e.Setenv("LOREM_STATS_ENABLED", "false")
			return nil
		},
	})
}
