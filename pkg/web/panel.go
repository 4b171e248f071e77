package web

import (
	"context"
	"html/template"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/lorem/pkg/cache"
	"github.com/charmbracelet/lorem/pkg/cache/lru"
	_ "github.com/charmbracelet/lorem/pkg/cache/noop" // noop session store
	"github.com/charmbracelet/lorem/pkg/config"
	"github.com/charmbracelet/lorem/pkg/panel"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SessionCookie is the name of the cookie identifying a visitor's panel.
const SessionCookie = "lorem_session"

var (
	webSessionCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "lorem",
		Subsystem: "web",
		Name:      "session_total",
		Help:      "The total number of mounted web panels",
	})

	webTabCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lorem",
		Subsystem: "web",
		Name:      "tab_select_total",
		Help:      "The total number of tab selections from the web",
	}, []string{"tab"})
)

// webSession is one visitor's panel. Requests carrying the same cookie may
// arrive in parallel, mu serializes them.
type webSession struct {
	mu      sync.Mutex
	panel   *panel.Session
	mounted bool
}

type panelController struct {
	sessions cache.Cache
	sources  panel.Sources
	fetcher  panel.Fetcher
	logger   *log.Logger
}

// PanelController registers the panel routes for the web server.
func PanelController(ctx context.Context, r *mux.Router) error {
	cfg := config.FromContext(ctx)
	sources, err := panel.SourcesFromConfig(cfg)
	if err != nil {
		return err
	}

	logger := log.FromContext(ctx).WithPrefix("http")
	sessions := cache.FromContext(ctx)
	if sessions == nil {
		sessions, err = cache.New(ctx, cfg.Web.Cache,
			lru.WithSize(cfg.Web.MaxSessions),
			lru.WithEvictCallback(func(key string, _ any) {
				logger.Debug("panel unmounted", "session", key)
			}),
		)
		if err != nil {
			return err
		}
	}

	pc := &panelController{
		sessions: sessions,
		sources:  sources,
		fetcher:  panel.FetcherFromContext(ctx),
		logger:   logger,
	}

	r.HandleFunc("/", pc.getPanel).Methods(http.MethodGet)
	r.HandleFunc("/tabs/{tab:[0-9]+}", pc.selectTab).Methods(http.MethodGet)
	return nil
}

// session returns the visitor's panel, mounting a new one and setting the
// cookie when there is none.
func (pc *panelController) session(w http.ResponseWriter, r *http.Request) *webSession {
	ctx := r.Context()
	if c, err := r.Cookie(SessionCookie); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			if s, ok := cache.Lookup[*webSession](ctx, pc.sessions, id.String()); ok {
				return s
			}
		}
	}

	id := uuid.New().String()
	s := &webSession{
		panel: panel.New(pc.fetcher, pc.sources,
			panel.WithLogger(pc.logger.WithPrefix("panel").With("session", id))),
	}
	pc.sessions.Set(ctx, id, s)
	webSessionCounter.Inc()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return s
}

func (pc *panelController) getPanel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s := pc.session(w, r)
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.mounted {
		s.mounted = true
		if err := s.panel.SelectTab(ctx, panel.Tab1); err != nil {
			pc.logger.Error("failed to mount panel", "err", err)
			renderInternalServerError(w, r)
			return
		}
	}

	renderPanel(w, r, s.panel)
}

func (pc *panelController) selectTab(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := panel.ParseTabID(mux.Vars(r)["tab"])
	if err != nil {
		renderNotFound(w, r)
		return
	}

	s := pc.session(w, r)
	s.mu.Lock()
	if !s.mounted {
		s.mounted = true
		if err := s.panel.SelectTab(ctx, panel.Tab1); err != nil {
			s.mu.Unlock()
			pc.logger.Error("failed to mount panel", "err", err)
			renderInternalServerError(w, r)
			return
		}
	}
	err = s.panel.SelectTab(ctx, id)
	s.mu.Unlock()
	if err != nil {
		renderNotFound(w, r)
		return
	}

	webTabCounter.WithLabelValues(id.String()).Inc()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type tabButton struct {
	ID     int
	Label  string
	Active bool
}

type panelPage struct {
	Name    string
	Tabs    []tabButton
	State   string
	Message string
	Content template.HTML
}

var panelTmpl = template.Must(template.New("panel").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ .Name }}</title>
  <style>
    body { font-family: sans-serif; max-width: 48rem; margin: 2rem auto; padding: 0 1rem; }
    .tabs { display: flex; gap: .5rem; margin-bottom: 1rem; }
    .tabs form { margin: 0; }
    .tab { border: 1px solid #888; background: #fff; padding: .4rem 1rem; cursor: pointer; }
    .tab.active { background: #5a56e0; border-color: #5a56e0; color: #fff; }
    .error { color: #c0392b; }
  </style>
</head>
<body>
  <nav class="tabs">{{ range .Tabs }}
    <form action="/tabs/{{ .ID }}" method="get"><button type="submit" class="tab{{ if .Active }} active{{ end }}">{{ .Label }}</button></form>{{ end }}
  </nav>
  <main class="content">
  {{- if eq .State "loading" }}
    <p class="loading">Loading...</p>
  {{- else if eq .State "error" }}
    <p class="error">{{ .Message }}</p>
  {{- else if eq .State "content" }}
    {{ .Content }}
  {{- end }}
  </main>
</body>
</html>
`))

func renderPanel(w http.ResponseWriter, r *http.Request, s *panel.Session) {
	v := s.View()
	page := panelPage{
		Name:    "Lorem",
		State:   v.State.String(),
		Message: v.Message,
		// Fetched content is trusted and injected as is.
		Content: template.HTML(v.Content), //nolint:gosec
	}
	if cfg := config.FromContext(r.Context()); cfg != nil && cfg.Name != "" {
		page.Name = cfg.Name
	}
	for _, id := range panel.Tabs() {
		page.Tabs = append(page.Tabs, tabButton{
			ID:     int(id),
			Label:  id.String(),
			Active: id == v.Tab,
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := panelTmpl.Execute(w, page); err != nil {
		log.FromContext(r.Context()).Error("failed to render panel", "err", err)
	}
}
