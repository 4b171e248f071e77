// Package panel implements the four-tab content panel: the active tab, the
// per-tab content cache, and the loading and error state derived from
// fetching content the first time a tab is shown.
//
// A Session is driven by whatever displays it. Synchronous callers use
// SelectTab and EnsureContent, which block on the network. Event loops split
// the same operation in three: Select or Begin decides whether a fetch is
// needed, Request.Do performs it without touching the session, and Complete
// records the outcome.
package panel

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
)

// FailureMessage is shown in place of the content when a fetch fails.
const FailureMessage = "Failed to fetch content. Please try again."

// Fetcher fetches the content served at url.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// FetcherFunc is an adapter to use a function as a Fetcher.
type FetcherFunc func(ctx context.Context, url string) (string, error)

// Fetch implements Fetcher.
func (f FetcherFunc) Fetch(ctx context.Context, url string) (string, error) {
	return f(ctx, url)
}

// Session is the state of one mounted panel. It is not safe for concurrent
// use; Request.Do is the only part that may run on another goroutine.
type Session struct {
	sources Sources
	fetcher Fetcher
	logger  *log.Logger

	active   TabID
	cache    map[TabID]string
	inflight map[TabID]int
	seq      uint64
	lastErr  string
	errTab   TabID
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// New returns a session showing Tab1 with nothing fetched yet. Callers mount
// it with Mount or SelectTab(ctx, Tab1).
func New(f Fetcher, sources Sources, opts ...Option) *Session {
	s := &Session{
		sources:  sources,
		fetcher:  f,
		logger:   log.New(io.Discard),
		active:   Tab1,
		cache:    make(map[TabID]string, len(sources)),
		inflight: make(map[TabID]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Active returns the active tab.
func (s *Session) Active() TabID {
	return s.active
}

// Sources returns the source table of the session.
func (s *Session) Sources() Sources {
	return s.sources
}

// Content returns the cached content of a tab.
func (s *Session) Content(id TabID) (string, bool) {
	c, ok := s.cache[id]
	return c, ok
}

// IsLoading reports whether a fetch for the active tab is outstanding.
func (s *Session) IsLoading() bool {
	return s.inflight[s.active] > 0
}

// LastError returns the failure message of the most recent fetch attempt
// when that attempt was for the active tab.
func (s *Session) LastError() string {
	if s.errTab != s.active {
		return ""
	}
	return s.lastErr
}

// Mount selects Tab1 and returns the request needed to fill it, if any.
func (s *Session) Mount() *Request {
	return s.Select(Tab1)
}

// Select makes id the active tab and begins fetching its content. It
// returns nil when no fetch is needed.
func (s *Session) Select(id TabID) *Request {
	if !id.Valid() {
		s.logger.Warn("ignoring invalid tab", "tab", int(id))
		return nil
	}
	s.active = id
	return s.Begin(id)
}

// Begin starts a fetch for id unless its content is already cached, in
// which case it returns nil and leaves the session untouched.
func (s *Session) Begin(id TabID) *Request {
	if !id.Valid() {
		return nil
	}
	if _, ok := s.cache[id]; ok {
		return nil
	}

	s.seq++
	s.inflight[id]++
	s.lastErr = ""
	s.errTab = 0

	url := s.sources.URL(id)
	s.logger.Debug("fetching content", "tab", int(id), "url", url)
	return &Request{
		Tab:     id,
		URL:     url,
		seq:     s.seq,
		fetcher: s.fetcher,
	}
}

// Complete records the outcome of a request started by Begin.
func (s *Session) Complete(res Result) {
	if n := s.inflight[res.Tab]; n > 1 {
		s.inflight[res.Tab] = n - 1
	} else {
		delete(s.inflight, res.Tab)
	}

	if res.Err != nil {
		s.logger.Error("failed to fetch content", "tab", int(res.Tab), "url", res.URL, "err", res.Err)
		if res.seq == s.seq {
			s.lastErr = FailureMessage
			s.errTab = res.Tab
		}
		return
	}

	// Overlapping fetches for the same tab both land here; the last one wins.
	s.cache[res.Tab] = res.Content
	s.logger.Debug("content cached", "tab", int(res.Tab), "bytes", len(res.Content))
}

// SelectTab makes id the active tab and, if its content isn't cached,
// fetches it before returning. Fetch failures are recorded in the session,
// not returned.
func (s *Session) SelectTab(ctx context.Context, id TabID) error {
	if !id.Valid() {
		return ErrInvalidTab
	}
	s.active = id
	return s.EnsureContent(ctx, id)
}

// EnsureContent fetches the content of id unless it is already cached.
// Fetch failures are recorded in the session, not returned.
func (s *Session) EnsureContent(ctx context.Context, id TabID) error {
	if !id.Valid() {
		return ErrInvalidTab
	}
	req := s.Begin(id)
	if req == nil {
		return nil
	}
	s.Complete(req.Do(ctx))
	return nil
}

// Request is a pending fetch for one tab.
type Request struct {
	Tab TabID
	URL string

	seq     uint64
	fetcher Fetcher
}

// Do performs the fetch. It does not touch the session that created the
// request and may run on any goroutine.
func (r *Request) Do(ctx context.Context) Result {
	res := Result{Tab: r.Tab, URL: r.URL, seq: r.seq}
	if r.fetcher == nil {
		res.Err = errNoFetcher
		return res
	}
	res.Content, res.Err = r.fetcher.Fetch(ctx, r.URL)
	return res
}

// Result is the outcome of a Request.
type Result struct {
	Tab     TabID
	URL     string
	Content string
	Err     error

	seq uint64
}
