package tabpanel_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lorem/pkg/config"
	"github.com/charmbracelet/lorem/pkg/panel"
	"github.com/charmbracelet/lorem/pkg/ui/common"
	"github.com/charmbracelet/lorem/pkg/ui/pages/tabpanel"
	"github.com/matryer/is"
	"github.com/muesli/termenv"
)

var sources = panel.Sources{"u1", "u2", "u3", "u4"}

type fetcher struct {
	mu    sync.Mutex
	calls map[string]int
	fail  map[string]bool
}

func (f *fetcher) Fetch(_ context.Context, url string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[url]++
	if f.fail[url] {
		return "", errors.New("boom")
	}
	return "<p>hello " + url + "</p>", nil
}

func (f *fetcher) count(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[url]
}

func newPage(t *testing.T, ctx context.Context, f *fetcher) *tabpanel.Page {
	t.Helper()
	r := lipgloss.NewRenderer(io.Discard, termenv.WithProfile(termenv.Ascii))
	c := common.NewCommon(ctx, r, 80, 24)
	t.Cleanup(c.Zone.Close)
	return tabpanel.New(c, panel.New(f, sources))
}

// run executes cmd and returns the messages it produced, flattening
// batches. Spinner ticks are dropped.
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var msgs []tea.Msg
		for _, c := range msg {
			msgs = append(msgs, run(c)...)
		}
		return msgs
	case spinner.TickMsg:
		return nil
	default:
		return []tea.Msg{msg}
	}
}

// feed sends msg to the page and keeps feeding the resulting messages until
// none are left.
func feed(p *tabpanel.Page, msg tea.Msg) {
	queue := []tea.Msg{msg}
	for len(queue) > 0 {
		m := queue[0]
		queue = queue[1:]
		_, cmd := p.Update(m)
		queue = append(queue, run(cmd)...)
	}
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMountShowsLoadingThenContent(t *testing.T) {
	is := is.New(t)
	f := &fetcher{calls: map[string]int{}}
	p := newPage(t, context.Background(), f)

	msgs := run(p.Init())
	is.True(p.Session().IsLoading())
	is.True(strings.Contains(p.View(), "loading"))

	for _, m := range msgs {
		feed(p, m)
	}
	is.Equal(f.count("u1"), 1)
	is.True(!p.Session().IsLoading())
	view := p.View()
	is.True(strings.Contains(view, "hello u1"))
	is.True(strings.Contains(view, "Tab 1"))
	is.True(!strings.Contains(view, "<p>")) // rendered, not raw
}

func TestRawToggle(t *testing.T) {
	is := is.New(t)
	f := &fetcher{calls: map[string]int{}}
	p := newPage(t, context.Background(), f)
	for _, m := range run(p.Init()) {
		feed(p, m)
	}

	feed(p, keyPress("r"))
	is.True(p.Raw())
	is.True(strings.Contains(p.View(), "<p>hello u1</p>"))

	feed(p, keyPress("r"))
	is.True(!p.Raw())
}

func TestRawFromConfig(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	cfg.UI.RawHTML = true
	p := newPage(t, config.WithContext(context.Background(), cfg), &fetcher{calls: map[string]int{}})
	is.True(p.Raw())
}

func TestSelectTabs(t *testing.T) {
	is := is.New(t)
	f := &fetcher{calls: map[string]int{}, fail: map[string]bool{"u2": true}}
	p := newPage(t, context.Background(), f)
	for _, m := range run(p.Init()) {
		feed(p, m)
	}

	// Tab 2 fails.
	feed(p, keyPress("2"))
	is.Equal(p.Session().Active(), panel.Tab2)
	is.Equal(f.count("u2"), 1)
	is.True(strings.Contains(p.View(), panel.FailureMessage))

	// Back to the cached tab: no fetch, no error.
	feed(p, keyPress("1"))
	is.Equal(p.Session().Active(), panel.Tab1)
	is.Equal(f.count("u1"), 1)
	view := p.View()
	is.True(!strings.Contains(view, panel.FailureMessage))
	is.True(strings.Contains(view, "hello u1"))

	// Reselecting the failed tab retries.
	f.mu.Lock()
	f.fail["u2"] = false
	f.mu.Unlock()
	feed(p, keyPress("2"))
	is.Equal(f.count("u2"), 2)
	is.True(strings.Contains(p.View(), "hello u2"))

	// tab and shift+tab cycle.
	feed(p, keyPress("tab"))
	is.Equal(p.Session().Active(), panel.Tab3)
	feed(p, keyPress("shift+tab"))
	feed(p, keyPress("shift+tab"))
	is.Equal(p.Session().Active(), panel.Tab1)
	feed(p, keyPress("shift+tab"))
	is.Equal(p.Session().Active(), panel.Tab4)
	is.Equal(f.count("u4"), 1)
}

func TestLoadingFollowsActiveTab(t *testing.T) {
	is := is.New(t)
	f := &fetcher{calls: map[string]int{}}
	p := newPage(t, context.Background(), f)
	for _, m := range run(p.Init()) {
		feed(p, m)
	}

	// Start a fetch for tab 3 but hold on to its result.
	_, cmd := p.Update(keyPress("3"))
	var pending []tea.Msg
	for _, m := range run(cmd) {
		_, cmd := p.Update(m)
		pending = append(pending, run(cmd)...)
	}
	is.True(p.Session().IsLoading())

	// Switching to cached tab 1 shows its content right away.
	feed(p, keyPress("1"))
	is.True(!p.Session().IsLoading())
	is.True(strings.Contains(p.View(), "hello u1"))

	for _, m := range pending {
		feed(p, m)
	}
	c, ok := p.Session().Content(panel.Tab3)
	is.True(ok)
	is.Equal(c, "<p>hello u3</p>")
}

func TestNameNextToTabs(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	cfg.Name = "Ipsum"
	p := newPage(t, config.WithContext(context.Background(), cfg), &fetcher{calls: map[string]int{}})
	first := strings.SplitN(p.View(), "\n", 2)[0]
	is.True(strings.Contains(first, "Ipsum"))
	is.True(strings.Contains(first, "Tab 1"))
}
