// Package tabpanel is the page that shows the four-tab panel.
package tabpanel

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lorem/pkg/panel"
	"github.com/charmbracelet/lorem/pkg/render"
	"github.com/charmbracelet/lorem/pkg/ui/common"
	"github.com/charmbracelet/lorem/pkg/ui/components/statusbar"
	"github.com/charmbracelet/lorem/pkg/ui/components/tabs"
	"github.com/charmbracelet/lorem/pkg/ui/components/viewport"
	"github.com/dustin/go-humanize"
)

// ContentMsg carries the outcome of a tab fetch back to the update loop.
type ContentMsg struct {
	Result panel.Result
}

// shown identifies what the viewport currently holds.
type shown struct {
	tab   panel.TabID
	width int
	raw   bool
	ok    bool
}

// Page is the tab panel page.
type Page struct {
	common    common.Common
	session   *panel.Session
	tabs      *tabs.Tabs
	statusbar *statusbar.Model
	viewport  *viewport.Viewport
	spinner   spinner.Model
	ticking   bool
	raw       bool
	shown     shown
}

// New creates a new tab panel page backed by s.
func New(c common.Common, s *panel.Session) *Page {
	labels := make([]string, 0, len(panel.Tabs()))
	for _, id := range panel.Tabs() {
		labels = append(labels, id.String())
	}
	sp := spinner.New(spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(c.Styles.Spinner))
	p := &Page{
		common:    c,
		session:   s,
		tabs:      tabs.New(c, labels),
		statusbar: statusbar.New(c),
		viewport:  viewport.New(c),
		spinner:   sp,
	}
	if cfg := c.Config(); cfg != nil {
		p.raw = cfg.UI.RawHTML
	}
	p.SetSize(c.Width, c.Height)
	return p
}

// Session returns the panel session driving the page.
func (p *Page) Session() *panel.Session {
	return p.session
}

// Raw reports whether content is shown as raw HTML.
func (p *Page) Raw() bool {
	return p.raw
}

func (p *Page) getMargins() (wm, hm int) {
	hm = p.common.Styles.Tabs.GetHeight() +
		p.common.Styles.Tabs.GetVerticalFrameSize() +
		p.common.Styles.Content.GetVerticalFrameSize() +
		p.common.Styles.StatusBar.GetHeight()
	return 0, hm
}

// SetSize implements common.Component.
func (p *Page) SetSize(width, height int) {
	p.common.SetSize(width, height)
	wm, hm := p.getMargins()
	p.tabs.SetSize(width, height)
	p.statusbar.SetSize(width, height)
	p.viewport.SetSize(max(0, width-wm), max(0, height-hm))
}

// ShortHelp implements help.KeyMap.
func (p *Page) ShortHelp() []key.Binding {
	return []key.Binding{
		p.common.KeyMap.SelectTab,
		p.common.KeyMap.Section,
		p.common.KeyMap.UpDown,
		p.common.KeyMap.Raw,
	}
}

// FullHelp implements help.KeyMap.
func (p *Page) FullHelp() [][]key.Binding {
	k := p.viewport.KeyMap
	return [][]key.Binding{
		{
			p.common.KeyMap.SelectTab,
			p.common.KeyMap.Section,
			p.common.KeyMap.SectionPrev,
		},
		{
			k.PageDown,
			k.PageUp,
			k.HalfPageDown,
			k.HalfPageUp,
		},
		{
			k.Down,
			k.Up,
			p.common.KeyMap.GotoTop,
			p.common.KeyMap.GotoBottom,
		},
		{
			p.common.KeyMap.Raw,
		},
	}
}

// Init implements tea.Model. It mounts the panel on the first tab.
func (p *Page) Init() tea.Cmd {
	p.tabs.Init()
	return p.request(p.session.Mount())
}

// Update implements tea.Model.
func (p *Page) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0)
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if key.Matches(msg, p.common.KeyMap.Raw) {
			p.raw = !p.raw
		}
	case tabs.ActiveTabMsg:
		id, err := panel.TabAt(int(msg))
		if err != nil {
			cmds = append(cmds, common.ErrorCmd(err))
			break
		}
		cmds = append(cmds, p.request(p.session.Select(id)))
	case ContentMsg:
		p.session.Complete(msg.Result)
	case spinner.TickMsg:
		if p.spinner.ID() != msg.ID {
			break
		}
		if !p.session.IsLoading() {
			p.ticking = false
			break
		}
		s, cmd := p.spinner.Update(msg)
		p.spinner = s
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	t, cmd := p.tabs.Update(msg)
	p.tabs = t.(*tabs.Tabs)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}

	if p.session.View().State == panel.ViewContent {
		v, cmd := p.viewport.Update(msg)
		p.viewport = v.(*viewport.Viewport)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	p.syncContent()
	p.updateStatusBar()
	return p, tea.Batch(cmds...)
}

// request turns a panel request into a command running the fetch off the
// update loop.
func (p *Page) request(req *panel.Request) tea.Cmd {
	p.tabs.Update(tabs.SelectTabMsg(p.session.Active().Index()))
	if req == nil {
		return nil
	}
	ctx := p.common.Context()
	fetch := func() tea.Msg {
		return ContentMsg{Result: req.Do(ctx)}
	}
	if p.ticking {
		return fetch
	}
	p.ticking = true
	return tea.Batch(fetch, p.spinner.Tick)
}

// syncContent renders the active tab's content into the viewport when it,
// the width or the raw toggle changed.
func (p *Page) syncContent() {
	v := p.session.View()
	if v.State != panel.ViewContent {
		p.shown = shown{}
		return
	}
	want := shown{tab: v.Tab, width: p.viewport.Width, raw: p.raw, ok: true}
	if p.shown == want {
		return
	}
	p.shown = want

	profile := p.common.Renderer.ColorProfile()
	style := common.StyleConfig(profile)
	var out string
	var err error
	if p.raw {
		out, err = render.Highlight(v.Content, profile, style)
	} else {
		out, err = render.Terminal(v.Content, p.viewport.Width, style)
	}
	if err != nil {
		p.common.Logger.Error("failed to render content", "tab", int(v.Tab), "err", err)
		out = v.Content
	}
	p.viewport.SetContent(out)
}

func (p *Page) updateStatusBar() {
	v := p.session.View()
	info := ""
	extra := ""
	switch v.State {
	case panel.ViewContent:
		info = humanize.Bytes(uint64(len(v.Content))) //nolint:gosec
		extra = common.ScrollPercent(p.viewport.ScrollPercent())
	case panel.ViewLoading:
		info = "loading"
	case panel.ViewError:
		info = "error"
	}
	p.statusbar.SetStatus(v.Tab.String(), p.session.Sources().URL(v.Tab), info, extra)
}

// View implements tea.Model.
func (p *Page) View() string {
	wm, hm := p.getMargins()
	height := max(0, p.common.Height-hm)
	width := max(0, p.common.Width-wm)

	var main string
	v := p.session.View()
	switch v.State {
	case panel.ViewLoading:
		main = p.common.Styles.SpinnerContainer.
			Height(height).
			Render(fmt.Sprintf("%s loading…", p.spinner.View()))
	case panel.ViewError:
		msg := p.common.Styles.ErrorTitle.Render("Error") +
			p.common.Styles.ErrorBody.Render(v.Message)
		main = p.common.Styles.Error.
			Width(width).
			Height(height).
			Render(msg)
	case panel.ViewContent:
		main = p.viewport.View()
	default:
		main = p.common.Styles.NoContent.
			Height(height).
			Render("No content.")
	}

	header := p.common.Styles.Tabs.Render(p.tabs.View())
	if name := p.name(); name != "" {
		header = lipgloss.JoinHorizontal(lipgloss.Top,
			p.common.Styles.Name.Render(name),
			header,
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		p.common.Styles.Content.Render(main),
		p.statusbar.View(),
	)
}

func (p *Page) name() string {
	if cfg := p.common.Config(); cfg != nil {
		return cfg.Name
	}
	return ""
}
