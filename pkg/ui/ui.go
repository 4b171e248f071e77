package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lorem/pkg/panel"
	"github.com/charmbracelet/lorem/pkg/ui/common"
	"github.com/charmbracelet/lorem/pkg/ui/components/footer"
	"github.com/charmbracelet/lorem/pkg/ui/components/statusbar"
	"github.com/charmbracelet/lorem/pkg/ui/pages/tabpanel"
)

type sessionState int

const (
	loadedState sessionState = iota
	errorState
)

// UI is the main UI model.
type UI struct {
	common common.Common
	page   *tabpanel.Page
	footer *footer.Footer
	state  sessionState
	error  error
}

// New returns a new UI model mounting one panel session.
func New(c common.Common, s *panel.Session) *UI {
	ui := &UI{
		common: c,
		page:   tabpanel.New(c, s),
		state:  loadedState,
	}
	ui.footer = footer.New(c, ui)
	ui.SetSize(c.Width, c.Height)
	return ui
}

func (ui *UI) getMargins() (wm, hm int) {
	style := ui.common.Styles.App
	wm = style.GetHorizontalFrameSize()
	hm = style.GetVerticalFrameSize() + ui.footer.Height()
	return
}

// ShortHelp implements help.KeyMap.
func (ui *UI) ShortHelp() []key.Binding {
	b := make([]key.Binding, 0)
	if ui.state == loadedState {
		b = append(b, ui.page.ShortHelp()...)
	}
	b = append(b, ui.common.KeyMap.Quit, ui.common.KeyMap.Help)
	return b
}

// FullHelp implements help.KeyMap.
func (ui *UI) FullHelp() [][]key.Binding {
	b := make([][]key.Binding, 0)
	if ui.state == loadedState {
		b = append(b, ui.page.FullHelp()...)
	}
	b = append(b, []key.Binding{
		ui.common.KeyMap.Quit,
		ui.common.KeyMap.Help,
	})
	return b
}

// SetSize implements common.Component.
func (ui *UI) SetSize(width, height int) {
	ui.common.SetSize(width, height)
	wm, hm := ui.getMargins()
	ui.footer.SetSize(width-wm, height-hm)
	ui.page.SetSize(width-wm, height-hm)
}

// Page returns the panel page.
func (ui *UI) Page() *tabpanel.Page {
	return ui.page
}

// Init implements tea.Model.
func (ui *UI) Init() tea.Cmd {
	return tea.Batch(
		ui.page.Init(),
		ui.footer.Init(),
	)
}

// Update implements tea.Model.
func (ui *UI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	ui.common.Logger.Debugf("msg received: %T", msg)
	cmds := make([]tea.Cmd, 0)
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		ui.SetSize(msg.Width, msg.Height)
		return ui, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, ui.common.KeyMap.Quit):
			// Stop bubblezone background workers.
			ui.common.Zone.Close()
			return ui, tea.Quit
		case key.Matches(msg, ui.common.KeyMap.Help):
			cmds = append(cmds, footer.ToggleFooterCmd)
		case ui.state == errorState:
			// Any other key dismisses the error.
			ui.error = nil
			ui.state = loadedState
			return ui, nil
		}
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			switch {
			case ui.common.Zone.Get("footer").InBounds(msg),
				ui.common.Zone.Get(statusbar.HelpZone).InBounds(msg):
				cmds = append(cmds, footer.ToggleFooterCmd)
			}
		}
	case footer.ToggleFooterMsg:
		ui.footer.SetShowAll(!ui.footer.ShowAll())
	case common.ErrorMsg:
		ui.error = msg
		ui.state = errorState
		return ui, nil
	}

	m, cmd := ui.page.Update(msg)
	ui.page = m.(*tabpanel.Page)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}

	// The footer height changes with the help mode.
	ui.SetSize(ui.common.Width, ui.common.Height)

	return ui, tea.Batch(cmds...)
}

// View implements tea.Model.
func (ui *UI) View() string {
	var view string
	switch ui.state {
	case errorState:
		err := ui.common.Styles.ErrorTitle.Render("Bummer")
		err += ui.common.Styles.ErrorBody.Render(ui.error.Error())
		view = ui.common.Styles.Error.Render(err)
	default:
		view = ui.page.View()
	}

	view = lipgloss.JoinVertical(lipgloss.Left, view, ui.footer.View())

	return ui.common.Zone.Scan(ui.common.Styles.App.Render(view))
}
