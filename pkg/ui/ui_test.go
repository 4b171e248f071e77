package ui

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lorem/pkg/panel"
	"github.com/charmbracelet/lorem/pkg/ui/common"
	"github.com/matryer/is"
	"github.com/muesli/termenv"
)

func newUI(t *testing.T) *UI {
	t.Helper()
	r := lipgloss.NewRenderer(io.Discard, termenv.WithProfile(termenv.Ascii))
	c := common.NewCommon(context.Background(), r, 80, 24)
	f := panel.FetcherFunc(func(context.Context, string) (string, error) {
		return "<p>lorem</p>", nil
	})
	return New(c, panel.New(f, panel.Sources{"a", "b", "c", "d"}))
}

func TestQuit(t *testing.T) {
	is := is.New(t)
	ui := newUI(t) // quitting closes the zone manager
	_, cmd := ui.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	is.True(cmd != nil)
	_, ok := cmd().(tea.QuitMsg)
	is.True(ok)
}

func TestHelpToggle(t *testing.T) {
	is := is.New(t)
	ui := newUI(t)
	defer ui.common.Zone.Close()
	is.True(!ui.footer.ShowAll())

	_, cmd := ui.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	is.True(cmd != nil)
	ui.Update(cmd())
	is.True(ui.footer.ShowAll())
	is.True(strings.Contains(ui.View(), "prev tab"))
}

func TestErrorState(t *testing.T) {
	is := is.New(t)
	ui := newUI(t)
	defer ui.common.Zone.Close()
	ui.Update(common.ErrorMsg(errors.New("oops")))
	is.Equal(ui.state, errorState)
	is.True(strings.Contains(ui.View(), "oops"))

	// Any key dismisses the error.
	ui.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	is.Equal(ui.state, loadedState)
}

func TestWindowSize(t *testing.T) {
	is := is.New(t)
	ui := newUI(t)
	defer ui.common.Zone.Close()
	ui.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	is.Equal(ui.common.Width, 100)
	is.Equal(ui.common.Height, 40)
	is.True(strings.Contains(ui.View(), "Tab 4"))
}
