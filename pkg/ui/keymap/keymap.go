package keymap

import "github.com/charmbracelet/bubbles/key"

// KeyMap is a map of key bindings for the UI.
type KeyMap struct {
	Quit        key.Binding
	Help        key.Binding
	Section     key.Binding
	SectionPrev key.Binding
	SelectTab   key.Binding
	Raw         key.Binding
	UpDown      key.Binding
	GotoTop     key.Binding
	GotoBottom  key.Binding
}

// DefaultKeyMap returns the default key map.
func DefaultKeyMap() *KeyMap {
	km := new(KeyMap)

	km.Quit = key.NewBinding(
		key.WithKeys(
			"q",
			"ctrl+c",
		),
		key.WithHelp(
			"q",
			"quit",
		),
	)

	km.Help = key.NewBinding(
		key.WithKeys(
			"?",
		),
		key.WithHelp(
			"?",
			"toggle help",
		),
	)

	km.Section = key.NewBinding(
		key.WithKeys(
			"tab",
		),
		key.WithHelp(
			"tab",
			"next tab",
		),
	)

	km.SectionPrev = key.NewBinding(
		key.WithKeys(
			"shift+tab",
		),
		key.WithHelp(
			"shift+tab",
			"prev tab",
		),
	)

	km.SelectTab = key.NewBinding(
		key.WithKeys(
			"1",
			"2",
			"3",
			"4",
		),
		key.WithHelp(
			"1-4",
			"select tab",
		),
	)

	km.Raw = key.NewBinding(
		key.WithKeys(
			"r",
		),
		key.WithHelp(
			"r",
			"toggle raw html",
		),
	)

	km.UpDown = key.NewBinding(
		key.WithKeys(
			"up",
			"down",
			"k",
			"j",
		),
		key.WithHelp(
			"↑↓",
			"navigate",
		),
	)

	km.GotoTop = key.NewBinding(
		key.WithKeys(
			"home",
			"g",
		),
		key.WithHelp(
			"g/home",
			"go to top",
		),
	)

	km.GotoBottom = key.NewBinding(
		key.WithKeys(
			"end",
			"G",
		),
		key.WithHelp(
			"G/end",
			"go to bottom",
		),
	)

	return km
}
