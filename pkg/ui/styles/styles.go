package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles defines styles for the UI.
type Styles struct {
	App  lipgloss.Style
	Name lipgloss.Style

	Footer      lipgloss.Style
	HelpKey     lipgloss.Style
	HelpValue   lipgloss.Style
	HelpDivider lipgloss.Style

	Error      lipgloss.Style
	ErrorTitle lipgloss.Style
	ErrorBody  lipgloss.Style

	Spinner          lipgloss.Style
	SpinnerContainer lipgloss.Style

	NoContent lipgloss.Style
	Content   lipgloss.Style

	StatusBar      lipgloss.Style
	StatusBarKey   lipgloss.Style
	StatusBarValue lipgloss.Style
	StatusBarInfo  lipgloss.Style
	StatusBarExtra lipgloss.Style
	StatusBarHelp  lipgloss.Style

	Tabs         lipgloss.Style
	TabInactive  lipgloss.Style
	TabActive    lipgloss.Style
	TabSeparator lipgloss.Style
}

// DefaultStyles returns default styles for the UI.
func DefaultStyles(r *lipgloss.Renderer) *Styles {
	s := new(Styles)

	s.App = r.NewStyle().
		Margin(1, 2)

	s.Name = r.NewStyle().
		Height(1).
		MarginRight(2).
		Padding(0, 1).
		Background(lipgloss.Color("57")).
		Foreground(lipgloss.Color("229")).
		Bold(true)

	s.Footer = r.NewStyle().
		MarginTop(1).
		Padding(0, 1).
		Height(1)

	s.HelpKey = r.NewStyle().
		Foreground(lipgloss.Color("241"))

	s.HelpValue = r.NewStyle().
		Foreground(lipgloss.Color("239"))

	s.HelpDivider = r.NewStyle().
		Foreground(lipgloss.Color("237")).
		SetString(" • ")

	s.Error = r.NewStyle().
		MarginTop(1).
		MarginLeft(2)

	s.ErrorTitle = r.NewStyle().
		Foreground(lipgloss.Color("230")).
		Background(lipgloss.Color("204")).
		Bold(true).
		Padding(0, 1)

	s.ErrorBody = r.NewStyle().
		Foreground(lipgloss.Color("252")).
		MarginLeft(2)

	s.Spinner = r.NewStyle().
		MarginTop(1).
		MarginLeft(2).
		Foreground(lipgloss.Color("205"))

	s.SpinnerContainer = r.NewStyle()

	s.NoContent = r.NewStyle().
		MarginTop(1).
		MarginLeft(2).
		Foreground(lipgloss.Color("242"))

	s.Content = r.NewStyle().
		MarginTop(1)

	s.StatusBar = r.NewStyle().
		Height(1)

	s.StatusBarKey = r.NewStyle().
		Bold(true).
		Padding(0, 1).
		Background(lipgloss.Color("206")).
		Foreground(lipgloss.Color("228"))

	s.StatusBarValue = r.NewStyle().
		Padding(0, 1).
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("243"))

	s.StatusBarInfo = r.NewStyle().
		Padding(0, 1).
		Background(lipgloss.Color("212")).
		Foreground(lipgloss.Color("230"))

	s.StatusBarExtra = r.NewStyle().
		Padding(0, 1).
		Background(lipgloss.Color("62")).
		Foreground(lipgloss.Color("230"))

	s.StatusBarHelp = r.NewStyle().
		Padding(0, 1).
		Background(lipgloss.Color("237")).
		Foreground(lipgloss.Color("243"))

	s.Tabs = r.NewStyle().
		Height(1)

	s.TabInactive = r.NewStyle()

	s.TabActive = r.NewStyle().
		Underline(true).
		Foreground(lipgloss.Color("36"))

	s.TabSeparator = r.NewStyle().
		SetString("│").
		Padding(0, 1).
		Foreground(lipgloss.Color("238"))

	return s
}
