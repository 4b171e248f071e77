package common

import (
	"github.com/charmbracelet/glamour"
	gansi "github.com/charmbracelet/glamour/ansi"
	"github.com/muesli/termenv"
)

// StyleConfig returns the Glamour style configuration for the given color
// profile.
func StyleConfig(profile termenv.Profile) gansi.StyleConfig {
	if profile == termenv.Ascii {
		return glamour.ASCIIStyleConfig
	}
	zero := uint(0)
	s := glamour.DarkStyleConfig
	s.Document.Margin = &zero
	return s
}
