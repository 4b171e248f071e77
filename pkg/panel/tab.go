package panel

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lorem/pkg/config"
)

// ErrInvalidTab is returned when a tab id is outside of [Tab1, Tab4].
var ErrInvalidTab = errors.New("invalid tab")

// TabID identifies one of the four tabs.
type TabID int

// Tabs shown by the panel, in order.
const (
	Tab1 TabID = iota + 1
	Tab2
	Tab3
	Tab4
)

// Tabs returns all tabs in order.
func Tabs() []TabID {
	return []TabID{Tab1, Tab2, Tab3, Tab4}
}

// Valid returns whether the id names one of the four tabs.
func (t TabID) Valid() bool {
	return t >= Tab1 && t <= Tab4
}

// String returns the tab's label.
func (t TabID) String() string {
	return fmt.Sprintf("Tab %d", int(t))
}

// Index returns the zero based position of the tab.
func (t TabID) Index() int {
	return int(t) - 1
}

// TabAt returns the tab at the given zero based position.
func TabAt(i int) (TabID, error) {
	t := TabID(i + 1)
	if !t.Valid() {
		return 0, fmt.Errorf("%w: index %d", ErrInvalidTab, i)
	}
	return t, nil
}

// ParseTabID parses "1".."4", optionally prefixed with "tab".
func ParseTabID(s string) (TabID, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.TrimSpace(strings.TrimPrefix(s, "tab"))
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTab, s)
	}
	t := TabID(n)
	if !t.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidTab, n)
	}
	return t, nil
}

// Sources maps every tab to the URL its content is fetched from.
type Sources [4]string

// NewSources returns a source table from a list of URLs in tab order.
func NewSources(urls []string) (Sources, error) {
	var s Sources
	if len(urls) != len(s) {
		return s, fmt.Errorf("want %d sources, got %d", len(s), len(urls))
	}
	copy(s[:], urls)
	return s, nil
}

// URL returns the source URL of the tab.
func (s Sources) URL(id TabID) string {
	if !id.Valid() {
		return ""
	}
	return s[id.Index()]
}

// SourcesFromConfig builds the source table from the content configuration.
func SourcesFromConfig(cfg *config.Config) (Sources, error) {
	if cfg == nil {
		return Sources{}, config.ErrNilConfig
	}
	urls, err := cfg.Content.URLs()
	if err != nil {
		return Sources{}, fmt.Errorf("content sources: %w", err)
	}
	return NewSources(urls)
}
