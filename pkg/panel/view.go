package panel

import "errors"

var errNoFetcher = errors.New("no fetcher")

// ViewState is what the content area of the panel shows.
type ViewState int

// View states, in display priority order.
const (
	ViewEmpty ViewState = iota
	ViewLoading
	ViewError
	ViewContent
)

// String implements fmt.Stringer.
func (v ViewState) String() string {
	switch v {
	case ViewLoading:
		return "loading"
	case ViewError:
		return "error"
	case ViewContent:
		return "content"
	default:
		return "empty"
	}
}

// View is a snapshot of what the panel displays.
type View struct {
	Tab   TabID
	State ViewState

	// Message is the failure message when State is ViewError.
	Message string

	// Content is trusted HTML when State is ViewContent. It is displayed
	// as is.
	Content string
}

// View returns what the panel displays: a loading indicator while the
// active tab is loading, otherwise the failure message, otherwise the
// cached content of the active tab, otherwise nothing.
func (s *Session) View() View {
	v := View{Tab: s.active}
	switch {
	case s.IsLoading():
		v.State = ViewLoading
	case s.LastError() != "":
		v.State = ViewError
		v.Message = s.LastError()
	default:
		if c, ok := s.cache[s.active]; ok {
			v.State = ViewContent
			v.Content = c
		}
	}
	return v
}
