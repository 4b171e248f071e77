package ssh

import (
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/lorem/pkg/panel"
	"github.com/charmbracelet/lorem/pkg/ui"
	"github.com/charmbracelet/lorem/pkg/ui/common"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	bm "github.com/charmbracelet/wish/bubbletea"
	"github.com/muesli/termenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var tuiSessionCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "lorem",
	Subsystem: "ssh",
	Name:      "tui_session_total",
	Help:      "The total number of TUI sessions",
}, []string{"term"})

var tuiSessionDuration = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "lorem",
	Subsystem: "ssh",
	Name:      "tui_session_seconds_total",
	Help:      "The total time spent in TUI sessions",
}, []string{"term"})

// SessionHandler is the lorem bubbletea ssh session handler. Every PTY
// session mounts its own panel.
// This middleware must be run after the ContextMiddleware.
func SessionHandler(s ssh.Session) *tea.Program {
	pty, _, active := s.Pty()
	if !active {
		return nil
	}

	ctx := s.Context()
	session, err := panel.NewFromContext(ctx)
	if err != nil {
		log.FromContext(ctx).Error("failed to mount panel", "err", err)
		wish.Fatalln(s, err)
		return nil
	}

	renderer := bm.MakeRenderer(s)
	if testrun, ok := os.LookupEnv("LOREM_NO_COLOR"); ok && testrun == "1" {
		// Disable colors when running tests.
		renderer.SetColorProfile(termenv.Ascii)
	}

	c := common.NewCommon(ctx, renderer, pty.Window.Width, pty.Window.Height)
	m := ui.New(c, session)
	opts := bm.MakeOptions(s)
	opts = append(opts,
		tea.WithAltScreen(),
		tea.WithoutCatchPanics(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	p := tea.NewProgram(m, opts...)

	tuiSessionCounter.WithLabelValues(pty.Term).Inc()

	start := time.Now()
	go func() {
		<-ctx.Done()
		tuiSessionDuration.WithLabelValues(pty.Term).Add(time.Since(start).Seconds())
	}()

	return p
}
