package tui

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/jask/appshell/internal/apperr"
	"github.com/jask/appshell/internal/lifecycle"
)

// demoLatency is the simulated request time on the demo screen.
var demoLatency = 600 * time.Millisecond

type demoOutcome uint32

const (
	demoSuccess demoOutcome = iota
	demoNetworkError
	demoEmpty
)

var demoKeys = struct {
	Success, Network, Empty, Log, Manual, Reset key.Binding
}{
	Success: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "request")),
	Network: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "network error")),
	Empty:   key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "empty")),
	Log:     key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "log levels")),
	Manual:  key.NewBinding(key.WithKeys("5"), key.WithHelp("5", "handle error")),
	Reset:   key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "reset")),
}

// demoScreen exercises every lifecycle phase against a simulated backend.
type demoScreen struct {
	ctx     context.Context
	log     logrus.FieldLogger
	outcome atomic.Uint32
	items   *lifecycle.Lifecycle[[]string]
}

func newDemoScreen(ctx context.Context, deps Deps) *demoScreen {
	s := &demoScreen{ctx: ctx, log: deps.Log.WithField("screen", "demo")}
	s.items = lifecycle.New[[]string]("demo.items", s.simulate).
		EmptyWhen(func(v []string) bool { return len(v) == 0 }).
		SetLogger(deps.Log)
	return s
}

func (s *demoScreen) simulate(ctx context.Context) ([]string, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(demoLatency):
	}
	switch demoOutcome(s.outcome.Load()) {
	case demoSuccess:
		return []string{"Alpha", "Bravo", "Charlie"}, nil
	case demoNetworkError:
		return nil, apperr.ErrNoConnection
	case demoEmpty:
		return nil, nil
	}
	return nil, nil
}

func (s *demoScreen) Init() tea.Cmd { return nil }

func (s *demoScreen) request(o demoOutcome) tea.Cmd {
	if s.items.Phase() == lifecycle.Loading {
		return nil
	}
	s.outcome.Store(uint32(o))
	return s.items.Start(s.ctx)
}

func (s *demoScreen) Update(msg tea.Msg) tea.Cmd {
	if s.items.Update(msg) {
		return nil
	}
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch {
	case key.Matches(km, demoKeys.Success):
		return s.request(demoSuccess)
	case key.Matches(km, demoKeys.Network):
		return s.request(demoNetworkError)
	case key.Matches(km, demoKeys.Empty):
		return s.request(demoEmpty)
	case key.Matches(km, demoKeys.Log):
		s.log.Debug("demo debug message")
		s.log.Info("demo info message")
		s.log.Warn("demo warning message")
		s.log.Error("demo error message")
		return setStatus("Logged one message at each level")
	case key.Matches(km, demoKeys.Manual):
		s.items.HandleError(apperr.Validation("This error was raised by hand."))
	case key.Matches(km, demoKeys.Reset):
		s.items.Reset()
	case key.Matches(km, keys.Retry):
		return s.items.Retry(s.ctx)
	}
	return nil
}

func (s *demoScreen) View(width, _ int) string {
	body := renderState(s.items, width, "The request succeeded but returned nothing.", func(items []string) string {
		return strings.Join(items, "\n")
	})
	return strings.Join([]string{
		titleStyle.Render("Feature Demo"),
		field("State", s.items.Phase().String()),
		"",
		body,
	}, "\n")
}

func (s *demoScreen) Help() []key.Binding {
	return retryHelp(s.items, demoKeys.Success, demoKeys.Network, demoKeys.Empty,
		demoKeys.Log, demoKeys.Manual, demoKeys.Reset)
}
