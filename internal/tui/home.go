package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/appshell/internal/api"
	"github.com/jask/appshell/internal/lifecycle"
	"github.com/jask/appshell/internal/nav"
	"github.com/jask/appshell/internal/route"
)

// homeScreen is the root view: the fetched number and a menu of
// destinations.
type homeScreen struct {
	ctx    context.Context
	number *lifecycle.Lifecycle[api.Number]
	menu   []route.Route
	cursor int
}

func newHomeScreen(ctx context.Context, deps Deps) *homeScreen {
	var op lifecycle.Operation[api.Number]
	if deps.Numbers != nil {
		op = deps.Numbers.FetchNumber
	}
	menu := make([]route.Route, 0, len(route.Destinations()))
	for _, r := range route.Destinations() {
		if r.Kind != route.Home {
			menu = append(menu, r)
		}
	}
	return &homeScreen{
		ctx:    ctx,
		number: lifecycle.New("home.number", op).SetLogger(deps.Log),
		menu:   menu,
	}
}

func (s *homeScreen) Init() tea.Cmd { return s.number.Start(s.ctx) }

func (s *homeScreen) Update(msg tea.Msg) tea.Cmd {
	if s.number.Update(msg) {
		return nil
	}
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch {
	case key.Matches(km, keys.Up):
		s.cursor = moveCursor(s.cursor, -1, len(s.menu))
	case key.Matches(km, keys.Down):
		s.cursor = moveCursor(s.cursor, 1, len(s.menu))
	case key.Matches(km, keys.Open):
		if len(s.menu) > 0 {
			return nav.NavigateCmd(s.menu[s.cursor])
		}
	case key.Matches(km, keys.Retry):
		return s.number.Retry(s.ctx)
	case key.Matches(km, keys.Reload):
		if s.number.Phase() != lifecycle.Loading {
			return s.number.Start(s.ctx)
		}
	}
	return nil
}

func (s *homeScreen) View(width, height int) string {
	number := renderState(s.number, width, "No number yet.", func(n api.Number) string {
		return "Your number is " + valueStyle.Render(fmt.Sprint(n.Value))
	})
	rows := make([]string, len(s.menu))
	for i, r := range s.menu {
		rows[i] = r.Title()
	}
	return strings.Join([]string{
		titleStyle.Render("Welcome"),
		number,
		"",
		mutedStyle.Render("Go to"),
		renderList(rows, s.cursor, width, max(1, height-8)),
	}, "\n")
}

func (s *homeScreen) Help() []key.Binding {
	return retryHelp(s.number, keys.Open, keys.Reload)
}
