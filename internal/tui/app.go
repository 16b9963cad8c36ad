// Package tui is the terminal front end: a bubbletea model that owns the
// navigation stack and resolves each route to a screen.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/sirupsen/logrus"

	"github.com/jask/appshell/internal/nav"
	"github.com/jask/appshell/internal/route"
)

// App is the root model. The home screen sits beneath the router stack and
// every stacked route has exactly one screen.
type App struct {
	ctx      context.Context
	deps     Deps
	log      logrus.FieldLogger
	router   *nav.Router
	root     Screen
	screens  []Screen
	pending  []tea.Cmd
	palette  *palette
	status   string
	width    int
	height   int
	quitting bool
}

func New(ctx context.Context, deps Deps) *App {
	deps = deps.withDefaults()
	a := &App{
		ctx:    ctx,
		deps:   deps,
		log:    deps.Log.WithField("component", "tui"),
		router: nav.New(),
		status: "Ready",
		width:  100,
		height: 32,
	}
	a.router.SetLogger(deps.Log.WithField("component", "router"))
	a.router.OnChange(a.sync)
	a.root = resolve(ctx, route.HomeRoute(), deps)

	if start, ok := startRoute(deps.UI.StartRoute); ok {
		a.router.Navigate(start)
	} else if deps.UI.StartRoute != "" {
		a.log.WithField("start_route", deps.UI.StartRoute).Warn("ignoring start route")
	}
	return a
}

// startRoute maps a configured kind name to a route that needs no id.
func startRoute(name string) (route.Route, bool) {
	kind, ok := route.ParseKind(name)
	if !ok {
		return route.Route{}, false
	}
	r := route.Route{Kind: kind}
	switch kind {
	case route.Home, route.DiaryDetail, route.TransactionDetail, route.PomodoroSessionDetail:
		return route.Route{}, false
	case route.Temp, route.DiaryList, route.DiaryEdit, route.TransactionList,
		route.TransactionEdit, route.PomodoroTimer, route.PomodoroHistory:
		return r, true
	}
	return route.Route{}, false
}

func (a *App) Router() *nav.Router { return a.router }

func (a *App) Init() tea.Cmd {
	return tea.Batch(append([]tea.Cmd{a.root.Init()}, a.flushList()...)...)
}

// sync keeps the screen stack in step with the router.
func (a *App) sync(c nav.Change) {
	switch c.Op {
	case nav.OpNavigate:
		s := resolve(a.ctx, c.Route, a.deps)
		a.screens = append(a.screens, s)
		a.pending = append(a.pending, s.Init())
	case nav.OpReplace:
		s := resolve(a.ctx, c.Route, a.deps)
		if n := len(a.screens); n > 0 && n == c.Depth {
			a.screens[n-1] = s
		} else {
			a.screens = append(a.screens, s)
		}
		a.pending = append(a.pending, s.Init())
	case nav.OpGoBack:
		if n := len(a.screens); n > 0 {
			a.screens = a.screens[:n-1]
		}
		a.refreshTop()
	case nav.OpPopToRoot:
		a.screens = nil
		a.refreshTop()
	}
}

func (a *App) refreshTop() {
	if r, ok := a.top().(refresher); ok {
		a.pending = append(a.pending, r.Refresh())
	}
}

func (a *App) top() Screen {
	if n := len(a.screens); n > 0 {
		return a.screens[n-1]
	}
	return a.root
}

func (a *App) flushList() []tea.Cmd {
	cmds := a.pending
	a.pending = nil
	return cmds
}

func (a *App) flush(extra ...tea.Cmd) tea.Cmd {
	return tea.Batch(append(a.flushList(), extra...)...)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		return a, nil
	case statusMsg:
		a.status = string(m)
		return a, nil
	case tea.KeyMsg:
		return a, a.handleKey(m)
	}
	if a.router.Update(msg) {
		return a, a.flush()
	}
	// Async results go to every live screen; each lifecycle ignores
	// messages addressed to another.
	cmds := []tea.Cmd{a.root.Update(msg)}
	for _, s := range a.screens {
		cmds = append(cmds, s.Update(msg))
	}
	return a, a.flush(cmds...)
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		a.quitting = true
		return tea.Quit
	}
	if a.palette != nil {
		cmd, done := a.palette.update(msg)
		if done {
			a.palette = nil
		}
		return cmd
	}
	top := a.top()
	if in, ok := top.(inputScreen); ok && in.Capturing() && !capturable(msg.String()) {
		return top.Update(msg)
	}
	switch {
	case key.Matches(msg, keys.Quit):
		a.quitting = true
		return tea.Quit
	case key.Matches(msg, keys.Back):
		a.router.GoBack()
		return a.flush()
	case key.Matches(msg, keys.Home):
		if a.router.CanGoBack() {
			a.router.PopToRoot()
		}
		return a.flush()
	case key.Matches(msg, keys.Jump):
		a.palette = newPalette()
		return nil
	}
	return a.flush(top.Update(msg))
}

func (a *App) View() string {
	if a.quitting {
		return "Goodbye\n"
	}
	header := a.renderHeader()
	status := statusBarStyle.Width(max(1, a.width)).Render(ansi.Truncate(a.status, max(1, a.width), "…"))
	footer := footerStyle.Width(max(1, a.width)).Render(ansi.Truncate(renderHelp(a.help()), max(1, a.width), "…"))
	bodyHeight := max(0, a.height-lipgloss.Height(header)-lipgloss.Height(status)-lipgloss.Height(footer))

	body := a.top().View(max(1, a.width-2), bodyHeight)
	if a.palette != nil {
		body = lipgloss.Place(a.width, bodyHeight, lipgloss.Center, lipgloss.Top, a.palette.view(min(60, a.width)))
	}
	view := strings.Join([]string{header, fitHeight(body, bodyHeight), status, footer}, "\n")
	return appStyle.Width(max(1, a.width)).MaxWidth(max(1, a.width)).Render(fitHeight(view, max(1, a.height)))
}

func (a *App) renderHeader() string {
	crumbs := append([]string{route.HomeRoute().Title()}, a.router.Breadcrumbs()...)
	parts := make([]string, len(crumbs))
	for i, c := range crumbs {
		if i == len(crumbs)-1 {
			parts[i] = crumbTopStyle.Render(c)
		} else {
			parts[i] = crumbStyle.Render(c)
		}
	}
	line := headerAppStyle.Render("AppShell") + "  " + strings.Join(parts, crumbStyle.Render(" › "))
	if a.router.CanGoBack() {
		line = crumbStyle.Render("‹ ") + line
	}
	return headerBarStyle.Width(max(1, a.width)).Render(ansi.Truncate(line, max(1, a.width), ""))
}

func (a *App) help() []key.Binding {
	bindings := a.top().Help()
	if a.palette != nil {
		return []key.Binding{keys.Open, keys.Back}
	}
	if a.router.CanGoBack() {
		bindings = append(bindings, keys.Back, keys.Home)
	}
	return append(bindings, keys.Jump, keys.Quit)
}

func fitHeight(s string, height int) string {
	if height <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
