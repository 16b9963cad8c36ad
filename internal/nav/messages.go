package nav

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/appshell/internal/route"
)

type NavigateMsg struct {
	Route route.Route
}

type ReplaceMsg struct {
	Route route.Route
}

type GoBackMsg struct{}

type PopToRootMsg struct{}

// LeaveMsg closes From if it is still the active route.
type LeaveMsg struct {
	From route.Route
}

func NavigateCmd(r route.Route) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Route: r} }
}

func ReplaceCmd(r route.Route) tea.Cmd {
	return func() tea.Msg { return ReplaceMsg{Route: r} }
}

func GoBackCmd() tea.Msg { return GoBackMsg{} }

func PopToRootCmd() tea.Msg { return PopToRootMsg{} }

func LeaveCmd(from route.Route) tea.Cmd {
	return func() tea.Msg { return LeaveMsg{From: from} }
}

// Update applies a navigation message. It reports whether msg was one.
// Messages are applied in the order the tea loop delivers them.
func (r *Router) Update(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case NavigateMsg:
		r.Navigate(msg.Route)
	case ReplaceMsg:
		r.Replace(msg.Route)
	case GoBackMsg:
		r.GoBack()
	case PopToRootMsg:
		r.PopToRoot()
	case LeaveMsg:
		r.Leave(msg.From)
	default:
		return false
	}
	return true
}
