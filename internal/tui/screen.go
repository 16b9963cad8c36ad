package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/jask/appshell/internal/apperr"
	"github.com/jask/appshell/internal/route"
)

// Screen is the view bound to one route on the stack.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View(width, height int) string
	Help() []key.Binding
}

// inputScreen is implemented by screens with a focused text input.
type inputScreen interface {
	Capturing() bool
}

// refresher is implemented by screens that reload when they return to the
// top of the stack.
type refresher interface {
	Refresh() tea.Cmd
}

// resolve builds the screen for r.
func resolve(ctx context.Context, r route.Route, deps Deps) Screen {
	switch r.Kind {
	case route.Home:
		return newHomeScreen(ctx, deps)
	case route.Temp:
		return newDemoScreen(ctx, deps)
	case route.DiaryList:
		return newDiaryListScreen(ctx, deps)
	case route.DiaryDetail:
		return newDiaryDetailScreen(ctx, deps, r.ID)
	case route.DiaryEdit:
		return newDiaryEditScreen(ctx, deps, r.ID)
	case route.TransactionList:
		return newLedgerScreen(ctx, deps)
	case route.TransactionDetail:
		return newTransactionDetailScreen(ctx, deps, r.ID)
	case route.TransactionEdit:
		return newTransactionEditScreen(ctx, deps, r.ID)
	case route.PomodoroTimer:
		return newTimerScreen(ctx, deps)
	case route.PomodoroHistory:
		return newHistoryScreen(ctx, deps)
	case route.PomodoroSessionDetail:
		return newSessionDetailScreen(ctx, deps, r.ID)
	}
	return missingScreen{route: r}
}

type missingScreen struct {
	route route.Route
}

func (missingScreen) Init() tea.Cmd { return nil }
func (missingScreen) Update(tea.Msg) tea.Cmd { return nil }
func (missingScreen) Help() []key.Binding { return nil }
func (s missingScreen) View(width, _ int) string {
	return renderError(apperr.Unknown(fmt.Sprintf("No screen for %s.", s.route)), width)
}

// statusMsg sets the status bar text.
type statusMsg string

func setStatus(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg(text) }
}

// doneMsg reports a save or delete issued on behalf of lifecycle owner.
type doneMsg struct {
	owner uuid.UUID
	id    uuid.UUID
	err   error
}

func persist(owner uuid.UUID, fn func() (uuid.UUID, error)) tea.Cmd {
	return func() tea.Msg {
		id, err := fn()
		return doneMsg{owner: owner, id: id, err: err}
	}
}
