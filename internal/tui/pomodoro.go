package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/jask/appshell/internal/database/repository"
	"github.com/jask/appshell/internal/lifecycle"
	"github.com/jask/appshell/internal/nav"
	"github.com/jask/appshell/internal/pomodoro"
	"github.com/jask/appshell/internal/route"
)

var timerKeys = struct {
	Toggle, Reset, Session, History key.Binding
}{
	Toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "start/pause")),
	Reset:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "reset")),
	Session: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "session")),
	History: key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "history")),
}

type timerScreen struct {
	ctx   context.Context
	deps  Deps
	timer *pomodoro.Timer
	// history backs the completed count; failed saves surface through it.
	history *lifecycle.Lifecycle[[]repository.PomodoroSession]
}

func newTimerScreen(ctx context.Context, deps Deps) *timerScreen {
	return &timerScreen{
		ctx:   ctx,
		deps:  deps,
		timer: pomodoro.New(),
		history: lifecycle.New[[]repository.PomodoroSession]("pomodoro.count", func(ctx context.Context) ([]repository.PomodoroSession, error) {
			return deps.Sessions.List(ctx)
		}).SetLogger(deps.Log),
	}
}

func (s *timerScreen) Init() tea.Cmd { return s.history.Start(s.ctx) }
func (s *timerScreen) Refresh() tea.Cmd { return s.history.Start(s.ctx) }

func (s *timerScreen) Update(msg tea.Msg) tea.Cmd {
	if s.history.Update(msg) {
		return nil
	}
	switch m := msg.(type) {
	case pomodoro.TickMsg:
		return s.timer.Update(m)
	case pomodoro.FinishedMsg:
		if m.Timer != s.timer.ID() {
			return nil
		}
		return s.record(m)
	case doneMsg:
		if m.owner != s.history.ID() {
			return nil
		}
		if m.err != nil {
			s.history.HandleError(m.err)
			return nil
		}
		return tea.Batch(s.history.Start(s.ctx), setStatus("Session saved"))
	case tea.KeyMsg:
		switch {
		case key.Matches(m, timerKeys.Toggle):
			return s.timer.Toggle(s.deps.Now())
		case key.Matches(m, timerKeys.Reset):
			s.timer.Reset()
		case key.Matches(m, timerKeys.Session):
			types := pomodoro.SessionTypes
			next := types[(int(s.timer.Session())+1)%len(types)]
			s.timer.Select(next)
		case key.Matches(m, timerKeys.History):
			return nav.NavigateCmd(route.PomodoroHistoryRoute())
		case key.Matches(m, keys.Retry):
			return s.history.Retry(s.ctx)
		}
	}
	return nil
}

func (s *timerScreen) record(m pomodoro.FinishedMsg) tea.Cmd {
	end := m.StartedAt.Add(m.Duration)
	if now := s.deps.Now(); now.After(end) {
		end = now
	}
	session := repository.PomodoroSession{
		TaskName:        m.Session.String(),
		StartTime:       m.StartedAt,
		EndTime:         &end,
		DurationMinutes: int(m.Duration / time.Minute),
		IsCompleted:     true,
	}
	return persist(s.history.ID(), func() (uuid.UUID, error) {
		saved, err := s.deps.Sessions.Save(s.ctx, session)
		return saved.ID, err
	})
}

func (s *timerScreen) View(width, _ int) string {
	tabs := make([]string, len(pomodoro.SessionTypes))
	for i, t := range pomodoro.SessionTypes {
		if t == s.timer.Session() {
			tabs[i] = cursorStyle.Render(" " + t.String() + " ")
		} else {
			tabs[i] = mutedStyle.Render(" " + t.String() + " ")
		}
	}
	state := "paused"
	if s.timer.Active() {
		state = "running"
	}
	count := renderState(s.history, width, "", func(list []repository.PomodoroSession) string {
		done := 0
		for _, sess := range list {
			if sess.IsCompleted {
				done++
			}
		}
		return field("Completed", fmt.Sprint(done))
	})
	return strings.Join([]string{
		titleStyle.Render("Pomodoro"),
		strings.Join(tabs, " "),
		"",
		valueStyle.Render(s.timer.Clock()) + "  " + mutedStyle.Render(state),
		progressBar(s.timer.Progress(), min(width-4, 40)),
		"",
		count,
	}, "\n")
}

func (s *timerScreen) Help() []key.Binding {
	return retryHelp(s.history, timerKeys.Toggle, timerKeys.Reset, timerKeys.Session, timerKeys.History)
}

type historyScreen struct {
	ctx      context.Context
	deps     Deps
	sessions *lifecycle.Lifecycle[[]repository.PomodoroSession]
	cursor   int
}

func newHistoryScreen(ctx context.Context, deps Deps) *historyScreen {
	return &historyScreen{
		ctx:  ctx,
		deps: deps,
		sessions: lifecycle.New[[]repository.PomodoroSession]("pomodoro.history", func(ctx context.Context) ([]repository.PomodoroSession, error) {
			return deps.Sessions.List(ctx)
		}).EmptyWhen(func(v []repository.PomodoroSession) bool { return len(v) == 0 }).SetLogger(deps.Log),
	}
}

func (s *historyScreen) Init() tea.Cmd { return s.sessions.Start(s.ctx) }
func (s *historyScreen) Refresh() tea.Cmd { return s.sessions.Start(s.ctx) }

func (s *historyScreen) Update(msg tea.Msg) tea.Cmd {
	if s.sessions.Update(msg) {
		return nil
	}
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	list, _ := s.sessions.State().Data()
	switch {
	case key.Matches(km, keys.Up):
		s.cursor = moveCursor(s.cursor, -1, len(list))
	case key.Matches(km, keys.Down):
		s.cursor = moveCursor(s.cursor, 1, len(list))
	case key.Matches(km, keys.Open):
		if s.cursor < len(list) {
			return nav.NavigateCmd(route.PomodoroSessionRoute(list[s.cursor].ID))
		}
	case key.Matches(km, keys.Retry):
		return s.sessions.Retry(s.ctx)
	}
	return nil
}

func (s *historyScreen) View(width, height int) string {
	body := renderState(s.sessions, width, "No sessions recorded yet.", func(list []repository.PomodoroSession) string {
		s.cursor = moveCursor(s.cursor, 0, len(list))
		rows := make([]string, len(list))
		for i, sess := range list {
			rows[i] = fmt.Sprintf("%s  %2dm  %s",
				mutedStyle.Render(sess.StartTime.Local().Format(s.deps.UI.DateFormat+" 15:04")),
				sess.DurationMinutes, sess.TaskName)
		}
		return renderList(rows, s.cursor, width, max(1, height-2))
	})
	return titleStyle.Render("History") + "\n" + body
}

func (s *historyScreen) Help() []key.Binding {
	return retryHelp(s.sessions, keys.Open)
}

type sessionDetailScreen struct {
	ctx     context.Context
	deps    Deps
	id      uuid.UUID
	session *lifecycle.Lifecycle[repository.PomodoroSession]
}

func newSessionDetailScreen(ctx context.Context, deps Deps, id uuid.UUID) *sessionDetailScreen {
	return &sessionDetailScreen{
		ctx:  ctx,
		deps: deps,
		id:   id,
		session: lifecycle.New[repository.PomodoroSession]("pomodoro.session", func(ctx context.Context) (repository.PomodoroSession, error) {
			return deps.Sessions.Get(ctx, id)
		}).SetLogger(deps.Log),
	}
}

func (s *sessionDetailScreen) Init() tea.Cmd { return s.session.Start(s.ctx) }

func (s *sessionDetailScreen) Update(msg tea.Msg) tea.Cmd {
	if s.session.Update(msg) {
		return nil
	}
	switch m := msg.(type) {
	case doneMsg:
		if m.owner != s.session.ID() {
			return nil
		}
		if m.err != nil {
			s.session.HandleError(m.err)
			return nil
		}
		return tea.Batch(nav.LeaveCmd(route.PomodoroSessionRoute(s.id)), setStatus("Session deleted"))
	case tea.KeyMsg:
		switch {
		case key.Matches(m, keys.Delete):
			if s.session.Phase() != lifecycle.Loaded {
				return nil
			}
			return persist(s.session.ID(), func() (uuid.UUID, error) {
				return s.id, s.deps.Sessions.Delete(s.ctx, s.id)
			})
		case key.Matches(m, keys.Retry):
			return s.session.Retry(s.ctx)
		}
	}
	return nil
}

func (s *sessionDetailScreen) View(width, _ int) string {
	return renderState(s.session, width, "", func(sess repository.PomodoroSession) string {
		lines := []string{
			titleStyle.Render(sess.TaskName),
			field("Started", sess.StartTime.Local().Format(s.deps.UI.DateFormat+" 15:04")),
		}
		if sess.EndTime != nil {
			lines = append(lines, field("Ended", sess.EndTime.Local().Format(s.deps.UI.DateFormat+" 15:04")))
		}
		status := "interrupted"
		if sess.IsCompleted {
			status = "completed"
		}
		lines = append(lines,
			field("Length", fmt.Sprintf("%d min", sess.DurationMinutes)),
			field("Status", status))
		return strings.Join(lines, "\n")
	})
}

func (s *sessionDetailScreen) Help() []key.Binding {
	return retryHelp(s.session, keys.Delete)
}
