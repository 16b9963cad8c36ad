package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/jask/appshell/internal/database/repository"
	"github.com/jask/appshell/internal/lifecycle"
	"github.com/jask/appshell/internal/nav"
	"github.com/jask/appshell/internal/route"
)

type diaryListScreen struct {
	ctx     context.Context
	deps    Deps
	entries *lifecycle.Lifecycle[[]repository.DiaryEntry]
	cursor  int
}

func newDiaryListScreen(ctx context.Context, deps Deps) *diaryListScreen {
	return &diaryListScreen{
		ctx:  ctx,
		deps: deps,
		entries: lifecycle.New[[]repository.DiaryEntry]("diary.list", func(ctx context.Context) ([]repository.DiaryEntry, error) {
			return deps.Diary.List(ctx)
		}).EmptyWhen(func(v []repository.DiaryEntry) bool { return len(v) == 0 }).SetLogger(deps.Log),
	}
}

func (s *diaryListScreen) Init() tea.Cmd { return s.entries.Start(s.ctx) }
func (s *diaryListScreen) Refresh() tea.Cmd { return s.entries.Start(s.ctx) }

func (s *diaryListScreen) Update(msg tea.Msg) tea.Cmd {
	if s.entries.Update(msg) {
		return nil
	}
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	list, _ := s.entries.State().Data()
	switch {
	case key.Matches(km, keys.Up):
		s.cursor = moveCursor(s.cursor, -1, len(list))
	case key.Matches(km, keys.Down):
		s.cursor = moveCursor(s.cursor, 1, len(list))
	case key.Matches(km, keys.Open):
		if s.cursor < len(list) {
			return nav.NavigateCmd(route.DiaryDetailRoute(list[s.cursor].ID))
		}
	case key.Matches(km, keys.New):
		return nav.NavigateCmd(route.NewDiary())
	case key.Matches(km, keys.Retry):
		return s.entries.Retry(s.ctx)
	}
	return nil
}

func (s *diaryListScreen) View(width, height int) string {
	body := renderState(s.entries, width, "No diary entries yet. Press n to write one.", func(list []repository.DiaryEntry) string {
		s.cursor = moveCursor(s.cursor, 0, len(list))
		rows := make([]string, len(list))
		for i, e := range list {
			rows[i] = fmt.Sprintf("%s  %s", mutedStyle.Render(e.CreatedAt.Local().Format(s.deps.UI.DateFormat)), e.Title)
		}
		return renderList(rows, s.cursor, width, max(1, height-2))
	})
	return titleStyle.Render("Diary") + "\n" + body
}

func (s *diaryListScreen) Help() []key.Binding {
	return retryHelp(s.entries, keys.Open, keys.New)
}

type diaryDetailScreen struct {
	ctx   context.Context
	deps  Deps
	id    uuid.UUID
	entry *lifecycle.Lifecycle[repository.DiaryEntry]
}

func newDiaryDetailScreen(ctx context.Context, deps Deps, id uuid.UUID) *diaryDetailScreen {
	return &diaryDetailScreen{
		ctx:  ctx,
		deps: deps,
		id:   id,
		entry: lifecycle.New[repository.DiaryEntry]("diary.detail", func(ctx context.Context) (repository.DiaryEntry, error) {
			return deps.Diary.Get(ctx, id)
		}).SetLogger(deps.Log),
	}
}

func (s *diaryDetailScreen) Init() tea.Cmd { return s.entry.Start(s.ctx) }
func (s *diaryDetailScreen) Refresh() tea.Cmd { return s.entry.Start(s.ctx) }

func (s *diaryDetailScreen) Update(msg tea.Msg) tea.Cmd {
	if s.entry.Update(msg) {
		return nil
	}
	switch m := msg.(type) {
	case doneMsg:
		if m.owner != s.entry.ID() {
			return nil
		}
		if m.err != nil {
			s.entry.HandleError(m.err)
			return nil
		}
		return tea.Batch(nav.LeaveCmd(route.DiaryDetailRoute(s.id)), setStatus("Diary entry deleted"))
	case tea.KeyMsg:
		switch {
		case key.Matches(m, keys.Edit):
			return nav.NavigateCmd(route.EditDiary(s.id))
		case key.Matches(m, keys.Delete):
			if s.entry.Phase() != lifecycle.Loaded {
				return nil
			}
			return persist(s.entry.ID(), func() (uuid.UUID, error) {
				return s.id, s.deps.Diary.Delete(s.ctx, s.id)
			})
		case key.Matches(m, keys.Retry):
			return s.entry.Retry(s.ctx)
		}
	}
	return nil
}

func (s *diaryDetailScreen) View(width, _ int) string {
	return renderState(s.entry, width, "", func(e repository.DiaryEntry) string {
		lines := []string{
			titleStyle.Render(e.Title),
			field("Written", e.CreatedAt.Local().Format(s.deps.UI.DateFormat)),
		}
		if e.Mood != nil {
			lines = append(lines, field("Mood", *e.Mood))
		}
		if len(e.Tags) > 0 {
			lines = append(lines, field("Tags", strings.Join(e.Tags, ", ")))
		}
		return strings.Join(append(lines, "", e.Content), "\n")
	})
}

func (s *diaryDetailScreen) Help() []key.Binding {
	return retryHelp(s.entry, keys.Edit, keys.Delete)
}

const (
	diaryTitle = iota
	diaryContent
	diaryMood
	diaryTags
)

// diaryEditScreen creates an entry when id is nil and edits it otherwise.
type diaryEditScreen struct {
	ctx      context.Context
	deps     Deps
	id       uuid.UUID
	form     *form
	original repository.DiaryEntry
	entry    *lifecycle.Lifecycle[repository.DiaryEntry]
}

func newDiaryEditScreen(ctx context.Context, deps Deps, id uuid.UUID) *diaryEditScreen {
	return &diaryEditScreen{
		ctx:  ctx,
		deps: deps,
		id:   id,
		form: newForm("Title", "Content", "Mood", "Tags"),
		entry: lifecycle.New[repository.DiaryEntry]("diary.edit", func(ctx context.Context) (repository.DiaryEntry, error) {
			return deps.Diary.Get(ctx, id)
		}).SetLogger(deps.Log),
	}
}

func (s *diaryEditScreen) Init() tea.Cmd {
	if s.id == uuid.Nil {
		return nil
	}
	return s.entry.Start(s.ctx)
}

func (s *diaryEditScreen) Capturing() bool { return s.editable() }

func (s *diaryEditScreen) editable() bool {
	switch s.entry.Phase() {
	case lifecycle.Loading:
		return false
	case lifecycle.Failed:
		return s.id == uuid.Nil || s.original.ID != uuid.Nil
	case lifecycle.Idle, lifecycle.Empty, lifecycle.Loaded:
		return true
	}
	return true
}

func (s *diaryEditScreen) Update(msg tea.Msg) tea.Cmd {
	if s.entry.Update(msg) {
		if e, ok := s.entry.State().Data(); ok {
			s.original = e
			s.form.set(diaryTitle, e.Title)
			s.form.set(diaryContent, e.Content)
			if e.Mood != nil {
				s.form.set(diaryMood, *e.Mood)
			}
			s.form.set(diaryTags, strings.Join(e.Tags, ", "))
		}
		return nil
	}
	switch m := msg.(type) {
	case doneMsg:
		if m.owner != s.entry.ID() {
			return nil
		}
		if m.err != nil {
			s.entry.HandleError(m.err)
			return nil
		}
		return tea.Batch(nav.LeaveCmd(s.route()), setStatus("Diary entry saved"))
	case tea.KeyMsg:
		if !s.editable() {
			if key.Matches(m, keys.Retry) {
				return s.entry.Retry(s.ctx)
			}
			return nil
		}
		if key.Matches(m, keys.Save) {
			return s.save()
		}
		return s.form.update(m)
	}
	return nil
}

func (s *diaryEditScreen) save() tea.Cmd {
	e := s.original
	e.Title = s.form.value(diaryTitle)
	e.Content = s.form.value(diaryContent)
	e.Mood = nil
	if mood := s.form.value(diaryMood); mood != "" {
		e.Mood = &mood
	}
	e.Tags = splitTags(s.form.value(diaryTags))
	return persist(s.entry.ID(), func() (uuid.UUID, error) {
		saved, err := s.deps.Diary.Save(s.ctx, e)
		return saved.ID, err
	})
}

func splitTags(raw string) []string {
	var out []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// route is the screen's own stack entry; a nil id is the create form.
func (s *diaryEditScreen) route() route.Route {
	if s.id == uuid.Nil {
		return route.NewDiary()
	}
	return route.EditDiary(s.id)
}

func (s *diaryEditScreen) View(width, _ int) string {
	title := s.route()
	if !s.editable() {
		return titleStyle.Render(title.Title()) + "\n" + renderState(s.entry, width, "", func(repository.DiaryEntry) string { return "" })
	}
	out := titleStyle.Render(title.Title()) + "\n" + s.form.view(width)
	if e, ok := s.entry.State().Err(); ok {
		out += "\n\n" + renderError(e, width)
	}
	return out
}

func (s *diaryEditScreen) Help() []key.Binding {
	if !s.editable() {
		return retryHelp(s.entry)
	}
	return []key.Binding{keys.Save, keys.NextField, keys.Back}
}
