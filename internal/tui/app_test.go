package tui

import (
	"context"
	"database/sql"
	"math"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/appshell/internal/api"
	"github.com/jask/appshell/internal/apperr"
	"github.com/jask/appshell/internal/config"
	"github.com/jask/appshell/internal/database"
	"github.com/jask/appshell/internal/database/repository"
	"github.com/jask/appshell/internal/nav"
	"github.com/jask/appshell/internal/pomodoro"
	"github.com/jask/appshell/internal/route"
)

type fakeNumbers struct {
	value int
	err   error
	calls int
}

func (f *fakeNumbers) FetchNumber(context.Context) (api.Number, error) {
	f.calls++
	return api.Number{Value: f.value}, f.err
}

type testEnv struct {
	db       *sql.DB
	app      *App
	numbers  *fakeNumbers
	diary    *repository.DiaryRepo
	ledger   *repository.TransactionRepo
	sessions *repository.PomodoroRepo
}

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tui.db")
	if err := database.RunMigrations(path); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	db, err := database.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newEnv(t *testing.T, ui config.UIConfig) *testEnv {
	t.Helper()
	db := openDB(t)
	env := &testEnv{
		db:       db,
		numbers:  &fakeNumbers{value: 42},
		diary:    repository.NewDiaryRepo(db),
		ledger:   repository.NewTransactionRepo(db),
		sessions: repository.NewPomodoroRepo(db),
	}
	env.app = New(context.Background(), Deps{
		Numbers:  env.numbers,
		Diary:    env.diary,
		Ledger:   env.ledger,
		Sessions: env.sessions,
		UI:       ui,
		Now:      func() time.Time { return time.Date(2026, 3, 14, 9, 30, 0, 0, time.Local) },
	})
	return env
}

// drive runs cmd and feeds every resulting message back through the app
// until nothing is left to do.
func drive(t *testing.T, a *App, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 200 {
			t.Fatalf("message loop did not settle")
		}
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		msg := next()
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		_, c := a.Update(msg)
		queue = append(queue, c)
	}
}

func press(t *testing.T, a *App, msgs ...tea.KeyMsg) {
	t.Helper()
	for _, m := range msgs {
		_, cmd := a.Update(m)
		drive(t, a, cmd)
	}
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	down  = tea.KeyMsg{Type: tea.KeyDown}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	save  = tea.KeyMsg{Type: tea.KeyCtrlS}
)

func current(t *testing.T, a *App) route.Route {
	t.Helper()
	r, ok := a.router.Current()
	if !ok {
		t.Fatalf("expected a route on the stack")
	}
	return r
}

func TestResolveCoversEveryKind(t *testing.T) {
	deps := Deps{}.withDefaults()
	for k := route.Home; k <= route.PomodoroSessionDetail; k++ {
		if _, missing := resolve(context.Background(), route.Route{Kind: k}, deps).(missingScreen); missing {
			t.Fatalf("kind %s has no screen", k)
		}
	}
	if _, missing := resolve(context.Background(), route.Route{Kind: 200}, deps).(missingScreen); !missing {
		t.Fatalf("unknown kind should fall back to the missing screen")
	}
}

func TestHomeShowsFetchedNumber(t *testing.T) {
	env := newEnv(t, config.UIConfig{})
	drive(t, env.app, env.app.Init())
	if !strings.Contains(env.app.View(), "Your number is 42") {
		t.Fatalf("number not shown:\n%s", env.app.View())
	}
	if env.app.router.CanGoBack() || strings.Contains(env.app.View(), "‹") {
		t.Fatalf("root should not offer back")
	}
}

func TestRetryOfferedOnlyForRecoverableErrors(t *testing.T) {
	env := newEnv(t, config.UIConfig{})
	env.numbers.err = apperr.ErrNoConnection
	drive(t, env.app, env.app.Init())
	view := env.app.View()
	if !strings.Contains(view, "No network connection") || !strings.Contains(view, "retry") {
		t.Fatalf("recoverable error should offer retry:\n%s", view)
	}

	env.numbers.err = nil
	env.numbers.value = 7
	press(t, env.app, runes("r"))
	if !strings.Contains(env.app.View(), "Your number is 7") {
		t.Fatalf("retry did not reload:\n%s", env.app.View())
	}

	env.numbers.err = apperr.ErrDecoding
	press(t, env.app, runes("f"))
	view = env.app.View()
	if !strings.Contains(view, "could not be read") {
		t.Fatalf("decoding error not shown:\n%s", view)
	}
	if strings.Contains(view, "retry") {
		t.Fatalf("unrecoverable error must not offer retry:\n%s", view)
	}
	calls := env.numbers.calls
	press(t, env.app, runes("r"))
	if env.numbers.calls != calls {
		t.Fatalf("retry ran for an unrecoverable error")
	}
}

func TestMenuNavigationAndBack(t *testing.T) {
	env := newEnv(t, config.UIConfig{})
	if err := database.SeedDefaults(context.Background(), env.db); err != nil {
		t.Fatalf("seed: %v", err)
	}
	drive(t, env.app, env.app.Init())

	press(t, env.app, enter)
	if got := current(t, env.app); got != route.DiaryListRoute() {
		t.Fatalf("current %v", got)
	}
	view := env.app.View()
	if !strings.Contains(view, "Welcome") || !strings.Contains(view, "Home › Diary") || !strings.Contains(view, "‹") {
		t.Fatalf("diary list view:\n%s", view)
	}

	press(t, env.app, enter)
	if got := current(t, env.app); got != route.DiaryDetailRoute(database.WelcomeEntryID) {
		t.Fatalf("current %v", got)
	}
	if len(env.app.screens) != env.app.router.Depth() {
		t.Fatalf("screens %d depth %d", len(env.app.screens), env.app.router.Depth())
	}

	press(t, env.app, esc)
	if got := current(t, env.app); got != route.DiaryListRoute() {
		t.Fatalf("back should land on the list, got %v", got)
	}
	press(t, env.app, esc, esc)
	if env.app.router.Depth() != 0 || len(env.app.screens) != 0 {
		t.Fatalf("back at root should be a no-op")
	}
}

func TestCreateDiaryEntryShowsValidationThenSaves(t *testing.T) {
	env := newEnv(t, config.UIConfig{})
	drive(t, env.app, env.app.Init())
	drive(t, env.app, nav.NavigateCmd(route.DiaryListRoute()))
	drive(t, env.app, nav.NavigateCmd(route.NewDiary()))

	press(t, env.app, save)
	view := env.app.View()
	if !strings.Contains(view, "A diary entry needs a title.") {
		t.Fatalf("validation message missing:\n%s", view)
	}
	if strings.Contains(view, "retry") {
		t.Fatalf("validation errors are not retryable:\n%s", view)
	}
	if current(t, env.app) != route.NewDiary() {
		t.Fatalf("failed save should stay on the form")
	}

	press(t, env.app, runes("quiet morning"), tab, runes("wrote some go"), tab, tab, runes("go, notes"), save)
	if got := current(t, env.app); got != route.DiaryListRoute() {
		t.Fatalf("save should return to the list, got %v", got)
	}
	if !strings.Contains(env.app.View(), "quiet morning") || !strings.Contains(env.app.View(), "Diary entry saved") {
		t.Fatalf("list not refreshed:\n%s", env.app.View())
	}
	list, err := env.diary.List(context.Background())
	if err != nil || len(list) != 1 {
		t.Fatalf("list %v %v", list, err)
	}
	if list[0].Content != "wrote some go" || strings.Join(list[0].Tags, "|") != "go|notes" || list[0].Mood != nil {
		t.Fatalf("saved %+v", list[0])
	}
}

func TestCreateTransactionAndBalance(t *testing.T) {
	env := newEnv(t, config.UIConfig{Currency: "$"})
	drive(t, env.app, nav.NavigateCmd(route.TransactionListRoute()))
	if !strings.Contains(env.app.View(), "No transactions yet") {
		t.Fatalf("empty ledger:\n%s", env.app.View())
	}

	press(t, env.app, runes("n"))
	press(t, env.app, runes("abc"), save)
	if !strings.Contains(env.app.View(), "Amount must be a number") {
		t.Fatalf("amount validation missing:\n%s", env.app.View())
	}
	for range 3 {
		press(t, env.app, tea.KeyMsg{Type: tea.KeyBackspace})
	}
	press(t, env.app, runes("12.5"), tab, runes("Salary"), tab, tab, tab, tea.KeyMsg{Type: tea.KeyBackspace}, tea.KeyMsg{Type: tea.KeyBackspace}, runes("yes"), save)

	if got := current(t, env.app); got != route.TransactionListRoute() {
		t.Fatalf("save should return to the ledger, got %v", got)
	}
	view := env.app.View()
	if !strings.Contains(view, "$12.50") || !strings.Contains(view, "Salary") {
		t.Fatalf("ledger view:\n%s", view)
	}
	balance, err := env.ledger.Balance(context.Background())
	if err != nil || balance != 1250 {
		t.Fatalf("balance %d %v", balance, err)
	}
}

func TestParseCents(t *testing.T) {
	good := map[string]int64{"12": 1200, "12.5": 1250, "12.05": 1205, ".99": 99, "0": 0,
		"92233720368547758.07": math.MaxInt64,
	}
	for in, want := range good {
		got, err := parseCents(in)
		if err != nil || got != want {
			t.Fatalf("parseCents(%q) = %d, %v", in, got, err)
		}
	}
	for _, in := range []string{
		"", "abc", "-1", "+1", "1.234", "1.-5", "12.+5", "1. 5",
		"99999999999999999", "92233720368547758.08", "9223372036854775807",
	} {
		if _, err := parseCents(in); err == nil {
			t.Fatalf("parseCents(%q) should fail", in)
		}
	}
}

func TestPaletteJumps(t *testing.T) {
	env := newEnv(t, config.UIConfig{})
	press(t, env.app, runes("/"))
	if env.app.palette == nil {
		t.Fatalf("palette should open")
	}
	press(t, env.app, runes("ledgr"), enter)
	if env.app.palette != nil {
		t.Fatalf("palette should close after a jump")
	}
	if got := current(t, env.app); got != route.TransactionListRoute() {
		t.Fatalf("jumped to %v", got)
	}

	press(t, env.app, runes("/"), esc)
	if env.app.palette != nil || current(t, env.app) != route.TransactionListRoute() {
		t.Fatalf("esc should only close the palette")
	}
}

func TestStartRoute(t *testing.T) {
	env := newEnv(t, config.UIConfig{StartRoute: "pomodoro-timer"})
	if got := current(t, env.app); got != route.PomodoroTimerRoute() {
		t.Fatalf("start route %v", got)
	}
	for _, name := range []string{"", "home", "diary-detail", "nonsense"} {
		env := newEnv(t, config.UIConfig{StartRoute: name})
		if env.app.router.Depth() != 0 {
			t.Fatalf("start route %q should stay at root", name)
		}
	}
}

func TestHomeKeyPopsToRoot(t *testing.T) {
	env := newEnv(t, config.UIConfig{})
	drive(t, env.app, nav.NavigateCmd(route.PomodoroTimerRoute()))
	drive(t, env.app, nav.NavigateCmd(route.PomodoroHistoryRoute()))
	press(t, env.app, runes("g"))
	if env.app.router.Depth() != 0 || len(env.app.screens) != 0 {
		t.Fatalf("g should pop to root")
	}
}

func TestDemoScreenPhases(t *testing.T) {
	prev := demoLatency
	demoLatency = 0
	t.Cleanup(func() { demoLatency = prev })

	env := newEnv(t, config.UIConfig{})
	drive(t, env.app, nav.NavigateCmd(route.TempRoute()))
	demo := env.app.top().(*demoScreen)

	steps := []struct {
		key  string
		want string
	}{
		{"2", "No network connection"},
		{"r", "No network connection"},
		{"1", "Charlie"},
		{"3", "returned nothing"},
		{"5", "This error was raised by hand."},
		{"0", "Nothing loaded yet."},
	}
	for _, s := range steps {
		press(t, env.app, runes(s.key))
		if !strings.Contains(env.app.View(), s.want) {
			t.Fatalf("after %q: want %q in\n%s", s.key, s.want, env.app.View())
		}
	}
	if demo.items.Attempt() != 4 {
		t.Fatalf("attempts %d", demo.items.Attempt())
	}

	press(t, env.app, runes("4"))
	if !strings.Contains(env.app.View(), "Logged one message at each level") {
		t.Fatalf("log action status missing")
	}
}

func TestTimerRecordsFinishedSession(t *testing.T) {
	env := newEnv(t, config.UIConfig{})
	drive(t, env.app, nav.NavigateCmd(route.PomodoroTimerRoute()))
	timer := env.app.top().(*timerScreen)

	started := time.Date(2026, 3, 14, 9, 0, 0, 0, time.Local)
	drive(t, env.app, func() tea.Msg {
		return pomodoro.FinishedMsg{Timer: timer.timer.ID() + 1000, Session: pomodoro.Focus, StartedAt: started, Duration: 25 * time.Minute}
	})
	if list, _ := env.sessions.List(context.Background()); len(list) != 0 {
		t.Fatalf("another timer's finish was recorded")
	}

	drive(t, env.app, func() tea.Msg {
		return pomodoro.FinishedMsg{Timer: timer.timer.ID(), Session: pomodoro.Focus, StartedAt: started, Duration: 25 * time.Minute}
	})
	list, err := env.sessions.List(context.Background())
	if err != nil || len(list) != 1 {
		t.Fatalf("sessions %v %v", list, err)
	}
	if list[0].TaskName != "Focus" || list[0].DurationMinutes != 25 || !list[0].IsCompleted {
		t.Fatalf("recorded %+v", list[0])
	}
	if !strings.Contains(env.app.View(), "Completed  1") && !strings.Contains(env.app.View(), "Session saved") {
		t.Fatalf("timer view:\n%s", env.app.View())
	}

	press(t, env.app, runes("h"))
	press(t, env.app, enter)
	if got := current(t, env.app); got != route.PomodoroSessionRoute(list[0].ID) {
		t.Fatalf("current %v", got)
	}
	press(t, env.app, runes("d"))
	if got := current(t, env.app); got != route.PomodoroHistoryRoute() {
		t.Fatalf("delete should go back, got %v", got)
	}
	if !strings.Contains(env.app.View(), "No sessions recorded yet.") {
		t.Fatalf("history not refreshed:\n%s", env.app.View())
	}
}

func TestFormCapturesGlobalKeys(t *testing.T) {
	env := newEnv(t, config.UIConfig{})
	drive(t, env.app, nav.NavigateCmd(route.NewDiary()))
	_, cmd := env.app.Update(runes("q"))
	if cmd != nil {
		if _, quit := cmd().(tea.QuitMsg); quit {
			t.Fatalf("q in a form should be typed, not quit")
		}
	}
	press(t, env.app, runes("g"))
	if env.app.router.Depth() != 1 {
		t.Fatalf("g in a form should be typed")
	}
	press(t, env.app, esc)
	if env.app.router.Depth() != 0 {
		t.Fatalf("esc should leave the form")
	}
}

func TestDeleteResultDoesNotCloseNewerScreen(t *testing.T) {
	env := newEnv(t, config.UIConfig{})
	if err := database.SeedDefaults(context.Background(), env.db); err != nil {
		t.Fatalf("seed: %v", err)
	}
	detail := route.DiaryDetailRoute(database.WelcomeEntryID)
	drive(t, env.app, nav.NavigateCmd(detail))

	_, pending := env.app.Update(runes("d"))
	press(t, env.app, runes("e"))
	edit := route.EditDiary(database.WelcomeEntryID)
	if got := current(t, env.app); got != edit {
		t.Fatalf("current %v, want the edit screen", got)
	}

	drive(t, env.app, pending)
	if got := current(t, env.app); got != edit {
		t.Fatalf("delete result closed %v", edit)
	}
	press(t, env.app, esc)
	if got := current(t, env.app); got != detail {
		t.Fatalf("after esc current %v, want %v", got, detail)
	}
}

func TestDeleteReturnsToList(t *testing.T) {
	env := newEnv(t, config.UIConfig{})
	if err := database.SeedDefaults(context.Background(), env.db); err != nil {
		t.Fatalf("seed: %v", err)
	}
	drive(t, env.app, nav.NavigateCmd(route.DiaryListRoute()))
	drive(t, env.app, nav.NavigateCmd(route.DiaryDetailRoute(database.WelcomeEntryID)))

	press(t, env.app, runes("d"))
	if got := current(t, env.app); got != route.DiaryListRoute() {
		t.Fatalf("current %v after delete", got)
	}
	if _, err := env.diary.Get(context.Background(), database.WelcomeEntryID); err == nil {
		t.Fatalf("entry still stored")
	}
}
