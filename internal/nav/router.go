// Package nav holds the navigation stack for a session.
//
// A Router is owned by exactly one session (the tea model). It never returns
// errors: going back on an empty stack is a no-op, and replacing on an empty
// stack degrades to a plain navigate.
package nav

import (
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jask/appshell/internal/route"
)

// Op names a stack mutation.
type Op string

const (
	OpNavigate  Op = "navigate"
	OpGoBack    Op = "go-back"
	OpPopToRoot Op = "pop-to-root"
	OpReplace   Op = "replace"
)

// Change describes a completed stack mutation.
type Change struct {
	Op    Op
	Route route.Route // target for navigate/replace, zero otherwise
	Depth int
}

// Router is an ordered stack of routes. Index 0 is the first screen pushed
// over the implicit root; the tail is the active screen.
type Router struct {
	stack     []route.Route
	listeners []func(Change)
	log       logrus.FieldLogger
}

// New creates a router seeded with initial.
func New(initial ...route.Route) *Router {
	stack := make([]route.Route, len(initial))
	copy(stack, initial)
	return &Router{stack: stack, log: discard()}
}

// SetLogger attaches a logger for mutation tracing.
func (r *Router) SetLogger(l logrus.FieldLogger) {
	if l == nil {
		l = discard()
	}
	r.log = l
}

// OnChange registers fn to run after every mutation.
func (r *Router) OnChange(fn func(Change)) {
	if fn != nil {
		r.listeners = append(r.listeners, fn)
	}
}

func (r *Router) Navigate(to route.Route) {
	r.stack = append(r.stack, to)
	r.changed(OpNavigate, to)
}

func (r *Router) GoBack() {
	if len(r.stack) == 0 {
		return
	}
	r.stack = r.stack[:len(r.stack)-1]
	r.changed(OpGoBack, route.Route{})
}

// Leave goes back only while from is the active route. It reports whether
// the stack changed.
func (r *Router) Leave(from route.Route) bool {
	if cur, ok := r.Current(); !ok || cur != from {
		return false
	}
	r.GoBack()
	return true
}

func (r *Router) PopToRoot() {
	r.stack = r.stack[:0]
	r.changed(OpPopToRoot, route.Route{})
}

// Replace swaps the active screen for to, or pushes it when the stack is empty.
func (r *Router) Replace(to route.Route) {
	if len(r.stack) > 0 {
		r.stack = r.stack[:len(r.stack)-1]
	}
	r.stack = append(r.stack, to)
	r.changed(OpReplace, to)
}

func (r *Router) NavigateToDiaryList() { r.Navigate(route.DiaryListRoute()) }

func (r *Router) NavigateToNewDiary() { r.Navigate(route.NewDiary()) }

func (r *Router) NavigateToDiaryDetail(id uuid.UUID) { r.Navigate(route.DiaryDetailRoute(id)) }

func (r *Router) NavigateToTransactionList() { r.Navigate(route.TransactionListRoute()) }

func (r *Router) NavigateToNewTransaction() { r.Navigate(route.NewTransaction()) }

func (r *Router) NavigateToTransactionDetail(id uuid.UUID) {
	r.Navigate(route.TransactionDetailRoute(id))
}

func (r *Router) NavigateToPomodoroTimer() { r.Navigate(route.PomodoroTimerRoute()) }

func (r *Router) NavigateToPomodoroHistory() { r.Navigate(route.PomodoroHistoryRoute()) }

// Depth is the number of routes above the implicit root.
func (r *Router) Depth() int { return len(r.stack) }

// CanGoBack reports whether a back affordance should be shown.
func (r *Router) CanGoBack() bool { return len(r.stack) > 0 }

// Current returns the active route; ok is false at the root.
func (r *Router) Current() (route.Route, bool) {
	if len(r.stack) == 0 {
		return route.Route{}, false
	}
	return r.stack[len(r.stack)-1], true
}

// Routes returns a copy of the stack, root first.
func (r *Router) Routes() []route.Route {
	out := make([]route.Route, len(r.stack))
	copy(out, r.stack)
	return out
}

// Breadcrumbs returns the titles of the stack, root first.
func (r *Router) Breadcrumbs() []string {
	out := make([]string, 0, len(r.stack))
	for _, rt := range r.stack {
		out = append(out, rt.Title())
	}
	return out
}

func (r *Router) changed(op Op, to route.Route) {
	c := Change{Op: op, Route: to, Depth: len(r.stack)}
	fields := logrus.Fields{"op": op, "depth": c.Depth}
	if op == OpNavigate || op == OpReplace {
		fields["route"] = to.String()
	}
	r.log.WithFields(fields).Debug("navigation")
	for _, fn := range r.listeners {
		fn(c)
	}
}

func discard() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
