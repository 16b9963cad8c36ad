// Package lifecycle models one asynchronous load-and-display flow.
//
// A Lifecycle moves Idle -> Loading -> {Loaded | Empty | Failed} and back to
// Idle on Reset. Start flips to Loading synchronously and hands back a tea.Cmd
// that runs the operation off the update loop; the owner feeds the resulting
// ResultMsg back through Update. Every Start bumps an attempt counter and a
// result is applied only if it carries the current attempt and the machine is
// still Loading, so a superseded operation can never overwrite newer state.
//
// A Lifecycle has a single owner and no internal locking.
package lifecycle

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jask/appshell/internal/apperr"
)

// Operation is the external async work a lifecycle drives.
type Operation[T any] func(ctx context.Context) (T, error)

// ResultMsg carries an operation outcome back to the owning lifecycle.
type ResultMsg[T any] struct {
	ID      uuid.UUID
	Attempt uint64
	Value   T
	Err     error
}

type Lifecycle[T any] struct {
	id        uuid.UUID
	name      string
	op        Operation[T]
	isEmpty   func(T) bool
	state     State[T]
	attempt   uint64
	observers []func(from, to Phase)
	log       logrus.FieldLogger
}

// New returns an Idle lifecycle for op.
func New[T any](name string, op Operation[T]) *Lifecycle[T] {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	return &Lifecycle[T]{
		id:    uuid.New(),
		name:  name,
		op:    op,
		state: idleState[T](),
		log:   discard,
	}
}

// EmptyWhen sets the predicate that turns a successful result into Empty
// instead of Loaded.
func (l *Lifecycle[T]) EmptyWhen(fn func(T) bool) *Lifecycle[T] {
	l.isEmpty = fn
	return l
}

func (l *Lifecycle[T]) SetLogger(log logrus.FieldLogger) *Lifecycle[T] {
	if log != nil {
		l.log = log.WithField("lifecycle", l.name)
	}
	return l
}

// OnTransition registers fn to run after every state change.
func (l *Lifecycle[T]) OnTransition(fn func(from, to Phase)) *Lifecycle[T] {
	if fn != nil {
		l.observers = append(l.observers, fn)
	}
	return l
}

func (l *Lifecycle[T]) ID() uuid.UUID { return l.id }
func (l *Lifecycle[T]) Name() string { return l.name }
func (l *Lifecycle[T]) State() State[T] { return l.state }
func (l *Lifecycle[T]) Phase() Phase { return l.state.phase }
func (l *Lifecycle[T]) Attempt() uint64 { return l.attempt }

// Start begins a new attempt. The state is Loading when Start returns; the
// returned command performs the operation and reports a ResultMsg.
func (l *Lifecycle[T]) Start(ctx context.Context) tea.Cmd {
	l.attempt++
	attempt := l.attempt
	l.transition(loadingState[T]())

	id, op := l.id, l.op
	return func() tea.Msg {
		v, err := run(ctx, op)
		return ResultMsg[T]{ID: id, Attempt: attempt, Value: v, Err: err}
	}
}

// Resolve applies the outcome of attempt. It reports false and changes
// nothing when the attempt is stale or the machine has left Loading.
func (l *Lifecycle[T]) Resolve(attempt uint64, v T, err error) bool {
	if attempt != l.attempt || l.state.phase != Loading {
		l.log.WithFields(logrus.Fields{
			"attempt": attempt,
			"current": l.attempt,
			"phase":   l.state.phase.String(),
		}).Debug("dropping stale result")
		return false
	}
	switch {
	case err != nil:
		l.fail(err)
	case l.isEmpty != nil && l.isEmpty(v):
		l.transition(emptyState[T]())
	default:
		l.transition(loadedState(v))
	}
	return true
}

// Update consumes ResultMsg values addressed to this lifecycle. It reports
// whether msg belonged to it, whether or not the result was applied.
func (l *Lifecycle[T]) Update(msg tea.Msg) bool {
	res, ok := msg.(ResultMsg[T])
	if !ok || res.ID != l.id {
		return false
	}
	l.Resolve(res.Attempt, res.Value, res.Err)
	return true
}

// HandleError records a failure raised outside Start, such as a save. A nil
// error is ignored.
func (l *Lifecycle[T]) HandleError(err error) {
	if err == nil {
		return
	}
	l.fail(err)
}

// Reset returns to Idle, dropping any payload or error.
func (l *Lifecycle[T]) Reset() {
	l.transition(idleState[T]())
}

// Retry starts a new attempt when the current error is recoverable. It
// returns nil otherwise.
func (l *Lifecycle[T]) Retry(ctx context.Context) tea.Cmd {
	appErr, ok := l.state.Err()
	if !ok || !apperr.IsRecoverable(appErr) {
		return nil
	}
	return l.Start(ctx)
}

func (l *Lifecycle[T]) fail(err error) {
	appErr := apperr.Classify(err)
	l.log.WithFields(logrus.Fields{
		"error":       fmt.Sprint(err),
		"recoverable": apperr.IsRecoverable(appErr),
	}).Error(apperr.UserMessage(appErr))
	l.transition(failedState[T](appErr))
}

func (l *Lifecycle[T]) transition(next State[T]) {
	from := l.state.phase
	l.state = next
	l.log.WithFields(logrus.Fields{
		"from":    from.String(),
		"to":      next.phase.String(),
		"attempt": l.attempt,
	}).Debug("transition")
	for _, fn := range l.observers {
		fn(from, next.phase)
	}
}

// run invokes op, converting a missing operation or a panic into an error.
func run[T any](ctx context.Context, op Operation[T]) (v T, err error) {
	if op == nil {
		return v, fmt.Errorf("lifecycle: no operation configured")
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lifecycle: operation panicked: %v", r)
		}
	}()
	return op(ctx)
}
