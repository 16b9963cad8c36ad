package lifecycle

import "github.com/jask/appshell/internal/apperr"

// Phase is the active variant of a State.
type Phase uint8

const (
	Idle Phase = iota
	Loading
	Empty
	Failed
	Loaded
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Empty:
		return "empty"
	case Failed:
		return "error"
	case Loaded:
		return "loaded"
	}
	return "unknown"
}

// State holds one phase and at most one payload: data when Loaded, an error
// when Failed. States are replaced wholesale on every transition.
type State[T any] struct {
	phase Phase
	data  T
	err   apperr.AppError
}

func idleState[T any]() State[T] { return State[T]{phase: Idle} }
func loadingState[T any]() State[T] { return State[T]{phase: Loading} }
func emptyState[T any]() State[T] { return State[T]{phase: Empty} }

func failedState[T any](err apperr.AppError) State[T] {
	return State[T]{phase: Failed, err: err}
}

func loadedState[T any](data T) State[T] {
	return State[T]{phase: Loaded, data: data}
}

func (s State[T]) Phase() Phase { return s.phase }

// Data returns the payload when the phase is Loaded.
func (s State[T]) Data() (T, bool) {
	if s.phase != Loaded {
		var zero T
		return zero, false
	}
	return s.data, true
}

// Err returns the classified error when the phase is Failed.
func (s State[T]) Err() (apperr.AppError, bool) {
	if s.phase != Failed {
		return nil, false
	}
	return s.err, true
}
