// Package apperr is the closed failure taxonomy shown to users.
//
// Every raised error is reduced by Classify to exactly one AppError variant.
// The variant alone decides the user message and whether a retry is offered;
// the original error is never kept.
package apperr

import "fmt"

// AppError is a classified failure. The set of implementations is closed.
//
//sumtype:decl
type AppError interface {
	error
	appError()
}

type NetworkKind uint8

const (
	NoConnection NetworkKind = iota
	Timeout
	DecodingFailed
	ServerError
)

func (k NetworkKind) String() string {
	switch k {
	case NoConnection:
		return "no-connection"
	case Timeout:
		return "timeout"
	case DecodingFailed:
		return "decoding-failed"
	case ServerError:
		return "server-error"
	}
	return fmt.Sprintf("network(%d)", uint8(k))
}

type PersistenceKind uint8

const (
	SaveFailed PersistenceKind = iota
	LoadFailed
	NotFound
)

func (k PersistenceKind) String() string {
	switch k {
	case SaveFailed:
		return "save-failed"
	case LoadFailed:
		return "load-failed"
	case NotFound:
		return "not-found"
	}
	return fmt.Sprintf("persistence(%d)", uint8(k))
}

// NetworkError is a transport failure. StatusCode is set only for ServerError.
type NetworkError struct {
	Kind       NetworkKind
	StatusCode int
}

type PersistenceError struct {
	Kind PersistenceKind
}

// ValidationError is rejected input; Message is shown verbatim.
type ValidationError struct {
	Message string
}

// UnknownError is any failure no other variant recognizes.
type UnknownError struct {
	Message string
}

func (NetworkError) appError() {}
func (PersistenceError) appError() {}
func (ValidationError) appError() {}
func (UnknownError) appError() {}

func (e NetworkError) Error() string { return UserMessage(e) }
func (e PersistenceError) Error() string { return UserMessage(e) }
func (e ValidationError) Error() string { return UserMessage(e) }
func (e UnknownError) Error() string { return UserMessage(e) }

func Network(kind NetworkKind) NetworkError { return NetworkError{Kind: kind} }

func Server(code int) NetworkError { return NetworkError{Kind: ServerError, StatusCode: code} }

func Persistence(kind PersistenceKind) PersistenceError { return PersistenceError{Kind: kind} }

func Validation(format string, args ...any) ValidationError {
	if len(args) == 0 {
		return ValidationError{Message: format}
	}
	return ValidationError{Message: fmt.Sprintf(format, args...)}
}

func Unknown(message string) UnknownError { return UnknownError{Message: message} }

// IsRecoverable reports whether retrying the same operation can succeed.
// Presentation offers a retry action only when this is true.
func IsRecoverable(e AppError) bool {
	switch e := e.(type) {
	case NetworkError:
		switch e.Kind {
		case NoConnection, Timeout, ServerError:
			return true
		case DecodingFailed:
			return false
		}
		return false
	case PersistenceError:
		return false
	case ValidationError:
		return false
	case UnknownError:
		return false
	}
	return false
}

// UserMessage is the short text shown for e.
func UserMessage(e AppError) string {
	switch e := e.(type) {
	case NetworkError:
		switch e.Kind {
		case NoConnection:
			return "No network connection. Check your connection and try again."
		case Timeout:
			return "The request timed out. Please try again."
		case DecodingFailed:
			return "The server response could not be read."
		case ServerError:
			return fmt.Sprintf("The server returned an error (%d). Please try again later.", e.StatusCode)
		}
		return "A network error occurred."
	case PersistenceError:
		switch e.Kind {
		case SaveFailed:
			return "Your changes could not be saved."
		case LoadFailed:
			return "Your data could not be loaded."
		case NotFound:
			return "The requested item no longer exists."
		}
		return "A storage error occurred."
	case ValidationError:
		return e.Message
	case UnknownError:
		return e.Message
	}
	return "Something went wrong."
}
