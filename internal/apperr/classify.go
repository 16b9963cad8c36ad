package apperr

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net"
	"os"
	"reflect"
	"strings"
	"syscall"

	"github.com/mattn/go-sqlite3"
)

// Sentinels collaborators wrap so Classify can recognize them.
var (
	ErrNoConnection = errors.New("no network connection")
	ErrTimeout      = errors.New("request timed out")
	ErrDecoding     = errors.New("response could not be decoded")
	ErrNotFound     = errors.New("record not found")
	ErrSaveFailed   = errors.New("save failed")
	ErrLoadFailed   = errors.New("load failed")
)

// statusCoder is implemented by transport errors that carry an HTTP status.
type statusCoder interface {
	StatusCode() int
}

const unknownMessage = "unknown error"

// Classify reduces any error to one AppError. It never panics; errors it
// does not recognize become UnknownError carrying err's text.
func Classify(err error) (out AppError) {
	if err == nil {
		return Unknown(unknownMessage)
	}
	defer func() {
		if r := recover(); r != nil {
			out = Unknown(unknownMessage)
		}
	}()
	if e, ok := asAppError(err); ok {
		return e
	}

	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, sql.ErrNoRows):
		return Persistence(NotFound)
	case errors.Is(err, ErrSaveFailed):
		return Persistence(SaveFailed)
	case errors.Is(err, ErrLoadFailed):
		return Persistence(LoadFailed)
	}

	if isDecoding(err) {
		return Network(DecodingFailed)
	}
	if isTimeout(err) {
		return Network(Timeout)
	}
	if isNoConnection(err) {
		return Network(NoConnection)
	}

	var sc statusCoder
	if errors.As(err, &sc) && !isNilPointer(sc) {
		return Server(sc.StatusCode())
	}

	var sqlErr sqlite3.Error
	if errors.As(err, &sqlErr) {
		return Persistence(sqliteKind(sqlErr))
	}

	if errors.Is(err, context.Canceled) {
		return Unknown("The operation was cancelled.")
	}

	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		msg = unknownMessage
	}
	return Unknown(msg)
}

// asAppError finds an AppError in err's chain, by value or by pointer.
func asAppError(err error) (AppError, bool) {
	var (
		netErr NetworkError
		perErr PersistenceError
		valErr ValidationError
		unkErr UnknownError
		netPtr *NetworkError
		perPtr *PersistenceError
		valPtr *ValidationError
		unkPtr *UnknownError
	)
	switch {
	case errors.As(err, &netErr):
		return netErr, true
	case errors.As(err, &perErr):
		return perErr, true
	case errors.As(err, &valErr):
		return valErr, true
	case errors.As(err, &unkErr):
		return unkErr, true
	case errors.As(err, &netPtr) && netPtr != nil:
		return *netPtr, true
	case errors.As(err, &perPtr) && perPtr != nil:
		return *perPtr, true
	case errors.As(err, &valPtr) && valPtr != nil:
		return *valPtr, true
	case errors.As(err, &unkPtr) && unkPtr != nil:
		return *unkPtr, true
	}
	return nil, false
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

func isDecoding(err error) bool {
	var (
		syntax *json.SyntaxError
		typ    *json.UnmarshalTypeError
	)
	return errors.Is(err, ErrDecoding) || errors.As(err, &syntax) || errors.As(err, &typ)
}

func isTimeout(err error) bool {
	if errors.Is(err, ErrTimeout) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func isNoConnection(err error) bool {
	if errors.Is(err, ErrNoConnection) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ENETUNREACH) ||
		errors.Is(err, syscall.EHOSTUNREACH) {
		return true
	}
	var (
		opErr  *net.OpError
		dnsErr *net.DNSError
	)
	return errors.As(err, &opErr) || errors.As(err, &dnsErr)
}

func sqliteKind(e sqlite3.Error) PersistenceKind {
	switch e.Code {
	case sqlite3.ErrConstraint, sqlite3.ErrReadonly, sqlite3.ErrFull, sqlite3.ErrIoErr, sqlite3.ErrTooBig:
		return SaveFailed
	default:
		return LoadFailed
	}
}
