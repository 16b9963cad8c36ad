// Package route defines the closed set of navigable destinations.
//
// A Route is a small comparable value: a Kind plus an optional identifier.
// Two routes are equal when their kind and identifier are equal, so plain ==
// works and routes can be used as map keys.
package route

import (
	"fmt"

	"github.com/google/uuid"
)

// Kind identifies a destination. The set is closed; resolvers switch over it
// exhaustively.
type Kind uint8

const (
	Home Kind = iota
	Temp
	DiaryList
	DiaryDetail
	DiaryEdit
	TransactionList
	TransactionDetail
	TransactionEdit
	PomodoroTimer
	PomodoroHistory
	PomodoroSessionDetail
)

var kindNames = [...]string{
	Home:                  "home",
	Temp:                  "temp",
	DiaryList:             "diary-list",
	DiaryDetail:           "diary-detail",
	DiaryEdit:             "diary-edit",
	TransactionList:       "transaction-list",
	TransactionDetail:     "transaction-detail",
	TransactionEdit:       "transaction-edit",
	PomodoroTimer:         "pomodoro-timer",
	PomodoroHistory:       "pomodoro-history",
	PomodoroSessionDetail: "pomodoro-session-detail",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind maps a kind name back to its Kind.
func ParseKind(s string) (Kind, bool) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), true
		}
	}
	return 0, false
}

// Route is an immutable navigation destination. ID is uuid.Nil for
// parameterless kinds; for edit kinds uuid.Nil means "create new".
type Route struct {
	Kind Kind
	ID   uuid.UUID
}

func HomeRoute() Route { return Route{Kind: Home} }
func TempRoute() Route { return Route{Kind: Temp} }
func DiaryListRoute() Route { return Route{Kind: DiaryList} }
func TransactionListRoute() Route { return Route{Kind: TransactionList} }
func PomodoroTimerRoute() Route { return Route{Kind: PomodoroTimer} }
func PomodoroHistoryRoute() Route { return Route{Kind: PomodoroHistory} }

func DiaryDetailRoute(id uuid.UUID) Route { return Route{Kind: DiaryDetail, ID: id} }
func TransactionDetailRoute(id uuid.UUID) Route { return Route{Kind: TransactionDetail, ID: id} }
func PomodoroSessionRoute(id uuid.UUID) Route { return Route{Kind: PomodoroSessionDetail, ID: id} }

// NewDiary routes to the diary editor in create mode.
func NewDiary() Route { return Route{Kind: DiaryEdit} }

// EditDiary routes to the diary editor for an existing entry.
func EditDiary(id uuid.UUID) Route { return Route{Kind: DiaryEdit, ID: id} }

// NewTransaction routes to the transaction editor in create mode.
func NewTransaction() Route { return Route{Kind: TransactionEdit} }

// EditTransaction routes to the transaction editor for an existing record.
func EditTransaction(id uuid.UUID) Route { return Route{Kind: TransactionEdit, ID: id} }

// HasID reports whether the route carries an identifier.
func (r Route) HasID() bool { return r.ID != uuid.Nil }

// IsCreate reports whether r is an editor route without an identifier.
func (r Route) IsCreate() bool {
	switch r.Kind {
	case DiaryEdit, TransactionEdit:
		return r.ID == uuid.Nil
	default:
		return false
	}
}

// Title is the display name used in navigation bars and breadcrumbs.
func (r Route) Title() string {
	switch r.Kind {
	case Home:
		return "Home"
	case Temp:
		return "Feature Demo"
	case DiaryList:
		return "Diary"
	case DiaryDetail:
		return "Diary Entry"
	case DiaryEdit:
		if r.IsCreate() {
			return "New Diary Entry"
		}
		return "Edit Diary Entry"
	case TransactionList:
		return "Ledger"
	case TransactionDetail:
		return "Transaction"
	case TransactionEdit:
		if r.IsCreate() {
			return "New Transaction"
		}
		return "Edit Transaction"
	case PomodoroTimer:
		return "Pomodoro"
	case PomodoroHistory:
		return "History"
	case PomodoroSessionDetail:
		return "Session"
	}
	return r.Kind.String()
}

func (r Route) String() string {
	if r.HasID() {
		return r.Kind.String() + "/" + r.ID.String()
	}
	return r.Kind.String()
}
