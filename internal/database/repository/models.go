package repository

import (
	"time"

	"github.com/google/uuid"
)

// DiaryEntry represents a diary_entries row.
type DiaryEntry struct {
	ID        uuid.UUID
	Title     string
	Content   string
	Mood      *string
	Tags      []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Transaction represents a ledger row. Amounts are unsigned cents; IsIncome
// gives the direction.
type Transaction struct {
	ID          uuid.UUID
	AmountCents int64
	Category    string
	Note        string
	Date        time.Time
	IsIncome    bool
}

// SignedCents is the amount with expenses negative.
func (t Transaction) SignedCents() int64 {
	if t.IsIncome {
		return t.AmountCents
	}
	return -t.AmountCents
}

// PomodoroSession represents a pomodoro_sessions row. EndTime is nil while
// the session is running.
type PomodoroSession struct {
	ID              uuid.UUID
	TaskName        string
	StartTime       time.Time
	EndTime         *time.Time
	DurationMinutes int
	IsCompleted     bool
}
