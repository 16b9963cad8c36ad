package tui

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jask/appshell/internal/api"
	"github.com/jask/appshell/internal/config"
	"github.com/jask/appshell/internal/database/repository"
)

type NumberFetcher interface {
	FetchNumber(ctx context.Context) (api.Number, error)
}

type DiaryStore interface {
	Save(ctx context.Context, e repository.DiaryEntry) (repository.DiaryEntry, error)
	Get(ctx context.Context, id uuid.UUID) (repository.DiaryEntry, error)
	List(ctx context.Context) ([]repository.DiaryEntry, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type TransactionStore interface {
	Save(ctx context.Context, t repository.Transaction) (repository.Transaction, error)
	Get(ctx context.Context, id uuid.UUID) (repository.Transaction, error)
	List(ctx context.Context, f repository.TransactionFilters) ([]repository.Transaction, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Balance(ctx context.Context) (int64, error)
}

type SessionStore interface {
	Save(ctx context.Context, s repository.PomodoroSession) (repository.PomodoroSession, error)
	Get(ctx context.Context, id uuid.UUID) (repository.PomodoroSession, error)
	List(ctx context.Context) ([]repository.PomodoroSession, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Deps are the collaborators screens load from and save to.
type Deps struct {
	Numbers  NumberFetcher
	Diary    DiaryStore
	Ledger   TransactionStore
	Sessions SessionStore
	Log      logrus.FieldLogger
	UI       config.UIConfig
	Now      func() time.Time
}

func (d Deps) withDefaults() Deps {
	if d.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		d.Log = l
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.UI.DateFormat == "" {
		d.UI.DateFormat = "2006-01-02"
	}
	if d.UI.Currency == "" {
		d.UI.Currency = "$"
	}
	return d
}
