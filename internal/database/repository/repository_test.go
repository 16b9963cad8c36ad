package repository_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jask/appshell/internal/apperr"
	"github.com/jask/appshell/internal/database"
	"github.com/jask/appshell/internal/database/repository"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.RunMigrations(dbPath))
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestDiaryRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := repository.NewDiaryRepo(openDB(t))

	mood := "calm"
	saved, err := repo.Save(ctx, repository.DiaryEntry{Title: "  Day one ", Content: "hello", Mood: &mood, Tags: []string{"a", "b"}})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, saved.ID)
	assert.Equal(t, "Day one", saved.Title)

	got, err := repo.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Day one", got.Title)
	assert.Equal(t, "hello", got.Content)
	require.NotNil(t, got.Mood)
	assert.Equal(t, "calm", *got.Mood)
	assert.Equal(t, []string{"a", "b"}, got.Tags)
	assert.True(t, got.CreatedAt.Equal(saved.CreatedAt))

	got.Content = "edited"
	_, err = repo.Save(ctx, got)
	require.NoError(t, err)
	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "edited", list[0].Content)

	require.NoError(t, repo.Delete(ctx, saved.ID))
	list, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDiaryFailuresClassify(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := repository.NewDiaryRepo(openDB(t))

	_, err := repo.Save(ctx, repository.DiaryEntry{Title: "   "})
	require.Error(t, err)
	assert.Equal(t, apperr.Validation("A diary entry needs a title."), apperr.Classify(err))

	_, err = repo.Get(ctx, uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperr.Persistence(apperr.NotFound), apperr.Classify(err))

	err = repo.Delete(ctx, uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperr.Persistence(apperr.NotFound), apperr.Classify(err))
}

func TestClosedDatabaseClassifies(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := openDB(t)
	repo := repository.NewDiaryRepo(db)
	require.NoError(t, db.Close())

	_, err := repo.List(ctx)
	require.Error(t, err)
	assert.Equal(t, apperr.Persistence(apperr.LoadFailed), apperr.Classify(err))

	_, err = repo.Save(ctx, repository.DiaryEntry{Title: "x"})
	require.Error(t, err)
	assert.Equal(t, apperr.Persistence(apperr.SaveFailed), apperr.Classify(err))
}

func TestTransactions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := repository.NewTransactionRepo(openDB(t))

	_, err := repo.Save(ctx, repository.Transaction{AmountCents: 0, Category: "Food"})
	assert.Equal(t, apperr.Validation("Amount must be greater than zero."), apperr.Classify(err))
	_, err = repo.Save(ctx, repository.Transaction{AmountCents: 100})
	assert.Equal(t, apperr.Validation("A transaction needs a category."), apperr.Classify(err))

	feb := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
	mar := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	salary, err := repo.Save(ctx, repository.Transaction{AmountCents: 500000, Category: "Salary", Date: feb, IsIncome: true})
	require.NoError(t, err)
	_, err = repo.Save(ctx, repository.Transaction{AmountCents: 2050, Category: "Food", Note: "groceries", Date: mar})
	require.NoError(t, err)

	got, err := repo.Get(ctx, salary.ID)
	require.NoError(t, err)
	assert.True(t, got.IsIncome)
	assert.Equal(t, int64(500000), got.SignedCents())
	assert.True(t, got.Date.Equal(feb))

	all, err := repo.List(ctx, repository.TransactionFilters{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Food", all[0].Category, "newest first")
	assert.Equal(t, int64(-2050), all[0].SignedCents())

	march, err := repo.List(ctx, repository.TransactionFilters{Month: mar})
	require.NoError(t, err)
	require.Len(t, march, 1)

	search, err := repo.List(ctx, repository.TransactionFilters{Search: "grocer"})
	require.NoError(t, err)
	require.Len(t, search, 1)

	balance, err := repo.Balance(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(500000-2050), balance)
}

func TestPomodoroSessions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := repository.NewPomodoroRepo(openDB(t))

	_, err := repo.Save(ctx, repository.PomodoroSession{DurationMinutes: 25})
	assert.Equal(t, apperr.Validation("A session needs a task name."), apperr.Classify(err))

	start := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
	s, err := repo.Save(ctx, repository.PomodoroSession{TaskName: "write", StartTime: start, DurationMinutes: 25})
	require.NoError(t, err)

	got, err := repo.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Nil(t, got.EndTime)
	assert.False(t, got.IsCompleted)

	end := start.Add(25 * time.Minute)
	got.EndTime = &end
	got.IsCompleted = true
	_, err = repo.Save(ctx, got)
	require.NoError(t, err)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].EndTime)
	assert.True(t, list[0].EndTime.Equal(end))
	assert.True(t, list[0].IsCompleted)
}

func TestNowIsUTCSeconds(t *testing.T) {
	t.Parallel()
	n := repository.Now()
	assert.Equal(t, time.UTC, n.Location())
	assert.Zero(t, n.Nanosecond())
	assert.Equal(t, n, n.Truncate(time.Second))
}
