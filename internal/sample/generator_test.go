package sample

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jask/appshell/internal/database"
	"github.com/jask/appshell/internal/database/repository"
)

func seeded(t *testing.T, seed uint64) Repos {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.db")
	require.NoError(t, database.RunMigrations(path))
	db, err := database.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repos := Repos{
		Diary:        repository.NewDiaryRepo(db),
		Transactions: repository.NewTransactionRepo(db),
		Sessions:     repository.NewPomodoroRepo(db),
	}
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, Seed(context.Background(), repos, now, seed))
	return repos
}

func TestSeedFillsEveryTable(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repos := seeded(t, 1)

	diary, err := repos.Diary.List(ctx)
	require.NoError(t, err)
	assert.Len(t, diary, 5)

	txs, err := repos.Transactions.List(ctx, repository.TransactionFilters{})
	require.NoError(t, err)
	assert.Len(t, txs, 21)

	sessions, err := repos.Sessions.List(ctx)
	require.NoError(t, err)
	assert.Len(t, sessions, 6)
}

func TestSeedIsDeterministic(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	a, err := seeded(t, 42).Transactions.Balance(ctx)
	require.NoError(t, err)
	b, err := seeded(t, 42).Transactions.Balance(ctx)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
