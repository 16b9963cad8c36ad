// Package sample fills a fresh database with sample records.
package sample

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/jask/appshell/internal/database/repository"
)

// Repos bundles repos used by Seed.
type Repos struct {
	Diary        *repository.DiaryRepo
	Transactions *repository.TransactionRepo
	Sessions     *repository.PomodoroRepo
}

var (
	categories = []string{"Groceries", "Rent", "Coffee", "Transport", "Subscriptions"}
	tasks      = []string{"Write report", "Review PRs", "Study", "Plan week"}
	moods      = []string{"calm", "focused", "tired", "happy"}
)

// Seed creates sample diary entries, transactions and pomodoro sessions
// dated in the days before now. The same seed yields the same data.
func Seed(ctx context.Context, repos Repos, now time.Time, seed uint64) error {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	for i := range 5 {
		mood := moods[rng.IntN(len(moods))]
		_, err := repos.Diary.Save(ctx, repository.DiaryEntry{
			Title:     fmt.Sprintf("Day %d", i+1),
			Content:   "Sample entry.",
			Mood:      &mood,
			Tags:      []string{"sample"},
			CreatedAt: now.AddDate(0, 0, -i),
		})
		if err != nil {
			return fmt.Errorf("seed diary: %w", err)
		}
	}

	if _, err := repos.Transactions.Save(ctx, repository.Transaction{
		AmountCents: 350000,
		Category:    "Salary",
		Note:        "Monthly pay",
		Date:        now.AddDate(0, 0, -14),
		IsIncome:    true,
	}); err != nil {
		return fmt.Errorf("seed transactions: %w", err)
	}
	for range 20 {
		_, err := repos.Transactions.Save(ctx, repository.Transaction{
			AmountCents: int64(rng.IntN(20000) + 500),
			Category:    categories[rng.IntN(len(categories))],
			Date:        now.AddDate(0, 0, -rng.IntN(10)),
		})
		if err != nil {
			return fmt.Errorf("seed transactions: %w", err)
		}
	}

	for i := range 6 {
		start := now.Add(-time.Duration(i+1) * 3 * time.Hour)
		end := start.Add(25 * time.Minute)
		_, err := repos.Sessions.Save(ctx, repository.PomodoroSession{
			TaskName:        tasks[rng.IntN(len(tasks))],
			StartTime:       start,
			EndTime:         &end,
			DurationMinutes: 25,
			IsCompleted:     rng.IntN(10) < 8,
		})
		if err != nil {
			return fmt.Errorf("seed sessions: %w", err)
		}
	}
	return nil
}
