package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/jask/appshell/internal/database/repository"
)

// WelcomeEntryID is the deterministic id of the seeded diary entry.
var WelcomeEntryID = uuid.NewSHA1(uuid.NameSpaceOID, []byte("diary:welcome"))

// SeedDefaults writes a welcome diary entry into an empty diary.
// It is idempotent and safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	diary := repository.NewDiaryRepo(db)
	existing, err := diary.List(ctx)
	if err != nil {
		return fmt.Errorf("seed defaults: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}
	_, err = diary.Save(ctx, repository.DiaryEntry{
		ID:      WelcomeEntryID,
		Title:   "Welcome",
		Content: "Press n to write a new entry, enter to open one, esc to go back.",
		Tags:    []string{"welcome"},
	})
	if err != nil {
		return fmt.Errorf("seed defaults: %w", err)
	}
	return nil
}
