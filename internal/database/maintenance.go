package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Reset wipes all user data. It keeps the schema intact so the app can continue running.
func Reset(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("reset: db not configured")
	}
	if err := WithTx(db, func(tx *sql.Tx) error {
		for _, t := range []string{"diary_entries", "transactions", "pomodoro_sessions"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+t); err != nil {
				return fmt.Errorf("reset table %s: %w", t, err)
			}
		}
		return nil
	}); err != nil {
		return err
	}
	_, _ = db.ExecContext(ctx, "VACUUM")
	return nil
}
