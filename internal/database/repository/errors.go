package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jask/appshell/internal/apperr"
)

// Now returns UTC time truncated to seconds, matching what SQLite stores.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

func saveErr(table string, err error) error {
	return fmt.Errorf("%s save: %w: %w", table, apperr.ErrSaveFailed, err)
}

func loadErr(table string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", table, apperr.ErrNotFound)
	}
	return fmt.Errorf("%s load: %w: %w", table, apperr.ErrLoadFailed, err)
}

// deleted maps a DELETE result onto NotFound when no row matched.
func deleted(table string, res sql.Result, err error) error {
	if err != nil {
		return saveErr(table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return saveErr(table, err)
	}
	if n == 0 {
		return fmt.Errorf("%s delete: %w", table, apperr.ErrNotFound)
	}
	return nil
}
