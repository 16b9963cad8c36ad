package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/jask/appshell/internal/apperr"
)

// PomodoroRepo handles pomodoro sessions.
type PomodoroRepo struct {
	db *sql.DB
}

func NewPomodoroRepo(db *sql.DB) *PomodoroRepo { return &PomodoroRepo{db: db} }

const pomodoroColumns = `id, task_name, start_time, end_time, duration_minutes, is_completed`

func (r *PomodoroRepo) Save(ctx context.Context, s PomodoroSession) (PomodoroSession, error) {
	s.TaskName = strings.TrimSpace(s.TaskName)
	switch {
	case s.TaskName == "":
		return PomodoroSession{}, apperr.Validation("A session needs a task name.")
	case s.DurationMinutes <= 0:
		return PomodoroSession{}, apperr.Validation("Session length must be positive.")
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.StartTime.IsZero() {
		s.StartTime = Now()
	}
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO pomodoro_sessions(`+pomodoroColumns+`) VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 task_name=excluded.task_name, start_time=excluded.start_time, end_time=excluded.end_time,
	 duration_minutes=excluded.duration_minutes, is_completed=excluded.is_completed;
	`, s.ID, s.TaskName, s.StartTime, s.EndTime, s.DurationMinutes, s.IsCompleted)
	if err != nil {
		return PomodoroSession{}, saveErr("pomodoro", err)
	}
	return s, nil
}

func (r *PomodoroRepo) Get(ctx context.Context, id uuid.UUID) (PomodoroSession, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+pomodoroColumns+` FROM pomodoro_sessions WHERE id = ?`, id)
	s, err := scanSession(row)
	if err != nil {
		return PomodoroSession{}, loadErr("pomodoro", err)
	}
	return s, nil
}

// List returns sessions, most recent first.
func (r *PomodoroRepo) List(ctx context.Context) ([]PomodoroSession, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+pomodoroColumns+` FROM pomodoro_sessions ORDER BY start_time DESC, id`)
	if err != nil {
		return nil, loadErr("pomodoro", err)
	}
	defer rows.Close()
	var out []PomodoroSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, loadErr("pomodoro", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, loadErr("pomodoro", err)
	}
	return out, nil
}

func (r *PomodoroRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pomodoro_sessions WHERE id = ?`, id)
	return deleted("pomodoro", res, err)
}

func scanSession(s scanner) (PomodoroSession, error) {
	var (
		p   PomodoroSession
		end sql.NullTime
	)
	if err := s.Scan(&p.ID, &p.TaskName, &p.StartTime, &end, &p.DurationMinutes, &p.IsCompleted); err != nil {
		return PomodoroSession{}, err
	}
	if end.Valid {
		t := end.Time
		p.EndTime = &t
	}
	return p, nil
}
