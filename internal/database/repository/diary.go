package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	"github.com/jask/appshell/internal/apperr"
)

// DiaryRepo handles diary entries.
type DiaryRepo struct {
	db *sql.DB
}

func NewDiaryRepo(db *sql.DB) *DiaryRepo { return &DiaryRepo{db: db} }

const diaryColumns = `id, title, content, mood, tags, created_at, updated_at`

// Save inserts or updates e. A nil ID gets a fresh one; the stored entry is
// returned.
func (r *DiaryRepo) Save(ctx context.Context, e DiaryEntry) (DiaryEntry, error) {
	e.Title = strings.TrimSpace(e.Title)
	if e.Title == "" {
		return DiaryEntry{}, apperr.Validation("A diary entry needs a title.")
	}
	ts := Now()
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = ts
	}
	e.UpdatedAt = ts

	tags, err := json.Marshal(nonNil(e.Tags))
	if err != nil {
		return DiaryEntry{}, saveErr("diary", err)
	}
	_, err = r.db.ExecContext(ctx, `
	INSERT INTO diary_entries(`+diaryColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 title=excluded.title, content=excluded.content, mood=excluded.mood,
	 tags=excluded.tags, updated_at=excluded.updated_at;
	`, e.ID, e.Title, e.Content, e.Mood, string(tags), e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return DiaryEntry{}, saveErr("diary", err)
	}
	return e, nil
}

func (r *DiaryRepo) Get(ctx context.Context, id uuid.UUID) (DiaryEntry, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+diaryColumns+` FROM diary_entries WHERE id = ?`, id)
	e, err := scanDiary(row)
	if err != nil {
		return DiaryEntry{}, loadErr("diary", err)
	}
	return e, nil
}

// List returns entries, newest first.
func (r *DiaryRepo) List(ctx context.Context) ([]DiaryEntry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+diaryColumns+` FROM diary_entries ORDER BY created_at DESC, title`)
	if err != nil {
		return nil, loadErr("diary", err)
	}
	defer rows.Close()
	var out []DiaryEntry
	for rows.Next() {
		e, err := scanDiary(rows)
		if err != nil {
			return nil, loadErr("diary", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, loadErr("diary", err)
	}
	return out, nil
}

func (r *DiaryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM diary_entries WHERE id = ?`, id)
	return deleted("diary", res, err)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDiary(s scanner) (DiaryEntry, error) {
	var (
		e    DiaryEntry
		tags string
	)
	if err := s.Scan(&e.ID, &e.Title, &e.Content, &e.Mood, &tags, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return DiaryEntry{}, err
	}
	if tags != "" {
		if err := json.Unmarshal([]byte(tags), &e.Tags); err != nil {
			return DiaryEntry{}, err
		}
	}
	return e, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
