package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jask/appshell/internal/apperr"
)

// TransactionFilters defines list filters.
type TransactionFilters struct {
	Month  time.Time // use first day of month; zero time = no month filter
	Search string
}

// TransactionRepo handles ledger transactions.
type TransactionRepo struct {
	db *sql.DB
}

func NewTransactionRepo(db *sql.DB) *TransactionRepo { return &TransactionRepo{db: db} }

const transactionColumns = `id, amount_cents, category, note, date, is_income`

func (r *TransactionRepo) Save(ctx context.Context, t Transaction) (Transaction, error) {
	t.Category = strings.TrimSpace(t.Category)
	switch {
	case t.AmountCents <= 0:
		return Transaction{}, apperr.Validation("Amount must be greater than zero.")
	case t.Category == "":
		return Transaction{}, apperr.Validation("A transaction needs a category.")
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Date.IsZero() {
		t.Date = Now()
	}
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO transactions(`+transactionColumns+`) VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 amount_cents=excluded.amount_cents, category=excluded.category, note=excluded.note,
	 date=excluded.date, is_income=excluded.is_income;
	`, t.ID, t.AmountCents, t.Category, t.Note, t.Date, t.IsIncome)
	if err != nil {
		return Transaction{}, saveErr("transaction", err)
	}
	return t, nil
}

func (r *TransactionRepo) Get(ctx context.Context, id uuid.UUID) (Transaction, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = ?`, id)
	t, err := scanTransaction(row)
	if err != nil {
		return Transaction{}, loadErr("transaction", err)
	}
	return t, nil
}

// List returns matching transactions, newest first.
func (r *TransactionRepo) List(ctx context.Context, f TransactionFilters) ([]Transaction, error) {
	var where []string
	var args []interface{}

	if !f.Month.IsZero() {
		start := time.Date(f.Month.Year(), f.Month.Month(), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, 0)
		where = append(where, "date >= ? AND date < ?")
		args = append(args, start, end)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		where = append(where, "(category LIKE ? OR note LIKE ?)")
		like := "%" + s + "%"
		args = append(args, like, like)
	}

	q := `SELECT ` + transactionColumns + ` FROM transactions`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY date DESC, id"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, loadErr("transaction", err)
	}
	defer rows.Close()
	var out []Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, loadErr("transaction", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, loadErr("transaction", err)
	}
	return out, nil
}

func (r *TransactionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	return deleted("transaction", res, err)
}

// Balance sums signed amounts over all transactions.
func (r *TransactionRepo) Balance(ctx context.Context) (int64, error) {
	var cents sql.NullInt64
	err := r.db.QueryRowContext(ctx, `
	SELECT SUM(CASE WHEN is_income = 1 THEN amount_cents ELSE -amount_cents END) FROM transactions
	`).Scan(&cents)
	if err != nil {
		return 0, loadErr("transaction", err)
	}
	return cents.Int64, nil
}

func scanTransaction(s scanner) (Transaction, error) {
	var t Transaction
	if err := s.Scan(&t.ID, &t.AmountCents, &t.Category, &t.Note, &t.Date, &t.IsIncome); err != nil {
		return Transaction{}, err
	}
	return t, nil
}
