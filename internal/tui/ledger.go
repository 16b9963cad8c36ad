package tui

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/jask/appshell/internal/apperr"
	"github.com/jask/appshell/internal/database/repository"
	"github.com/jask/appshell/internal/lifecycle"
	"github.com/jask/appshell/internal/nav"
	"github.com/jask/appshell/internal/route"
)

type ledgerPage struct {
	Items   []repository.Transaction
	Balance int64
}

type ledgerScreen struct {
	ctx    context.Context
	deps   Deps
	page   *lifecycle.Lifecycle[ledgerPage]
	cursor int
}

func newLedgerScreen(ctx context.Context, deps Deps) *ledgerScreen {
	load := func(ctx context.Context) (ledgerPage, error) {
		items, err := deps.Ledger.List(ctx, repository.TransactionFilters{})
		if err != nil {
			return ledgerPage{}, err
		}
		balance, err := deps.Ledger.Balance(ctx)
		if err != nil {
			return ledgerPage{}, err
		}
		return ledgerPage{Items: items, Balance: balance}, nil
	}
	return &ledgerScreen{
		ctx:  ctx,
		deps: deps,
		page: lifecycle.New[ledgerPage]("ledger.list", load).
			EmptyWhen(func(p ledgerPage) bool { return len(p.Items) == 0 }).
			SetLogger(deps.Log),
	}
}

func (s *ledgerScreen) Init() tea.Cmd { return s.page.Start(s.ctx) }
func (s *ledgerScreen) Refresh() tea.Cmd { return s.page.Start(s.ctx) }

func (s *ledgerScreen) Update(msg tea.Msg) tea.Cmd {
	if s.page.Update(msg) {
		return nil
	}
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	page, _ := s.page.State().Data()
	switch {
	case key.Matches(km, keys.Up):
		s.cursor = moveCursor(s.cursor, -1, len(page.Items))
	case key.Matches(km, keys.Down):
		s.cursor = moveCursor(s.cursor, 1, len(page.Items))
	case key.Matches(km, keys.Open):
		if s.cursor < len(page.Items) {
			return nav.NavigateCmd(route.TransactionDetailRoute(page.Items[s.cursor].ID))
		}
	case key.Matches(km, keys.New):
		return nav.NavigateCmd(route.NewTransaction())
	case key.Matches(km, keys.Retry):
		return s.page.Retry(s.ctx)
	}
	return nil
}

func (s *ledgerScreen) View(width, height int) string {
	body := renderState(s.page, width, "No transactions yet. Press n to add one.", func(p ledgerPage) string {
		s.cursor = moveCursor(s.cursor, 0, len(p.Items))
		rows := make([]string, len(p.Items))
		for i, t := range p.Items {
			rows[i] = fmt.Sprintf("%s  %s  %s",
				mutedStyle.Render(t.Date.Local().Format(s.deps.UI.DateFormat)),
				s.amount(t),
				t.Category)
		}
		return field("Balance", formatCents(s.deps.UI.Currency, p.Balance)) + "\n\n" +
			renderList(rows, s.cursor, width, max(1, height-4))
	})
	return titleStyle.Render("Ledger") + "\n" + body
}

func (s *ledgerScreen) amount(t repository.Transaction) string {
	text := formatCents(s.deps.UI.Currency, t.SignedCents())
	if t.IsIncome {
		return incomeStyle.Render(text)
	}
	return spendStyle.Render(text)
}

func (s *ledgerScreen) Help() []key.Binding {
	return retryHelp(s.page, keys.Open, keys.New)
}

type transactionDetailScreen struct {
	ctx  context.Context
	deps Deps
	id   uuid.UUID
	tx   *lifecycle.Lifecycle[repository.Transaction]
}

func newTransactionDetailScreen(ctx context.Context, deps Deps, id uuid.UUID) *transactionDetailScreen {
	return &transactionDetailScreen{
		ctx:  ctx,
		deps: deps,
		id:   id,
		tx: lifecycle.New[repository.Transaction]("ledger.detail", func(ctx context.Context) (repository.Transaction, error) {
			return deps.Ledger.Get(ctx, id)
		}).SetLogger(deps.Log),
	}
}

func (s *transactionDetailScreen) Init() tea.Cmd { return s.tx.Start(s.ctx) }
func (s *transactionDetailScreen) Refresh() tea.Cmd { return s.tx.Start(s.ctx) }

func (s *transactionDetailScreen) Update(msg tea.Msg) tea.Cmd {
	if s.tx.Update(msg) {
		return nil
	}
	switch m := msg.(type) {
	case doneMsg:
		if m.owner != s.tx.ID() {
			return nil
		}
		if m.err != nil {
			s.tx.HandleError(m.err)
			return nil
		}
		return tea.Batch(nav.LeaveCmd(route.TransactionDetailRoute(s.id)), setStatus("Transaction deleted"))
	case tea.KeyMsg:
		switch {
		case key.Matches(m, keys.Edit):
			return nav.NavigateCmd(route.EditTransaction(s.id))
		case key.Matches(m, keys.Delete):
			if s.tx.Phase() != lifecycle.Loaded {
				return nil
			}
			return persist(s.tx.ID(), func() (uuid.UUID, error) {
				return s.id, s.deps.Ledger.Delete(s.ctx, s.id)
			})
		case key.Matches(m, keys.Retry):
			return s.tx.Retry(s.ctx)
		}
	}
	return nil
}

func (s *transactionDetailScreen) View(width, _ int) string {
	return renderState(s.tx, width, "", func(t repository.Transaction) string {
		kind := "Expense"
		if t.IsIncome {
			kind = "Income"
		}
		lines := []string{
			titleStyle.Render(t.Category),
			field("Amount", formatCents(s.deps.UI.Currency, t.SignedCents())),
			field("Type", kind),
			field("Date", t.Date.Local().Format(s.deps.UI.DateFormat)),
		}
		if t.Note != "" {
			lines = append(lines, field("Note", t.Note))
		}
		return strings.Join(lines, "\n")
	})
}

func (s *transactionDetailScreen) Help() []key.Binding {
	return retryHelp(s.tx, keys.Edit, keys.Delete)
}

const (
	txAmount = iota
	txCategory
	txNote
	txDate
	txIncome
)

type transactionEditScreen struct {
	ctx      context.Context
	deps     Deps
	id       uuid.UUID
	form     *form
	original repository.Transaction
	tx       *lifecycle.Lifecycle[repository.Transaction]
}

func newTransactionEditScreen(ctx context.Context, deps Deps, id uuid.UUID) *transactionEditScreen {
	s := &transactionEditScreen{
		ctx:  ctx,
		deps: deps,
		id:   id,
		form: newForm("Amount", "Category", "Note", "Date", "Income"),
		tx: lifecycle.New[repository.Transaction]("ledger.edit", func(ctx context.Context) (repository.Transaction, error) {
			return deps.Ledger.Get(ctx, id)
		}).SetLogger(deps.Log),
	}
	s.form.set(txDate, deps.Now().Format(deps.UI.DateFormat))
	s.form.set(txIncome, "no")
	return s
}

func (s *transactionEditScreen) Init() tea.Cmd {
	if s.id == uuid.Nil {
		return nil
	}
	return s.tx.Start(s.ctx)
}

func (s *transactionEditScreen) Capturing() bool { return s.editable() }

func (s *transactionEditScreen) editable() bool {
	switch s.tx.Phase() {
	case lifecycle.Loading:
		return false
	case lifecycle.Failed:
		return s.id == uuid.Nil || s.original.ID != uuid.Nil
	case lifecycle.Idle, lifecycle.Empty, lifecycle.Loaded:
		return true
	}
	return true
}

func (s *transactionEditScreen) Update(msg tea.Msg) tea.Cmd {
	if s.tx.Update(msg) {
		if t, ok := s.tx.State().Data(); ok {
			s.original = t
			s.form.set(txAmount, formatCents("", t.AmountCents))
			s.form.set(txCategory, t.Category)
			s.form.set(txNote, t.Note)
			s.form.set(txDate, t.Date.Local().Format(s.deps.UI.DateFormat))
			s.form.set(txIncome, "no")
			if t.IsIncome {
				s.form.set(txIncome, "yes")
			}
		}
		return nil
	}
	switch m := msg.(type) {
	case doneMsg:
		if m.owner != s.tx.ID() {
			return nil
		}
		if m.err != nil {
			s.tx.HandleError(m.err)
			return nil
		}
		return tea.Batch(nav.LeaveCmd(s.route()), setStatus("Transaction saved"))
	case tea.KeyMsg:
		if !s.editable() {
			if key.Matches(m, keys.Retry) {
				return s.tx.Retry(s.ctx)
			}
			return nil
		}
		if key.Matches(m, keys.Save) {
			return s.save()
		}
		return s.form.update(m)
	}
	return nil
}

func (s *transactionEditScreen) save() tea.Cmd {
	t := s.original
	cents, err := parseCents(s.form.value(txAmount))
	if err != nil {
		s.tx.HandleError(err)
		return nil
	}
	date, err := time.ParseInLocation(s.deps.UI.DateFormat, s.form.value(txDate), time.Local)
	if err != nil {
		s.tx.HandleError(apperr.Validation("Date must look like %s.", s.deps.UI.DateFormat))
		return nil
	}
	t.AmountCents = cents
	t.Category = s.form.value(txCategory)
	t.Note = s.form.value(txNote)
	t.Date = date
	switch strings.ToLower(s.form.value(txIncome)) {
	case "y", "yes", "true", "income":
		t.IsIncome = true
	default:
		t.IsIncome = false
	}
	return persist(s.tx.ID(), func() (uuid.UUID, error) {
		saved, err := s.deps.Ledger.Save(s.ctx, t)
		return saved.ID, err
	})
}

// parseCents reads a non-negative decimal amount with at most two places.
func parseCents(raw string) (int64, error) {
	invalid := apperr.Validation("Amount must be a number like 12.50.")
	whole, frac, hasFrac := strings.Cut(strings.TrimSpace(raw), ".")
	if whole == "" && !hasFrac {
		return 0, invalid
	}
	if whole == "" {
		whole = "0"
	}
	if !allDigits(whole) || !allDigits(frac) || len(frac) > 2 {
		return 0, invalid
	}
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || units > math.MaxInt64/100 {
		return 0, apperr.Validation("Amount is too large.")
	}
	cents := int64(0)
	if frac != "" {
		cents, err = strconv.ParseInt((frac + "0")[:2], 10, 64)
		if err != nil {
			return 0, invalid
		}
	}
	if units*100 > math.MaxInt64-cents {
		return 0, apperr.Validation("Amount is too large.")
	}
	return units*100 + cents, nil
}

func allDigits(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' }) < 0
}

// route is the screen's own stack entry; a nil id is the create form.
func (s *transactionEditScreen) route() route.Route {
	if s.id == uuid.Nil {
		return route.NewTransaction()
	}
	return route.EditTransaction(s.id)
}

func (s *transactionEditScreen) View(width, _ int) string {
	title := s.route()
	if !s.editable() {
		return titleStyle.Render(title.Title()) + "\n" + renderState(s.tx, width, "", func(repository.Transaction) string { return "" })
	}
	out := titleStyle.Render(title.Title()) + "\n" + s.form.view(width)
	if e, ok := s.tx.State().Err(); ok {
		out += "\n\n" + renderError(e, width)
	}
	return out
}

func (s *transactionEditScreen) Help() []key.Binding {
	if !s.editable() {
		return retryHelp(s.tx)
	}
	return []key.Binding{keys.Save, keys.NextField, keys.Back}
}
