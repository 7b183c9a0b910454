package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"finanzas/internal/core"
	"finanzas/internal/log"
	"finanzas/internal/state"
)

// NewTransaction carries the fields collected by the transaction form.
type NewTransaction struct {
	Description string
	Amount      core.Money
	Kind        core.Kind
	Category    string
	Date        core.Date
	User        string
}

// Ledger orchestrates every mutation of the application state.
type Ledger struct {
	state  *state.State
	logger *log.Logger
	newID  func() string
}

func NewLedger(st *state.State, logger *log.Logger) *Ledger {
	if logger == nil {
		logger = log.Discard()
	}
	return &Ledger{
		state:  st,
		logger: logger.WithComponent(log.ComponentLedger),
		newID:  uuid.NewString,
	}
}

// AddTransaction records a new transaction and keeps the collection sorted
// by date, most recent first.
func (l *Ledger) AddTransaction(ctx context.Context, in NewTransaction) (core.Transaction, error) {
	t := core.Transaction{
		ID:          l.newID(),
		Description: strings.TrimSpace(in.Description),
		Amount:      in.Amount,
		Kind:        in.Kind,
		Date:        in.Date,
		User:        strings.TrimSpace(in.User),
	}
	if in.Kind.IsExpense() {
		t.Category = strings.TrimSpace(in.Category)
	}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, fmt.Errorf("add transaction: %w", err)
	}

	l.state.Transactions.Update(ctx, func(txs []core.Transaction) []core.Transaction {
		txs = append(txs, t)
		core.SortByDateDesc(txs)
		return txs
	})

	l.logger.InfoContext(ctx, "Transaction added",
		log.NewFields().
			WithOperation(log.OpCreate).
			WithTransaction(t.ID, string(t.Kind), t.Date.String(), t.Amount.Cents, t.Category, t.User).
			ToSlice()...)
	return t, nil
}

// DeleteTransaction removes the transaction with the given id. It reports
// whether anything was removed.
func (l *Ledger) DeleteTransaction(ctx context.Context, id string) bool {
	if !slices.ContainsFunc(l.state.Transactions.Get(), func(t core.Transaction) bool { return t.ID == id }) {
		l.logger.DebugContext(ctx, "Transaction not found", log.FieldTxID, id, log.FieldOperation, log.OpDelete)
		return false
	}
	removed := false
	l.state.Transactions.Update(ctx, func(txs []core.Transaction) []core.Transaction {
		n := len(txs)
		txs = slices.DeleteFunc(txs, func(t core.Transaction) bool { return t.ID == id })
		removed = len(txs) != n
		return txs
	})
	if removed {
		l.logger.InfoContext(ctx, "Transaction deleted", log.FieldTxID, id, log.FieldOperation, log.OpDelete)
	}
	return removed
}

// Transactions returns the collection, most recent first.
func (l *Ledger) Transactions() []core.Transaction {
	return l.state.Transactions.Get()
}

// Summary recomputes the per-kind totals from the current collection.
func (l *Ledger) Summary() core.Summary {
	return core.Summarize(l.state.Transactions.Get())
}

func (l *Ledger) Budget() core.Money {
	return l.state.Budget.Get()
}

// SetBudget replaces the budget. Negative amounts are ignored.
func (l *Ledger) SetBudget(ctx context.Context, m core.Money) bool {
	if m.Validate() != nil {
		return false
	}
	l.state.Budget.Replace(ctx, m)
	l.logger.InfoContext(ctx, "Budget updated", log.FieldAmountCents, m.Cents, log.FieldOperation, log.OpUpdate)
	return true
}

// Remaining is budget + income - expenses for the current collection.
func (l *Ledger) Remaining() core.Money {
	return l.Summary().Remaining(l.Budget())
}

func (l *Ledger) Categories() []string {
	return l.state.Categories.Get()
}

// AddCategory appends value unless it is empty or already listed.
func (l *Ledger) AddCategory(ctx context.Context, value string) bool {
	return l.addTo(ctx, l.state.Categories, log.FieldCategory, value)
}

// DeleteCategory removes every entry equal to value. Transactions keep
// their category.
func (l *Ledger) DeleteCategory(ctx context.Context, value string) bool {
	return l.deleteFrom(ctx, l.state.Categories, log.FieldCategory, value)
}

func (l *Ledger) Users() []string {
	return l.state.Users.Get()
}

// AddUser appends value unless it is empty or already listed.
func (l *Ledger) AddUser(ctx context.Context, value string) bool {
	return l.addTo(ctx, l.state.Users, log.FieldUser, value)
}

// DeleteUser removes every entry equal to value. Transactions keep their user.
func (l *Ledger) DeleteUser(ctx context.Context, value string) bool {
	return l.deleteFrom(ctx, l.state.Users, log.FieldUser, value)
}

func (l *Ledger) addTo(ctx context.Context, list *state.Binding[[]string], field, value string) bool {
	if value == "" || slices.Contains(list.Get(), value) {
		return false
	}
	added := false
	list.Update(ctx, func(items []string) []string {
		if slices.Contains(items, value) {
			return items
		}
		added = true
		return append(items, value)
	})
	if added {
		l.logger.InfoContext(ctx, "List entry added", field, value, log.FieldKey, list.Key(), log.FieldOperation, log.OpCreate)
	}
	return added
}

func (l *Ledger) deleteFrom(ctx context.Context, list *state.Binding[[]string], field, value string) bool {
	if !slices.Contains(list.Get(), value) {
		return false
	}
	removed := 0
	list.Update(ctx, func(items []string) []string {
		n := len(items)
		items = slices.DeleteFunc(items, func(s string) bool { return s == value })
		removed = n - len(items)
		return items
	})
	if removed > 0 {
		l.logger.InfoContext(ctx, "List entry deleted",
			field, value, log.FieldCount, removed, log.FieldKey, list.Key(), log.FieldOperation, log.OpDelete)
	}
	return removed > 0
}
