package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"finanzas/internal/core"
	"finanzas/internal/persist"
	"finanzas/internal/state"
	"finanzas/internal/storage/memory"
)

func newTestLedger(t *testing.T) (*Ledger, *memory.Store) {
	t.Helper()
	kv := memory.New()
	st := state.Open(context.Background(), persist.NewJSONStore(kv, nil))
	l := NewLedger(st, nil)
	n := 0
	l.newID = func() string {
		n++
		return fmt.Sprintf("tx-%d", n)
	}
	return l, kv
}

func mustParseDate(t *testing.T, s string) core.Date {
	t.Helper()
	d, err := core.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestExampleScenario(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t)

	_, err := l.AddTransaction(ctx, NewTransaction{Description: "Sueldo", Amount: core.Money{Cents: 150000}, Kind: core.Income, Date: mustParseDate(t, "2024-01-05"), User: "Usuario 1"})
	require.NoError(t, err)
	_, err = l.AddTransaction(ctx, NewTransaction{Description: "Super", Amount: core.Money{Cents: 30000}, Kind: core.VariableExpense, Category: "Comida", Date: mustParseDate(t, "2024-01-03"), User: "Usuario 1"})
	require.NoError(t, err)
	_, err = l.AddTransaction(ctx, NewTransaction{Description: "Alquiler", Amount: core.Money{Cents: 80000}, Kind: core.FixedExpense, Category: "Hogar", Date: mustParseDate(t, "2024-01-01"), User: "Usuario 2"})
	require.NoError(t, err)

	var dates []string
	for _, tx := range l.Transactions() {
		dates = append(dates, tx.Date.String())
	}
	require.Equal(t, []string{"2024-01-05", "2024-01-03", "2024-01-01"}, dates)

	s := l.Summary()
	require.Equal(t, int64(150000), s.Income.Cents)
	require.Equal(t, int64(80000), s.Fixed.Cents)
	require.Equal(t, int64(30000), s.Variable.Cents)
	require.Equal(t, int64(240000), l.Remaining().Cents)
}

func TestAddTransactionKeepsDateOrder(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t)

	dates := []string{"2024-03-01", "2024-01-15", "2024-05-20", "2024-01-15", "2023-12-31", "2024-05-20"}
	for i, d := range dates {
		_, err := l.AddTransaction(ctx, NewTransaction{Description: fmt.Sprint(i), Kind: core.Income, Date: mustParseDate(t, d), User: "u"})
		require.NoError(t, err)
	}
	require.True(t, l.DeleteTransaction(ctx, "tx-2"))

	txs := l.Transactions()
	require.Len(t, txs, len(dates)-1)
	for i := 1; i < len(txs); i++ {
		require.False(t, txs[i].Date.After(txs[i-1].Date.Time), "not sorted at %d", i)
	}
	// Equal dates keep insertion order.
	require.Equal(t, "tx-3", txs[0].ID)
	require.Equal(t, "tx-6", txs[1].ID)
}

func TestAddTransactionDropsCategoryForIncome(t *testing.T) {
	l, _ := newTestLedger(t)
	tx, err := l.AddTransaction(context.Background(), NewTransaction{Description: "Sueldo", Kind: core.Income, Category: "Comida", Date: core.NewDate(2024, 1, 1), User: "u"})
	require.NoError(t, err)
	require.Empty(t, tx.Category)
	require.Equal(t, "tx-1", tx.ID)
}

func TestAddTransactionRejectsIncompleteInput(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t)
	valid := NewTransaction{Description: "x", Kind: core.VariableExpense, Date: core.NewDate(2024, 1, 1), User: "u"}

	for name, mut := range map[string]func(*NewTransaction){
		"description": func(n *NewTransaction) { n.Description = " " },
		"date":        func(n *NewTransaction) { n.Date = core.Date{} },
		"user":        func(n *NewTransaction) { n.User = "" },
		"kind":        func(n *NewTransaction) { n.Kind = "" },
	} {
		in := valid
		mut(&in)
		_, err := l.AddTransaction(ctx, in)
		require.Error(t, err, name)
	}
	require.Empty(t, l.Transactions())
}

func TestDeleteMissingTransactionIsNoop(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t)
	_, err := l.AddTransaction(ctx, NewTransaction{Description: "x", Kind: core.Income, Date: core.NewDate(2024, 1, 1), User: "u"})
	require.NoError(t, err)

	before := l.Transactions()
	require.False(t, l.DeleteTransaction(ctx, "nope"))
	require.Equal(t, before, l.Transactions())
}

func TestCategoryAndUserMaintenance(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t)

	require.False(t, l.AddCategory(ctx, ""))
	require.False(t, l.AddCategory(ctx, "Comida"))
	require.True(t, l.AddCategory(ctx, "comida")) // case-sensitive
	require.Len(t, l.Categories(), 7)
	require.Equal(t, "comida", l.Categories()[6])

	require.True(t, l.AddUser(ctx, "Ana"))
	require.False(t, l.AddUser(ctx, "Ana"))
	require.Equal(t, []string{"Usuario 1", "Usuario 2", "Ana"}, l.Users())

	require.True(t, l.DeleteUser(ctx, "Usuario 1"))
	require.False(t, l.DeleteUser(ctx, "Usuario 1"))
	require.Equal(t, []string{"Usuario 2", "Ana"}, l.Users())
}

func TestDeleteDoesNotCascadeToTransactions(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t)
	tx, err := l.AddTransaction(ctx, NewTransaction{Description: "Cine", Kind: core.VariableExpense, Category: "Ocio", Date: core.NewDate(2024, 2, 1), User: "Usuario 2"})
	require.NoError(t, err)

	require.True(t, l.DeleteCategory(ctx, "Ocio"))
	require.True(t, l.DeleteUser(ctx, "Usuario 2"))

	require.Equal(t, []core.Transaction{tx}, l.Transactions())
}

func TestSetBudget(t *testing.T) {
	ctx := context.Background()
	l, kv := newTestLedger(t)
	require.Equal(t, core.DefaultBudget, l.Budget())

	require.True(t, l.SetBudget(ctx, core.Money{Cents: 350000}))
	require.False(t, l.SetBudget(ctx, core.Money{Cents: -1}))
	require.Equal(t, int64(350000), l.Budget().Cents)

	raw, err := kv.Get(ctx, persist.KeyBudget)
	require.NoError(t, err)
	require.Equal(t, "3500", string(raw))
}

func TestStateSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	l, kv := newTestLedger(t)
	_, err := l.AddTransaction(ctx, NewTransaction{Description: "Bus", Amount: core.Money{Cents: 250}, Kind: core.VariableExpense, Category: "Transporte", Date: core.NewDate(2024, 1, 2), User: "Usuario 1"})
	require.NoError(t, err)
	l.AddUser(ctx, "Ana")

	reopened := NewLedger(state.Open(ctx, persist.NewJSONStore(kv, nil)), nil)
	require.Equal(t, l.Transactions(), reopened.Transactions())
	require.Equal(t, l.Users(), reopened.Users())
}

func TestWriteFailureKeepsMemoryAuthoritative(t *testing.T) {
	ctx := context.Background()
	l, kv := newTestLedger(t)
	kv.FailWrites(true)

	require.True(t, l.AddUser(ctx, "Ana"))
	require.Contains(t, l.Users(), "Ana")
	_, err := kv.Get(ctx, persist.KeyUsers)
	require.Error(t, err)
}
