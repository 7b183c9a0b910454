package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"finanzas/internal/core"
)

func TestCSVEmpty(t *testing.T) {
	out, err := CSV(nil)
	require.ErrorIs(t, err, ErrNoTransactions)
	require.Nil(t, out)
}

func TestCSVQuotesOnlyFieldsWithCommas(t *testing.T) {
	txs := []core.Transaction{
		{ID: "a1", Description: "Groceries, weekly", Amount: core.Money{Cents: 4550}, Kind: core.VariableExpense, Category: "Comida", Date: core.NewDate(2024, 1, 3), User: "Usuario 1"},
		{ID: "b2", Description: `Say "hi"`, Amount: core.Money{Cents: 150000}, Kind: core.Income, Date: core.NewDate(2024, 1, 1), User: "Usuario 2"},
	}
	out, err := CSV(txs)
	require.NoError(t, err)

	lines := strings.Split(string(out), "\n")
	require.Equal(t, []string{
		"ID,Descripción,Monto,Tipo,Categoría,Fecha,Usuario",
		`a1,"Groceries, weekly",45.5,variable,Comida,2024-01-03,Usuario 1`,
		`b2,Say "hi",1500,income,,2024-01-01,Usuario 2`,
	}, lines)
}

func TestQuoteDoublesInnerQuotes(t *testing.T) {
	require.Equal(t, `"a ""b"", c"`, quote(`a "b", c`))
	require.Equal(t, "plain", quote("plain"))
	require.Equal(t, `"quoted"`, quote(`"quoted"`))
}

func TestWritePropagatesRowsInOrder(t *testing.T) {
	var sb strings.Builder
	txs := []core.Transaction{
		{ID: "2", Description: "b", Kind: core.FixedExpense, Category: "Hogar", Date: core.NewDate(2024, 2, 1), User: "u"},
		{ID: "1", Description: "a", Kind: core.Income, Date: core.NewDate(2024, 1, 1), User: "u"},
	}
	require.NoError(t, Write(&sb, txs))
	lines := strings.Split(sb.String(), "\n")
	require.Len(t, lines, 3)
	require.True(t, strings.HasPrefix(lines[1], "2,"))
	require.True(t, strings.HasPrefix(lines[2], "1,"))
}
