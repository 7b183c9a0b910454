package persist

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"finanzas/internal/core"
	"finanzas/internal/log"
	"finanzas/internal/storage"
	"finanzas/internal/storage/memory"
)

type brokenKV struct{}

func (brokenKV) Get(context.Context, string) ([]byte, error) { return nil, errors.New("disk gone") }
func (brokenKV) Put(context.Context, string, []byte) error   { return errors.New("disk gone") }

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewJSONStore(memory.New(), nil)

	txs := []core.Transaction{{
		ID:          "1",
		Description: "Groceries, weekly",
		Amount:      core.Money{Cents: 1250},
		Kind:        core.VariableExpense,
		Category:    "Comida",
		Date:        core.NewDate(2024, 1, 3),
		User:        "Usuario 1",
	}}
	require.NoError(t, s.Save(ctx, KeyTransactions, txs))
	require.Equal(t, txs, LoadOr(ctx, s, KeyTransactions, []core.Transaction(nil)))

	require.NoError(t, s.Save(ctx, KeyBudget, core.Money{Cents: 250050}))
	require.Equal(t, core.Money{Cents: 250050}, LoadOr(ctx, s, KeyBudget, core.DefaultBudget))
}

func TestLoadMissingKeyReturnsDefault(t *testing.T) {
	s := NewJSONStore(memory.New(), nil)
	got := LoadOr(context.Background(), s, KeyUsers, core.DefaultUsers)
	require.Equal(t, core.DefaultUsers, got)

	var dst []string
	require.ErrorIs(t, s.Load(context.Background(), KeyUsers, &dst), storage.ErrNotFound)
}

func TestLoadCorruptPayloadReturnsDefaultAndLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(log.Config{Level: slog.LevelDebug, Output: &buf})
	kv := memory.NewWithValues(map[string][]byte{KeyCategories: []byte(`{not json`)})
	s := NewJSONStore(kv, logger)

	got := LoadOr(context.Background(), s, KeyCategories, core.DefaultCategories)
	require.Equal(t, core.DefaultCategories, got)
	require.Contains(t, buf.String(), "Corrupt stored value")
	require.Contains(t, buf.String(), "key=categories")
}

func TestLoadReadFailureReturnsDefault(t *testing.T) {
	s := NewJSONStore(brokenKV{}, nil)
	require.Equal(t, core.DefaultBudget, LoadOr(context.Background(), s, KeyBudget, core.DefaultBudget))
}

func TestSaveFailureIsReportedAndLogged(t *testing.T) {
	var buf bytes.Buffer
	kv := memory.New()
	s := NewJSONStore(kv, log.New(log.Config{Output: &buf}))
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, KeyUsers, []string{"Ana"}))
	kv.FailWrites(true)
	err := s.Save(ctx, KeyUsers, []string{"Ana", "Luis"})
	require.ErrorIs(t, err, memory.ErrWriteFailed)
	require.Contains(t, buf.String(), "Failed to save value")

	// The previous durable value is untouched.
	require.Equal(t, []string{"Ana"}, LoadOr(ctx, s, KeyUsers, []string(nil)))
}

func TestSaveLogsOperation(t *testing.T) {
	var buf bytes.Buffer
	s := NewJSONStore(memory.New(), log.New(log.Config{Level: slog.LevelDebug, Output: &buf}))

	require.NoError(t, s.Save(context.Background(), KeyBudget, core.Money{Cents: 100}))
	require.Contains(t, buf.String(), "Value saved")
	require.Contains(t, buf.String(), "operation=save")
	require.Contains(t, buf.String(), "component=persist")
}
