package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack/backend/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMemoryStoreUsers(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	user := &model.User{Id: "u1", Name: "Alice", Email: "alice@example.com", PasswordHash: "x"}
	require.NoError(t, st.CreateUser(ctx, user))

	got, err := st.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)

	byEmail, err := st.GetUserByEmail(ctx, "ALICE@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", byEmail.Id, "email lookup is case-insensitive")

	_, err = st.GetUser(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = st.GetUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreListTransactionsWindow(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	for i, d := range []time.Time{
		day(2026, time.January, 31),
		day(2026, time.February, 1),
		day(2026, time.February, 28),
		day(2026, time.March, 1),
	} {
		require.NoError(t, st.CreateTransaction(ctx, &model.Transaction{
			Id:     string(rune('a' + i)),
			UserId: "u1",
			Amount: float64(i + 1),
			Type:   model.TypeExpense,
			Date:   d,
		}))
	}

	start := day(2026, time.February, 1)
	end := day(2026, time.March, 1)
	txns, err := st.ListTransactions(ctx, "u1", &start, &end)
	require.NoError(t, err)
	require.Len(t, txns, 2, "end of window is exclusive")
	assert.True(t, txns[0].Date.After(txns[1].Date) || txns[0].Date.Equal(txns[1].Date), "newest first")

	all, err := st.ListTransactions(ctx, "u1", nil, nil)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	none, err := st.ListTransactions(ctx, "someone-else", nil, nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemoryStoreDeleteTransaction(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, st.CreateTransaction(ctx, &model.Transaction{Id: "t1", UserId: "u1", Amount: 1, Type: model.TypeExpense, Date: day(2026, time.February, 1)}))
	require.NoError(t, st.DeleteTransaction(ctx, "t1"))

	_, err := st.GetTransaction(ctx, "t1")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, st.DeleteTransaction(ctx, "t1"), ErrNotFound)
}

func TestMemoryStoreUpsertBudget(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	created := day(2026, time.January, 1)
	first := &model.Budget{Id: "b1", UserId: "u1", Category: "Food", Month: "2026-02", MonthlyLimit: 4000, CreatedAt: created, UpdatedAt: created}
	require.NoError(t, st.UpsertBudget(ctx, first))

	updated := day(2026, time.January, 15)
	second := &model.Budget{Id: "b2", UserId: "u1", Category: "Food", Month: "2026-02", MonthlyLimit: 5000, CreatedAt: updated, UpdatedAt: updated}
	require.NoError(t, st.UpsertBudget(ctx, second))

	assert.Equal(t, "b1", second.Id, "upsert keeps the original identity")

	budgets, err := st.ListBudgets(ctx, "u1", "2026-02")
	require.NoError(t, err)
	require.Len(t, budgets, 1)
	assert.Equal(t, 5000.0, budgets[0].MonthlyLimit)

	// A different month is a different budget.
	third := &model.Budget{Id: "b3", UserId: "u1", Category: "Food", Month: "2026-03", MonthlyLimit: 4500}
	require.NoError(t, st.UpsertBudget(ctx, third))

	march, err := st.ListBudgets(ctx, "u1", "2026-03")
	require.NoError(t, err)
	require.Len(t, march, 1)
	assert.Equal(t, "b3", march[0].Id)
}

func TestMemoryStoreGetBudgetByKey(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, st.UpsertBudget(ctx, &model.Budget{Id: "b1", UserId: "u1", Category: "Food", Month: "2026-02", MonthlyLimit: 4000}))

	got, err := st.GetBudgetByKey(ctx, "u1", "Food", "2026-02")
	require.NoError(t, err)
	assert.Equal(t, "b1", got.Id)

	_, err = st.GetBudgetByKey(ctx, "u1", "Rent", "2026-02")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreAlerts(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	older := &model.Alert{Id: "a1", UserId: "u1", Category: "Food", Month: "2026-02", Type: model.StatusWarning, CreatedAt: day(2026, time.February, 10)}
	newer := &model.Alert{Id: "a2", UserId: "u1", Category: "Food", Month: "2026-02", Type: model.StatusExceeded, CreatedAt: day(2026, time.February, 20)}
	require.NoError(t, st.CreateAlert(ctx, older))
	require.NoError(t, st.CreateAlert(ctx, newer))

	got, err := st.GetAlertByKey(ctx, "u1", "Food", "2026-02", model.StatusWarning)
	require.NoError(t, err)
	assert.Equal(t, "a1", got.Id)

	_, err = st.GetAlertByKey(ctx, "u1", "Food", "2026-02", "SAFE")
	assert.ErrorIs(t, err, ErrNotFound)

	all, err := st.ListAlerts(ctx, "u1", "2026-02")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a2", all[0].Id, "newest first")

	other, err := st.ListAlerts(ctx, "u1", "2026-03")
	require.NoError(t, err)
	assert.Empty(t, other)
}
