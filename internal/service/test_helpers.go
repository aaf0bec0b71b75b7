package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/fintrack/backend/internal/model"
	"github.com/fintrack/backend/internal/store"
)

// newTestFinanceService builds a FinanceService on a fresh memory store with
// the clock pinned so month-relative metrics are deterministic.
func newTestFinanceService(t *testing.T, now time.Time) (*FinanceService, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	svc := NewFinanceService(st)
	svc.now = func() time.Time { return now }
	return svc, st
}

// seedTransaction inserts a transaction through the service so it goes
// through the same validation and canonicalization as production traffic.
func seedTransaction(t *testing.T, svc *FinanceService, userID string, amount float64, txnType, category, date string) {
	t.Helper()
	_, err := svc.CreateTransaction(context.Background(), userID, CreateTransactionInput{
		Amount:   amount,
		Type:     txnType,
		Category: category,
		Date:     date,
	})
	require.NoError(t, err)
}

// legacyTransaction builds a raw store record bypassing service validation,
// for rows that predate the current type vocabulary.
func legacyTransaction(userID string, amount float64, txnType, category, date string) *model.Transaction {
	day, _ := time.Parse("2006-01-02", date)
	return &model.Transaction{
		Id:        uuid.New().String(),
		UserId:    userID,
		Amount:    amount,
		Type:      txnType,
		Category:  category,
		Date:      day,
		CreatedAt: day,
	}
}

// seedBudget sets a budget through the service.
func seedBudget(t *testing.T, svc *FinanceService, userID, category string, limit float64, month string) {
	t.Helper()
	_, err := svc.SetBudget(context.Background(), userID, SetBudgetInput{
		Category:     category,
		MonthlyLimit: limit,
		Month:        month,
	})
	require.NoError(t, err)
}
