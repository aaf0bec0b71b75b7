package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack/backend/internal/model"
)

func TestClassifyBudget(t *testing.T) {
	cases := []struct {
		percentage float64
		want       string
	}{
		{0, model.StatusSafe},
		{69.99, model.StatusSafe},
		{70, model.StatusWarning},
		{75, model.StatusWarning},
		{89.99, model.StatusWarning},
		{90, model.StatusExceeded},
		{150, model.StatusExceeded},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, classifyBudget(tc.percentage), "percentage %v", tc.percentage)
	}
}

func TestSetBudgetValidation(t *testing.T) {
	svc, _ := newTestFinanceService(t, testNow)
	ctx := context.Background()

	cases := []struct {
		name string
		in   SetBudgetInput
	}{
		{"missing category", SetBudgetInput{MonthlyLimit: 100, Month: "2026-02"}},
		{"zero limit", SetBudgetInput{Category: "Food", MonthlyLimit: 0, Month: "2026-02"}},
		{"missing month", SetBudgetInput{Category: "Food", MonthlyLimit: 100}},
		{"bad month", SetBudgetInput{Category: "Food", MonthlyLimit: 100, Month: "02-2026"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.SetBudget(ctx, "user123", tc.in)
			require.Error(t, err)
			assert.True(t, IsValidation(err))
		})
	}
}

func TestSetBudgetUpsert(t *testing.T) {
	svc, st := newTestFinanceService(t, testNow)
	ctx := context.Background()

	first, err := svc.SetBudget(ctx, "user123", SetBudgetInput{Category: "food", MonthlyLimit: 4000, Month: "2026-02"})
	require.NoError(t, err)
	assert.Equal(t, "Food", first.Category)

	// Same (user, category, month) updates the limit in place.
	second, err := svc.SetBudget(ctx, "user123", SetBudgetInput{Category: "FOOD", MonthlyLimit: 5000, Month: "2026-02"})
	require.NoError(t, err)
	assert.Equal(t, first.Id, second.Id)
	assert.Equal(t, 5000.0, second.MonthlyLimit)

	budgets, err := st.ListBudgets(ctx, "user123", "2026-02")
	require.NoError(t, err)
	require.Len(t, budgets, 1)
	assert.Equal(t, 5000.0, budgets[0].MonthlyLimit)
}

func TestGetBudgetStatusWarning(t *testing.T) {
	svc, st := newTestFinanceService(t, testNow)
	ctx := context.Background()

	seedBudget(t, svc, "user123", "Food", 4000, "2026-02")
	seedTransaction(t, svc, "user123", 3000, "expense", "Food", "2026-02-10")

	statuses, err := svc.GetBudgetStatus(ctx, "user123", "2026-02")
	require.NoError(t, err)
	require.Len(t, statuses, 1)
	assert.Equal(t, BudgetStatus{
		Category:     "Food",
		MonthlyLimit: 4000,
		TotalSpent:   3000,
		Percentage:   75,
		Status:       model.StatusWarning,
	}, statuses[0])

	alerts, err := st.ListAlerts(ctx, "user123", "2026-02")
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, model.StatusWarning, alerts[0].Type)
	assert.Equal(t, "Your Food spending is 75.00% of your budget.", alerts[0].Message)
}

func TestGetBudgetStatusAlertIdempotent(t *testing.T) {
	svc, st := newTestFinanceService(t, testNow)
	ctx := context.Background()

	seedBudget(t, svc, "user123", "Food", 1000, "2026-02")
	seedTransaction(t, svc, "user123", 950, "expense", "Food", "2026-02-10")

	for i := 0; i < 3; i++ {
		_, err := svc.GetBudgetStatus(ctx, "user123", "2026-02")
		require.NoError(t, err)
	}

	alerts, err := st.ListAlerts(ctx, "user123", "2026-02")
	require.NoError(t, err)
	require.Len(t, alerts, 1, "repeated status checks must not duplicate alerts")
	assert.Equal(t, model.StatusExceeded, alerts[0].Type)
}

func TestGetBudgetStatusEscalation(t *testing.T) {
	svc, st := newTestFinanceService(t, testNow)
	ctx := context.Background()

	seedBudget(t, svc, "user123", "Food", 1000, "2026-02")
	seedTransaction(t, svc, "user123", 750, "expense", "Food", "2026-02-05")

	_, err := svc.GetBudgetStatus(ctx, "user123", "2026-02")
	require.NoError(t, err)

	// Crossing into EXCEEDED later in the month raises a second, distinct alert.
	seedTransaction(t, svc, "user123", 300, "expense", "Food", "2026-02-20")
	_, err = svc.GetBudgetStatus(ctx, "user123", "2026-02")
	require.NoError(t, err)

	alerts, err := st.ListAlerts(ctx, "user123", "2026-02")
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	types := []string{alerts[0].Type, alerts[1].Type}
	assert.Contains(t, types, model.StatusWarning)
	assert.Contains(t, types, model.StatusExceeded)
}

func TestGetBudgetStatusSafeNoAlert(t *testing.T) {
	svc, st := newTestFinanceService(t, testNow)
	ctx := context.Background()

	seedBudget(t, svc, "user123", "Food", 4000, "2026-02")
	seedTransaction(t, svc, "user123", 100, "expense", "Food", "2026-02-10")

	statuses, err := svc.GetBudgetStatus(ctx, "user123", "2026-02")
	require.NoError(t, err)
	require.Len(t, statuses, 1)
	assert.Equal(t, model.StatusSafe, statuses[0].Status)

	alerts, err := st.ListAlerts(ctx, "user123", "2026-02")
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestListAlertsMonthValidation(t *testing.T) {
	svc, _ := newTestFinanceService(t, testNow)

	_, err := svc.ListAlerts(context.Background(), "user123", "bogus")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}
