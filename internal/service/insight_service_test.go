package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack/backend/internal/llm"
)

// capturingGenerator records the last prompt and returns a canned reply.
type capturingGenerator struct {
	prompt string
	reply  string
	err    error
}

func (g *capturingGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.prompt = prompt
	return g.reply, g.err
}

func TestGetInsights(t *testing.T) {
	finance, _ := newTestFinanceService(t, testNow)
	ctx := context.Background()

	seedTransaction(t, finance, "user123", 10000, "income", "Salary", "2026-02-01")
	seedTransaction(t, finance, "user123", 3000, "expense", "Food", "2026-02-10")

	insights := &capturingGenerator{reply: "Spend less on food."}
	svc := NewInsightService(finance, insights, &capturingGenerator{})

	result, err := svc.GetInsights(ctx, "user123", "2026-02")
	require.NoError(t, err)
	assert.Equal(t, 10000.0, result.TotalIncome)
	assert.Equal(t, 3000.0, result.TotalExpense)
	assert.Equal(t, 7000.0, result.Balance)
	require.Len(t, result.CategoryBreakdown, 1)
	assert.Equal(t, CategoryTotal{Category: "Food", Total: 3000}, result.CategoryBreakdown[0])
	assert.Equal(t, "Spend less on food.", result.Insight)

	// The prompt carries the numbers the model is asked to reason about.
	assert.Contains(t, insights.prompt, "2026-02")
	assert.Contains(t, insights.prompt, "Total Income: 10000.00")
	assert.Contains(t, insights.prompt, "Food: 3000.00")
	assert.Contains(t, insights.prompt, "short financial insight")
}

func TestGetInsightsGeneratorFailure(t *testing.T) {
	finance, _ := newTestFinanceService(t, testNow)

	insights := &capturingGenerator{err: errors.New("model offline")}
	svc := NewInsightService(finance, insights, &capturingGenerator{})

	_, err := svc.GetInsights(context.Background(), "user123", "2026-02")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model offline")
}

func TestGetStrategyIncludesAlerts(t *testing.T) {
	finance, _ := newTestFinanceService(t, testNow)
	ctx := context.Background()

	seedTransaction(t, finance, "user123", 10000, "income", "Salary", "2026-02-01")
	seedTransaction(t, finance, "user123", 950, "expense", "Food", "2026-02-10")
	seedBudget(t, finance, "user123", "Food", 1000, "2026-02")
	_, err := finance.GetBudgetStatus(ctx, "user123", "2026-02")
	require.NoError(t, err)

	advisor := &capturingGenerator{reply: "1. Cut food spend."}
	svc := NewInsightService(finance, &capturingGenerator{}, advisor)

	strategy, err := svc.GetStrategy(ctx, "user123", "2026-02")
	require.NoError(t, err)
	assert.Equal(t, "1. Cut food spend.", strategy)
	assert.Contains(t, advisor.prompt, "Food - EXCEEDED")
	assert.Contains(t, advisor.prompt, "3-5 step")
}

func TestChat(t *testing.T) {
	finance, _ := newTestFinanceService(t, testNow)
	ctx := context.Background()

	seedTransaction(t, finance, "user123", 5000, "income", "Salary", "2026-02-01")

	advisor := &capturingGenerator{reply: "Save more."}
	svc := NewInsightService(finance, &capturingGenerator{}, advisor)

	reply, err := svc.Chat(ctx, "user123", "How am I doing?")
	require.NoError(t, err)
	assert.Equal(t, "Save more.", reply)
	assert.Contains(t, advisor.prompt, "How am I doing?")
	assert.Contains(t, advisor.prompt, "Income: 5000.00")
}

func TestChatRequiresMessage(t *testing.T) {
	finance, _ := newTestFinanceService(t, testNow)
	svc := NewInsightService(finance, &capturingGenerator{}, &capturingGenerator{})

	_, err := svc.Chat(context.Background(), "user123", "   ")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

var _ llm.Generator = (*capturingGenerator)(nil)
