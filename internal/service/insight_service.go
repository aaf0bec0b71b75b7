package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/fintrack/backend/internal/llm"
)

// InsightService produces natural-language analyses of a user's finances
// through injected generation backends. Prompt construction lives here,
// never in the HTTP handlers.
type InsightService struct {
	finance *FinanceService
	// insights answers the monthly insight endpoint (hosted model);
	// advisor answers chat and strategy (local model).
	insights llm.Generator
	advisor  llm.Generator
}

// NewInsightService creates an InsightService on top of the finance core.
func NewInsightService(finance *FinanceService, insights, advisor llm.Generator) *InsightService {
	return &InsightService{
		finance:  finance,
		insights: insights,
		advisor:  advisor,
	}
}

// Insight is the generated monthly insight with the summary it was
// derived from.
type Insight struct {
	TotalIncome       float64         `json:"totalIncome"`
	TotalExpense      float64         `json:"totalExpense"`
	Balance           float64         `json:"balance"`
	CategoryBreakdown []CategoryTotal `json:"categoryBreakdown"`
	Insight           string          `json:"insight"`
}

// GetInsights summarizes the month and asks the insight backend for a
// short practical analysis.
func (s *InsightService) GetInsights(ctx context.Context, userID, month string) (Insight, error) {
	monthStart, err := parseMonth(month)
	if err != nil {
		return Insight{}, err
	}

	summary, err := s.finance.monthlySummary(ctx, userID, monthStart)
	if err != nil {
		return Insight{}, err
	}
	breakdown := sortedCategoryTotals(summary.ExpenseByCategory)

	prompt := insightPrompt(month, summary, breakdown)
	text, err := s.insights.Generate(ctx, prompt)
	if err != nil {
		return Insight{}, fmt.Errorf("failed to generate insight: %w", err)
	}

	return Insight{
		TotalIncome:       summary.TotalIncome,
		TotalExpense:      summary.TotalExpense,
		Balance:           summary.Balance,
		CategoryBreakdown: breakdown,
		Insight:           text,
	}, nil
}

// GetStrategy asks the advisor backend for an actionable improvement plan
// built from the month's summary and active alerts.
func (s *InsightService) GetStrategy(ctx context.Context, userID, month string) (string, error) {
	monthStart, err := parseMonth(month)
	if err != nil {
		return "", err
	}

	summary, err := s.finance.monthlySummary(ctx, userID, monthStart)
	if err != nil {
		return "", err
	}
	alerts, err := s.finance.ListAlerts(ctx, userID, month)
	if err != nil {
		return "", err
	}

	var alertLines []string
	for _, alert := range alerts {
		alertLines = append(alertLines, fmt.Sprintf("%s - %s", alert.Category, alert.Type))
	}

	prompt := strategyPrompt(month, summary, sortedCategoryTotals(summary.ExpenseByCategory), alertLines)
	text, err := s.advisor.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to generate strategy: %w", err)
	}
	return text, nil
}

// Chat answers a free-form question in the context of the user's all-time
// financial summary.
func (s *InsightService) Chat(ctx context.Context, userID, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", NewValidationError("Message is required")
	}

	summary, err := s.finance.GetSummary(ctx, userID, "")
	if err != nil {
		return "", err
	}

	prompt := chatPrompt(summary, message)
	reply, err := s.advisor.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to generate reply: %w", err)
	}
	return reply, nil
}

func insightPrompt(month string, summary MonthlySummary, breakdown []CategoryTotal) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a professional financial advisor.\n\n")
	fmt.Fprintf(&b, "Here is the user's financial data for %s:\n\n", month)
	fmt.Fprintf(&b, "Total Income: %.2f\nTotal Expense: %.2f\nBalance: %.2f\n\n", summary.TotalIncome, summary.TotalExpense, summary.Balance)
	b.WriteString("Category Breakdown:\n")
	for _, row := range breakdown {
		fmt.Fprintf(&b, "%s: %.2f\n", row.Category, row.Total)
	}
	b.WriteString("\nGive a short financial insight (3-4 sentences).\nBe practical, actionable, and clear.\n")
	return b.String()
}

func strategyPrompt(month string, summary MonthlySummary, breakdown []CategoryTotal, alertLines []string) string {
	var b strings.Builder
	b.WriteString("You are a professional financial strategist.\n\n")
	b.WriteString("Based on the following financial data:\n\n")
	fmt.Fprintf(&b, "Financial Summary for %s\n\n", month)
	fmt.Fprintf(&b, "Income: %.2f\nExpenses: %.2f\nBalance: %.2f\n\n", summary.TotalIncome, summary.TotalExpense, summary.Balance)
	b.WriteString("Category Breakdown:\n")
	for _, row := range breakdown {
		fmt.Fprintf(&b, "%s: %.2f\n", row.Category, row.Total)
	}
	b.WriteString("\nActive Alerts:\n")
	for _, line := range alertLines {
		b.WriteString(line + "\n")
	}
	b.WriteString("\nCreate a clear 3-5 step actionable financial improvement strategy.\nMake it practical and structured.\n")
	return b.String()
}

func chatPrompt(summary Summary, message string) string {
	var b strings.Builder
	b.WriteString("You are a financial advisor AI.\n\n")
	b.WriteString("User Financial Summary:\n")
	fmt.Fprintf(&b, "Income: %.2f\nExpense: %.2f\nSavings: %.2f\n\n", summary.TotalIncome, summary.TotalExpense, summary.Balance)
	fmt.Fprintf(&b, "User Question:\n%s\n\n", message)
	b.WriteString("Respond clearly and professionally.\n")
	return b.String()
}
