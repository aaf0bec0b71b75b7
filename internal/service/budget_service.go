package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/fintrack/backend/internal/model"
	"github.com/fintrack/backend/internal/store"
)

// Budget status thresholds, as percentage of the monthly limit.
const (
	warningThreshold  = 70
	exceededThreshold = 90
)

// SetBudgetInput is the payload for SetBudget.
type SetBudgetInput struct {
	Category     string  `json:"category"`
	MonthlyLimit float64 `json:"monthlyLimit"`
	Month        string  `json:"month"`
}

// SetBudget creates or updates the budget for (user, category, month).
func (s *FinanceService) SetBudget(ctx context.Context, userID string, in SetBudgetInput) (*model.Budget, error) {
	if in.Category == "" {
		return nil, NewValidationError("Category is required")
	}
	if in.MonthlyLimit <= 0 {
		return nil, NewValidationError("Monthly limit must be greater than zero")
	}
	if _, err := parseMonth(in.Month); err != nil {
		return nil, err
	}

	now := s.now()
	budget := &model.Budget{
		Id:           uuid.New().String(),
		UserId:       userID,
		Category:     canonicalCategory(in.Category),
		Month:        in.Month,
		MonthlyLimit: in.MonthlyLimit,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.UpsertBudget(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to set budget: %w", err)
	}
	return budget, nil
}

// BudgetStatus is the computed standing of one budget for a month.
type BudgetStatus struct {
	Category     string  `json:"category"`
	MonthlyLimit float64 `json:"monthlyLimit"`
	TotalSpent   float64 `json:"totalSpent"`
	Percentage   float64 `json:"percentage"`
	Status       string  `json:"status"`
}

// classifyBudget returns the status for the given percentage of limit.
// The regions are contiguous: SAFE below 70, WARNING in [70,90), EXCEEDED
// at 90 and above.
func classifyBudget(percentage float64) string {
	switch {
	case percentage >= exceededThreshold:
		return model.StatusExceeded
	case percentage >= warningThreshold:
		return model.StatusWarning
	default:
		return model.StatusSafe
	}
}

// GetBudgetStatus computes the standing of every budget the user has for
// the month. As a side effect it records at most one alert per
// (category, month, status) when a budget is at WARNING or EXCEEDED.
func (s *FinanceService) GetBudgetStatus(ctx context.Context, userID, month string) ([]BudgetStatus, error) {
	monthStart, err := parseMonth(month)
	if err != nil {
		return nil, err
	}

	budgets, err := s.store.ListBudgets(ctx, userID, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}

	summary, err := s.monthlySummary(ctx, userID, monthStart)
	if err != nil {
		return nil, err
	}

	results := make([]BudgetStatus, 0, len(budgets))
	for _, budget := range budgets {
		spent := summary.ExpenseByCategory[budget.Category]
		percentage := spent / budget.MonthlyLimit * 100
		status := classifyBudget(percentage)

		if status != model.StatusSafe {
			if err := s.recordAlert(ctx, userID, budget.Category, month, status, percentage); err != nil {
				return nil, err
			}
		}

		results = append(results, BudgetStatus{
			Category:     budget.Category,
			MonthlyLimit: budget.MonthlyLimit,
			TotalSpent:   spent,
			Percentage:   math.Round(percentage*100) / 100,
			Status:       status,
		})
	}
	return results, nil
}

// recordAlert creates the alert for (user, category, month, status) unless
// it already exists. Check-then-create is not transactional; concurrent
// requests may race, but the Firestore backend collapses duplicates onto a
// deterministic document ID.
func (s *FinanceService) recordAlert(ctx context.Context, userID, category, month, status string, percentage float64) error {
	_, err := s.store.GetAlertByKey(ctx, userID, category, month, status)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("failed to look up alert: %w", err)
	}

	alert := &model.Alert{
		Id:        uuid.New().String(),
		UserId:    userID,
		Category:  category,
		Month:     month,
		Type:      status,
		Message:   fmt.Sprintf("Your %s spending is %.2f%% of your budget.", category, percentage),
		CreatedAt: s.now(),
	}
	if err := s.store.CreateAlert(ctx, alert); err != nil {
		return fmt.Errorf("failed to create alert: %w", err)
	}
	return nil
}

// ListAlerts returns the user's alerts, optionally scoped to one month,
// newest first.
func (s *FinanceService) ListAlerts(ctx context.Context, userID, month string) ([]*model.Alert, error) {
	if month != "" {
		if _, err := parseMonth(month); err != nil {
			return nil, err
		}
	}
	alerts, err := s.store.ListAlerts(ctx, userID, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	return alerts, nil
}
