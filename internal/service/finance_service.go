// Package service implements the aggregation and derived-metric core of
// the finance tracker. All metrics are recomputed from the store on every
// request; nothing derived is persisted except budget alerts.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fintrack/backend/internal/model"
	"github.com/fintrack/backend/internal/store"
)

// FinanceService exposes transaction, budget and analytics operations over
// a Store. It holds no state beyond its dependencies; every method is a
// function of the current database snapshot.
type FinanceService struct {
	store store.Store
	now   func() time.Time
}

// NewFinanceService creates a FinanceService backed by the given store.
func NewFinanceService(st store.Store) *FinanceService {
	return &FinanceService{
		store: st,
		now:   time.Now,
	}
}

// CreateTransactionInput is the payload for CreateTransaction.
type CreateTransactionInput struct {
	Amount      float64 `json:"amount"`
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
}

// CreateTransaction validates and stores a new transaction for the user.
func (s *FinanceService) CreateTransaction(ctx context.Context, userID string, in CreateTransactionInput) (*model.Transaction, error) {
	if in.Amount <= 0 {
		return nil, NewValidationError("Amount must be greater than zero")
	}
	if in.Type != model.TypeIncome && in.Type != model.TypeExpense {
		return nil, NewValidationError("Type must be income or expense")
	}
	if in.Category == "" {
		return nil, NewValidationError("Category is required")
	}
	date, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return nil, NewValidationError(fmt.Sprintf("Invalid date %q, expected YYYY-MM-DD", in.Date))
	}

	txn := &model.Transaction{
		Id:          uuid.New().String(),
		UserId:      userID,
		Amount:      in.Amount,
		Type:        in.Type,
		Category:    canonicalCategory(in.Category),
		Date:        date,
		Description: in.Description,
		CreatedAt:   s.now(),
	}

	if err := s.store.CreateTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	return txn, nil
}

// ListTransactions returns the user's transactions, optionally restricted
// to one month, newest first.
func (s *FinanceService) ListTransactions(ctx context.Context, userID, month string) ([]*model.Transaction, error) {
	var startDate, endDate *time.Time
	if month != "" {
		monthStart, err := parseMonth(month)
		if err != nil {
			return nil, err
		}
		start, end := monthWindow(monthStart)
		startDate, endDate = &start, &end
	}

	transactions, err := s.store.ListTransactions(ctx, userID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, nil
}

// DeleteTransaction deletes a transaction owned by the user. Deleting a
// record that does not exist or belongs to someone else reports not found;
// ownership is never revealed.
func (s *FinanceService) DeleteTransaction(ctx context.Context, userID, txnID string) error {
	txn, err := s.store.GetTransaction(ctx, txnID)
	if err != nil {
		return err
	}
	if txn.UserId != userID {
		return fmt.Errorf("transaction %s: %w", txnID, store.ErrNotFound)
	}
	return s.store.DeleteTransaction(ctx, txnID)
}

// GetSummary returns income/expense totals for the user, either all-time
// or restricted to one month.
func (s *FinanceService) GetSummary(ctx context.Context, userID, month string) (Summary, error) {
	transactions, err := s.ListTransactions(ctx, userID, month)
	if err != nil {
		return Summary{}, err
	}
	return summarize(transactions), nil
}

// GetCategorySummary returns the user's expense totals per category,
// largest first, either all-time or restricted to one month.
func (s *FinanceService) GetCategorySummary(ctx context.Context, userID, month string) ([]CategoryTotal, error) {
	transactions, err := s.ListTransactions(ctx, userID, month)
	if err != nil {
		return nil, err
	}
	return sortedCategoryTotals(expenseByCategory(transactions)), nil
}

// MonthlySummary is the month-scoped aggregation used by the derived
// metrics: totals plus the expense breakdown per category.
type MonthlySummary struct {
	Summary
	ExpenseByCategory map[string]float64
}

// monthlySummary fetches one month of transactions and reduces them.
func (s *FinanceService) monthlySummary(ctx context.Context, userID string, monthStart time.Time) (MonthlySummary, error) {
	start, end := monthWindow(monthStart)
	transactions, err := s.store.ListTransactions(ctx, userID, &start, &end)
	if err != nil {
		return MonthlySummary{}, fmt.Errorf("failed to list transactions: %w", err)
	}
	return MonthlySummary{
		Summary:           summarize(transactions),
		ExpenseByCategory: expenseByCategory(transactions),
	}, nil
}

// AnalyticsOverview is the all-time income/expense/savings rollup.
type AnalyticsOverview struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Savings float64 `json:"savings"`
}

// GetAnalytics returns the user's all-time income, expense and savings.
func (s *FinanceService) GetAnalytics(ctx context.Context, userID string) (AnalyticsOverview, error) {
	summary, err := s.GetSummary(ctx, userID, "")
	if err != nil {
		return AnalyticsOverview{}, err
	}
	return AnalyticsOverview{
		Income:  summary.TotalIncome,
		Expense: summary.TotalExpense,
		Savings: summary.Balance,
	}, nil
}
