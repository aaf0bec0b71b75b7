package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fintrack/backend/internal/model"
)

// MemoryStore implements the Store interface with in-memory storage.
// It backs local development and tests.
type MemoryStore struct {
	mu sync.RWMutex

	users        map[string]*model.User
	transactions map[string]*model.Transaction
	budgets      map[string]*model.Budget
	alerts       map[string]*model.Alert
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:        make(map[string]*model.User),
		transactions: make(map[string]*model.Transaction),
		budgets:      make(map[string]*model.Budget),
		alerts:       make(map[string]*model.Alert),
	}
}

// User operations

func (m *MemoryStore) CreateUser(ctx context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if user.Id == "" {
		user.Id = uuid.New().String()
	}
	for _, existing := range m.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return fmt.Errorf("user already exists: %s", user.Email)
		}
	}

	m.users[user.Id] = user
	return nil
}

func (m *MemoryStore) GetUser(ctx context.Context, userID string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[userID]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}
	return user, nil
}

func (m *MemoryStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, user := range m.users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", email, ErrNotFound)
}

// Transaction operations

func (m *MemoryStore) CreateTransaction(ctx context.Context, txn *model.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if txn.Id == "" {
		txn.Id = uuid.New().String()
	}
	m.transactions[txn.Id] = txn
	return nil
}

func (m *MemoryStore) GetTransaction(ctx context.Context, txnID string) (*model.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	txn, ok := m.transactions[txnID]
	if !ok {
		return nil, fmt.Errorf("transaction %s: %w", txnID, ErrNotFound)
	}
	return txn, nil
}

func (m *MemoryStore) DeleteTransaction(ctx context.Context, txnID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.transactions[txnID]; !ok {
		return fmt.Errorf("transaction %s: %w", txnID, ErrNotFound)
	}
	delete(m.transactions, txnID)
	return nil
}

// ListTransactions returns a user's transactions, newest first. The date
// window is half-open: startDate inclusive, endDate exclusive.
func (m *MemoryStore) ListTransactions(ctx context.Context, userID string, startDate, endDate *time.Time) ([]*model.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*model.Transaction
	for _, txn := range m.transactions {
		if userID != "" && txn.UserId != userID {
			continue
		}
		if startDate != nil && txn.Date.Before(*startDate) {
			continue
		}
		if endDate != nil && !txn.Date.Before(*endDate) {
			continue
		}
		result = append(result, txn)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.After(result[j].Date)
	})
	return result, nil
}

// Budget operations

func (m *MemoryStore) UpsertBudget(ctx context.Context, budget *model.Budget) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.budgets {
		if existing.UserId == budget.UserId &&
			existing.Category == budget.Category &&
			existing.Month == budget.Month {
			existing.MonthlyLimit = budget.MonthlyLimit
			existing.UpdatedAt = budget.UpdatedAt
			*budget = *existing
			return nil
		}
	}

	if budget.Id == "" {
		budget.Id = uuid.New().String()
	}
	m.budgets[budget.Id] = budget
	return nil
}

func (m *MemoryStore) GetBudgetByKey(ctx context.Context, userID, category, month string) (*model.Budget, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, budget := range m.budgets {
		if budget.UserId == userID && budget.Category == category && budget.Month == month {
			return budget, nil
		}
	}
	return nil, fmt.Errorf("budget %s/%s: %w", category, month, ErrNotFound)
}

func (m *MemoryStore) ListBudgets(ctx context.Context, userID, month string) ([]*model.Budget, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*model.Budget
	for _, budget := range m.budgets {
		if userID != "" && budget.UserId != userID {
			continue
		}
		if month != "" && budget.Month != month {
			continue
		}
		result = append(result, budget)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Category < result[j].Category
	})
	return result, nil
}

// Alert operations

func (m *MemoryStore) CreateAlert(ctx context.Context, alert *model.Alert) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if alert.Id == "" {
		alert.Id = uuid.New().String()
	}
	m.alerts[alert.Id] = alert
	return nil
}

func (m *MemoryStore) GetAlertByKey(ctx context.Context, userID, category, month, alertType string) (*model.Alert, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, alert := range m.alerts {
		if alert.UserId == userID && alert.Category == category &&
			alert.Month == month && alert.Type == alertType {
			return alert, nil
		}
	}
	return nil, fmt.Errorf("alert %s/%s/%s: %w", category, month, alertType, ErrNotFound)
}

func (m *MemoryStore) ListAlerts(ctx context.Context, userID, month string) ([]*model.Alert, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*model.Alert
	for _, alert := range m.alerts {
		if userID != "" && alert.UserId != userID {
			continue
		}
		if month != "" && alert.Month != month {
			continue
		}
		result = append(result, alert)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}
