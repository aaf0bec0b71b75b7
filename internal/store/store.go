package store

import (
	"context"
	"errors"
	"time"

	"github.com/fintrack/backend/internal/model"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for all database operations used by the service.
type Store interface {
	// User operations
	CreateUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, userID string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)

	// Transaction operations
	CreateTransaction(ctx context.Context, txn *model.Transaction) error
	GetTransaction(ctx context.Context, txnID string) (*model.Transaction, error)
	DeleteTransaction(ctx context.Context, txnID string) error
	ListTransactions(ctx context.Context, userID string, startDate, endDate *time.Time) ([]*model.Transaction, error)

	// Budget operations
	UpsertBudget(ctx context.Context, budget *model.Budget) error
	GetBudgetByKey(ctx context.Context, userID, category, month string) (*model.Budget, error)
	ListBudgets(ctx context.Context, userID, month string) ([]*model.Budget, error)

	// Alert operations
	CreateAlert(ctx context.Context, alert *model.Alert) error
	GetAlertByKey(ctx context.Context, userID, category, month, alertType string) (*model.Alert, error)
	ListAlerts(ctx context.Context, userID, month string) ([]*model.Alert, error)
}
