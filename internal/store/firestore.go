package store

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/fintrack/backend/internal/model"
)

// Firestore collection names.
const (
	usersCollection        = "users"
	transactionsCollection = "transactions"
	budgetsCollection      = "budgets"
	alertsCollection       = "alerts"
)

// FirestoreStore implements the Store interface using Firestore.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) Store {
	return &FirestoreStore{
		client: client,
	}
}

// budgetDocID builds the deterministic document ID enforcing budget
// uniqueness per (user, category, month).
func budgetDocID(userID, category, month string) string {
	return fmt.Sprintf("%s_%s_%s", userID, category, month)
}

// alertDocID builds the deterministic document ID enforcing alert
// uniqueness per (user, category, month, type). Concurrent duplicate
// writes collapse onto the same document.
func alertDocID(userID, category, month, alertType string) string {
	return fmt.Sprintf("%s_%s_%s_%s", userID, category, month, alertType)
}

func notFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

// User operations

func (s *FirestoreStore) CreateUser(ctx context.Context, user *model.User) error {
	_, err := s.client.Collection(usersCollection).Doc(user.Id).Set(ctx, user)
	return err
}

func (s *FirestoreStore) GetUser(ctx context.Context, userID string) (*model.User, error) {
	doc, err := s.client.Collection(usersCollection).Doc(userID).Get(ctx)
	if err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	var user model.User
	if err := doc.DataTo(&user); err != nil {
		return nil, fmt.Errorf("failed to parse user: %w", err)
	}
	return &user, nil
}

func (s *FirestoreStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	// NOTE: Field names must match Go struct field names (PascalCase) as
	// that's how Firestore serializes the model structs.
	docs, err := s.client.Collection(usersCollection).
		Where("Email", "==", email).
		Limit(1).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("query user by email: %w", err)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("user %s: %w", email, ErrNotFound)
	}

	var user model.User
	if err := docs[0].DataTo(&user); err != nil {
		return nil, fmt.Errorf("failed to parse user: %w", err)
	}
	return &user, nil
}

// Transaction operations

func (s *FirestoreStore) CreateTransaction(ctx context.Context, txn *model.Transaction) error {
	_, err := s.client.Collection(transactionsCollection).Doc(txn.Id).Set(ctx, txn)
	return err
}

func (s *FirestoreStore) GetTransaction(ctx context.Context, txnID string) (*model.Transaction, error) {
	doc, err := s.client.Collection(transactionsCollection).Doc(txnID).Get(ctx)
	if err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("transaction %s: %w", txnID, ErrNotFound)
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}

	var txn model.Transaction
	if err := doc.DataTo(&txn); err != nil {
		return nil, fmt.Errorf("failed to parse transaction: %w", err)
	}
	return &txn, nil
}

func (s *FirestoreStore) DeleteTransaction(ctx context.Context, txnID string) error {
	_, err := s.client.Collection(transactionsCollection).Doc(txnID).Delete(ctx)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

// ListTransactions lists a user's transactions newest first. The date
// window is half-open: startDate inclusive, endDate exclusive.
func (s *FirestoreStore) ListTransactions(ctx context.Context, userID string, startDate, endDate *time.Time) ([]*model.Transaction, error) {
	query := s.client.Collection(transactionsCollection).
		Where("UserId", "==", userID)

	if startDate != nil {
		query = query.Where("Date", ">=", *startDate)
	}
	if endDate != nil {
		query = query.Where("Date", "<", *endDate)
	}

	// Firestore requires OrderBy on the inequality field first.
	docs, err := query.OrderBy("Date", firestore.Desc).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	transactions := make([]*model.Transaction, 0, len(docs))
	for _, doc := range docs {
		var txn model.Transaction
		if err := doc.DataTo(&txn); err != nil {
			return nil, fmt.Errorf("failed to parse transaction: %w", err)
		}
		transactions = append(transactions, &txn)
	}
	return transactions, nil
}

// Budget operations

func (s *FirestoreStore) UpsertBudget(ctx context.Context, budget *model.Budget) error {
	docID := budgetDocID(budget.UserId, budget.Category, budget.Month)

	existing, err := s.GetBudgetByKey(ctx, budget.UserId, budget.Category, budget.Month)
	if err == nil {
		budget.Id = existing.Id
		budget.CreatedAt = existing.CreatedAt
	} else {
		budget.Id = docID
	}

	_, err = s.client.Collection(budgetsCollection).Doc(docID).Set(ctx, budget)
	return err
}

func (s *FirestoreStore) GetBudgetByKey(ctx context.Context, userID, category, month string) (*model.Budget, error) {
	doc, err := s.client.Collection(budgetsCollection).
		Doc(budgetDocID(userID, category, month)).Get(ctx)
	if err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("budget %s/%s: %w", category, month, ErrNotFound)
		}
		return nil, fmt.Errorf("get budget: %w", err)
	}

	var budget model.Budget
	if err := doc.DataTo(&budget); err != nil {
		return nil, fmt.Errorf("failed to parse budget: %w", err)
	}
	return &budget, nil
}

func (s *FirestoreStore) ListBudgets(ctx context.Context, userID, month string) ([]*model.Budget, error) {
	query := s.client.Collection(budgetsCollection).
		Where("UserId", "==", userID)
	if month != "" {
		query = query.Where("Month", "==", month)
	}

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}

	budgets := make([]*model.Budget, 0, len(docs))
	for _, doc := range docs {
		var budget model.Budget
		if err := doc.DataTo(&budget); err != nil {
			return nil, fmt.Errorf("failed to parse budget: %w", err)
		}
		budgets = append(budgets, &budget)
	}
	return budgets, nil
}

// Alert operations

func (s *FirestoreStore) CreateAlert(ctx context.Context, alert *model.Alert) error {
	docID := alertDocID(alert.UserId, alert.Category, alert.Month, alert.Type)
	alert.Id = docID
	_, err := s.client.Collection(alertsCollection).Doc(docID).Set(ctx, alert)
	return err
}

func (s *FirestoreStore) GetAlertByKey(ctx context.Context, userID, category, month, alertType string) (*model.Alert, error) {
	doc, err := s.client.Collection(alertsCollection).
		Doc(alertDocID(userID, category, month, alertType)).Get(ctx)
	if err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("alert %s/%s/%s: %w", category, month, alertType, ErrNotFound)
		}
		return nil, fmt.Errorf("get alert: %w", err)
	}

	var alert model.Alert
	if err := doc.DataTo(&alert); err != nil {
		return nil, fmt.Errorf("failed to parse alert: %w", err)
	}
	return &alert, nil
}

func (s *FirestoreStore) ListAlerts(ctx context.Context, userID, month string) ([]*model.Alert, error) {
	query := s.client.Collection(alertsCollection).
		Where("UserId", "==", userID)
	if month != "" {
		query = query.Where("Month", "==", month)
	}

	docs, err := query.OrderBy("CreatedAt", firestore.Desc).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}

	alerts := make([]*model.Alert, 0, len(docs))
	for _, doc := range docs {
		var alert model.Alert
		if err := doc.DataTo(&alert); err != nil {
			return nil, fmt.Errorf("failed to parse alert: %w", err)
		}
		alerts = append(alerts, &alert)
	}
	return alerts, nil
}
