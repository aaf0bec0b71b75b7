// Package model defines the documents persisted in the store.
package model

import "time"

// Transaction types. Anything other than TypeIncome is counted as an
// expense by the aggregation layer, matching how records were classified
// historically.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Budget status / alert types.
const (
	StatusSafe     = "SAFE"
	StatusWarning  = "WARNING"
	StatusExceeded = "EXCEEDED"
)

// User is an account holder. PasswordHash is never serialized to clients.
type User struct {
	Id           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Transaction is a single income or expense record. Transactions are
// immutable once created; the only mutation is deletion by the owner.
type Transaction struct {
	Id          string    `json:"id"`
	UserId      string    `json:"userId"`
	Amount      float64   `json:"amount"`
	Type        string    `json:"type"`
	Category    string    `json:"category"`
	Date        time.Time `json:"date"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Budget is a per-user, per-category spending ceiling for one month.
// Month uses the "YYYY-MM" key format. There is at most one budget per
// (user, category, month); re-setting overwrites the limit.
type Budget struct {
	Id           string    `json:"id"`
	UserId       string    `json:"userId"`
	Category     string    `json:"category"`
	Month        string    `json:"month"`
	MonthlyLimit float64   `json:"monthlyLimit"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Alert records that a budget crossed a warning or exceeded threshold.
// Alerts are append-only and unique per (user, category, month, type).
type Alert struct {
	Id        string    `json:"id"`
	UserId    string    `json:"userId"`
	Category  string    `json:"category"`
	Month     string    `json:"month"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
