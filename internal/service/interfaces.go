// Package service defines the interfaces for the persistence layer.
package service

import (
	"context"
	"time"

	"github.com/duitku/duitku/internal/model"
)

// TransactionFilter defines filtering options for transaction queries.
// Nil bounds mean unbounded; Limit <= 0 means no limit.
type TransactionFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
}

// TransactionUpdate carries the fields a user may edit. Nil fields are
// left untouched.
type TransactionUpdate struct {
	Amount      *int64
	Category    *string
	Description *string
	Date        *time.Time
}

// Storage is the contract for the record, budget, and chat-session
// stores. Every operation is scoped to a single user; no guarantees
// beyond per-operation atomicity.
type Storage interface {
	// Transaction operations
	SaveTransaction(ctx context.Context, txn *model.Transaction) error
	GetTransactionByID(ctx context.Context, userID, id string) (*model.Transaction, error)
	ListTransactions(ctx context.Context, userID string, filter TransactionFilter) ([]model.Transaction, error)
	UpdateTransaction(ctx context.Context, userID, id string, update TransactionUpdate) error
	DeleteTransaction(ctx context.Context, userID, id string) error
	DeleteAllTransactions(ctx context.Context, userID string) error

	// Budget operations
	ListBudgets(ctx context.Context, userID string) ([]model.Budget, error)
	UpsertBudget(ctx context.Context, budget *model.Budget) error
	DeleteBudget(ctx context.Context, userID, category string) error

	// Chat session operations
	GetChatHistory(ctx context.Context, userID string, limit int) ([]model.ChatMessage, error)
	AppendChatMessage(ctx context.Context, msg *model.ChatMessage) error
	ClearChatHistory(ctx context.Context, userID string) error

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}
