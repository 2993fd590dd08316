// Package model defines the core domain types shared across the application.
package model

import (
	"fmt"
	"time"
)

// TransactionType separates money coming in from money going out.
type TransactionType string

const (
	// TypeIncome marks a transaction that increases the balance.
	TypeIncome TransactionType = "income"
	// TypeExpense marks a transaction that decreases the balance.
	TypeExpense TransactionType = "expense"
)

// Valid reports whether t is one of the two known transaction types.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Source records which input modality produced a transaction.
type Source string

const (
	// SourceChat is a transaction extracted from a typed chat message.
	SourceChat Source = "chat"
	// SourceOCR is a transaction extracted from a receipt photo.
	SourceOCR Source = "ocr"
	// SourceVoice is a transaction extracted from a voice note.
	SourceVoice Source = "voice"
	// SourceManual is a transaction entered or imported by hand.
	SourceManual Source = "manual"
)

// Transaction is a single income or expense record owned by one user.
// Amount is in the smallest currency unit (whole rupiah) and is never
// negative; Category is always a canonical lower-case taxonomy key.
type Transaction struct {
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Source      Source          `json:"source"`
	Amount      int64           `json:"amount"`
}

// Validate checks the invariants that must hold before a transaction
// is persisted.
func (t *Transaction) Validate() error {
	if t.UserID == "" {
		return fmt.Errorf("transaction user id is required")
	}
	if !t.Type.Valid() {
		return fmt.Errorf("invalid transaction type %q", t.Type)
	}
	if t.Amount < 0 {
		return fmt.Errorf("transaction amount cannot be negative")
	}
	if t.Category == "" {
		return fmt.Errorf("transaction category is required")
	}
	return nil
}
