package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/duitku/duitku/internal/category"
	"github.com/duitku/duitku/internal/common"
	"github.com/duitku/duitku/internal/model"
	"github.com/duitku/duitku/internal/service"
	"github.com/google/uuid"
)

// SaveTransaction inserts a new transaction. The category is
// canonicalized here so nothing below this boundary ever sees a
// non-taxonomy key; a missing date falls back to the insert time.
func (s *SQLiteStorage) SaveTransaction(ctx context.Context, txn *model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if txn == nil {
		return fmt.Errorf("transaction cannot be nil")
	}

	txn.Category = category.Normalize(txn.Category)
	if txn.ID == "" {
		txn.ID = uuid.NewString()
	}
	now := time.Now()
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = now
	}
	if txn.Date.IsZero() {
		txn.Date = txn.CreatedAt
	}
	if txn.Source == "" {
		txn.Source = model.SourceManual
	}
	if err := txn.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (id, user_id, type, category, amount, description, date, source, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		txn.ID, txn.UserID, string(txn.Type), txn.Category, txn.Amount,
		txn.Description, txn.Date, string(txn.Source), txn.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return fmt.Errorf("%w: transaction %s", common.ErrDuplicateEntry, txn.ID)
		}
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	slog.Debug("saved transaction",
		"id", txn.ID,
		"user", txn.UserID,
		"type", txn.Type,
		"category", txn.Category,
		"amount", txn.Amount)
	return nil
}

// GetTransactionByID returns one of the user's transactions.
func (s *SQLiteStorage) GetTransactionByID(ctx context.Context, userID, id string) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, type, category, amount, description, date, source, created_at
		FROM transactions
		WHERE user_id = ? AND id = ?`, userID, id)

	txn, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: transaction %s", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return txn, nil
}

// ListTransactions returns the user's transactions, newest first,
// optionally bounded by date and limited in count.
func (s *SQLiteStorage) ListTransactions(ctx context.Context, userID string, filter service.TransactionFilter) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, user_id, type, category, amount, description, date, source, created_at
		FROM transactions
		WHERE user_id = ?`
	args := []any{userID}

	if filter.StartDate != nil {
		query += " AND date >= ?"
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		query += " AND date <= ?"
		args = append(args, *filter.EndDate)
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	for rows.Next() {
		txn, scanErr := scanTransaction(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", scanErr)
		}
		transactions = append(transactions, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	slog.Debug("listed transactions", "user", userID, "count", len(transactions))
	return transactions, nil
}

// UpdateTransaction applies a user edit to one transaction. Only the
// provided fields change; an edited category is canonicalized.
func (s *SQLiteStorage) UpdateTransaction(ctx context.Context, userID, id string, update service.TransactionUpdate) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(userID, "userID"); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	var sets []string
	var args []any
	if update.Amount != nil {
		if *update.Amount < 0 {
			return fmt.Errorf("transaction amount cannot be negative")
		}
		sets = append(sets, "amount = ?")
		args = append(args, *update.Amount)
	}
	if update.Category != nil {
		sets = append(sets, "category = ?")
		args = append(args, category.Normalize(*update.Category))
	}
	if update.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *update.Description)
	}
	if update.Date != nil {
		sets = append(sets, "date = ?")
		args = append(args, *update.Date)
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, userID, id)
	result, err := s.db.ExecContext(ctx,
		fmt.Sprintf("UPDATE transactions SET %s WHERE user_id = ? AND id = ?", strings.Join(sets, ", ")),
		args...)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: transaction %s", common.ErrNotFound, id)
	}
	return nil
}

// DeleteTransaction removes one of the user's transactions.
func (s *SQLiteStorage) DeleteTransaction(ctx context.Context, userID, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(userID, "userID"); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		"DELETE FROM transactions WHERE user_id = ? AND id = ?", userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: transaction %s", common.ErrNotFound, id)
	}
	return nil
}

// DeleteAllTransactions wipes the user's whole transaction history.
func (s *SQLiteStorage) DeleteAllTransactions(ctx context.Context, userID string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(userID, "userID"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, "DELETE FROM transactions WHERE user_id = ?", userID)
	if err != nil {
		return fmt.Errorf("failed to delete transactions: %w", err)
	}

	affected, _ := result.RowsAffected()
	slog.Info("deleted all transactions", "user", userID, "count", affected)
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row scanner) (*model.Transaction, error) {
	var txn model.Transaction
	var txType, source string
	if err := row.Scan(&txn.ID, &txn.UserID, &txType, &txn.Category, &txn.Amount,
		&txn.Description, &txn.Date, &source, &txn.CreatedAt); err != nil {
		return nil, err
	}
	txn.Type = model.TransactionType(txType)
	txn.Source = model.Source(source)
	return &txn, nil
}
