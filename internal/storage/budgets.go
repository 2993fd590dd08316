package storage

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/duitku/duitku/internal/category"
	"github.com/duitku/duitku/internal/common"
	"github.com/duitku/duitku/internal/model"
)

// ListBudgets returns all budgets of a user, ordered by category.
func (s *SQLiteStorage) ListBudgets(ctx context.Context, userID string) ([]model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, category, amount, period, updated_at
		FROM budgets
		WHERE user_id = ?
		ORDER BY category`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var budgets []model.Budget
	for rows.Next() {
		var b model.Budget
		var period string
		if err := rows.Scan(&b.UserID, &b.Category, &b.Amount, &period, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		b.Period = model.Period(period)
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budgets: %w", err)
	}
	return budgets, nil
}

// UpsertBudget creates or replaces the budget for (user, category).
// The category is canonicalized and an unknown period is coerced to
// monthly, mirroring the budget form's defaults.
func (s *SQLiteStorage) UpsertBudget(ctx context.Context, budget *model.Budget) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if budget == nil {
		return fmt.Errorf("budget cannot be nil")
	}

	budget.Category = category.Normalize(budget.Category)
	budget.Period = model.NormalizePeriod(budget.Period)
	budget.UpdatedAt = time.Now()
	if err := budget.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO budgets (user_id, category, amount, period, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id, category) DO UPDATE SET
			amount = excluded.amount,
			period = excluded.period,
			updated_at = excluded.updated_at`,
		budget.UserID, budget.Category, budget.Amount, string(budget.Period), budget.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert budget: %w", err)
	}

	slog.Debug("upserted budget",
		"user", budget.UserID,
		"category", budget.Category,
		"amount", budget.Amount,
		"period", budget.Period)
	return nil
}

// DeleteBudget removes the budget for (user, category). The category
// is matched case-insensitively but never coerced to the fallback, so
// deleting an unknown category reports ErrNotFound instead of
// removing the user's fallback budget.
func (s *SQLiteStorage) DeleteBudget(ctx context.Context, userID, cat string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(userID, "userID"); err != nil {
		return err
	}
	if err := validateString(cat, "category"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		"DELETE FROM budgets WHERE user_id = ? AND category = ?",
		userID, strings.ToLower(strings.TrimSpace(cat)))
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: budget for %s", common.ErrNotFound, cat)
	}
	return nil
}
