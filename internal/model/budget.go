package model

import (
	"fmt"
	"time"
)

// Period controls when a budget's spend counter resets.
type Period string

const (
	// PeriodWeekly resets every Monday at midnight local time.
	PeriodWeekly Period = "weekly"
	// PeriodMonthly resets on the first of every calendar month.
	PeriodMonthly Period = "monthly"
	// PeriodNone never resets; spend accumulates over all time.
	PeriodNone Period = "none"
)

// NormalizePeriod coerces unknown period values to monthly, matching
// the budget form's default.
func NormalizePeriod(p Period) Period {
	switch p {
	case PeriodWeekly, PeriodMonthly, PeriodNone:
		return p
	default:
		return PeriodMonthly
	}
}

// Budget is a per-category spending cap. A user has at most one budget
// per category; upserting replaces the existing row.
type Budget struct {
	UpdatedAt time.Time `json:"updated_at"`
	UserID    string    `json:"user_id"`
	Category  string    `json:"category"`
	Period    Period    `json:"period"`
	Amount    int64     `json:"amount"`
}

// Validate rejects budgets the UI should never submit: a missing
// category or a non-positive amount.
func (b *Budget) Validate() error {
	if b.UserID == "" {
		return fmt.Errorf("budget user id is required")
	}
	if b.Category == "" {
		return fmt.Errorf("budget category is required")
	}
	if b.Amount <= 0 {
		return fmt.Errorf("budget amount must be positive")
	}
	return nil
}
