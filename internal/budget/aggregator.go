// Package budget evaluates per-category spending limits against the
// transaction history. All computation is done in-process over the
// caller's transaction slice so the same logic serves the HTTP API
// and the CLI without extra queries.
package budget

import (
	"time"

	"github.com/duitku/duitku/internal/category"
	"github.com/duitku/duitku/internal/model"
)

// Status is one budget's standing inside its current window.
type Status struct {
	WindowStart time.Time `json:"windowStart"`
	Category    string    `json:"category"`
	Label       string    `json:"label"`
	Period      string    `json:"period"`
	Amount      int64     `json:"amount"`
	Spent       int64     `json:"spent"`
	Remaining   int64     `json:"remaining"`
	Percentage  float64   `json:"percentage"`
	IsOver      bool      `json:"isOver"`
}

// WindowStart returns the beginning of the current budget window at
// the given reference time. Weekly windows anchor on the most recent
// Monday at 00:00 local time, monthly windows on the first of the
// month. A budget without a period covers all history.
func WindowStart(period model.Period, now time.Time) time.Time {
	switch period {
	case model.PeriodWeekly:
		// Monday anchor. Sunday counts as six days into the week,
		// not the start of a new one.
		days := int(now.Weekday()) - int(time.Monday)
		if days < 0 {
			days = 6
		}
		monday := now.AddDate(0, 0, -days)
		return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, now.Location())
	case model.PeriodMonthly:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	default:
		return time.Time{}
	}
}

// Evaluate computes the standing of each budget against the given
// transactions. Only expenses recorded inside the budget's current
// window count toward spending; like the dashboard aggregates, the
// window selects on when the record was created, not on a backdated
// transaction date. Percentage is clamped to [0, 100] even when the
// budget is exceeded; IsOver carries the overflow.
func Evaluate(budgets []model.Budget, transactions []model.Transaction, now time.Time) []Status {
	statuses := make([]Status, 0, len(budgets))
	for _, b := range budgets {
		start := WindowStart(b.Period, now)

		var spent int64
		for _, txn := range transactions {
			if txn.Type != model.TypeExpense || txn.Category != b.Category {
				continue
			}
			if txn.CreatedAt.Before(start) {
				continue
			}
			spent += txn.Amount
		}

		pct := 0.0
		if b.Amount > 0 {
			pct = float64(spent) / float64(b.Amount) * 100
		}
		if pct > 100 {
			pct = 100
		}

		statuses = append(statuses, Status{
			Category:    b.Category,
			Label:       category.Label(b.Category),
			Period:      string(b.Period),
			Amount:      b.Amount,
			Spent:       spent,
			Remaining:   b.Amount - spent,
			Percentage:  pct,
			IsOver:      spent > b.Amount,
			WindowStart: start,
		})
	}
	return statuses
}
