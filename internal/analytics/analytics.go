// Package analytics computes the dashboard aggregates: period totals,
// per-category expense breakdown, trend series and month-over-month
// comparison. Everything is recomputed per call from a transaction
// snapshot; there are no materialized rollups.
package analytics

import (
	"sort"
	"time"

	"github.com/duitku/duitku/internal/category"
	"github.com/duitku/duitku/internal/model"
)

// Range selects the dashboard's date filter.
type Range string

const (
	RangeAll    Range = "all"
	Range7Days  Range = "7d"
	Range30Days Range = "30d"
	Range90Days Range = "90d"
	RangeCustom Range = "custom"
)

// Filter bounds the transaction subset the aggregates run over.
// Start and End are only consulted for RangeCustom.
type Filter struct {
	Start time.Time
	End   time.Time
	Range Range
}

// Apply returns the transactions inside the filter's window. Relative
// ranges are trailing wall-clock windows from now; a custom range is
// inclusive on both ends with the end extended to 23:59:59 so a
// same-day range still matches that day's records.
func (f Filter) Apply(transactions []model.Transaction, now time.Time) []model.Transaction {
	var start, end time.Time
	switch f.Range {
	case Range7Days:
		start = now.Add(-7 * 24 * time.Hour)
	case Range30Days:
		start = now.Add(-30 * 24 * time.Hour)
	case Range90Days:
		start = now.Add(-90 * 24 * time.Hour)
	case RangeCustom:
		start = f.Start
		if !f.End.IsZero() {
			end = time.Date(f.End.Year(), f.End.Month(), f.End.Day(), 23, 59, 59, 0, f.End.Location())
		}
	default:
		return transactions
	}

	filtered := make([]model.Transaction, 0, len(transactions))
	for _, txn := range transactions {
		if !start.IsZero() && txn.CreatedAt.Before(start) {
			continue
		}
		if !end.IsZero() && txn.CreatedAt.After(end) {
			continue
		}
		filtered = append(filtered, txn)
	}
	return filtered
}

// Summary is the headline income/expense/balance card.
type Summary struct {
	Income  int64 `json:"income"`
	Expense int64 `json:"expense"`
	Balance int64 `json:"balance"`
	Count   int   `json:"count"`
}

// Summarize totals the given transactions.
func Summarize(transactions []model.Transaction) Summary {
	var s Summary
	for _, txn := range transactions {
		switch txn.Type {
		case model.TypeIncome:
			s.Income += txn.Amount
		case model.TypeExpense:
			s.Expense += txn.Amount
		}
		s.Count++
	}
	s.Balance = s.Income - s.Expense
	return s
}

// CategoryShare is one slice of the expense breakdown.
type CategoryShare struct {
	Category   string  `json:"category"`
	Label      string  `json:"label"`
	Color      string  `json:"color"`
	Amount     int64   `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// Breakdown groups expenses by canonical category, largest first.
// Percentage is each category's share of total expense.
func Breakdown(transactions []model.Transaction) []CategoryShare {
	totals := make(map[string]int64)
	var totalExpense int64
	for _, txn := range transactions {
		if txn.Type != model.TypeExpense {
			continue
		}
		key := category.Normalize(txn.Category)
		totals[key] += txn.Amount
		totalExpense += txn.Amount
	}

	shares := make([]CategoryShare, 0, len(totals))
	for key, amount := range totals {
		share := CategoryShare{
			Category: key,
			Label:    category.Label(key),
			Color:    category.Color(key),
			Amount:   amount,
		}
		if totalExpense > 0 {
			share.Percentage = float64(amount) / float64(totalExpense) * 100
		}
		shares = append(shares, share)
	}

	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Amount != shares[j].Amount {
			return shares[i].Amount > shares[j].Amount
		}
		return shares[i].Category < shares[j].Category
	})
	return shares
}

// TrendRange selects the bucketing of the trend chart.
type TrendRange string

const (
	TrendDaily   TrendRange = "daily"
	TrendWeekly  TrendRange = "weekly"
	TrendMonthly TrendRange = "monthly"
)

// TrendPoint is one bucket of a trend series. The bucket covers
// [Start, End): an instant on a shared boundary counts toward the
// later bucket, so consecutive buckets tile the covered span.
type TrendPoint struct {
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Label  string    `json:"label"`
	Amount int64     `json:"amount"`
}

// Trend buckets transactions of one type into a fixed series ending
// at now: 7 calendar days, 4 trailing 7-day windows, or 12 calendar
// months. The series is independent of any active dashboard filter.
func Trend(transactions []model.Transaction, txType model.TransactionType, rng TrendRange, now time.Time) []TrendPoint {
	var points []TrendPoint
	switch rng {
	case TrendWeekly:
		// Four trailing 7-day windows whose closing days sit 21, 14,
		// 7 and 0 days back from now. Each window runs through the
		// end of its closing day so the last one covers all of today.
		for offset := 21; offset >= 0; offset -= 7 {
			anchor := now.AddDate(0, 0, -offset)
			end := time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
			points = append(points, TrendPoint{
				Start: end.AddDate(0, 0, -7),
				End:   end,
				Label: anchor.Format("2 Jan"),
			})
		}
	case TrendMonthly:
		for offset := 11; offset >= 0; offset-- {
			start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -offset, 0)
			points = append(points, TrendPoint{
				Start: start,
				End:   start.AddDate(0, 1, 0),
				Label: start.Format("Jan 2006"),
			})
		}
	default:
		for offset := 6; offset >= 0; offset-- {
			day := now.AddDate(0, 0, -offset)
			start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, now.Location())
			points = append(points, TrendPoint{
				Start: start,
				End:   start.AddDate(0, 0, 1),
				Label: start.Format("2 Jan"),
			})
		}
	}

	for _, txn := range transactions {
		if txn.Type != txType {
			continue
		}
		for i := range points {
			if txn.CreatedAt.Before(points[i].Start) || !txn.CreatedAt.Before(points[i].End) {
				continue
			}
			points[i].Amount += txn.Amount
			break
		}
	}
	return points
}

// MonthComparison returns the signed percent change of this calendar
// month's expenses against the previous month's, or 0 when there was
// nothing to compare against.
func MonthComparison(transactions []model.Transaction, now time.Time) float64 {
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	prevMonth := thisMonth.AddDate(0, -1, 0)

	var current, previous int64
	for _, txn := range transactions {
		if txn.Type != model.TypeExpense {
			continue
		}
		switch {
		case !txn.CreatedAt.Before(thisMonth):
			current += txn.Amount
		case !txn.CreatedAt.Before(prevMonth):
			previous += txn.Amount
		}
	}

	if previous == 0 {
		return 0
	}
	return float64(current-previous) / float64(previous) * 100
}
