// Package report renders a user's ledger into exportable forms: a CSV
// dump and the monthly summary rows the sheets writer uploads.
package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/duitku/duitku/internal/analytics"
	"github.com/duitku/duitku/internal/model"
)

// ErrNoTransactions is returned when there is nothing to export, so
// callers can tell an empty ledger apart from a failed write.
var ErrNoTransactions = errors.New("no transactions to export")

var csvHeader = []string{"Date", "Type", "Category", "Amount", "Description", "Source"}

// WriteCSV writes the transactions as CSV, header first. Exporting an
// empty ledger returns ErrNoTransactions so callers can tell the user
// instead of producing a header-only file.
func WriteCSV(w io.Writer, transactions []model.Transaction) error {
	if len(transactions) == 0 {
		return ErrNoTransactions
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, txn := range transactions {
		record := []string{
			txn.Date.Format("2006-01-02"),
			string(txn.Type),
			txn.Category,
			strconv.FormatInt(txn.Amount, 10),
			txn.Description,
			string(txn.Source),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// ExportFilename names a CSV download for the given moment.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("duitku-export-%s.csv", now.Format("2006-01-02"))
}

// MonthlySummary is the report block for one calendar month.
type MonthlySummary struct {
	Month     time.Time
	Summary   analytics.Summary
	Breakdown []analytics.CategoryShare
}

// BuildMonthlySummary aggregates one calendar month of the given
// transactions, selected by created-at like the dashboard does.
func BuildMonthlySummary(transactions []model.Transaction, month time.Time) MonthlySummary {
	start := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	end := start.AddDate(0, 1, 0)

	var inMonth []model.Transaction
	for _, txn := range transactions {
		if txn.CreatedAt.Before(start) || !txn.CreatedAt.Before(end) {
			continue
		}
		inMonth = append(inMonth, txn)
	}

	return MonthlySummary{
		Month:     start,
		Summary:   analytics.Summarize(inMonth),
		Breakdown: analytics.Breakdown(inMonth),
	}
}
