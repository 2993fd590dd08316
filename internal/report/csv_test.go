package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/duitku/duitku/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV(t *testing.T) {
	date := time.Date(2024, 6, 15, 10, 0, 0, 0, time.Local)
	transactions := []model.Transaction{
		{
			Date:        date,
			Type:        model.TypeExpense,
			Category:    "fnb",
			Amount:      15000,
			Description: "Makan soto",
			Source:      model.SourceChat,
		},
		{
			Date:        date,
			Type:        model.TypeIncome,
			Category:    "gaji",
			Amount:      5000000,
			Description: `Gaji bulan "Juni", transfer`,
			Source:      model.SourceManual,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, transactions))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"Date", "Type", "Category", "Amount", "Description", "Source"}, records[0])
	assert.Equal(t, []string{"2024-06-15", "expense", "fnb", "15000", "Makan soto", "chat"}, records[1])
	// Quotes and commas survive the round trip.
	assert.Equal(t, `Gaji bulan "Juni", transfer`, records[2][4])
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, nil)
	require.ErrorIs(t, err, ErrNoTransactions)
	assert.Zero(t, buf.Len())
}

func TestWriteCSVWriteFailureIsNotEmptyLedger(t *testing.T) {
	transactions := []model.Transaction{
		{Date: time.Date(2024, 6, 15, 0, 0, 0, 0, time.Local), Type: model.TypeExpense, Category: "fnb", Amount: 15000, Source: model.SourceChat},
	}
	err := WriteCSV(failingWriter{}, transactions)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoTransactions)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, fmt.Errorf("disk full")
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.Local)
	name := ExportFilename(now)
	assert.Equal(t, "duitku-export-2024-06-15.csv", name)
	assert.True(t, strings.HasSuffix(name, ".csv"))
}

func TestBuildMonthlySummary(t *testing.T) {
	month := time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)
	transactions := []model.Transaction{
		{Type: model.TypeIncome, Category: "gaji", Amount: 5000000, CreatedAt: time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local)},
		{Type: model.TypeExpense, Category: "fnb", Amount: 300000, CreatedAt: time.Date(2024, 6, 10, 12, 0, 0, 0, time.Local)},
		{Type: model.TypeExpense, Category: "fnb", Amount: 100000, CreatedAt: time.Date(2024, 6, 30, 23, 0, 0, 0, time.Local)},
		// Previous month, excluded.
		{Type: model.TypeExpense, Category: "transport", Amount: 999999, CreatedAt: time.Date(2024, 5, 31, 23, 0, 0, 0, time.Local)},
	}

	got := BuildMonthlySummary(transactions, month)
	assert.Equal(t, month, got.Month)
	assert.Equal(t, int64(5000000), got.Summary.Income)
	assert.Equal(t, int64(400000), got.Summary.Expense)
	require.Len(t, got.Breakdown, 1)
	assert.Equal(t, "fnb", got.Breakdown[0].Category)
}
