package analytics

import (
	"testing"
	"time"

	"github.com/duitku/duitku/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func txn(t model.TransactionType, cat string, amount int64, createdAt time.Time) model.Transaction {
	return model.Transaction{
		Type:      t,
		Category:  cat,
		Amount:    amount,
		CreatedAt: createdAt,
		Date:      createdAt,
	}
}

func TestFilterApply(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.Local)
	transactions := []model.Transaction{
		txn(model.TypeExpense, "fnb", 100, now.Add(-2*24*time.Hour)),
		txn(model.TypeExpense, "fnb", 200, now.Add(-20*24*time.Hour)),
		txn(model.TypeExpense, "fnb", 300, now.Add(-60*24*time.Hour)),
	}

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{name: "all", filter: Filter{Range: RangeAll}, want: 3},
		{name: "7d", filter: Filter{Range: Range7Days}, want: 1},
		{name: "30d", filter: Filter{Range: Range30Days}, want: 2},
		{name: "90d", filter: Filter{Range: Range90Days}, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, tt.filter.Apply(transactions, now), tt.want)
		})
	}
}

func TestFilterCustomEndIsInclusive(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.Local)
	transactions := []model.Transaction{
		// Late evening on the range's last day must still match.
		txn(model.TypeExpense, "fnb", 100, time.Date(2024, 6, 10, 22, 30, 0, 0, time.Local)),
		txn(model.TypeExpense, "fnb", 200, time.Date(2024, 6, 11, 1, 0, 0, 0, time.Local)),
	}

	filter := Filter{
		Range: RangeCustom,
		Start: time.Date(2024, 6, 10, 0, 0, 0, 0, time.Local),
		End:   time.Date(2024, 6, 10, 0, 0, 0, 0, time.Local),
	}
	got := filter.Apply(transactions, now)
	require.Len(t, got, 1)
	assert.Equal(t, int64(100), got[0].Amount)
}

func TestSummarize(t *testing.T) {
	now := time.Now()
	transactions := []model.Transaction{
		txn(model.TypeIncome, "gaji", 5000000, now),
		txn(model.TypeExpense, "fnb", 150000, now),
		txn(model.TypeExpense, "transport", 50000, now),
	}

	s := Summarize(transactions)
	assert.Equal(t, int64(5000000), s.Income)
	assert.Equal(t, int64(200000), s.Expense)
	assert.Equal(t, int64(4800000), s.Balance)
	assert.Equal(t, 3, s.Count)
}

func TestBreakdown(t *testing.T) {
	now := time.Now()
	transactions := []model.Transaction{
		txn(model.TypeExpense, "fnb", 300000, now),
		txn(model.TypeExpense, "transport", 100000, now),
		txn(model.TypeExpense, "fnb", 100000, now),
		txn(model.TypeIncome, "gaji", 9000000, now),
	}

	shares := Breakdown(transactions)
	require.Len(t, shares, 2)

	assert.Equal(t, "fnb", shares[0].Category)
	assert.Equal(t, int64(400000), shares[0].Amount)
	assert.InDelta(t, 80.0, shares[0].Percentage, 0.001)
	assert.Equal(t, "Makanan & Minuman", shares[0].Label)
	assert.NotEmpty(t, shares[0].Color)

	assert.Equal(t, "transport", shares[1].Category)
	assert.InDelta(t, 20.0, shares[1].Percentage, 0.001)
}

func TestBreakdownEmpty(t *testing.T) {
	assert.Empty(t, Breakdown(nil))
}

func TestTrendDaily(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.Local)
	transactions := []model.Transaction{
		txn(model.TypeExpense, "fnb", 100, time.Date(2024, 6, 15, 8, 0, 0, 0, time.Local)),
		txn(model.TypeExpense, "fnb", 200, time.Date(2024, 6, 13, 8, 0, 0, 0, time.Local)),
		// Outside the 7-day span.
		txn(model.TypeExpense, "fnb", 999, time.Date(2024, 6, 1, 8, 0, 0, 0, time.Local)),
		// Wrong type.
		txn(model.TypeIncome, "gaji", 500, time.Date(2024, 6, 15, 8, 0, 0, 0, time.Local)),
	}

	points := Trend(transactions, model.TypeExpense, TrendDaily, now)
	require.Len(t, points, 7)

	assert.Equal(t, int64(100), points[6].Amount)
	assert.Equal(t, int64(200), points[4].Amount)
	assert.Equal(t, int64(0), points[0].Amount)
}

func TestTrendWeeklyTilesSpan(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.Local)

	// One transaction every day over the covered 28-day span. Each
	// must land in exactly one bucket.
	var transactions []model.Transaction
	for i := 0; i < 28; i++ {
		transactions = append(transactions,
			txn(model.TypeExpense, "fnb", 10, now.AddDate(0, 0, -i)))
	}

	points := Trend(transactions, model.TypeExpense, TrendWeekly, now)
	require.Len(t, points, 4)

	var total int64
	for _, p := range points {
		total += p.Amount
	}
	assert.Equal(t, int64(280), total)
	for _, p := range points {
		assert.Equal(t, int64(70), p.Amount)
	}
}

func TestTrendBoundaryBelongsToLaterBucket(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.Local)

	// Exactly midnight sits on the boundary between two daily buckets
	// and must count toward the day it starts.
	daily := Trend([]model.Transaction{
		txn(model.TypeExpense, "fnb", 100, time.Date(2024, 6, 14, 0, 0, 0, 0, time.Local)),
	}, model.TypeExpense, TrendDaily, now)
	require.Len(t, daily, 7)
	assert.Equal(t, int64(0), daily[4].Amount)
	assert.Equal(t, int64(100), daily[5].Amount)

	// Same rule between weekly windows.
	weekly := Trend([]model.Transaction{
		txn(model.TypeExpense, "fnb", 200, time.Date(2024, 6, 9, 0, 0, 0, 0, time.Local)),
	}, model.TypeExpense, TrendWeekly, now)
	require.Len(t, weekly, 4)
	assert.Equal(t, int64(0), weekly[2].Amount)
	assert.Equal(t, int64(200), weekly[3].Amount)
}

func TestTrendMonthly(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.Local)
	transactions := []model.Transaction{
		txn(model.TypeIncome, "gaji", 5000000, time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local)),
		txn(model.TypeIncome, "gaji", 5000000, time.Date(2024, 5, 1, 9, 0, 0, 0, time.Local)),
		// Thirteen months ago, outside the series.
		txn(model.TypeIncome, "gaji", 5000000, time.Date(2023, 5, 1, 9, 0, 0, 0, time.Local)),
	}

	points := Trend(transactions, model.TypeIncome, TrendMonthly, now)
	require.Len(t, points, 12)

	assert.Equal(t, "Jun 2024", points[11].Label)
	assert.Equal(t, int64(5000000), points[11].Amount)
	assert.Equal(t, int64(5000000), points[10].Amount)
	assert.Equal(t, int64(0), points[0].Amount)
}

func TestMonthComparison(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.Local)

	tests := []struct {
		name         string
		transactions []model.Transaction
		want         float64
	}{
		{
			name: "increase",
			transactions: []model.Transaction{
				txn(model.TypeExpense, "fnb", 150, time.Date(2024, 6, 5, 0, 0, 0, 0, time.Local)),
				txn(model.TypeExpense, "fnb", 100, time.Date(2024, 5, 5, 0, 0, 0, 0, time.Local)),
			},
			want: 50,
		},
		{
			name: "decrease",
			transactions: []model.Transaction{
				txn(model.TypeExpense, "fnb", 50, time.Date(2024, 6, 5, 0, 0, 0, 0, time.Local)),
				txn(model.TypeExpense, "fnb", 200, time.Date(2024, 5, 5, 0, 0, 0, 0, time.Local)),
			},
			want: -75,
		},
		{
			name: "zero prior month",
			transactions: []model.Transaction{
				txn(model.TypeExpense, "fnb", 500, time.Date(2024, 6, 5, 0, 0, 0, 0, time.Local)),
			},
			want: 0,
		},
		{
			name: "income ignored",
			transactions: []model.Transaction{
				txn(model.TypeIncome, "gaji", 150, time.Date(2024, 6, 5, 0, 0, 0, 0, time.Local)),
				txn(model.TypeIncome, "gaji", 100, time.Date(2024, 5, 5, 0, 0, 0, 0, time.Local)),
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, MonthComparison(tt.transactions, now), 0.001)
		})
	}
}
