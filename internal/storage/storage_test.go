package storage

import (
	"context"
	"testing"
	"time"

	"github.com/duitku/duitku/internal/category"
	"github.com/duitku/duitku/internal/common"
	"github.com/duitku/duitku/internal/model"
	"github.com/duitku/duitku/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))

	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSaveTransactionNormalizesCategory(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		rawCat   string
		wantCat  string
	}{
		{name: "mixed case known key", rawCat: "FnB", wantCat: "fnb"},
		{name: "unknown key falls back", rawCat: "Crypto", wantCat: category.Fallback},
		{name: "empty key falls back", rawCat: "", wantCat: category.Fallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := &model.Transaction{
				UserID:   "u1",
				Type:     model.TypeExpense,
				Category: tt.rawCat,
				Amount:   1000,
				Source:   model.SourceChat,
			}
			require.NoError(t, store.SaveTransaction(ctx, txn))

			got, err := store.GetTransactionByID(ctx, "u1", txn.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCat, got.Category)
			assert.True(t, category.Known(got.Category))
		})
	}
}

func TestSaveTransactionDefaults(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	txn := &model.Transaction{
		UserID:   "u1",
		Type:     model.TypeIncome,
		Category: "gaji",
		Amount:   5000000,
	}
	require.NoError(t, store.SaveTransaction(ctx, txn))

	assert.NotEmpty(t, txn.ID)
	assert.False(t, txn.CreatedAt.IsZero())
	assert.Equal(t, txn.CreatedAt, txn.Date)
	assert.Equal(t, model.SourceManual, txn.Source)
}

func TestSaveTransactionRejectsInvalid(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	err := store.SaveTransaction(ctx, &model.Transaction{
		UserID:   "u1",
		Type:     "transfer",
		Category: "fnb",
		Amount:   10,
	})
	assert.Error(t, err)

	err = store.SaveTransaction(ctx, &model.Transaction{
		UserID:   "u1",
		Type:     model.TypeExpense,
		Category: "fnb",
		Amount:   -5,
	})
	assert.Error(t, err)
}

func TestListTransactionsFilter(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	dates := []time.Time{
		time.Date(2024, 1, 10, 12, 0, 0, 0, time.Local),
		time.Date(2024, 2, 10, 12, 0, 0, 0, time.Local),
		time.Date(2024, 3, 10, 12, 0, 0, 0, time.Local),
	}
	for _, d := range dates {
		require.NoError(t, store.SaveTransaction(ctx, &model.Transaction{
			UserID:   "u1",
			Type:     model.TypeExpense,
			Category: "fnb",
			Amount:   100,
			Date:     d,
		}))
	}
	// Another user's record must never leak into the list.
	require.NoError(t, store.SaveTransaction(ctx, &model.Transaction{
		UserID:   "u2",
		Type:     model.TypeExpense,
		Category: "fnb",
		Amount:   999,
	}))

	all, err := store.ListTransactions(ctx, "u1", service.TransactionFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(2024, 2, 28, 23, 59, 59, 0, time.Local)
	feb, err := store.ListTransactions(ctx, "u1", service.TransactionFilter{StartDate: &start, EndDate: &end})
	require.NoError(t, err)
	require.Len(t, feb, 1)
	assert.Equal(t, dates[1], feb[0].Date.Local())

	limited, err := store.ListTransactions(ctx, "u1", service.TransactionFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestUpdateTransaction(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	txn := &model.Transaction{
		UserID:   "u1",
		Type:     model.TypeExpense,
		Category: "fnb",
		Amount:   15000,
	}
	require.NoError(t, store.SaveTransaction(ctx, txn))

	newAmount := int64(20000)
	newCat := "Transport"
	newDesc := "Gojek ke kantor"
	require.NoError(t, store.UpdateTransaction(ctx, "u1", txn.ID, service.TransactionUpdate{
		Amount:      &newAmount,
		Category:    &newCat,
		Description: &newDesc,
	}))

	got, err := store.GetTransactionByID(ctx, "u1", txn.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(20000), got.Amount)
	assert.Equal(t, "transport", got.Category)
	assert.Equal(t, "Gojek ke kantor", got.Description)

	err = store.UpdateTransaction(ctx, "u1", "missing", service.TransactionUpdate{Amount: &newAmount})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestDeleteTransaction(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	txn := &model.Transaction{UserID: "u1", Type: model.TypeExpense, Category: "fnb", Amount: 100}
	require.NoError(t, store.SaveTransaction(ctx, txn))

	// Deleting as the wrong user must not touch the row.
	assert.ErrorIs(t, store.DeleteTransaction(ctx, "u2", txn.ID), common.ErrNotFound)
	require.NoError(t, store.DeleteTransaction(ctx, "u1", txn.ID))

	_, err := store.GetTransactionByID(ctx, "u1", txn.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestDeleteAllTransactions(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, store.SaveTransaction(ctx, &model.Transaction{
			UserID: "u1", Type: model.TypeExpense, Category: "fnb", Amount: 100,
		}))
	}
	require.NoError(t, store.SaveTransaction(ctx, &model.Transaction{
		UserID: "u2", Type: model.TypeExpense, Category: "fnb", Amount: 100,
	}))

	require.NoError(t, store.DeleteAllTransactions(ctx, "u1"))

	mine, err := store.ListTransactions(ctx, "u1", service.TransactionFilter{})
	require.NoError(t, err)
	assert.Empty(t, mine)

	theirs, err := store.ListTransactions(ctx, "u2", service.TransactionFilter{})
	require.NoError(t, err)
	assert.Len(t, theirs, 1)
}

func TestUpsertBudgetReplaces(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.UpsertBudget(ctx, &model.Budget{
		UserID: "u1", Category: "FNB", Amount: 500000, Period: model.PeriodMonthly,
	}))
	require.NoError(t, store.UpsertBudget(ctx, &model.Budget{
		UserID: "u1", Category: "fnb", Amount: 750000, Period: model.PeriodWeekly,
	}))

	budgets, err := store.ListBudgets(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, budgets, 1)
	assert.Equal(t, "fnb", budgets[0].Category)
	assert.Equal(t, int64(750000), budgets[0].Amount)
	assert.Equal(t, model.PeriodWeekly, budgets[0].Period)
}

func TestUpsertBudgetValidation(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	err := store.UpsertBudget(ctx, &model.Budget{UserID: "u1", Category: "fnb", Amount: 0})
	assert.Error(t, err)

	// Unknown period coerces to monthly instead of failing.
	b := &model.Budget{UserID: "u1", Category: "fnb", Amount: 1000, Period: "yearly"}
	require.NoError(t, store.UpsertBudget(ctx, b))
	assert.Equal(t, model.PeriodMonthly, b.Period)
}

func TestDeleteBudget(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.UpsertBudget(ctx, &model.Budget{
		UserID: "u1", Category: "fnb", Amount: 1000, Period: model.PeriodNone,
	}))
	require.NoError(t, store.DeleteBudget(ctx, "u1", "FNB"))
	assert.ErrorIs(t, store.DeleteBudget(ctx, "u1", "fnb"), common.ErrNotFound)
}

func TestDeleteBudgetUnknownCategoryLeavesFallback(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.UpsertBudget(ctx, &model.Budget{
		UserID: "u1", Category: category.Fallback, Amount: 1000, Period: model.PeriodNone,
	}))

	// A bogus category must not be coerced onto the fallback budget.
	assert.ErrorIs(t, store.DeleteBudget(ctx, "u1", "totally-bogus"), common.ErrNotFound)

	budgets, err := store.ListBudgets(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, budgets, 1)
	assert.Equal(t, category.Fallback, budgets[0].Category)
}

func TestChatHistoryRoundTrip(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	msgs := []model.ChatMessage{
		{UserID: "u1", Role: model.RoleUser, Content: "makan soto 15rb"},
		{UserID: "u1", Role: model.RoleAssistant, Content: "Tercatat!", Saved: true},
		{UserID: "u1", Role: model.RoleUser, Content: "gaji 5 juta"},
	}
	for i := range msgs {
		require.NoError(t, store.AppendChatMessage(ctx, &msgs[i]))
	}
	require.NoError(t, store.AppendChatMessage(ctx, &model.ChatMessage{
		UserID: "u2", Role: model.RoleUser, Content: "other user",
	}))

	history, err := store.GetChatHistory(ctx, "u1", 0)
	require.NoError(t, err)
	require.Len(t, history, 3)
	// Chronological order, saved flag intact.
	assert.Equal(t, "makan soto 15rb", history[0].Content)
	assert.True(t, history[1].Saved)
	assert.Equal(t, "gaji 5 juta", history[2].Content)

	tail, err := store.GetChatHistory(ctx, "u1", 2)
	require.NoError(t, err)
	require.Len(t, tail, 2)
	assert.Equal(t, "Tercatat!", tail[0].Content)

	require.NoError(t, store.ClearChatHistory(ctx, "u1"))
	history, err = store.GetChatHistory(ctx, "u1", 0)
	require.NoError(t, err)
	assert.Empty(t, history)
}
