package sheets

import (
	"testing"
	"time"

	"github.com/duitku/duitku/internal/analytics"
	"github.com/duitku/duitku/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "no auth",
			config:  Config{},
			wantErr: true,
		},
		{
			name:    "service account only",
			config:  Config{ServiceAccountPath: "/tmp/key.json"},
			wantErr: false,
		},
		{
			name: "oauth only",
			config: Config{
				ClientID:     "id",
				ClientSecret: "secret",
				RefreshToken: "token",
			},
			wantErr: false,
		},
		{
			name: "both methods",
			config: Config{
				ServiceAccountPath: "/tmp/key.json",
				ClientID:           "id",
				ClientSecret:       "secret",
				RefreshToken:       "token",
			},
			wantErr: true,
		},
		{
			name: "partial oauth",
			config: Config{
				ClientID: "id",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "/tmp/key.json")
	t.Setenv("GOOGLE_SHEETS_SPREADSHEET_NAME", "")

	config := DefaultConfig()
	require.NoError(t, config.LoadFromEnv())
	assert.Equal(t, "/tmp/key.json", config.ServiceAccountPath)
	assert.Equal(t, "DuitKu Report", config.SpreadsheetName)
	assert.Equal(t, "Asia/Jakarta", config.TimeZone)
}

func TestPrepareReportData(t *testing.T) {
	summary := report.MonthlySummary{
		Month: time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local),
		Summary: analytics.Summary{
			Income:  5000000,
			Expense: 400000,
			Balance: 4600000,
			Count:   3,
		},
		Breakdown: []analytics.CategoryShare{
			{Category: "fnb", Label: "Makanan & Minuman", Amount: 400000, Percentage: 100},
		},
	}

	values := prepareReportData(summary)
	require.Len(t, values, 11)
	assert.Equal(t, []any{"Laporan Bulanan", "June 2024"}, values[0])
	assert.Equal(t, []any{"Pemasukan", int64(5000000)}, values[3])
	assert.Equal(t, []any{"Makanan & Minuman", int64(400000), "100.0%"}, values[10])
}
