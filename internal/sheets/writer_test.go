package sheets

import (
	"testing"
	"time"

	"github.com/dookkeobi/leakpot/internal/model"
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
			name:    "no auth configured",
			config:  DefaultConfig(),
			wantErr: true,
		},
		{
			name: "oauth credentials",
			config: Config{
				ClientID:     "id",
				ClientSecret: "secret",
				RefreshToken: "refresh",
			},
			wantErr: false,
		},
		{
			name: "service account",
			config: Config{
				ServiceAccountPath: "/tmp/key.json",
			},
			wantErr: false,
		},
		{
			name: "both auth methods",
			config: Config{
				ClientID:           "id",
				ClientSecret:       "secret",
				RefreshToken:       "refresh",
				ServiceAccountPath: "/tmp/key.json",
			},
			wantErr: true,
		},
		{
			name: "negative retry delay",
			config: Config{
				ServiceAccountPath: "/tmp/key.json",
				RetryDelay:         -time.Second,
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

func TestPrepareReportData(t *testing.T) {
	report := Report{
		Year: 2025,
		Summaries: []model.MonthSummary{
			{BudgetDate: "2025-01", Leaked: true},
			{BudgetDate: "2025-02", Leaked: false},
		},
		Months: []MonthDetail{
			{
				Period: model.Period{Year: 2025, Month: 1},
				Leaks: []model.LeakingCategory{
					{
						Category:      model.Category{ID: 1, Name: "Food", Spending: 350000, Threshold: 300000},
						OriginalIndex: 0,
					},
				},
				TotalLeak: 50000,
			},
		},
	}

	values := prepareReportData(report)
	require.NotEmpty(t, values)

	assert.Equal(t, []any{"Leak Report", "2025"}, values[0])
	assert.Contains(t, values, []any{"Leaked Months", 1})
	assert.Contains(t, values, []any{"Total Leak", int64(50000)})
	assert.Contains(t, values, []any{"2025-01", true})
	assert.Contains(t, values, []any{"2025-02", false})
	assert.Contains(t, values, []any{"Food", int64(350000), int64(300000), int64(50000)})
	assert.Contains(t, values, []any{"Total", "", "", int64(50000)})
}

func TestPrepareReportDataEmpty(t *testing.T) {
	values := prepareReportData(Report{Year: 2024})
	require.NotEmpty(t, values)

	assert.Contains(t, values, []any{"Leaked Months", 0})
	assert.Contains(t, values, []any{"Total Leak", int64(0)})
}
