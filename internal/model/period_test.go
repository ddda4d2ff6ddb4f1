package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Period
		wantErr bool
	}{
		{name: "valid key", input: "2025-07", want: Period{Year: 2025, Month: 7}},
		{name: "valid december", input: "2024-12", want: Period{Year: 2024, Month: 12}},
		{name: "month out of range", input: "2025-13", wantErr: true},
		{name: "zero month", input: "2025-00", wantErr: true},
		{name: "missing separator", input: "202507", wantErr: true},
		{name: "garbage", input: "not-a-period", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "trailing text", input: "2025-07x", wantErr: true},
		{name: "digit then letter", input: "2024-1a", wantErr: true},
		{name: "unpadded month", input: "2025-7", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePeriod(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPeriodString(t *testing.T) {
	assert.Equal(t, "2025-07", Period{Year: 2025, Month: 7}.String())
	assert.Equal(t, "0999-12", Period{Year: 999, Month: 12}.String())
}

func TestCategoryLeaking(t *testing.T) {
	assert.False(t, Category{Spending: 300000, Threshold: 300000}.Leaking())
	assert.True(t, Category{Spending: 350000, Threshold: 300000}.Leaking())
	assert.Equal(t, int64(50000), Category{Spending: 350000, Threshold: 300000}.LeakAmount())
	assert.Equal(t, int64(0), Category{Spending: 100000, Threshold: 150000}.LeakAmount())
}
