package viewmodel

import (
	"testing"

	"github.com/dookkeobi/leakpot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnchorSlot(t *testing.T) {
	tests := []struct {
		name  string
		index int
		want  int
	}{
		{name: "first category", index: 0, want: 0},
		{name: "last anchor", index: 11, want: 11},
		{name: "wraps around", index: 12, want: 0},
		{name: "second wrap", index: 25, want: 1},
		{name: "negative index", index: -1, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AnchorSlot(tt.index))
		})
	}
}

func TestCrackScale(t *testing.T) {
	tests := []struct {
		name string
		leak int64
		want float64
	}{
		{name: "zero leak stays at floor", leak: 0, want: 0.4},
		{name: "small leak", leak: 40000, want: 0.9},
		{name: "at ceiling", leak: 88000, want: 1.5},
		{name: "clamped above ceiling", leak: 500000, want: 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CrackScale(tt.leak), 1e-9)
		})
	}
}

func TestWaterScale(t *testing.T) {
	assert.InDelta(t, 0.3, WaterScale(0), 1e-9)
	assert.InDelta(t, 0.8, WaterScale(40000), 1e-9)
	assert.InDelta(t, 2.0, WaterScale(1000000), 1e-9)
}

func TestPuddleScale(t *testing.T) {
	assert.InDelta(t, 1.0, PuddleScale(0), 1e-9)
	assert.InDelta(t, 1.5, PuddleScale(150000), 1e-9)
	assert.InDelta(t, 2.2, PuddleScale(1000000), 1e-9)
}

func TestBuildPotView(t *testing.T) {
	leaks := []model.LeakingCategory{
		{
			Category:      model.Category{ID: 1, Name: "Food", Spending: 350000, Threshold: 300000},
			OriginalIndex: 0,
		},
		{
			Category:      model.Category{ID: 13, Name: "Etc", Spending: 60000, Threshold: 50000},
			OriginalIndex: 12,
		},
	}

	view := BuildPotView(leaks, 60000)

	require.Len(t, view.Cracks, 2)
	assert.True(t, view.Leaking)
	assert.Equal(t, int64(60000), view.TotalLeak)

	assert.Equal(t, "Food", view.Cracks[0].Name)
	assert.Equal(t, 0, view.Cracks[0].Slot)
	assert.Equal(t, int64(50000), view.Cracks[0].LeakAmount)
	assert.InDelta(t, CrackScale(50000), view.Cracks[0].CrackScale, 1e-9)

	// Index 12 wraps back to the first anchor.
	assert.Equal(t, 0, view.Cracks[1].Slot)
}

func TestBuildPotViewEmpty(t *testing.T) {
	view := BuildPotView(nil, 0)

	assert.False(t, view.Leaking)
	assert.Empty(t, view.Cracks)
	assert.InDelta(t, 1.0, view.PuddleScale, 1e-9)
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		want   string
		amount int64
	}{
		{amount: 0, want: "0원"},
		{amount: 500, want: "500원"},
		{amount: 10000, want: "10,000원"},
		{amount: 1234567, want: "1,234,567원"},
		{amount: -50000, want: "-50,000원"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(tt.amount))
		})
	}
}
