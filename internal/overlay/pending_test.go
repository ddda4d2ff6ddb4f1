package overlay

import (
	"sync"
	"testing"

	"github.com/dookkeobi/leakpot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaterialize(t *testing.T) {
	server := []model.Category{
		{ID: 1, Name: "Food", Spending: 300000, Threshold: 300000},
		{ID: 2, Name: "Cafe", Spending: 100000, Threshold: 150000},
		{ID: 3, Name: "Transport", Spending: 150000, Threshold: 150000},
	}

	tests := []struct {
		name    string
		pending map[int64]int64
		want    []int64
	}{
		{
			name:    "no pending entries returns server thresholds",
			pending: nil,
			want:    []int64{300000, 150000, 150000},
		},
		{
			name:    "pending entry overrides its category only",
			pending: map[int64]int64{2: 140000},
			want:    []int64{300000, 140000, 150000},
		},
		{
			name:    "multiple overrides",
			pending: map[int64]int64{1: 250000, 3: 160000},
			want:    []int64{250000, 150000, 160000},
		},
		{
			name:    "override for unknown id is ignored",
			pending: map[int64]int64{99: 1},
			want:    []int64{300000, 150000, 150000},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPending()
			for id, v := range tt.pending {
				p.Set(id, v)
			}

			got := p.Materialize(server)
			require.Len(t, got, len(server))
			for i, want := range tt.want {
				assert.Equal(t, want, got[i].Threshold, "category %d", server[i].ID)
				assert.Equal(t, server[i].Spending, got[i].Spending)
			}

			// Server baseline must be untouched.
			assert.Equal(t, int64(300000), server[0].Threshold)
			assert.Equal(t, int64(150000), server[1].Threshold)
		})
	}
}

func TestSetOverwritesPreviousValue(t *testing.T) {
	p := NewPending()
	p.Set(2, 140000)
	p.Set(2, 160000)
	p.Set(2, 155000)

	v, ok := p.Get(2)
	require.True(t, ok)
	assert.Equal(t, int64(155000), v)
	assert.Equal(t, 1, p.Len())
}

func TestClearRemovesEntry(t *testing.T) {
	p := NewPending()
	p.Set(3, 180000)
	p.Clear(3)

	_, ok := p.Get(3)
	assert.False(t, ok)
	assert.Equal(t, 0, p.Len())

	// Clearing an absent entry is a no-op.
	p.Clear(3)
	assert.Equal(t, 0, p.Len())
}

func TestMaterializeOnEmptyBaseline(t *testing.T) {
	p := NewPending()
	p.Set(1, 100)
	assert.Empty(t, p.Materialize(nil))
}

func TestConcurrentAccess(t *testing.T) {
	p := NewPending()
	server := model.DefaultCategories()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int64) {
			defer wg.Done()
			for j := int64(0); j < 100; j++ {
				p.Set(n%4+1, j*10000)
				p.Materialize(server)
				p.Clear(n%4 + 1)
			}
		}(int64(i))
	}
	wg.Wait()

	assert.Equal(t, 0, p.Len())
}
