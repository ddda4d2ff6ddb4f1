package readmodel

import (
	"testing"

	"github.com/dookkeobi/leakpot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var july = model.Period{Year: 2025, Month: 7}

func TestSetAndGetCopies(t *testing.T) {
	s := NewStore()
	in := []model.Category{{ID: 1, Name: "Food", Spending: 300000, Threshold: 300000}}

	s.Set(july, in)
	in[0].Threshold = 1 // caller mutation must not reach the cache

	got, ok := s.Get(july)
	require.True(t, ok)
	assert.Equal(t, int64(300000), got[0].Threshold)

	got[0].Threshold = 2 // reader mutation must not reach the cache either
	again, _ := s.Get(july)
	assert.Equal(t, int64(300000), again[0].Threshold)
}

func TestGetMissingPeriod(t *testing.T) {
	s := NewStore()
	got, ok := s.Get(july)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestSetThreshold(t *testing.T) {
	s := NewStore()
	s.Set(july, []model.Category{
		{ID: 1, Threshold: 100},
		{ID: 2, Threshold: 200},
	})

	s.SetThreshold(july, 2, 250)

	got, _ := s.Get(july)
	assert.Equal(t, int64(100), got[0].Threshold)
	assert.Equal(t, int64(250), got[1].Threshold)

	// Unknown id and unknown period are no-ops.
	s.SetThreshold(july, 99, 1)
	s.SetThreshold(model.Period{Year: 2025, Month: 8}, 1, 1)
	got, _ = s.Get(july)
	assert.Equal(t, int64(100), got[0].Threshold)
}

func TestRestoreIsExact(t *testing.T) {
	s := NewStore()
	original := []model.Category{
		{ID: 1, Name: "Food", Spending: 300000, Threshold: 200000},
		{ID: 2, Name: "Cafe", Spending: 100000, Threshold: 150000},
	}
	s.Set(july, original)

	snap, existed := s.Snapshot(july)
	require.True(t, existed)

	s.SetThreshold(july, 1, 180000)
	s.SetThreshold(july, 2, 90000)

	s.Restore(july, snap, existed)

	got, ok := s.Get(july)
	require.True(t, ok)
	assert.Equal(t, original, got)
}

func TestRestoreOfAbsentSnapshotDeletesCell(t *testing.T) {
	s := NewStore()

	snap, existed := s.Snapshot(july)
	assert.False(t, existed)

	s.Set(july, []model.Category{{ID: 1, Threshold: 5}})
	s.Restore(july, snap, existed)

	_, ok := s.Get(july)
	assert.False(t, ok)
}

func TestInvalidate(t *testing.T) {
	s := NewStore()
	s.Set(july, []model.Category{{ID: 1}})
	s.Invalidate(july)

	_, ok := s.Get(july)
	assert.False(t, ok)
}
