package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ptsession/internal/model"
)

func TestMainEventPicksGreatestCoverage(t *testing.T) {
	ranges := []model.RegionRange{{Start: 0, End: 48000}}
	events := []EventSegment[int]{
		{Pos: 0, Value: 120},
		{Pos: 24000, Value: 60},
	}
	v, ok := MainEvent(ranges, events)
	require.True(t, ok)
	// both cover exactly 24000 samples; first-seen (120) wins the tie.
	assert.Equal(t, 120, v)
}

func TestMainEventStrictlyGreaterWins(t *testing.T) {
	ranges := []model.RegionRange{{Start: 0, End: 48000}}
	events := []EventSegment[int]{
		{Pos: 0, Value: 120},
		{Pos: 10000, Value: 60},
	}
	v, ok := MainEvent(ranges, events)
	require.True(t, ok)
	assert.Equal(t, 60, v)
}

func TestMainEventEmptyEventsReturnsFalse(t *testing.T) {
	_, ok := MainEvent[int](nil, nil)
	assert.False(t, ok)
}

func TestMainEventCarriesRemainderAcrossMultipleEvents(t *testing.T) {
	ranges := []model.RegionRange{{Start: 0, End: 100}}
	events := []EventSegment[string]{
		{Pos: 0, Value: "a"},
		{Pos: 10, Value: "b"},
		{Pos: 20, Value: "c"},
	}
	v, ok := MainEvent(ranges, events)
	require.True(t, ok)
	assert.Equal(t, "c", v) // c covers [20,100) = 80 samples, the largest share
}
