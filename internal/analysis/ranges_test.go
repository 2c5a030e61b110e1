package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ptsession/internal/model"
)

func audioRegion(start, length uint64) model.Region {
	return model.Region{Kind: model.RegionAudio, Start: start, LengthSamples: length}
}

func TestRegionRangesTruncatesSameTrackOverlap(t *testing.T) {
	track := model.Track{Regions: []model.Region{
		audioRegion(0, 1000),
		audioRegion(500, 1500),
	}}

	ranges := RegionRanges([]model.Track{track}, nil, 48000)
	require.Len(t, ranges, 1)
	assert.EqualValues(t, 0, ranges[0].Start)
	assert.EqualValues(t, 2000, ranges[0].End)
}

func TestRegionRangesMergesAcrossTracks(t *testing.T) {
	tracks := []model.Track{
		{Regions: []model.Region{audioRegion(0, 100)}},
		{Regions: []model.Region{audioRegion(50, 200)}},
		{Regions: []model.Region{audioRegion(1000, 50)}},
	}
	ranges := RegionRanges(tracks, nil, 48000)
	require.Len(t, ranges, 2)
	assert.Equal(t, model.RegionRange{Start: 0, End: 250}, ranges[0])
	assert.Equal(t, model.RegionRange{Start: 1000, End: 1050}, ranges[1])
}

func TestRegionRangesConvertsMidiTicksToSamples(t *testing.T) {
	changes := FillPosInSamples([]model.TempoChange{
		{Pos: 0, Tempo: 120, BeatLen: 960000},
	}, 48000)
	midi := model.Region{
		Kind:           model.RegionMidi,
		Start:          0,
		LengthTicks:    960000,
		IsStartInTicks: true,
	}
	ranges := RegionRanges([]model.Track{{Regions: []model.Region{midi}}}, changes, 48000)
	require.Len(t, ranges, 1)
	assert.EqualValues(t, 0, ranges[0].Start)
	assert.EqualValues(t, 24000, ranges[0].End)
}
