package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ptsession/internal/model"
)

func TestMusicDurationSecsSingleRange(t *testing.T) {
	ranges := []model.RegionRange{{Start: 0, End: 48000}}
	assert.EqualValues(t, 1, MusicDurationSecs(ranges, 48000, 2))
}

func TestMusicDurationSecsMergesSmallGap(t *testing.T) {
	ranges := []model.RegionRange{
		{Start: 0, End: 48000},
		{Start: 96000, End: 144000}, // 1s gap, within max_gap_secs=2
	}
	assert.EqualValues(t, 3, MusicDurationSecs(ranges, 48000, 2))
}

func TestMusicDurationSecsResetsOnLargeGap(t *testing.T) {
	ranges := []model.RegionRange{
		{Start: 0, End: 480000},        // 10s
		{Start: 480000 + 480000, End: 480000 + 480000 + 48000}, // 10s gap, then 1s
	}
	assert.EqualValues(t, 10, MusicDurationSecs(ranges, 48000, 2))
}

func TestMusicDurationSecsEmpty(t *testing.T) {
	assert.EqualValues(t, 0, MusicDurationSecs(nil, 48000, 2))
}
