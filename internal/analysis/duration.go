package analysis

import "ptsession/internal/model"

// MusicDurationSecs walks the sorted, merged region ranges and
// returns the length in seconds of the longest run of ranges packed
// closely enough together that no gap between consecutive ranges
// exceeds maxGapSecs (spec.md §4.5). Ranges are assumed already sorted
// by RegionRanges.
func MusicDurationSecs(ranges []model.RegionRange, sessionRate uint32, maxGapSecs float64) uint64 {
	if len(ranges) == 0 {
		return 0
	}

	maxGapSamples := uint64(maxGapSecs * float64(sessionRate))
	durationAgg := ranges[0].End - ranges[0].Start
	best := durationAgg

	for i := 1; i < len(ranges); i++ {
		gap := ranges[i].Start - ranges[i-1].End
		if gap > maxGapSamples {
			if durationAgg > best {
				best = durationAgg
			}
			durationAgg = 0
		} else {
			durationAgg += gap
		}
		durationAgg += ranges[i].End - ranges[i].Start
	}
	if durationAgg > best {
		best = durationAgg
	}

	return uint64(roundHalfAwayFromZero(float64(best) / float64(sessionRate)))
}
