package analysis

import (
	"sort"

	"ptsession/internal/model"
)

// RegionRanges collects one sample-space interval per track-region
// placement, truncates consecutive same-track clips so an earlier
// clip's end never exceeds the next clip's start, then sorts and
// merges overlapping intervals (spec.md §4.5).
func RegionRanges(tracks []model.Track, tempoChanges []model.TempoChange, sessionRate uint32) []model.RegionRange {
	var perTrack [][]model.RegionRange

	for _, t := range tracks {
		var ranges []model.RegionRange
		for _, r := range t.Regions {
			ranges = append(ranges, regionRange(r, tempoChanges, sessionRate))
		}
		sort.Slice(ranges, func(i, j int) bool { return ranges[i].Start < ranges[j].Start })
		for i := 0; i+1 < len(ranges); i++ {
			if ranges[i].End > ranges[i+1].Start {
				ranges[i].End = ranges[i+1].Start
			}
		}
		perTrack = append(perTrack, ranges)
	}

	var all []model.RegionRange
	for _, ranges := range perTrack {
		all = append(all, ranges...)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Start < all[j].Start })

	return mergeRanges(all)
}

func regionRange(r model.Region, tempoChanges []model.TempoChange, sessionRate uint32) model.RegionRange {
	if r.Kind == model.RegionAudio {
		return model.RegionRange{Start: r.Start, End: r.Start + r.LengthSamples}
	}
	if r.IsStartInTicks {
		start := TickToSample(tempoChanges, sessionRate, r.Start)
		end := TickToSample(tempoChanges, sessionRate, r.Start+r.LengthTicks)
		return model.RegionRange{Start: start, End: end}
	}
	return model.RegionRange{Start: r.Start, End: r.Start + r.LengthTicks}
}

func mergeRanges(sorted []model.RegionRange) []model.RegionRange {
	if len(sorted) == 0 {
		return nil
	}
	out := []model.RegionRange{sorted[0]}
	for _, next := range sorted[1:] {
		last := &out[len(out)-1]
		if last.End >= next.Start {
			if next.End > last.End {
				last.End = next.End
			}
			continue
		}
		out = append(out, next)
	}
	return out
}
