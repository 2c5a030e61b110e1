// Package analysis derives sample-space and coverage views from the
// extracted block model: tick-to-sample conversion anchored in the
// tempo map, merged region-range coverage, coverage-weighted
// selection of the session's "main" tempo/key/time signature, and
// total music duration.
package analysis

import (
	"math"
	"sort"

	"ptsession/internal/model"
)

// defaultTempo is synthesised when a session carries no tempo changes
// at all (spec.md §4.5).
var defaultTempo = model.TempoChange{Pos: 0, Tempo: 120, BeatLen: 960000}

// FillPosInSamples computes pos_in_samples for every tempo change in
// tick order: the first change starts at sample 0, and each following
// change's sample position is derived from the one before it. changes
// must already be sorted by Pos non-decreasing.
func FillPosInSamples(changes []model.TempoChange, sessionRate uint32) []model.TempoChange {
	if len(changes) == 0 {
		return changes
	}
	out := make([]model.TempoChange, len(changes))
	copy(out, changes)
	out[0].PosInSamples = 0
	for i := 1; i < len(out); i++ {
		prev := out[i-1]
		beats := float64(out[i].Pos-prev.Pos) / float64(prev.BeatLen)
		delta := roundHalfAwayFromZero(beats * float64(sessionRate) * 60 / prev.Tempo)
		out[i].PosInSamples = prev.PosInSamples + uint64(delta)
	}
	return out
}

// TickToSample converts a tick position to a sample position using
// the tempo map in force at that tick (spec.md §4.5). changes must be
// sorted by Pos and already have PosInSamples filled by
// FillPosInSamples. An empty map falls back to the synthesised
// default tempo.
func TickToSample(changes []model.TempoChange, sessionRate uint32, tick uint64) uint64 {
	active := defaultTempo
	if len(changes) > 0 {
		active = changes[activeTempoIndex(changes, tick)]
	}
	beats := float64(tick-active.Pos) / float64(active.BeatLen)
	delta := roundHalfAwayFromZero(beats * float64(sessionRate) * 60 / active.Tempo)
	return active.PosInSamples + uint64(delta)
}

// activeTempoIndex returns the index of the greatest change with
// Pos <= tick, via binary search. Assumes changes[0].Pos <= tick in
// practice (sessions define a change at pos 0); falls back to index 0
// otherwise.
func activeTempoIndex(changes []model.TempoChange, tick uint64) int {
	idx := sort.Search(len(changes), func(i int) bool {
		return changes[i].Pos > tick
	})
	if idx == 0 {
		return 0
	}
	return idx - 1
}

// roundHalfAwayFromZero matches the C `round()` semantics the original
// implementation relies on: ties round away from zero, unlike Go's
// default banker's rounding in some numeric contexts.
func roundHalfAwayFromZero(x float64) int64 {
	if x >= 0 {
		return int64(math.Floor(x + 0.5))
	}
	return int64(math.Ceil(x - 0.5))
}
