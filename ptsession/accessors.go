package ptsession

import "ptsession/internal/analysis"

// Version returns the detected session format version, in [5, 12].
func (s *Session) Version() int { return s.version }

// SessionRate returns the session's sample rate in Hz.
func (s *Session) SessionRate() uint32 { return s.rate }

// BitDepth returns the session's audio bit depth.
func (s *Session) BitDepth() uint8 { return s.bitDepth }

// UnxoredData returns the fully descrambled file buffer.
func (s *Session) UnxoredData() []byte { return s.unxored }

// MetadataBase64 returns the raw decoded bytes of the metadata
// struct, before field parsing.
func (s *Session) MetadataBase64() []byte { return s.metaB64 }

// Metadata returns the session's descriptive fields.
func (s *Session) Metadata() Metadata { return s.metadata }

// Blocks returns the top-level parsed block forest.
func (s *Session) Blocks() []Block { return s.blocks }

// AudioFiles returns the referenced audio file table.
func (s *Session) AudioFiles() []AudioFile { return s.audioFiles }

// Regions returns every parsed audio region.
func (s *Session) Regions() []Region { return s.regions }

// MidiRegions returns every parsed MIDI region.
func (s *Session) MidiRegions() []Region { return s.midiRegions }

// Tracks returns every audio track, each with its resolved playlist.
func (s *Session) Tracks() []Track { return s.tracks }

// MidiTracks returns every MIDI track, each with its resolved
// playlist.
func (s *Session) MidiTracks() []Track { return s.midiTracks }

// KeySignatures returns the session's key signature map.
func (s *Session) KeySignatures() []KeySignatureEvent { return s.keySignatures }

// TimeSignatures returns the session's time signature map.
func (s *Session) TimeSignatures() []TimeSignatureEvent { return s.timeSignatures }

// TempoChanges returns the session's tempo map, with pos_in_samples
// filled in.
func (s *Session) TempoChanges() []TempoChange { return s.tempoChanges }

// RegionRanges returns the merged, sorted, disjoint sample-space
// intervals covered by every track's regions.
func (s *Session) RegionRanges() []RegionRange { return s.regionRanges }

// MainKeySignature returns the key signature with the greatest
// region-range coverage. The bool is false when there is no key
// signature or no region-range coverage to weigh.
func (s *Session) MainKeySignature() (KeySignatureEvent, bool) {
	return s.mainKeySignature, s.hasMainKey
}

// MainTimeSignature returns the time signature with the greatest
// region-range coverage. The bool is false when there is no time
// signature or no region-range coverage to weigh.
func (s *Session) MainTimeSignature() (TimeSignatureEvent, bool) {
	return s.mainTimeSignature, s.hasMainTimeSig
}

// MainTempo returns the tempo change with the greatest region-range
// coverage. The bool is false when there is no tempo change or no
// region-range coverage to weigh.
func (s *Session) MainTempo() (TempoChange, bool) {
	return s.mainTempo, s.hasMainTempo
}

// MusicDurationSecs returns the length, in seconds, of the longest run
// of region ranges packed closely enough that no gap between
// consecutive ranges exceeds maxGapSecs.
func (s *Session) MusicDurationSecs(maxGapSecs float64) uint64 {
	return analysis.MusicDurationSecs(s.regionRanges, s.rate, maxGapSecs)
}

// DurationSecs returns MusicDurationSecs using the default max-gap
// configured at Load time (WithDefaultMaxGapSecs, 2s otherwise).
func (s *Session) DurationSecs() uint64 {
	return s.MusicDurationSecs(s.defaultMaxGapSecs)
}
