// Package model holds the data types produced by the parse pipeline.
// Apart from Block.PayloadEnd and Region.Length it has no behaviour
// of its own; every field is filled in by exactly
// one extractor and never mutated afterward.
package model

// ZeroTicks is the tick epoch that anchors MIDI positions in the
// session format. A raw tick value at or above this constant is
// epoch-relative; values below it are already a raw offset.
const ZeroTicks uint64 = 0xE8D4A51000

// Block is one node of the on-disk typed-block tree.
type Block struct {
	Type        uint16
	Size        uint32
	ContentType uint16
	// Offset is the file position of the block's ContentType field;
	// the block's payload runs from Offset to Offset+Size.
	Offset   uint32
	Children []Block
}

// PayloadEnd returns the file offset one past the block's payload.
func (b Block) PayloadEnd() uint32 {
	return b.Offset + b.Size
}

// AudioFile is a referenced audio source, indexed by position in the
// session's wav list.
type AudioFile struct {
	Index    uint16
	Filename string
	AbsPos   uint64
	Length   uint64 // samples
}

// MidiEvent is a single note event within a MIDI region, positioned
// relative to the region's own zero-ticks anchor.
type MidiEvent struct {
	Pos      uint64 // ticks from region anchor
	Length   uint64 // ticks
	Note     uint8
	Velocity uint8
}

// RegionKind discriminates the two payload shapes a Region can carry.
type RegionKind int

const (
	RegionAudio RegionKind = iota
	RegionMidi
)

// Region is a placed instance of an audio file or a MIDI event
// sequence on the session timeline, exposed as a tagged variant per
// the header/data-model redesign: audio regions carry a Wave and a
// sample offset, MIDI regions carry an event list and an
// is-ticks flag. Name, Index and Start are common to both.
type Region struct {
	Name  string
	Index uint16
	Start uint64 // ticks or samples, see IsStartInTicks
	Kind  RegionKind

	// Audio payload (Kind == RegionAudio).
	Wave          AudioFile
	SampleOffset  uint64
	LengthSamples uint64

	// MIDI payload (Kind == RegionMidi).
	Midi            []MidiEvent
	LengthTicks     uint64
	IsStartInTicks  bool
}

// Length returns the region's length in whatever unit its Kind
// implies (samples for audio, ticks-or-samples for MIDI per
// IsStartInTicks).
func (r Region) Length() uint64 {
	if r.Kind == RegionAudio {
		return r.LengthSamples
	}
	return r.LengthTicks
}

// Track owns an ordered playlist of Regions (spec §9: real sessions
// are 1:many track→region, modeled here as a slice populated with a
// single element when only one placement was observed).
type Track struct {
	Name     string
	Index    uint16
	Playlist uint8
	Regions  []Region
}

// Metadata is the session's optional descriptive fields, extracted
// from the base64-packed nested struct in content-type 0x2716.
type Metadata struct {
	Title        *string
	Artist       *string
	Contributors []string
	Location     *string
}

// KeySignatureEvent places a key signature at a tick position.
type KeySignatureEvent struct {
	Pos       uint64
	IsMajor   bool
	IsSharp   bool
	SignCount uint8 // 0-7
}

// TimeSignatureEvent places a time signature at a tick position.
type TimeSignatureEvent struct {
	Pos        uint64
	MeasureNum uint32
	Nom        uint8 // 1-99
	Denom      uint8 // power of two, <= 64
}

// TempoChange places a tempo change at a tick position; PosInSamples
// is derived during parse from the preceding tempo change.
type TempoChange struct {
	Pos          uint64
	PosInSamples uint64
	Tempo        float64 // BPM, 5-500
	BeatLen      uint64  // ticks per beat, divisible by 120000
}

// RegionRange is a derived, merged sample-space interval covered by
// one or more region placements.
type RegionRange struct {
	Start uint64
	End   uint64
}
