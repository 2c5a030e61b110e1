package ptsession

import "ptsession/internal/model"

// Public type aliases: the parsed model is defined once in
// internal/model and re-exported here so callers never import an
// internal package directly.
type (
	Block              = model.Block
	AudioFile          = model.AudioFile
	MidiEvent          = model.MidiEvent
	RegionKind         = model.RegionKind
	Region             = model.Region
	Track              = model.Track
	Metadata           = model.Metadata
	KeySignatureEvent  = model.KeySignatureEvent
	TimeSignatureEvent = model.TimeSignatureEvent
	TempoChange        = model.TempoChange
	RegionRange        = model.RegionRange
)

const (
	RegionAudio = model.RegionAudio
	RegionMidi  = model.RegionMidi
)

// ZeroTicks is the MIDI tick epoch anchoring all epoch-relative
// positions (spec.md §3).
const ZeroTicks = model.ZeroTicks
