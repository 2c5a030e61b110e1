// Package ptsession reads the proprietary binary session-file format
// used by a widely deployed digital-audio workstation: XOR
// descrambling, recursive block-tree decoding, semantic extraction of
// audio/MIDI regions, tracks, and timeline events, and derived
// sample-space analysis. Load is the single entry point; the returned
// Session exposes the parsed model only through read-only accessors.
package ptsession

import (
	"errors"
	"fmt"
	"log"
	"os"
	"sort"

	"ptsession/internal/analysis"
	"ptsession/internal/blocktree"
	"ptsession/internal/byteio"
	"ptsession/internal/extract"
	"ptsession/internal/model"
	"ptsession/internal/version"
	"ptsession/internal/xordescramble"
)

const (
	minSessionRate = 44100
	maxSessionRate = 192000
)

// Session is an immutable, fully-parsed session file. It owns copies
// of every collection extracted from the file; there is no mutation
// surface after Load returns.
type Session struct {
	logger *log.Logger

	version   int
	rate      uint32
	bitDepth  uint8
	unxored   []byte
	metaB64   []byte
	metadata  model.Metadata

	blocks      []model.Block
	audioFiles  []model.AudioFile
	regions     []model.Region
	midiRegions []model.Region
	tracks      []model.Track
	midiTracks  []model.Track

	keySignatures  []model.KeySignatureEvent
	timeSignatures []model.TimeSignatureEvent
	tempoChanges   []model.TempoChange

	regionRanges []model.RegionRange

	mainKeySignature  model.KeySignatureEvent
	hasMainKey        bool
	mainTimeSignature model.TimeSignatureEvent
	hasMainTimeSig    bool
	mainTempo         model.TempoChange
	hasMainTempo      bool

	defaultMaxGapSecs float64
}

// Load reads and parses a session file at path, applying opts.
func Load(path string, opts ...Option) (*Session, error) {
	cfg := newLoadConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, loadErr(ErrDescramble, err)
	}

	unxored, err := xordescramble.Descramble(raw)
	if err != nil {
		return nil, loadErr(ErrDescramble, err)
	}

	if !version.Looks(unxored) {
		return nil, loadErr(ErrNotASession, nil)
	}

	bigEndian := len(unxored) > 0x11 && unxored[0x11] != 0
	reader := byteio.New(unxored, bigEndian)

	ver, err := version.Detect(reader)
	if err != nil {
		if errors.Is(err, version.ErrNotASession) {
			return nil, loadErr(ErrNotASession, err)
		}
		return nil, loadErr(ErrVersionRange, err)
	}

	blocks := blocktree.ParseForest(reader)
	ctx := &extract.Context{Reader: reader, Blocks: blocks, BigEndian: bigEndian}

	s := &Session{
		logger:            cfg.logger,
		version:           ver,
		unxored:           unxored,
		blocks:            blocks,
		defaultMaxGapSecs: cfg.maxGapSecs,
	}

	if err := s.runPipeline(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) runPipeline(ctx *extract.Context) error {
	rate, bitDepth, found, err := extract.Header(ctx)
	if err != nil || !found {
		return loadErr(ErrHeaderParse, err)
	}
	if rate < minSessionRate || rate > maxSessionRate {
		return loadErr(ErrSessionRateRange, fmt.Errorf("session rate %d out of range", rate))
	}
	s.rate = rate
	s.bitDepth = bitDepth

	files, err := extract.AudioFiles(ctx, s.version)
	if err != nil {
		return loadErr(ErrAudioFileTable, err)
	}
	s.audioFiles = files

	regions, err := extract.AudioRegions(ctx, files)
	if err != nil {
		return loadErr(ErrRegionTrack, err)
	}
	s.regions = regions

	audioTracks, err := extract.AudioTrackNames(ctx)
	if err != nil {
		return loadErr(ErrRegionTrack, err)
	}
	midiTracks, err := extract.MidiTrackNames(ctx, audioTracks)
	if err != nil {
		return loadErr(ErrRegionTrack, err)
	}
	s.tracks = extract.ResolveAudioAssociations(ctx, audioTracks, regions)

	chunks, err := extract.MidiEventChunks(ctx)
	if err != nil {
		return loadErr(ErrMidiParse, err)
	}
	midiRegions, err := extract.MidiRegions(ctx, chunks)
	if err != nil {
		return loadErr(ErrMidiParse, err)
	}
	s.midiRegions = midiRegions
	s.midiTracks = extract.ResolveMidiAssociations(ctx, midiTracks, midiRegions, s.logger)

	meta, rawMeta, err := extract.Metadata(ctx)
	if err != nil {
		return loadErr(ErrMetadataParse, err)
	}
	s.metadata = meta
	s.metaB64 = rawMeta

	keySigs, err := extract.KeySignatures(ctx)
	if err != nil {
		return loadErr(ErrKeySignature, err)
	}
	s.keySignatures = keySigs

	timeSigs, err := extract.TimeSignatures(ctx)
	if err != nil {
		return loadErr(ErrTimeSignature, err)
	}
	s.timeSignatures = timeSigs

	tempoChanges, err := extract.TempoChanges(ctx)
	if err != nil {
		return loadErr(ErrTempoChange, err)
	}
	tempoChanges = analysis.FillPosInSamples(tempoChanges, s.rate)
	s.tempoChanges = tempoChanges

	s.computeDerivedViews()
	return nil
}

func (s *Session) computeDerivedViews() {
	allTracks := make([]model.Track, 0, len(s.tracks)+len(s.midiTracks))
	allTracks = append(allTracks, s.tracks...)
	allTracks = append(allTracks, s.midiTracks...)
	s.regionRanges = analysis.RegionRanges(allTracks, s.tempoChanges, s.rate)

	if v, ok := analysis.MainEvent(s.regionRanges, tempoSegments(s.tempoChanges)); ok {
		s.mainTempo = v
		s.hasMainTempo = true
	}
	if v, ok := analysis.MainEvent(s.regionRanges, timeSigSegments(s.timeSignatures, s.tempoChanges, s.rate)); ok {
		s.mainTimeSignature = v
		s.hasMainTimeSig = true
	}
	if v, ok := analysis.MainEvent(s.regionRanges, keySigSegments(s.keySignatures, s.tempoChanges, s.rate)); ok {
		s.mainKeySignature = v
		s.hasMainKey = true
	}
}

func tempoSegments(changes []model.TempoChange) []analysis.EventSegment[model.TempoChange] {
	out := make([]analysis.EventSegment[model.TempoChange], len(changes))
	for i, c := range changes {
		out[i] = analysis.EventSegment[model.TempoChange]{Pos: c.PosInSamples, Value: c}
	}
	return out
}

func timeSigSegments(sigs []model.TimeSignatureEvent, tempoChanges []model.TempoChange, rate uint32) []analysis.EventSegment[model.TimeSignatureEvent] {
	out := make([]analysis.EventSegment[model.TimeSignatureEvent], len(sigs))
	for i, sig := range sigs {
		out[i] = analysis.EventSegment[model.TimeSignatureEvent]{
			Pos:   analysis.TickToSample(tempoChanges, rate, sig.Pos),
			Value: sig,
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Pos < out[j].Pos })
	return out
}

func keySigSegments(sigs []model.KeySignatureEvent, tempoChanges []model.TempoChange, rate uint32) []analysis.EventSegment[model.KeySignatureEvent] {
	out := make([]analysis.EventSegment[model.KeySignatureEvent], len(sigs))
	for i, sig := range sigs {
		out[i] = analysis.EventSegment[model.KeySignatureEvent]{
			Pos:   analysis.TickToSample(tempoChanges, rate, sig.Pos),
			Value: sig,
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Pos < out[j].Pos })
	return out
}
