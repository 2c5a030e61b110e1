// Command ptsessiondump loads a session file and prints a JSON summary
// of it to stdout. It exists to exercise ptsession.Load end to end;
// anything beyond a flat summary (waveform rendering, a REST API, an
// editing surface) is out of scope for this repository.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"ptsession/ptsession"
)

type summary struct {
	Version         int      `json:"version"`
	SessionRate     uint32   `json:"session_rate"`
	BitDepth        uint8    `json:"bit_depth"`
	Title           string   `json:"title,omitempty"`
	Artist          string   `json:"artist,omitempty"`
	AudioFileCount  int      `json:"audio_file_count"`
	RegionCount     int      `json:"region_count"`
	MidiRegionCount int      `json:"midi_region_count"`
	TrackCount      int      `json:"track_count"`
	MidiTrackCount  int      `json:"midi_track_count"`
	MainTempo       float64  `json:"main_tempo,omitempty"`
	MainTimeSig     string   `json:"main_time_signature,omitempty"`
	MainKey         string   `json:"main_key_signature,omitempty"`
	DurationSecs    uint64   `json:"duration_secs"`
	Contributors    []string `json:"contributors,omitempty"`
}

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <session.ptf>\n", os.Args[0])
		os.Exit(2)
	}

	s, err := ptsession.Load(os.Args[1], ptsession.WithLogger(log.Default()))
	if err != nil {
		log.Fatal(err)
	}

	out := summary{
		Version:         s.Version(),
		SessionRate:     s.SessionRate(),
		BitDepth:        s.BitDepth(),
		AudioFileCount:  len(s.AudioFiles()),
		RegionCount:     len(s.Regions()),
		MidiRegionCount: len(s.MidiRegions()),
		TrackCount:      len(s.Tracks()),
		MidiTrackCount:  len(s.MidiTracks()),
		DurationSecs:    s.DurationSecs(),
		Contributors:    s.Metadata().Contributors,
	}
	if s.Metadata().Title != nil {
		out.Title = *s.Metadata().Title
	}
	if s.Metadata().Artist != nil {
		out.Artist = *s.Metadata().Artist
	}
	if tempo, ok := s.MainTempo(); ok {
		out.MainTempo = tempo.Tempo
	}
	if sig, ok := s.MainTimeSignature(); ok {
		out.MainTimeSig = fmt.Sprintf("%d/%d", sig.Nom, sig.Denom)
	}
	if key, ok := s.MainKeySignature(); ok {
		out.MainKey = keySignatureLabel(key)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatal(err)
	}
}

func keySignatureLabel(key ptsession.KeySignatureEvent) string {
	mode := "minor"
	if key.IsMajor {
		mode = "major"
	}
	accidental := "flats"
	if key.IsSharp {
		accidental = "sharps"
	}
	return fmt.Sprintf("%s (%d %s)", mode, key.SignCount, accidental)
}
