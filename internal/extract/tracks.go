package extract

import (
	"strings"

	"ptsession/internal/model"
)

// placeholderRegionIndex marks a track whose region association has
// not yet been resolved. Such tracks are dropped once association
// extraction finishes (spec.md §9 "Track de-duplication").
const placeholderRegionIndex = 65535

// AudioTrackNames extracts the plain track name / channel-map list
// from 0x1015 -> 0x1014 blocks (spec.md §4.4). Each channel entry
// becomes one placeholder Track, keyed by its channel-map index, with
// an unresolved region (Index == placeholderRegionIndex) until
// ResolveAudioAssociations fills it in.
func AudioTrackNames(c *Context) ([]model.Track, error) {
	var tracks []model.Track
	seen := map[uint16]bool{}

	for _, b := range c.Blocks {
		if b.ContentType != 0x1015 {
			continue
		}
		for _, child := range b.Children {
			if child.ContentType != 0x1014 {
				continue
			}
			pos := int(child.Offset) + 2
			name, consumed, err := c.Reader.ReadString(pos)
			if err != nil {
				continue
			}
			pos += consumed + 1
			nch, err := c.Reader.U32(pos)
			if err != nil {
				continue
			}
			pos += 4
			for i := uint32(0); i < nch; i++ {
				ch, err := c.Reader.U16(pos)
				if err != nil {
					break
				}
				pos += 2
				if !seen[ch] {
					seen[ch] = true
					tracks = append(tracks, model.Track{
						Name:    name,
						Index:   ch,
						Regions: []model.Region{{Index: placeholderRegionIndex}},
					})
				}
			}
		}
	}
	return tracks, nil
}

// MidiTrackNames infers MIDI tracks by walking the modern per-track
// list (0x2519 -> 0x251a) and excluding entries whose name matches an
// audio track at the same positional index (spec.md §4.4).
func MidiTrackNames(c *Context, audioTracks []model.Track) ([]model.Track, error) {
	var midiTracks []model.Track

	for _, b := range c.Blocks {
		if b.ContentType != 0x2519 {
			continue
		}
		var trackIndex, midiIndex uint16
		for _, child := range b.Children {
			if child.ContentType != 0x251a {
				continue
			}
			pos := int(child.Offset) + 4
			name, consumed, err := c.Reader.ReadString(pos)
			if err != nil {
				continue
			}
			_ = consumed

			isAudio := false
			if int(trackIndex) < len(audioTracks) {
				at := audioTracks[trackIndex]
				isAudio = at.Name != "" && strings.Contains(name, at.Name)
			}
			if !isAudio {
				midiTracks = append(midiTracks, model.Track{
					Name:    name,
					Index:   midiIndex,
					Regions: []model.Region{{Index: placeholderRegionIndex}},
				})
				midiIndex++
			}
			trackIndex++
		}
	}
	return midiTracks, nil
}

// PruneUnresolved drops every track whose region was never resolved
// to a real index.
func PruneUnresolved(tracks []model.Track) []model.Track {
	out := tracks[:0]
	for _, t := range tracks {
		if len(t.Regions) > 0 && t.Regions[0].Index == placeholderRegionIndex {
			continue
		}
		out = append(out, t)
	}
	return out
}
