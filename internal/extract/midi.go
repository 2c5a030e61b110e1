package extract

import (
	"ptsession/internal/byteio"
	"ptsession/internal/model"
)

const midiEventsMagic = "MdNLB"

// midiEventChunk is one decoded run of MIDI note events, keyed by its
// position in file order so region definitions can look it up by
// index (spec.md §4.4, §9). maxPos is the largest pos+length seen
// across the chunk's events and becomes the owning region's length —
// the three-point record's own length field is not used for MIDI
// regions.
type midiEventChunk struct {
	events []model.MidiEvent
	maxPos uint64
}

// MidiEventChunks decodes every run of MIDI events under 0x2000
// blocks. A single block may hold several "MdNLB"-tagged runs; each is
// located by a forward needle search resuming where the previous run
// left off.
func MidiEventChunks(c *Context) ([]midiEventChunk, error) {
	var chunks []midiEventChunk

	for _, b := range c.Blocks {
		if b.ContentType != 0x2000 {
			continue
		}
		bound := int(b.PayloadEnd())
		k := int(b.Offset)
		for k+35 < bound {
			magicPos := byteio.FindForward(c.Buf(), k, bound, []byte(midiEventsMagic))
			if magicPos < 0 {
				break
			}
			k = magicPos + 11

			count, err := c.Reader.U32(k)
			if err != nil {
				break
			}
			k += 4

			zeroTicks, err := c.Reader.U40(k)
			if err != nil {
				break
			}

			var chunk midiEventChunk
			for i := uint32(0); i < count && k < c.Reader.Len(); i, k = i+1, k+35 {
				pos, err := c.Reader.U40(k)
				if err != nil {
					break
				}
				pos -= zeroTicks
				note, err := c.Reader.U8(k + 8)
				if err != nil {
					break
				}
				length, err := c.Reader.U40(k + 9)
				if err != nil {
					break
				}
				velocity, err := c.Reader.U8(k + 17)
				if err != nil {
					break
				}

				if pos+length > chunk.maxPos {
					chunk.maxPos = pos + length
				}
				chunk.events = append(chunk.events, model.MidiEvent{
					Pos:      pos,
					Length:   length,
					Note:     note,
					Velocity: velocity,
				})
			}
			chunks = append(chunks, chunk)
		}
	}
	return chunks, nil
}

// MidiRegions extracts MIDI region definitions from the
// 0x2002/0x2634 -> 0x2001/0x2633 -> 0x1007/0x2628 block family and
// binds each to the event chunk whose index is stored as a u32 just
// past the entry's payload (at d.Offset+d.Size), then does the same for
// any plain (non-compound) entries under the 0x262c -> 0x262b ->
// 0x2628 compound-region family (spec.md §4.4, §9). The three-point
// record is not decoded here; a MIDI region's start is always the
// ZERO_TICKS epoch and its length is the chunk's own max event extent.
func MidiRegions(c *Context, chunks []midiEventChunk) ([]model.Region, error) {
	var regions []model.Region
	var index uint16

	for _, b := range c.Blocks {
		if b.ContentType != 0x2002 && b.ContentType != 0x2634 {
			continue
		}
		for _, child := range b.Children {
			if child.ContentType != 0x2001 && child.ContentType != 0x2633 {
				continue
			}
			for _, d := range child.Children {
				if d.ContentType != 0x1007 && d.ContentType != 0x2628 {
					continue
				}

				pos := int(d.Offset) + 2
				name, _, err := c.Reader.ReadString(pos)
				if err != nil {
					continue
				}

				chunkIndex, err := c.Reader.U32(int(d.Offset) + int(d.Size))
				var chunk midiEventChunk
				if err == nil && int(chunkIndex) < len(chunks) {
					chunk = chunks[chunkIndex]
				}

				regions = append(regions, model.Region{
					Name:           name,
					Index:          index,
					Start:          model.ZeroTicks,
					Kind:           model.RegionMidi,
					Midi:           chunk.events,
					LengthTicks:    chunk.maxPos,
					IsStartInTicks: true,
				})
				index++
			}
		}
	}

	// Compound MIDI regions live under 0x262c -> 0x262b -> 0x2628. A
	// 0x2628 entry with an 0x2523 child describes a compound binding
	// that is left unresolved (spec.md §9 "compound MIDI regions"); one
	// with no such child is a plain MIDI region keyed by the u16 chunk
	// index stored just past its own payload.
	for _, b := range c.Blocks {
		if b.ContentType != 0x262c {
			continue
		}
		for _, child := range b.Children {
			if child.ContentType != 0x262b {
				continue
			}
			for _, d := range child.Children {
				if d.ContentType != 0x2628 {
					continue
				}

				pos := int(d.Offset) + 2
				name, _, err := c.Reader.ReadString(pos)
				if err != nil {
					continue
				}

				compound := false
				for _, e := range d.Children {
					if e.ContentType == 0x2523 {
						compound = true
						break
					}
				}
				if compound {
					continue
				}

				chunkIndex, err := c.Reader.U16(int(d.Offset) + int(d.Size) + 2)
				if err != nil || int(chunkIndex) >= len(chunks) {
					continue
				}

				chunk := chunks[chunkIndex]
				regions = append(regions, model.Region{
					Name:           name,
					Index:          chunkIndex,
					Start:          model.ZeroTicks,
					Kind:           model.RegionMidi,
					Midi:           chunk.events,
					LengthTicks:    chunk.maxPos,
					IsStartInTicks: true,
				})
			}
		}
	}

	return regions, nil
}
