package extract

import (
	"log"

	"ptsession/internal/model"
)

// ResolveAudioAssociations walks the two region->track association
// block families (0x1012->0x1011->0x100f->0x100e, and
// 0x1054->0x1052->0x1050->0x104f) and fills each positionally-matched
// track's playlist with the region it references (spec.md §4.4).
// Fade entries (byte 46 under 0x1050 equal to 0x01) are skipped.
func ResolveAudioAssociations(c *Context, tracks []model.Track, regions []model.Region) []model.Track {
	resolved := append([]model.Track(nil), tracks...)

	assignRegion := func(trackPos int, regionIndex uint16, start uint64, hasStart bool) {
		if trackPos < 0 || trackPos >= len(resolved) {
			return
		}
		region, ok := FindRegionByIndex(regions, regionIndex)
		if !ok {
			return
		}
		if hasStart {
			region.Start = start
		}
		appendPlaylistRegion(&resolved[trackPos], region)
	}

	for _, b := range c.Blocks {
		switch b.ContentType {
		case 0x1012:
			count := 0
			for _, child := range b.Children {
				if child.ContentType != 0x1011 {
					continue
				}
				for _, d := range child.Children {
					if d.ContentType != 0x100f {
						continue
					}
					for _, e := range d.Children {
						if e.ContentType != 0x100e {
							continue
						}
						rawIndex, err := c.Reader.U32(int(e.Offset) + 4)
						if err != nil {
							continue
						}
						assignRegion(count, uint16(rawIndex), 0, false)
					}
				}
				count++
			}
		case 0x1054:
			count := 0
			for _, child := range b.Children {
				if child.ContentType != 0x1052 {
					continue
				}
				for _, d := range child.Children {
					if d.ContentType != 0x1050 {
						continue
					}
					isFade, err := c.Reader.U8(int(d.Offset) + 46)
					if err == nil && isFade == 0x01 {
						continue
					}
					for _, e := range d.Children {
						if e.ContentType != 0x104f {
							continue
						}
						rawIndex, err := c.Reader.U32(int(e.Offset) + 4)
						if err != nil {
							continue
						}
						start, err := c.Reader.U32(int(e.Offset) + 9)
						if err != nil {
							continue
						}
						assignRegion(count, uint16(rawIndex), uint64(start), true)
					}
				}
				count++
			}
		}
	}

	return PruneUnresolved(resolved)
}

// ResolveMidiAssociations walks the 0x1058->0x1057->0x1056->0x104f
// binding family, placing MIDI regions onto MIDI tracks with a
// ZERO_TICKS-relative start position (spec.md §4.4, §9 "ZERO_TICKS
// handling"). logger receives a warning whenever a raw tick value is
// found below the epoch, since that loses sign information; a nil
// logger discards it.
func ResolveMidiAssociations(c *Context, tracks []model.Track, midiRegions []model.Region, logger *log.Logger) []model.Track {
	resolved := append([]model.Track(nil), tracks...)

	for _, b := range c.Blocks {
		if b.ContentType != 0x1058 {
			continue
		}
		count := 0
		for _, child := range b.Children {
			if child.ContentType != 0x1057 {
				continue
			}
			for _, d := range child.Children {
				if d.ContentType != 0x1056 {
					continue
				}
				for _, e := range d.Children {
					if e.ContentType != 0x104f {
						continue
					}
					rawIndex, err := c.Reader.U32(int(e.Offset) + 4)
					if err != nil {
						continue
					}
					start, err := c.Reader.U40(int(e.Offset) + 9)
					if err != nil {
						continue
					}
					if count < 0 || count >= len(resolved) {
						continue
					}
					region, ok := FindRegionByIndex(midiRegions, uint16(rawIndex))
					if !ok {
						continue
					}
					if start < model.ZeroTicks && logger != nil {
						logger.Printf("ptsession: midi region %d start %d below ZERO_TICKS epoch", region.Index, start)
					}
					region.Start = saturatingSub(start, model.ZeroTicks)
					appendPlaylistRegion(&resolved[count], region)
				}
			}
			count++
		}
	}

	return PruneUnresolved(resolved)
}

// appendPlaylistRegion adds region to t's playlist, replacing the
// unresolved placeholder on first resolution and appending on every
// later one so a track with several region placements keeps all of
// them in file order (spec.md §9 "Track↔region cardinality").
func appendPlaylistRegion(t *model.Track, region model.Region) {
	if len(t.Regions) == 1 && t.Regions[0].Index == placeholderRegionIndex {
		t.Regions = []model.Region{region}
		return
	}
	t.Regions = append(t.Regions, region)
}

// saturatingSub returns a - b as a u64, saturating at 0 rather than
// wrapping when a < b. Callers that care about inputs below the epoch
// log a warning before subtracting.
func saturatingSub(a, b uint64) uint64 {
	if a >= b {
		return a - b
	}
	return 0
}
