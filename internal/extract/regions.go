package extract

import (
	"ptsession/internal/model"
	"ptsession/internal/threepoint"
)

// AudioRegions extracts audio region definitions from 0x100b/0x262a
// containers (spec.md §4.4). files is used to resolve each region's
// wav index into a full AudioFile (filename); regions referencing an
// index with no matching file still get a placeholder-only Wave with
// just Index and AbsPos/Length filled in from the three-point record.
func AudioRegions(c *Context, files []model.AudioFile) ([]model.Region, error) {
	var regions []model.Region
	var index uint16

	for _, b := range c.Blocks {
		if b.ContentType != 0x100b && b.ContentType != 0x262a {
			continue
		}
		for _, child := range b.Children {
			if child.ContentType != 0x1008 && child.ContentType != 0x2629 {
				continue
			}
			if len(child.Children) == 0 {
				continue
			}
			d := child.Children[0]

			pos := int(child.Offset) + 11
			name, consumed, err := c.Reader.ReadString(pos)
			if err != nil {
				continue
			}
			pos += consumed

			start, sampleOffset, length, err := threepoint.Decode(c.Buf(), pos, c.BigEndian)
			if err != nil {
				continue
			}

			findex, err := c.Reader.U32(int(d.Offset) + int(d.Size))
			if err != nil {
				continue
			}

			wave := model.AudioFile{Index: uint16(findex), AbsPos: start, Length: length}
			for _, f := range files {
				if uint32(f.Index) == findex {
					wave.Filename = f.Filename
					break
				}
			}

			regions = append(regions, model.Region{
				Name:          name,
				Index:         index,
				Start:         start,
				Kind:          model.RegionAudio,
				Wave:          wave,
				SampleOffset:  sampleOffset,
				LengthSamples: length,
			})
			index++
		}
	}
	return regions, nil
}

// FindRegionByIndex returns the region with the given Index, if any.
func FindRegionByIndex(regions []model.Region, index uint16) (model.Region, bool) {
	for _, r := range regions {
		if r.Index == index {
			return r, true
		}
	}
	return model.Region{}, false
}
