package extract

import (
	"fmt"
	"strings"

	"ptsession/internal/model"
)

// ErrTableEmpty is returned when a 0x1004 block declares a nonzero
// audio file count but every candidate entry was rejected by name or
// type filtering, leaving nothing parsed for that block.
var ErrTableEmpty = fmt.Errorf("extract: audio file table declared entries but none parsed")

// AudioFiles extracts the referenced audio file table from 0x1004
// blocks (spec.md §4.4). version controls the name/type filtering
// rule that changed at session version 10 (see SPEC_FULL.md §4).
func AudioFiles(c *Context, version int) ([]model.AudioFile, error) {
	var files []model.AudioFile

	for _, b := range c.Blocks {
		if b.ContentType != 0x1004 {
			continue
		}
		nwavs, err := c.Reader.U32(int(b.Offset) + 2)
		if err != nil {
			return nil, err
		}
		before := len(files)
		for _, child := range b.Children {
			if child.ContentType != 0x103a {
				continue
			}
			pos := int(child.Offset) + 11
			payloadEnd := int(child.Offset) + int(child.Size)
			var n uint32
			for pos < payloadEnd && n < nwavs {
				name, consumed, err := c.Reader.ReadString(pos)
				if err != nil {
					break
				}
				pos += consumed
				typ := readFixed(c.Buf(), pos, 4)
				pos += 9

				if strings.Contains(name, ".grp") ||
					strings.Contains(name, "Audio Files") ||
					strings.Contains(name, "Fade Files") {
					continue
				}
				if !audioTypeAccepted(version, name, typ) {
					continue
				}

				files = append(files, model.AudioFile{Index: uint16(len(files)), Filename: name})
				n++
			}
		}
		if nwavs > 0 && len(files) == before {
			return nil, ErrTableEmpty
		}
	}

	// Second pass: attach length information from 0x1003 -> 0x1001.
	idx := 0
	for _, b := range c.Blocks {
		if b.ContentType != 0x1004 {
			continue
		}
		for _, child := range b.Children {
			if child.ContentType != 0x1003 {
				continue
			}
			for _, grand := range child.Children {
				if grand.ContentType != 0x1001 {
					continue
				}
				if idx >= len(files) {
					break
				}
				length, err := c.Reader.U64(int(grand.Offset) + 8)
				if err != nil {
					return nil, err
				}
				files[idx].Length = length
				idx++
			}
		}
	}

	return files, nil
}

func readFixed(buf []byte, pos, n int) string {
	if pos < 0 || pos+n > len(buf) {
		return ""
	}
	return string(buf[pos : pos+n])
}

func audioTypeAccepted(version int, name, typ string) bool {
	knownType := strings.Contains(typ, "WAVE") || strings.Contains(typ, "EVAW") ||
		strings.Contains(typ, "AIFF") || strings.Contains(typ, "FFIA")
	if version < 10 {
		return knownType
	}
	if typ != "" && typ[0] != 0 {
		return knownType
	}
	return strings.Contains(name, ".wav") || strings.Contains(name, ".aif")
}
