// Package threepoint decodes the recurring 15-byte packed (offset,
// length, start) tuple used by audio and MIDI region records
// (spec.md §4.4 "Three-point field decoding").
//
// The three nibbles that carry the byte widths sit at different
// offsets depending on file endianness, but the values themselves are
// always read little-endian starting at +5, in offset/length/start
// order, each field's read position advancing by the previous field's
// width.
package threepoint

import (
	"fmt"

	"ptsession/internal/byteio"
)

var errOutOfRange = fmt.Errorf("threepoint: record out of range")

// Decode reads a three-point record starting at pos in buf.
//
// spec.md documents a source-side quirk, preserved here for
// bug-compatibility: the width nibble that names Start's own byte
// width is read but discarded, and Start is instead decoded using
// Length's byte width. See DESIGN.md for why this reading is pinned
// to spec.md's text over the buildable snippet in original_source/.
func Decode(buf []byte, pos int, bigEndian bool) (start, offset, length uint64, err error) {
	if pos < 0 || pos+5 > len(buf) {
		return 0, 0, 0, errOutOfRange
	}

	var offsetWidth, lengthWidth int
	if bigEndian {
		offsetWidth = int(buf[pos+4]&0xf0) >> 4
		lengthWidth = int(buf[pos+3]&0xf0) >> 4
		// startWidth nibble at pos+2 is read by the format but its
		// value is not used, per the quirk above.
	} else {
		offsetWidth = int(buf[pos+1]&0xf0) >> 4
		lengthWidth = int(buf[pos+2]&0xf0) >> 4
		// startWidth nibble at pos+3 is read by the format but its
		// value is not used, per the quirk above.
	}

	cursor := pos + 5
	offset, err = byteio.UintWidthLE(buf, cursor, offsetWidth)
	if err != nil {
		return 0, 0, 0, err
	}
	cursor += offsetWidth
	length, err = byteio.UintWidthLE(buf, cursor, lengthWidth)
	if err != nil {
		return 0, 0, 0, err
	}
	cursor += lengthWidth
	// Bug-compatible: start is read using lengthWidth, not its own
	// nibble.
	start, err = byteio.UintWidthLE(buf, cursor, lengthWidth)
	if err != nil {
		return 0, 0, 0, err
	}
	return start, offset, length, nil
}
