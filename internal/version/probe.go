// Package version classifies the session file version from header
// bytes and/or the shape of the first top-level block, per spec.md
// §4.3. It also owns the marker/bitcode sniff that decides whether a
// descrambled buffer looks like a session file at all.
package version

import (
	"fmt"

	"ptsession/internal/blocktree"
	"ptsession/internal/byteio"
)

const bitcode = "0010111100101011"

// ErrNotASession is returned when the descrambled buffer carries
// neither the version-5-era marker byte nor the bitcode string within
// the first 0x100 bytes.
var ErrNotASession = fmt.Errorf("version: marker/bitcode not found")

// ErrOutOfRange is returned when the derived version falls outside
// [5, 12].
var ErrOutOfRange = fmt.Errorf("version: outside supported range [5, 12]")

// Looks reports whether buf looks like a session file: byte 0 is
// 0x03, or the bitcode string appears within the first 0x100 bytes.
func Looks(buf []byte) bool {
	if len(buf) > 0 && buf[0] == 0x03 {
		return true
	}
	limit := 0x100
	if limit > len(buf) {
		limit = len(buf)
	}
	return byteio.FindForward(buf, 0, limit, []byte(bitcode)) != -1
}

// Detect derives the session version. r must already be endian-aware
// (byte 0x11 of the plaintext header, nonzero meaning big-endian).
func Detect(r *byteio.Reader) (int, error) {
	buf := r.Bytes()
	if !Looks(buf) {
		return 0, ErrNotASession
	}

	var v int
	if b, ok := blocktree.ParseAt(r, 0x1f, len(buf)); ok {
		switch b.ContentType {
		case 0x0003:
			// legacy: skip the length-prefixed string right after the
			// content_type field, then read a u32 8 bytes further on.
			// The 8 bytes are the string's own 4-byte length prefix
			// plus 4 bytes of trailing padding after its content.
			strPos := int(b.Offset) + 3
			strLen, err := r.U32(strPos)
			if err != nil {
				return 0, fmt.Errorf("version: legacy string length: %w", err)
			}
			skip := int(strLen) + 8
			raw, err := r.U32(strPos + skip)
			if err != nil {
				return 0, fmt.Errorf("version: legacy version field: %w", err)
			}
			v = int(raw)
		case 0x2067:
			raw, err := r.U32(int(b.Offset) + 20)
			if err != nil {
				return 0, fmt.Errorf("version: modern version field: %w", err)
			}
			v = int(raw) + 2
		default:
			return 0, fmt.Errorf("version: unrecognised block content_type 0x%x at 0x1f", b.ContentType)
		}
	} else {
		// Fallback chain, in order, taking the first nonzero byte.
		// Preserved exactly as observed in the source; no documented
		// rationale for these three specific offsets (spec.md §9). The
		// 0x3a candidate, read only when both earlier bytes are zero,
		// is biased by +2 and taken without a nonzero test, so an
		// all-zero header still yields a (zero-plus-two, out-of-range)
		// version rather than a not-a-session verdict.
		for _, off := range []int{0x40, 0x3d} {
			b, err := r.U8(off)
			if err == nil && b != 0 {
				v = int(b)
				break
			}
		}
		if v == 0 {
			b, err := r.U8(0x3a)
			if err != nil {
				return 0, ErrNotASession
			}
			v = int(b) + 2
		}
	}

	if v < 5 || v > 12 {
		return 0, ErrOutOfRange
	}
	return v, nil
}
