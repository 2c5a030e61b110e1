// Package byteio provides the endian-parametric primitives the rest
// of the parse pipeline reads the descrambled session buffer through:
// fixed-width unsigned integer reads, forward/backward needle search,
// and bounded (length-prefixed) string reads.
package byteio

import (
	"fmt"

	"golang.org/x/text/encoding/charmap"
)

// Reader wraps a byte slice with the endianness declared in the
// session header (plaintext byte 0x11) and offers bounds-checked
// fixed-width reads.
type Reader struct {
	buf   []byte
	isBig bool
}

// New wraps buf for endian-parametric reads. bigEndian mirrors
// plaintext byte 0x11 of the session header: nonzero means big-endian.
func New(buf []byte, bigEndian bool) *Reader {
	return &Reader{buf: buf, isBig: bigEndian}
}

// Bytes returns the wrapped buffer.
func (r *Reader) Bytes() []byte { return r.buf }

// Len returns the length of the wrapped buffer.
func (r *Reader) Len() int { return len(r.buf) }

// bigEndian reports the reader's configured endianness.
func (r *Reader) bigEndian() bool { return r.isBig }

var errOutOfRange = fmt.Errorf("byteio: read out of range")

func (r *Reader) require(pos, n int) error {
	if pos < 0 || n < 0 || pos+n > len(r.buf) {
		return errOutOfRange
	}
	return nil
}

// U8 reads a single byte at pos.
func (r *Reader) U8(pos int) (uint8, error) {
	if err := r.require(pos, 1); err != nil {
		return 0, err
	}
	return r.buf[pos], nil
}

// U16 reads a 2-byte unsigned integer at pos, honoring the reader's endianness.
func (r *Reader) U16(pos int) (uint16, error) {
	if err := r.require(pos, 2); err != nil {
		return 0, err
	}
	b := r.buf[pos : pos+2]
	if r.bigEndian() {
		return uint16(b[0])<<8 | uint16(b[1]), nil
	}
	return uint16(b[1])<<8 | uint16(b[0]), nil
}

// U24 reads a 3-byte unsigned integer at pos.
func (r *Reader) U24(pos int) (uint32, error) {
	if err := r.require(pos, 3); err != nil {
		return 0, err
	}
	b := r.buf[pos : pos+3]
	if r.bigEndian() {
		return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2]), nil
	}
	return uint32(b[2])<<16 | uint32(b[1])<<8 | uint32(b[0]), nil
}

// U32 reads a 4-byte unsigned integer at pos.
func (r *Reader) U32(pos int) (uint32, error) {
	if err := r.require(pos, 4); err != nil {
		return 0, err
	}
	b := r.buf[pos : pos+4]
	if r.bigEndian() {
		return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]), nil
	}
	return uint32(b[3])<<24 | uint32(b[2])<<16 | uint32(b[1])<<8 | uint32(b[0]), nil
}

// U40 reads a 5-byte unsigned integer at pos.
func (r *Reader) U40(pos int) (uint64, error) {
	if err := r.require(pos, 5); err != nil {
		return 0, err
	}
	b := r.buf[pos : pos+5]
	if r.bigEndian() {
		return uint64(b[0])<<32 | uint64(b[1])<<24 | uint64(b[2])<<16 | uint64(b[3])<<8 | uint64(b[4]), nil
	}
	return uint64(b[4])<<32 | uint64(b[3])<<24 | uint64(b[2])<<16 | uint64(b[1])<<8 | uint64(b[0]), nil
}

// U64 reads an 8-byte unsigned integer at pos.
func (r *Reader) U64(pos int) (uint64, error) {
	if err := r.require(pos, 8); err != nil {
		return 0, err
	}
	b := r.buf[pos : pos+8]
	if r.bigEndian() {
		var v uint64
		for i := 0; i < 8; i++ {
			v = v<<8 | uint64(b[i])
		}
		return v, nil
	}
	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v, nil
}

// UintWidthLE reads an unsigned integer of the given byte width (0-8)
// at pos, always little-endian regardless of the reader's configured
// endianness. This is the primitive the three-point decoder needs:
// its packed values are always stored little-endian even in
// big-endian session files.
func UintWidthLE(buf []byte, pos, width int) (uint64, error) {
	if width == 0 {
		return 0, nil
	}
	if width < 0 || width > 8 || pos < 0 || pos+width > len(buf) {
		return 0, errOutOfRange
	}
	var v uint64
	for i := width - 1; i >= 0; i-- {
		v = v<<8 | uint64(buf[pos+i])
	}
	return v, nil
}

// FindForward returns the offset of the first occurrence of needle in
// buf at or after start and before maxOffset, or -1 if absent.
func FindForward(buf []byte, start, maxOffset int, needle []byte) int {
	if maxOffset > len(buf) {
		maxOffset = len(buf)
	}
	n := len(needle)
	for i := start; i+n <= maxOffset; i++ {
		if bytesEqual(buf[i:i+n], needle) {
			return i
		}
	}
	return -1
}

// FindBackward returns the offset of the first occurrence of needle
// in buf scanning from start down to 0, bounded by maxOffset (a
// candidate match must still fit before maxOffset), or -1 if absent.
func FindBackward(buf []byte, start, maxOffset int, needle []byte) int {
	n := len(needle)
	if maxOffset > len(buf) {
		maxOffset = len(buf)
	}
	for k := start; k >= 0; k-- {
		if k+n > maxOffset {
			continue
		}
		if bytesEqual(buf[k:k+n], needle) {
			return k
		}
	}
	return -1
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ReadString reads a bounded, length-prefixed string: a u32 length
// (in the reader's endianness) followed by that many raw bytes. Bytes
// above 0x7F are decoded as Windows-1252 (the encoding legacy session
// writers used for non-ASCII region, track and file names) rather
// than passed through raw, matching the byte-string handling in
// other legacy-binary-format readers (Windows registry hive value
// names decode the same way).
func (r *Reader) ReadString(pos int) (string, int, error) {
	length, err := r.U32(pos)
	if err != nil {
		return "", 0, err
	}
	start := pos + 4
	if err := r.require(start, int(length)); err != nil {
		return "", 0, err
	}
	raw := r.buf[start : start+int(length)]
	return decodeLegacyString(raw), 4 + int(length), nil
}

func decodeLegacyString(raw []byte) string {
	if isASCII(raw) {
		return string(raw)
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}

func isASCII(b []byte) bool {
	for _, c := range b {
		if c >= 0x80 {
			return false
		}
	}
	return true
}
