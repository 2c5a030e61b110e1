package threepoint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildRecord lays out a little-endian three-point record: 5 header
// bytes (marker/type placeholders at +0, width nibbles at +1..+3,
// filler at +4), then offset, length, start values back to back at
// their declared widths.
func buildRecord(offsetWidth, lengthWidth, startWidth int, offsetVal, lengthVal, startVal uint64) []byte {
	rec := make([]byte, 5)
	rec[1] = byte(offsetWidth << 4)
	rec[2] = byte(lengthWidth << 4)
	rec[3] = byte(startWidth << 4)
	rec = append(rec, leBytes(offsetVal, offsetWidth)...)
	rec = append(rec, leBytes(lengthVal, lengthWidth)...)
	rec = append(rec, leBytes(startVal, startWidth)...)
	return rec
}

func leBytes(v uint64, width int) []byte {
	b := make([]byte, width)
	for i := 0; i < width; i++ {
		b[i] = byte(v >> (8 * i))
	}
	return b
}

func TestDecodeLittleEndianUsesLengthWidthForStart(t *testing.T) {
	// startWidth is declared as 1 but must be ignored: start is
	// decoded using lengthWidth (4) instead, per the documented quirk.
	rec := buildRecord(2, 4, 1, 0x1234, 0xdeadbeef, 0x99)
	// Because start reuses lengthWidth (4 bytes), append 3 extra zero
	// bytes so the 4-byte read of "start" lands on 0x99 in its low byte.
	rec = append(rec, 0x00, 0x00, 0x00)

	start, offset, length, err := Decode(rec, 0, false)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x1234), offset)
	assert.Equal(t, uint64(0xdeadbeef), length)
	assert.Equal(t, uint64(0x99), start)
}

func TestDecodeBigEndianNibblePositions(t *testing.T) {
	rec := make([]byte, 5)
	rec[4] = byte(1 << 4) // offset width at +4 for big-endian files
	rec[3] = byte(2 << 4) // length width at +3
	rec[2] = byte(1 << 4) // start width nibble at +2 (ignored)
	rec = append(rec, 0x07)             // offset, 1 byte, LE regardless of file endianness
	rec = append(rec, 0x34, 0x12)       // length, 2 bytes LE = 0x1234
	rec = append(rec, 0x02, 0x00)       // start, reuses length width (2 bytes) LE = 0x0002

	start, offset, length, err := Decode(rec, 0, true)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x07), offset)
	assert.Equal(t, uint64(0x1234), length)
	assert.Equal(t, uint64(0x0002), start)
}

func TestDecodeOutOfRange(t *testing.T) {
	_, _, _, err := Decode([]byte{0x00, 0x00}, 0, false)
	assert.Error(t, err)
}
