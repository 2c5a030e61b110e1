package xordescramble

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func header(xorType, xorValue byte) []byte {
	h := make([]byte, headerLen)
	h[0x12] = xorType
	h[0x13] = xorValue
	return h
}

func TestDescrambleTooShort(t *testing.T) {
	_, err := Descramble(make([]byte, 4))
	assert.ErrorIs(t, err, ErrTooShort)
}

func TestDescrambleUnknownXorType(t *testing.T) {
	_, err := Descramble(header(0x02, 0x00))
	assert.ErrorIs(t, err, ErrUnknownXorType)
}

func TestXorType01DeltaIsOne(t *testing.T) {
	raw := append(header(0x01, 53), 0x00, 0x00, 0x00)
	out, err := Descramble(raw)
	require.NoError(t, err)
	// K[i] = i, so plaintext byte at j XORed with keystream[j&0xff] == j&0xff.
	for j := headerLen; j < len(raw); j++ {
		assert.Equal(t, raw[j]^byte(j&0xff), out[j])
	}
}

func TestXorType05DeltaIsNegativeOne(t *testing.T) {
	raw := append(header(0x05, 11), 0x00, 0x00, 0x00)
	out, err := Descramble(raw)
	require.NoError(t, err)
	for j := headerLen; j < len(raw); j++ {
		idx := (j >> 12) & 0xff
		assert.Equal(t, raw[j]^byte(-idx), out[j])
	}
}

func TestDescrambleRoundTrips(t *testing.T) {
	raw := header(0x01, 53)
	for i := 0; i < 100; i++ {
		raw = append(raw, byte(i*7+3))
	}
	descrambled, err := Descramble(raw)
	require.NoError(t, err)

	// Re-descrambling ciphertext-as-plaintext with the same keystream
	// must reproduce the original bytes, since XOR is its own inverse.
	reencoded, err := Descramble(descrambled)
	require.NoError(t, err)
	assert.Equal(t, raw, reencoded)
}
