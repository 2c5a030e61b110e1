// Package blocktree recursively parses the typed-block tree out of a
// descrambled session buffer. The format has no explicit "end of
// children" marker: a block's children are found by attempting to
// parse a block at every byte offset inside the parent's payload,
// skipping ahead by the child's size on success and by one byte on
// failure. Bounds violations during this scan are expected, not
// errors — see spec.md §7.
package blocktree

import (
	"ptsession/internal/byteio"
	"ptsession/internal/model"
)

// Marker is the single byte that must open every block.
const Marker = 0x5A

// headerLen is the plaintext prefix (see xordescramble) after which
// top-level block scanning begins.
const headerLen = 20

// ParseAt attempts to parse one block starting at pos. max bounds the
// block's payload end: the parent's payload end for a nested block,
// or len(buf) for a top-level block. It returns ok=false (not an
// error) when pos does not hold a valid block header, per the
// landmark-recognition parsing model spec.md §7 describes.
func ParseAt(r *byteio.Reader, pos int, max int) (model.Block, bool) {
	buf := r.Bytes()
	if pos < 0 || pos >= len(buf) || buf[pos] != Marker {
		return model.Block{}, false
	}

	typ, err := r.U16(pos + 1)
	if err != nil {
		return model.Block{}, false
	}
	size, err := r.U32(pos + 3)
	if err != nil {
		return model.Block{}, false
	}
	contentType, err := r.U16(pos + 7)
	if err != nil {
		return model.Block{}, false
	}
	offset := uint32(pos + 7)

	if typ&0xff00 != 0 {
		return model.Block{}, false
	}
	if uint64(offset)+uint64(size) > uint64(max) {
		return model.Block{}, false
	}

	b := model.Block{
		Type:        typ,
		Size:        size,
		ContentType: contentType,
		Offset:      offset,
	}

	payloadEnd := int(b.PayloadEnd())
	childJump := 0
	for i := 1; i < int(size) && pos+i+childJump < max; {
		p := pos + i
		childJump = 0
		if child, ok := ParseAt(r, p, payloadEnd); ok {
			b.Children = append(b.Children, child)
			childJump = int(child.Size) + 7
		}
		step := childJump
		if step == 0 {
			step = 1
		}
		i += step
	}

	return b, true
}

// ParseForest scans the whole buffer starting at headerLen and
// returns every top-level block found. Scanning advances by the
// block's size+7 on success and by one byte on failure, matching
// spec.md §4.2.
func ParseForest(r *byteio.Reader) []model.Block {
	buf := r.Bytes()
	var blocks []model.Block
	for i := headerLen; i < len(buf); {
		b, ok := ParseAt(r, i, len(buf))
		if !ok {
			i++
			continue
		}
		blocks = append(blocks, b)
		i += int(b.Size) + 7
	}
	return blocks
}
