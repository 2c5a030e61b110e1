package extract

import (
	"fmt"

	"ptsession/internal/model"
)

// ErrKeySignatureRange reports a key signature record whose values sit
// outside the ranges spec.md §3 requires (is_major/is_sharp boolean,
// sign_count 0-7). The caller maps this to the session's categorical
// load-error code.
var ErrKeySignatureRange = fmt.Errorf("extract: key signature out of range")

// KeySignatures extracts key signature events from 0x2433 -> 0x2432
// blocks (spec.md §4.4). A short block is skipped as an unrecognized
// landmark, but an in-range-sized record with out-of-range field
// values is a hard failure.
func KeySignatures(c *Context) ([]model.KeySignatureEvent, error) {
	var out []model.KeySignatureEvent

	for _, b := range c.Blocks {
		if b.ContentType != 0x2433 {
			continue
		}
		for _, child := range b.Children {
			if child.ContentType != 0x2432 {
				continue
			}
			if child.Size < 13 {
				continue
			}
			data := int(child.Offset) + 2
			pos, err := c.Reader.U64(data)
			if err != nil {
				continue
			}
			isMajor, err := c.Reader.U8(data + 8)
			if err != nil {
				continue
			}
			isSharp, err := c.Reader.U8(data + 9)
			if err != nil {
				continue
			}
			signs, err := c.Reader.U8(data + 10)
			if err != nil {
				continue
			}
			if isMajor > 1 || isSharp > 1 || signs > 7 {
				return nil, ErrKeySignatureRange
			}
			out = append(out, model.KeySignatureEvent{
				Pos:       saturatingSub(pos, model.ZeroTicks),
				IsMajor:   isMajor != 0,
				IsSharp:   isSharp != 0,
				SignCount: signs,
			})
		}
	}
	return out, nil
}
