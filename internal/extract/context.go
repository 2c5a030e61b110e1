// Package extract holds one file per semantic extractor named in
// spec.md §4.4: each walks the parsed block forest and pulls one
// concern's collection out of the descrambled buffer.
package extract

import (
	"ptsession/internal/byteio"
	"ptsession/internal/model"
)

// Context is the read-only environment every extractor runs against:
// the descrambled buffer, its endian-aware reader, and the top-level
// block forest produced by blocktree.ParseForest.
type Context struct {
	Reader    *byteio.Reader
	Blocks    []model.Block
	BigEndian bool
}

// Buf is a convenience accessor for the wrapped byte slice.
func (c *Context) Buf() []byte { return c.Reader.Bytes() }

// Walk calls fn for every block in the forest, depth-first,
// pre-order, including nested children.
func Walk(blocks []model.Block, fn func(model.Block)) {
	for _, b := range blocks {
		fn(b)
		Walk(b.Children, fn)
	}
}

// FindContentType returns every top-level block (not descending into
// children) whose ContentType matches ct.
func FindContentType(blocks []model.Block, ct uint16) []model.Block {
	var out []model.Block
	for _, b := range blocks {
		if b.ContentType == ct {
			out = append(out, b)
		}
	}
	return out
}
