package extract

// Header extracts the session's bit depth and sample rate from the
// 0x1028 header block, applying the 0x204b override when present
// (spec.md §4.4). Returns found=false when no 0x1028 block exists.
func Header(c *Context) (rate uint32, bitDepth uint8, found bool, err error) {
	var altDepth uint8
	for _, b := range c.Blocks {
		switch b.ContentType {
		case 0x1028:
			bd, e := c.Reader.U8(int(b.Offset) + 3)
			if e != nil {
				return 0, 0, false, e
			}
			r, e := c.Reader.U32(int(b.Offset) + 4)
			if e != nil {
				return 0, 0, false, e
			}
			bitDepth = bd
			rate = r
			found = true
		case 0x204b:
			// Present in all versions, including 32-bit float sessions
			// the primary header block misreports as 24-bit.
			bd, e := c.Reader.U8(int(b.Offset) + 6)
			if e == nil {
				altDepth = bd
			}
		}
	}
	if altDepth != 0 {
		bitDepth = altDepth
	}
	return rate, bitDepth, found, nil
}
