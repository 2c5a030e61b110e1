package extract

import (
	"strings"

	"ptsession/internal/model"
)

const (
	base64Chars       = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"
	base64GroupLen    = 64
	base64GroupLenPad = base64GroupLen + 2
	base64BytesIn     = 4
	base64BytesOut    = 3
)

const (
	fieldTitle        = "http://purl.org/dc/elements/1.1/:title"
	fieldArtist       = "http://www.id3.org/id3v2.3.0#:TPE1"
	fieldContributors = "http://purl.org/dc/elements/1.1/:contributor"
	fieldLocation     = "http://meta.avid.com/everywhere/1.0#:location"
)

// Metadata extracts the session's descriptive fields, and the raw
// decoded base64 struct bytes behind them, from the 0x2716 -> 0x2715
// base64-packed struct (spec.md §4.4). Returns zero values, not an
// error, when no metadata block is present or its header doesn't
// match.
func Metadata(c *Context) (model.Metadata, []byte, error) {
	var meta model.Metadata
	var raw []byte

	for _, b := range c.Blocks {
		if b.ContentType != 0x2716 {
			continue
		}
		for _, child := range b.Children {
			if child.ContentType != 0x2715 {
				continue
			}
			decoded, err := decodeMetadataBase64(c, child)
			if err != nil || decoded == nil {
				continue
			}
			raw = decoded
			parseMetadataStruct(decoded, "", c.BigEndian, &meta)
		}
	}
	return meta, raw, nil
}

// decodeMetadataBase64 validates the "sessionMetadataBase64" header
// and decodes the following custom-framed base64 payload: data is
// laid out in 64-byte groups separated by 2 pad bytes.
func decodeMetadataBase64(c *Context, blk model.Block) ([]byte, error) {
	pos := int(blk.Offset) + 2
	header, _, err := c.Reader.ReadString(pos)
	if err != nil {
		return nil, err
	}
	if !strings.Contains(header, "sessionMetadataBase64") {
		return nil, nil
	}
	pos += 4 + len(header)

	lengthWithPad, err := c.Reader.U32(pos)
	if err != nil {
		return nil, err
	}
	pos += 4

	wholeGroups := int(lengthWithPad) / base64GroupLenPad
	lastGroupLen := int(lengthWithPad) % base64GroupLenPad
	if lastGroupLen%base64BytesIn != 0 {
		return nil, nil
	}
	decodedLen := (wholeGroups*base64GroupLen + lastGroupLen) / base64BytesIn * base64BytesOut

	buf := c.Buf()
	endPos := pos + int(lengthWithPad)
	if endPos > len(buf) {
		return nil, nil
	}

	out := make([]byte, 0, decodedLen)
	for p := pos; p < endPos; p += base64GroupLenPad {
		groupEnd := p + base64GroupLen
		if groupEnd > endPos {
			groupEnd = endPos
		}
		for i := p; i < groupEnd; i += base64BytesIn {
			var enc [base64BytesIn]byte
			padFoundAt := base64BytesOut + 1
			for j := 0; j < base64BytesIn; j++ {
				ch := buf[i+j]
				if ch != '=' {
					enc[j] = byte(strings.IndexByte(base64Chars, ch))
				} else {
					enc[j] = 0
					padFoundAt = j
				}
			}
			var dec [base64BytesOut]byte
			dec[0] = (enc[0] << 2) + ((enc[1] & 0x30) >> 4)
			dec[1] = ((enc[1] & 0xf) << 4) + ((enc[2] & 0x3c) >> 2)
			dec[2] = ((enc[2] & 0x3) << 6) + enc[3]

			limit := base64BytesOut
			if padFoundAt < limit {
				limit = padFoundAt
			}
			out = append(out, dec[:limit]...)
		}
	}
	return out, nil
}

// parseMetadataStruct walks the decoded field table: a struct head
// constant (must equal 1), a field count, then that many (name, type,
// value) triples. field_type 0 is a leaf string; field_type 3 is a
// nested struct whose fields inherit outerField as their effective
// name. Returns the number of bytes consumed, or 0 on a malformed
// struct head.
func parseMetadataStruct(data []byte, outerField string, bigEndian bool, meta *model.Metadata) int {
	if len(data) < 8 {
		return 0
	}
	structHead := readU32(data, 0, bigEndian)
	if structHead != 1 {
		return 0
	}
	fieldCount := readU32(data, 4, bigEndian)
	cursor := 8

	for f := uint32(0); f < fieldCount; f++ {
		if cursor+4 > len(data) {
			return 0
		}
		nameLen := int(readU32(data, cursor, bigEndian))
		cursor += 4
		if cursor+nameLen > len(data) {
			return 0
		}
		field := strings.ReplaceAll(string(data[cursor:cursor+nameLen]), "\t", "/")
		cursor += nameLen

		if cursor+4 > len(data) {
			return 0
		}
		fieldType := readU32(data, cursor, bigEndian)
		cursor += 4

		switch fieldType {
		case 0:
			if cursor+4 > len(data) {
				return 0
			}
			valueLen := int(readU32(data, cursor, bigEndian))
			cursor += 4
			if cursor+valueLen > len(data) {
				return 0
			}
			value := string(data[cursor : cursor+valueLen])
			cursor += valueLen

			effective := field
			if outerField != "" {
				effective = outerField
			}
			fillMetadataField(meta, effective, value)
		case 3:
			consumed := parseMetadataStruct(data[cursor:], field, bigEndian, meta)
			if consumed == 0 {
				return 0
			}
			cursor += consumed
		default:
			return 0
		}
	}
	return cursor
}

func fillMetadataField(meta *model.Metadata, field, value string) {
	switch field {
	case fieldTitle:
		v := value
		meta.Title = &v
	case fieldArtist:
		v := value
		meta.Artist = &v
	case fieldContributors:
		meta.Contributors = append(meta.Contributors, value)
	case fieldLocation:
		v := value
		meta.Location = &v
	}
}

func readU32(data []byte, pos int, bigEndian bool) uint32 {
	b := data[pos : pos+4]
	if bigEndian {
		return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
	}
	return uint32(b[3])<<24 | uint32(b[2])<<16 | uint32(b[1])<<8 | uint32(b[0])
}
