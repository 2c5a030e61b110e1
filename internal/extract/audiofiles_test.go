package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ptsession/internal/byteio"
	"ptsession/internal/model"
)

func appendLenPrefixed(buf []byte, s string) []byte {
	buf = append(buf, le32(uint32(len(s)))...)
	return append(buf, []byte(s)...)
}

func buildWavListChild(names []struct {
	name string
	typ  string
}) []byte {
	buf := make([]byte, 11)
	for _, n := range names {
		buf = appendLenPrefixed(buf, n.name)
		typ := n.typ
		for len(typ) < 4 {
			typ += "\x00"
		}
		buf = append(buf, []byte(typ)...)
		buf = append(buf, make([]byte, 5)...)
	}
	return buf
}

func TestAudioFilesFiltersKnownExtensionsAndTypes(t *testing.T) {
	child := buildWavListChild([]struct {
		name string
		typ  string
	}{
		{"kick.wav", "WAVE"},
		{"session.grp", "WAVE"},
		{"Audio Files/snare.wav", "WAVE"},
		{"junk.xyz", "\x00\x00\x00\x00"},
	})

	listHeader := make([]byte, 2)
	listHeader = append(listHeader, le32(2)...) // nwavs

	buf := append(append([]byte{}, listHeader...), child...)
	reader := byteio.New(buf, false)
	childBlock := model.Block{ContentType: 0x103a, Offset: uint32(len(listHeader)), Size: uint32(len(child))}
	parent := model.Block{ContentType: 0x1004, Offset: 0, Size: uint32(len(buf)), Children: []model.Block{childBlock}}
	ctx := &Context{Reader: reader, Blocks: []model.Block{parent}}

	files, err := AudioFiles(ctx, 12)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "kick.wav", files[0].Filename)
}

func TestAudioFilesVersionBelowTenRequiresKnownType(t *testing.T) {
	child := buildWavListChild([]struct {
		name string
		typ  string
	}{
		{"loop.wav", "\x00\x00\x00\x00"}, // no type tag, version<10 rejects
	})
	listHeader := make([]byte, 2)
	listHeader = append(listHeader, le32(1)...)
	buf := append(append([]byte{}, listHeader...), child...)

	reader := byteio.New(buf, false)
	childBlock := model.Block{ContentType: 0x103a, Offset: uint32(len(listHeader)), Size: uint32(len(child))}
	parent := model.Block{ContentType: 0x1004, Offset: 0, Size: uint32(len(buf)), Children: []model.Block{childBlock}}
	ctx := &Context{Reader: reader, Blocks: []model.Block{parent}}

	_, err := AudioFiles(ctx, 9)
	require.ErrorIs(t, err, ErrTableEmpty)
}
