package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ptsession/internal/byteio"
	"ptsession/internal/model"
)

func buildAudioTrackChild(name string, channels []uint16) []byte {
	buf := make([]byte, 2)
	buf = appendLenPrefixed(buf, name)
	buf = append(buf, 0x00) // the +1 filler byte before nch
	buf = append(buf, le32(uint32(len(channels)))...)
	for _, ch := range channels {
		buf = append(buf, byte(ch), byte(ch>>8))
	}
	return buf
}

func TestAudioTrackNamesReadsChannelMap(t *testing.T) {
	child := buildAudioTrackChild("Kick In", []uint16{0, 1})
	reader := byteio.New(child, false)
	childBlock := model.Block{ContentType: 0x1014, Offset: 0, Size: uint32(len(child))}
	parent := model.Block{ContentType: 0x1015, Children: []model.Block{childBlock}}
	ctx := &Context{Reader: reader, Blocks: []model.Block{parent}}

	tracks, err := AudioTrackNames(ctx)
	require.NoError(t, err)
	require.Len(t, tracks, 2)
	assert.Equal(t, "Kick In", tracks[0].Name)
	assert.EqualValues(t, 0, tracks[0].Index)
	assert.EqualValues(t, 1, tracks[1].Index)
	assert.EqualValues(t, placeholderRegionIndex, tracks[0].Regions[0].Index)
}

func TestAudioTrackNamesDedupesChannelIndex(t *testing.T) {
	c1 := buildAudioTrackChild("A", []uint16{0})
	c2 := buildAudioTrackChild("B", []uint16{0})
	buf := append(append([]byte{}, c1...), c2...)
	reader := byteio.New(buf, false)
	b1 := model.Block{ContentType: 0x1014, Offset: 0, Size: uint32(len(c1))}
	b2 := model.Block{ContentType: 0x1014, Offset: uint32(len(c1)), Size: uint32(len(c2))}
	parent := model.Block{ContentType: 0x1015, Children: []model.Block{b1, b2}}
	ctx := &Context{Reader: reader, Blocks: []model.Block{parent}}

	tracks, err := AudioTrackNames(ctx)
	require.NoError(t, err)
	require.Len(t, tracks, 1)
	assert.Equal(t, "A", tracks[0].Name)
}

func TestMidiTrackNamesExcludesMatchingAudioTrack(t *testing.T) {
	// track 0 name repeats the audio track's name and should be excluded
	child0 := make([]byte, 4)
	child0 = appendLenPrefixed(child0, "Kick In")
	child1 := make([]byte, 4)
	child1 = appendLenPrefixed(child1, "Synth Lead")

	buf := append(append([]byte{}, child0...), child1...)
	reader := byteio.New(buf, false)
	b0 := model.Block{ContentType: 0x251a, Offset: 0, Size: uint32(len(child0))}
	b1 := model.Block{ContentType: 0x251a, Offset: uint32(len(child0)), Size: uint32(len(child1))}
	parent := model.Block{ContentType: 0x2519, Children: []model.Block{b0, b1}}
	ctx := &Context{Reader: reader, Blocks: []model.Block{parent}}

	audioTracks := []model.Track{{Name: "Kick In", Index: 0}}
	midiTracks, err := MidiTrackNames(ctx, audioTracks)
	require.NoError(t, err)
	require.Len(t, midiTracks, 1)
	assert.Equal(t, "Synth Lead", midiTracks[0].Name)
	assert.EqualValues(t, 0, midiTracks[0].Index)
}

func TestPruneUnresolvedDropsPlaceholders(t *testing.T) {
	tracks := []model.Track{
		{Name: "resolved", Regions: []model.Region{{Index: 3}}},
		{Name: "unresolved", Regions: []model.Region{{Index: placeholderRegionIndex}}},
	}
	pruned := PruneUnresolved(tracks)
	require.Len(t, pruned, 1)
	assert.Equal(t, "resolved", pruned[0].Name)
}
