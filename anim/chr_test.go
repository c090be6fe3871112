package anim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToBinaryRejectsNonTrailingConstTrack(t *testing.T) {
	a := Anim{
		Tracks: []Track{
			FromConst(1.0),
			flatTrack(QuantTrack96, 2.0, 2),
		},
		Nodes: []Node{{Name: "n0", Flags: FlagEnabled, Tracks: []int{0, 1}}},
	}

	_, err := a.ToBinary()
	require.Error(t, err)
	var coe *ConstOrderError
	require.ErrorAs(t, err, &coe)
}

func TestToBinaryAcceptsTrailingConstTracks(t *testing.T) {
	a := Anim{
		Tracks: []Track{
			flatTrack(QuantTrack96, 2.0, 2),
			FromConst(1.0),
		},
		Nodes: []Node{{Name: "n0", Flags: FlagEnabled, Tracks: []int{0, 1}}},
	}

	bin, err := a.ToBinary()
	require.NoError(t, err)
	assert.Len(t, bin.Tracks, 1) // the Const track is folded into the node slot, not the pool
}

func TestMergeIdenticalTracksDedupsAndRemaps(t *testing.T) {
	dup := flatTrack(QuantTrack96, 7.0, 3).toBinaryTrackData()
	other := flatTrack(QuantTrack96, 8.0, 3).toBinaryTrackData()

	b := BinaryAnim{
		Tracks: []BinaryTrackData{dup, other, dup},
		Nodes: []BinaryNode{
			{Name: "n0", Flags: FlagEnabled, Tracks: []trackRef{{index: 0}, {index: 1}, {index: 2}}},
		},
	}
	b.mergeIdenticalTracks()

	require.Len(t, b.Tracks, 2)
	refs := b.Nodes[0].Tracks
	assert.Equal(t, refs[0].index, refs[2].index) // the two copies of `dup` now share an index
	assert.NotEqual(t, refs[0].index, refs[1].index)
}

// TestAnimEncodeDecodeRoundTrip exercises a node carrying all nine SRT
// attribute slots: the scale group quantized Track96, the rotate group
// BakedTrack8, and the translate group inline Const (§4.7, CHR0Node's
// per-group format encoding).
func TestAnimEncodeDecodeRoundTrip(t *testing.T) {
	flags := FlagEnabled | (uint32(rotFmt96) << 25) | (uint32(rotFmtBaked8) << 27)

	a := Anim{
		Name:          "wait",
		SourcePath:    "wait.anim",
		FrameDuration: 3,
		WrapMode:      WrapModeRepeat,
		ScaleRule:     ScaleRuleMaya,
		Tracks: []Track{
			flatTrack(QuantTrack96, 1.0, 4),
			flatTrack(QuantTrack96, 2.0, 4),
			flatTrack(QuantTrack96, 3.0, 4),
			flatTrack(QuantBakedTrack8, 10.0, 4),
			flatTrack(QuantBakedTrack8, 20.0, 4),
			flatTrack(QuantBakedTrack8, 30.0, 4),
			FromConst(9.5),
			FromConst(9.6),
			FromConst(9.7),
		},
		Nodes: []Node{
			{Name: "bone_root", Flags: flags, Tracks: []int{0, 1, 2, 3, 4, 5, 6, 7, 8}},
		},
	}

	encoded, err := a.Encode()
	require.NoError(t, err)

	decoded, err := Decode(encoded)
	require.NoError(t, err)

	assert.Equal(t, a.Name, decoded.Name)
	assert.Equal(t, a.SourcePath, decoded.SourcePath)
	assert.Equal(t, a.FrameDuration, decoded.FrameDuration)
	assert.Equal(t, a.WrapMode, decoded.WrapMode)
	assert.Equal(t, a.ScaleRule, decoded.ScaleRule)
	require.Len(t, decoded.Nodes, 1)
	assert.Equal(t, "bone_root", decoded.Nodes[0].Name)
	require.Len(t, decoded.Nodes[0].Tracks, 9)

	constIdx := decoded.Nodes[0].Tracks[6]
	require.Equal(t, QuantConst, decoded.Tracks[constIdx].Quant)
	assert.InDelta(t, 9.5, decoded.Tracks[constIdx].ConstValue(), 1e-4)
}
