package material

import (
	"testing"

	"github.com/gc3dtools/librii/gx"
	"github.com/gc3dtools/librii/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToBinMatFromBinMatRoundTrip(t *testing.T) {

	mat := G3dMaterialData{
		Name:     "mat_opaque",
		Xlu:      false,
		CullMode: 1,
		TexGens:  []gx.TexGen{{Type: 0, Source: 0, Matrix: 0x3C}},
		Samplers: []SamplerData{{Texture: "tex_0", WrapU: WrapRepeat, WrapV: WrapClamp}},
		TexMatrices: []TexMatrix{
			{Scale: math32.Vector2{X: 1, Y: 1}, TransformModel: TransformModelMaya, Method: MappingStandard},
		},
		ColorChanControls: []ChannelControl{
			{Enabled: true, Ambient: ColorSourceRegister, Material: ColorSourceVertex, AttenuationFn: AttenuationFunctionSpecular},
			{Enabled: true, Ambient: ColorSourceRegister, Material: ColorSourceRegister, AttenuationFn: AttenuationFunctionNone},
		},
		ChanData: []ChanData{{MatColor: RGBA32{255, 255, 255, 255}, AmbColor: RGBA32{50, 50, 50, 255}}},
		AlphaCompare: gx.AlphaCompare{Comp0: gx.CompareAlways, Comp1: gx.CompareAlways, Op: gx.AlphaOpAnd},
		ZMode:        gx.ZMode{Enable: true, Func: gx.CompareLEqual, UpdateEnable: true},
		BlendMode:    gx.BlendMode{Type: gx.BlendNone},
	}

	bin, err := ToBinMat(mat, 3)
	require.NoError(t, err)
	assert.Equal(t, uint32(3), bin.ID)
	assert.Equal(t, uint8(1), bin.GenMode.NumTexGens)
	assert.Equal(t, uint8(1), bin.GenMode.NumChannels)

	back, err := FromBinMat(bin, nil)
	require.NoError(t, err)
	assert.Equal(t, mat.Name, back.Name)
	assert.Equal(t, mat.ColorChanControls, back.ColorChanControls)
	assert.Equal(t, mat.ChanData[0].MatColor, back.ChanData[0].MatColor)
	assert.Len(t, back.TexMatrices, 1)
	assert.Equal(t, mat.TexMatrices[0].TransformModel, back.TexMatrices[0].TransformModel)
}

func TestFromBinMatRejectsDiscontiguousChannels(t *testing.T) {

	var bin BrresMaterial
	bin.Chan.Chan[0].Flag = chanFlagMatColor0 | chanFlagAmbColor0 | chanFlagCtrlAlpha0 // COLOR0 missing, ALPHA0 present
	bin.Chan.Chan[1].Flag = chanFlagMatColor1 | chanFlagAmbColor1

	_, err := FromBinMat(bin, nil)
	require.Error(t, err)
	var ce *ContiguousChannelError
	require.ErrorAs(t, err, &ce)
}
