package material

import (
	"testing"

	"github.com/gc3dtools/librii/gx"
	"github.com/stretchr/testify/assert"
)

func TestBrresMaterialImplementsIGCMaterial(t *testing.T) {
	m := &BrresMaterial{
		Name:    "mat_brres",
		GenMode: GenMode{NumTexGens: 1, NumTevStages: 1},
		Samplers: []BinarySampler{
			{Texture: "tex_a"},
			{Texture: "tex_b"},
		},
		DL: gx.MaterialDLData{TexGens: []gx.TexGen{{Type: 0, Source: 0, Matrix: 0x3C}}},
	}

	var igc IGCMaterial = m
	assert.Equal(t, "mat_brres", igc.MaterialName())
	assert.Equal(t, 2, igc.SamplerCount())
	assert.Equal(t, "tex_a", igc.TextureAt(0))
	assert.Equal(t, "tex_b", igc.TextureAt(1))
	assert.Equal(t, "", igc.TextureAt(2))
	assert.NotEmpty(t, igc.ShaderKey())
}

func TestBmdMaterialImplementsIGCMaterial(t *testing.T) {
	m := &BmdMaterial{
		Name:                "mat_bmd",
		GenMode:             GenMode{NumTexGens: 1, NumTevStages: 1},
		TextureRemapIndices: []uint16{4, 7},
		TexGens:             []gx.TexGen{{Type: 0, Source: 0, Matrix: 0x3C}},
	}

	var igc IGCMaterial = m
	assert.Equal(t, "mat_bmd", igc.MaterialName())
	assert.Equal(t, 2, igc.SamplerCount())
	assert.Equal(t, "#4", igc.TextureAt(0))
	assert.Equal(t, "#7", igc.TextureAt(1))
	assert.Equal(t, "", igc.TextureAt(-1))
	assert.NotEmpty(t, igc.ShaderKey())
}

func TestShaderKeyDistinguishesStageCount(t *testing.T) {
	a := &BrresMaterial{GenMode: GenMode{NumTexGens: 1, NumTevStages: 1}}
	b := &BrresMaterial{GenMode: GenMode{NumTexGens: 1, NumTevStages: 2}}
	assert.NotEqual(t, a.ShaderKey(), b.ShaderKey())
}
