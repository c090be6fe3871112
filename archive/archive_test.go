package archive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gc3dtools/librii/anim"
	"github.com/gc3dtools/librii/bone"
	"github.com/gc3dtools/librii/gctex"
	"github.com/gc3dtools/librii/gx"
	"github.com/gc3dtools/librii/material"
	"github.com/gc3dtools/librii/mesh"
	"github.com/gc3dtools/librii/names"
	"github.com/gc3dtools/librii/rstream"
	"github.com/gc3dtools/librii/transact"
)

func TestRelocWriterResolvesForwardReference(t *testing.T) {
	w := rstream.NewWriter()
	linker := NewRelocWriter()

	linker.Label(w, "Mat0")
	linker.WriteReloc(w, "Mat0", "Shader0")
	linker.Label(w, "Shader0")
	w.WriteU32(0x11223344) // pretend shader body

	linker.Resolve(w)

	r := rstream.NewReader(w.Bytes())
	r.Skip(0)
	delta, err := r.U32()
	require.NoError(t, err)
	assert.Equal(t, uint32(4), delta) // Shader0 is 4 bytes after Mat0's start
}

func TestRelocWriterPanicsOnDeadLabel(t *testing.T) {
	w := rstream.NewWriter()
	linker := NewRelocWriter()
	linker.Label(w, "Mat0")
	linker.WriteReloc(w, "Mat0", "NeverWritten")
	assert.Panics(t, func() { linker.Resolve(w) })
}

func TestDictionaryRoundTrip(t *testing.T) {
	w := rstream.NewWriter()
	pool := names.NewPool()

	dict := BetterDictionary{Nodes: []BetterNode{
		{Name: "tex_a", StreamPos: 0},
		{Name: "tex_b", StreamPos: 0},
	}}
	dictStart := w.Pos()
	dict.Nodes[0].StreamPos = dictStart + CalcDictionarySize(2) + 0
	dict.Nodes[1].StreamPos = dictStart + CalcDictionarySize(2) + 40
	WriteDictionary(dict, w, pool)

	poolBase := w.Pos()
	body := pool.Body()
	w.WriteBytes(body)
	pool.Resolve(w, poolBase)

	r := rstream.NewReader(w.Bytes())
	got, err := ReadDictionary(r)
	require.NoError(t, err)
	require.Len(t, got.Nodes, 2)
	assert.Equal(t, "tex_a", got.Nodes[0].Name)
	assert.Equal(t, "tex_b", got.Nodes[1].Name)
	assert.Equal(t, dict.Nodes[0].StreamPos, got.Nodes[0].StreamPos)
	assert.Equal(t, dict.Nodes[1].StreamPos, got.Nodes[1].StreamPos)
}

func TestTextureSamplerMappingManagerDedupesByTextureName(t *testing.T) {
	m := NewTextureSamplerMappingManager()
	m.AddEntry("tex_a", "matA", 0)
	m.AddEntry("tex_b", "matA", 1)
	m.AddEntry("tex_a", "matB", 0)
	assert.Equal(t, []string{"tex_a", "tex_b"}, m.Textures())
}

func basicMaterial(name string) material.BrresMaterial {
	return material.BrresMaterial{
		Name:    name,
		GenMode: material.GenMode{NumTexGens: 1, NumChannels: 1, NumTevStages: 1},
		Samplers: []material.BinarySampler{
			{Texture: "tex_a", MinFilter: material.FilterNear, MagFilter: material.FilterNear},
		},
		DL: gx.DefaultMaterialDLData(),
	}
}

func basicMesh(name string) *mesh.Mesh {
	vcd := mesh.NewVertexDescriptor()
	vcd.SetAttribute(mesh.PositionNormalMatrixIndex, mesh.EncodingDirect)
	vcd.SetAttribute(mesh.Position, mesh.EncodingShort)
	return &mesh.Mesh{
		Name:    name,
		Visible: true,
		VCD:     vcd,
		MatrixPrimitives: []mesh.MatrixPrimitive{{
			Primitives: []mesh.Primitive{{
				Topology: mesh.Triangles,
				Vertices: []mesh.IndexedVertex{{}, {}, {}},
			}},
		}},
	}
}

func TestWriteBRRESProducesNonEmptyAlignedArchive(t *testing.T) {
	skel, err := bone.NewSkeleton([]bone.Bone{{Name: "root", ParentIndex: bone.NoParent}})
	require.NoError(t, err)

	a := &Archive{
		Name:     "test",
		Textures: []gctex.TEX0{{Name: "tex_a", Width: 4, Height: 4, Format: gctex.RGBA32, Data: make([]byte, 4*4*4)}},
		Models: []Model{{
			Name:      "mdl",
			Skeleton:  skel,
			Materials: []material.BrresMaterial{basicMaterial("matA")},
			Meshes:    []*mesh.Mesh{basicMesh("meshA")},
		}},
	}

	out, err := WriteBRRES(a, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
	assert.Equal(t, 0, len(out)%brresAlign)
	assert.Equal(t, "bres", string(out[0:4]))
}

func TestPresetValidateRejectsMultipleMaterials(t *testing.T) {
	p := &Preset{Archive: Archive{Models: []Model{{
		Materials: []material.BrresMaterial{basicMaterial("a"), basicMaterial("b")},
	}}}}
	err := p.Validate()
	require.Error(t, err)
}

func TestPresetValidateRejectsExtraneousChrAnim(t *testing.T) {
	p := &Preset{Archive: Archive{
		Models: []Model{{Materials: []material.BrresMaterial{basicMaterial("matA")}}},
	}}
	p.Archive.ChrAnims = []anim.Anim{{Name: "otherMat"}}
	err := p.Validate()
	require.Error(t, err)
}

func TestWriteRspresetRejectsInvalidPreset(t *testing.T) {
	p := &Preset{Archive: Archive{
		Models: []Model{{Materials: []material.BrresMaterial{basicMaterial("a"), basicMaterial("b")}}},
	}}
	var reported []transact.Message
	tx := transact.New("", func(m transact.Message) { reported = append(reported, m) })
	_, err := WriteRspreset(p, "RiiStudio Test", tx)
	require.Error(t, err)
	assert.True(t, tx.Errored)
}
