package material

import "github.com/gc3dtools/librii/gx"

// BmdMaterial is the J3D (BMD) sibling of BrresMaterial (§6 "J3D MAT3
// section layout"). Where BRRES's MAT1 embeds every per-material
// record inline, J3D's MAT3 packs texgens, TEV stages, tex matrices,
// channel data, and sampler bindings as indices into file-wide shared
// pools (librii/j3d/io/Sections/MAT3.cpp's MatLoader::indexed/
// indexedContainer helpers) and resolves them once at load time into
// the same kind of per-material record BRRES keeps inline. BmdMaterial
// models that resolved, edit-friendly state — reusing
// G3dMaterialData's component types (ChannelControl, ChanData,
// TexMatrix, IndirectStage, IndMatrix) since the two formats agree on
// every field's meaning once decoded — plus the one thing MAT3 keeps
// that BRRES doesn't: a texture-remap-table index per sampler slot
// rather than a texture name (MAT3.cpp's MatSec::TextureRemapTable,
// read via `loader.indexedContainer<u16>(samplers, ...)`).
type BmdMaterial struct {
	Name     string
	Flag     uint8
	Xlu      bool
	CullMode uint32

	GenMode GenMode
	Misc    MiscData
	Dither  bool

	ColorChanControls []ChannelControl
	ChanData          []ChanData

	TexGens     []gx.TexGen
	TexMatrices []TexMatrix

	// TextureRemapIndices[i] is the file-wide texture pool index
	// sampler slot i resolves to (MatSec::TextureRemapTable), unlike
	// BrresMaterial.Samplers[i].Texture which names the texture
	// directly.
	TextureRemapIndices []uint16

	Stages         []gx.TevStage
	SwapTable      [4]gx.SwapTable
	TevColors      [4]gx.TevColor
	TevKonstColors [4]gx.TevColor

	IndirectStages []IndirectStage
	IndMatrices    []IndMatrix

	AlphaCompare gx.AlphaCompare
	ZMode        gx.ZMode
	BlendMode    gx.BlendMode
}
