// Package material implements the three-layer material codec (§4.6):
// an edit-friendly G3dMaterialData, a file-friendly BrresMaterial,
// and the transient LowLevelGxMaterial the display-list decode pass
// produces. ToBinMat/FromBinMat convert between the first two,
// delegating the 0x180-byte display list itself to package gx.
// BmdMaterial is the J3D sibling of BrresMaterial (§6); IGCMaterial
// is the capability trait both implement (capability.go).
//
// Grounded on g3n-engine/material/material.go's Material struct (a
// plain settings record with a conversion boundary to the
// renderer-facing form) generalized from one GL material to the
// console's three-layer material ladder described by
// librii/g3d/io/MatIO.cpp's BrresMaterial/G3dMaterialData/toBinMat/
// fromBinMat, plus librii/j3d/io/Sections/MAT3.cpp for BmdMaterial.
package material

import "github.com/gc3dtools/librii/gx"

// LowLevelGxMaterial is the transient TEV state a display-list decode
// pass reconstructs: swap tables, per-pair indirect orders, and the
// decoded TEV stages. It never round-trips to disk on its own — it
// only feeds FromBinMat's TEV reconstruction.
type LowLevelGxMaterial = gx.TevDLData

// GenMode packs the counts that size every other section of the
// material record (§4.6).
type GenMode struct {
	NumTexGens   uint8
	NumChannels  uint8
	NumTevStages uint8
	NumIndStages uint8
	CullMode     uint32
}

// MiscData is the per-material fixed-size block carrying fields the
// display list itself has no room for: early-Z, light/fog set
// indices, and the per-indirect-stage method/light binding (§4.6).
type MiscData struct {
	EarlyZComparison      bool
	LightSetIndex         int8
	FogIndex              int8
	IndMethod             [4]gx.IndMethod
	NormalMapLightIndices [4]uint8
}

// Channel control flag bits, packed pairwise into BinaryChannelData's
// two Chan slots (COLOR0+ALPHA0 in slot 0, COLOR1+ALPHA1 in slot 1).
const (
	chanFlagMatColor0 uint32 = 1 << iota
	chanFlagAmbColor0
	chanFlagMatColor1
	chanFlagAmbColor1
	chanFlagCtrlColor0
	chanFlagCtrlAlpha0
	chanFlagCtrlColor1
	chanFlagCtrlAlpha1
)

// BinaryChannel is one lighting-channel pair's on-disk record: a
// material/ambient register color pair, plus the packed control words
// for whichever of COLOR/ALPHA this slot addresses (flagged by Flag).
type BinaryChannel struct {
	Flag         uint32
	Material     RGBA32
	Ambient      RGBA32
	XfCntrlColor ChannelControl
	XfCntrlAlpha ChannelControl
}

// BinaryChannelData is the material's fixed two-slot channel block.
type BinaryChannelData struct {
	Chan [2]BinaryChannel
}

// TexMatrixMode is the material-wide texture-matrix authoring
// convention (one mode per material, unlike J3D's per-matrix mode).
type TexMatrixMode uint8

const (
	TexMatrixModeMaya TexMatrixMode = iota
	TexMatrixModeXSI
	TexMatrixModeMax
)

// BinaryTexSrt is one texture matrix's on-disk scale/rotate/translate.
type BinaryTexSrt struct {
	Scale         [2]float32
	RotateDegrees float32
	Translate     [2]float32
}

// BinaryTexMtxEffect is one texture matrix's camera/light binding and
// mapping-method byte.
type BinaryTexMtxEffect struct {
	CamIdx   int8
	LightIdx int8
	MapMode  uint8
	Flag     uint32
}

// BinaryTexSrtData is the material's fixed eight-slot texture-matrix
// block.
type BinaryTexSrtData struct {
	Flag       uint32
	TexMtxMode TexMatrixMode
	Srt        [8]BinaryTexSrt
	Effect     [8]BinaryTexMtxEffect
}

// BinarySampler is one texture sampler's on-disk record.
type BinarySampler struct {
	Texture   string
	Palette   string
	WrapU     WrapMode
	WrapV     WrapMode
	MinFilter FilterMode
	MagFilter FilterMode
	LodBias   float32
	MaxAniso  uint8
	BiasClamp bool
	EdgeLod   bool
}

// BrresMaterial is the file-friendly material record: a packed
// gen_mode/misc pair, a name-addressed TEV record, sampler records,
// the texture-matrix and channel blocks, and the embedded 0x180-byte
// display list (held decoded as gx.MaterialDLData rather than as a
// raw byte blob, since package gx already owns that codec).
type BrresMaterial struct {
	Name string
	ID   uint32
	Flag uint32

	GenMode GenMode
	Misc    MiscData

	Samplers   []BinarySampler
	TexSrtData BinaryTexSrtData
	Chan       BinaryChannelData
	Tev        LowLevelGxMaterial

	DL gx.MaterialDLData
}

// G3dMaterialData is the edit-friendly material: channel controls
// addressed individually (rather than pairwise), named texture/palette
// references instead of indices, and a per-matrix transform model
// instead of the single material-wide mode the binary form is
// constrained to (§4.6).
type G3dMaterialData struct {
	Name string
	ID   uint32
	Flag uint32
	Xlu  bool

	CullMode uint32

	EarlyZComparison bool
	LightSetIndex    int8
	FogIndex         int8

	TexGens        []gx.TexGen
	Stages         []gx.TevStage
	IndirectStages []IndirectStage
	SwapTable      [4]gx.SwapTable

	Samplers []SamplerData

	TexMatrices []TexMatrix

	ColorChanControls []ChannelControl
	ChanData          []ChanData

	AlphaCompare gx.AlphaCompare
	ZMode        gx.ZMode
	BlendMode    gx.BlendMode
	DstAlpha     gx.DstAlpha

	TevColors      [4]gx.TevColor // index 0 is the hardcoded opaque-white constant register
	TevKonstColors [4]gx.TevColor

	IndMatrices []IndMatrix
}

// IndirectStage is one indirect-texturing stage's edit-friendly
// binding: the scale pair a material-level indirect stage carries.
type IndirectStage struct {
	Scale gx.IndTexScale
}

// IndMatrix is one indirect matrix plus the method/light binding
// MiscData's packed fields carry separately on disk.
type IndMatrix struct {
	Matrix   gx.IndMatrix
	Method   gx.IndMethod
	RefLight uint8
}
