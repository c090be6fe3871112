package gx

// The fixed-size DL parsing pass (§4.4) writes directly into
// MaterialDLData and TevDLData — they are the flattened register
// bank's typed projection, so no separate untyped accumulator sits
// between the read pass and the decoded result.

// IndMethod is the per-indirect-stage interpretation applied during
// material decode/encode (§4.6). Four "reserved/user" encoded values
// exist in the source format and are rejected on decode.
type IndMethod uint8

const (
	IndMethodWarp IndMethod = iota
	IndMethodNormalMap
	IndMethodSpecNormalMap
	IndMethodFur
)

// IndirectStage is one indirect-texturing stage: the texture-coordinate
// index it reads, the texture map it samples, and the interpretation
// applied to the sampled offset (§3).
type IndirectStage struct {
	TexCoord uint8
	TexMap   uint8
	Method   IndMethod
	RefLight uint8 // only meaningful for IndMethodNormalMap/SpecNormalMap
}

// TevStage is a single TEV combiner stage (§3): the raster-order inputs
// (which channel, texmap, and texcoord a stage samples), the two swap
// ids feeding packColor/packAlpha, the color/alpha combiners, and the
// indirect stage this TEV stage composites against, if any.
type TevStage struct {
	RasOrder    uint8 // raster color channel id, or 0xff if none
	TexMap      uint8
	TexCoord    uint8
	RasSwap     uint8
	TexSwap     uint8
	Color       ColorStage
	Alpha       AlphaStage
	Indirect    IndirectStage
	HasIndirect bool
}
