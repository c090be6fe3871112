package material

// WrapMode is a sampler's texture-coordinate wrap behavior.
type WrapMode uint8

const (
	WrapClamp WrapMode = iota
	WrapRepeat
	WrapMirror
)

// MinFilter/MagFilter select the sampler's texel filtering mode.
type FilterMode uint8

const (
	FilterNear FilterMode = iota
	FilterLinear
	FilterNearMipNear
	FilterLinMipNear
	FilterNearMipLin
	FilterLinMipLin
)

// SamplerData is one texture sampler slot, referencing a texture and
// (optionally) a palette by name within the owning archive (§4.6).
type SamplerData struct {
	Texture string
	Palette string

	WrapU, WrapV       WrapMode
	MinFilter          FilterMode
	MagFilter          FilterMode
	LodBias            float32
	MaxAniso           uint8
	EdgeLod, BiasClamp bool
}
