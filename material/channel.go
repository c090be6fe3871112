package material

// ColorSource selects whether a channel's color comes from the
// material register or is computed from vertex color (§4.6).
type ColorSource uint8

const (
	ColorSourceRegister ColorSource = iota
	ColorSourceVertex
)

// DiffuseFunction is the lighting-channel diffuse attenuation curve.
type DiffuseFunction uint8

const (
	DiffuseFunctionNone DiffuseFunction = iota
	DiffuseFunctionSigned
	DiffuseFunctionClamped
)

// AttenuationFunction selects the channel's attenuation model.
// Specular carries id 0 in the binary encoding, matching the
// original's "attn select" bit layout.
type AttenuationFunction uint8

const (
	AttenuationFunctionSpecular AttenuationFunction = iota
	AttenuationFunctionSpotlight
	AttenuationFunctionNone
)

// LightID is a bitmask of the up to 8 hardware light channels a
// ChannelControl may reference.
type LightID uint8

const LightIDNone LightID = 0

// ChannelControl is one lighting-channel's control word (either the
// COLOR0/1 or ALPHA0/1 half), independently addressable at the
// G3dMaterialData level but packed pairwise on disk (§4.6).
type ChannelControl struct {
	Enabled       bool
	Ambient       ColorSource
	Material      ColorSource
	LightMask     LightID
	DiffuseFn     DiffuseFunction
	AttenuationFn AttenuationFunction
}

// RGBA32 is an 8-bit-per-channel material/ambient register color, as
// opposed to gx.TevColor's signed 11-bit TEV register representation.
type RGBA32 struct {
	R, G, B, A uint8
}

// ChanData is one channel slot's material and ambient register color.
type ChanData struct {
	MatColor RGBA32
	AmbColor RGBA32
}
