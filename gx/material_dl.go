package gx

import (
	"github.com/gc3dtools/librii/rstream"
)

// MaterialDLSize is the fixed, padded size of a material display list
// (§4.4).
const MaterialDLSize = 0x180

// CompareOp mirrors the console's 3-bit compare-function encoding,
// shared by alpha-compare and z-mode (§4.4).
type CompareOp uint8

const (
	CompareNever CompareOp = iota
	CompareLess
	CompareEqual
	CompareLEqual
	CompareGreater
	CompareNEqual
	CompareGEqual
	CompareAlways
)

// AlphaOp combines the two alpha-compare subtests.
type AlphaOp uint8

const (
	AlphaOpAnd AlphaOp = iota
	AlphaOpOr
	AlphaOpXor
	AlphaOpXnor
)

// AlphaCompare is the pixel-block alpha-test state (§4.4).
type AlphaCompare struct {
	Comp0, Comp1 CompareOp
	Ref0, Ref1   uint8
	Op           AlphaOp
}

func packAlphaCompare(a AlphaCompare) uint32 {
	return uint32(a.Ref0) | uint32(a.Ref1)<<8 | uint32(a.Comp0)<<16 | uint32(a.Comp1)<<19 | uint32(a.Op)<<22
}

func unpackAlphaCompare(v uint32) AlphaCompare {
	return AlphaCompare{
		Ref0:  uint8(v & 0xFF),
		Ref1:  uint8((v >> 8) & 0xFF),
		Comp0: CompareOp((v >> 16) & 0x7),
		Comp1: CompareOp((v >> 19) & 0x7),
		Op:    AlphaOp((v >> 22) & 0x3),
	}
}

// ZMode is the pixel-block depth-test state.
type ZMode struct {
	Enable       bool
	Func         CompareOp
	UpdateEnable bool
}

func packZMode(z ZMode) uint32 {
	v := uint32(z.Func) << 1
	if z.Enable {
		v |= 1
	}
	if z.UpdateEnable {
		v |= 1 << 4
	}
	return v
}

func unpackZMode(v uint32) ZMode {
	return ZMode{
		Enable:       v&1 != 0,
		Func:         CompareOp((v >> 1) & 0x7),
		UpdateEnable: (v>>4)&1 != 0,
	}
}

// BlendType selects the pixel-block blend unit's mode.
type BlendType uint8

const (
	BlendNone BlendType = iota
	BlendNormal
	BlendLogic
	BlendSubtract
)

// BlendFactor is an 8-value blend-equation factor selector.
type BlendFactor uint8

const (
	BlendFactorZero BlendFactor = iota
	BlendFactorOne
	BlendFactorSrcColor
	BlendFactorInvSrcColor
	BlendFactorSrcAlpha
	BlendFactorInvSrcAlpha
	BlendFactorDstAlpha
	BlendFactorInvDstAlpha
)

// BlendMode is the pixel-block blend-unit configuration.
type BlendMode struct {
	Type                 BlendType
	SrcFactor, DstFactor BlendFactor
	LogicOp              uint8
}

func packBlendMode(b BlendMode) uint32 {
	return uint32(b.Type)&0x3 | uint32(b.SrcFactor)&0x7<<2 | uint32(b.DstFactor)&0x7<<5 | uint32(b.LogicOp)&0xF<<8
}

func unpackBlendMode(v uint32) BlendMode {
	return BlendMode{
		Type:       BlendType(v & 0x3),
		SrcFactor:  BlendFactor((v >> 2) & 0x7),
		DstFactor:  BlendFactor((v >> 5) & 0x7),
		LogicOp:    uint8((v >> 8) & 0xF),
	}
}

// DstAlpha is the pixel-block destination-alpha override.
type DstAlpha struct {
	Enable bool
	Alpha  uint8
}

func packDstAlpha(d DstAlpha) uint32 {
	v := uint32(d.Alpha) << 1
	if d.Enable {
		v |= 1
	}
	return v
}

func unpackDstAlpha(v uint32) DstAlpha {
	return DstAlpha{Enable: v&1 != 0, Alpha: uint8((v >> 1) & 0xFF)}
}

// TevColor is a signed 11-bit-per-component RGBA register color, the
// host form of a TEV output register or constant-color slot (§4.4).
type TevColor struct {
	R, G, B, A int16
}

func packTevColorRA(c TevColor) uint32 {
	return (uint32(c.R) & 0x7FF) | (uint32(c.A)&0x7FF)<<12
}

func packTevColorBG(c TevColor) uint32 {
	return (uint32(c.B) & 0x7FF) | (uint32(c.G)&0x7FF)<<12
}

func signExtendComponent(v uint32) int16 {
	x := int32(v & 0x7FF)
	if x&0x400 != 0 {
		x -= 0x800
	}
	return int16(x)
}

func unpackTevColor(ra, bg uint32) TevColor {
	return TevColor{
		R: signExtendComponent(ra),
		A: signExtendComponent(ra >> 12),
		B: signExtendComponent(bg),
		G: signExtendComponent(bg >> 12),
	}
}

// IndTexScale is the per-stage indirect-texture-coordinate scale,
// packed two stages per BP write (§4.4).
type IndTexScale struct {
	ScaleS, ScaleT uint8 // 4-bit fields
}

func packIndTexScalePair(a, b IndTexScale) uint32 {
	return uint32(a.ScaleS&0xF) | uint32(a.ScaleT&0xF)<<4 | uint32(b.ScaleS&0xF)<<8 | uint32(b.ScaleT&0xF)<<12
}

func unpackIndTexScalePair(v uint32) (a, b IndTexScale) {
	a = IndTexScale{ScaleS: uint8(v & 0xF), ScaleT: uint8((v >> 4) & 0xF)}
	b = IndTexScale{ScaleS: uint8((v >> 8) & 0xF), ScaleT: uint8((v >> 12) & 0xF)}
	return
}

// TexGen is a single texture-coordinate generator entry (XF register
// state feeding the texgen block).
type TexGen struct {
	Type   uint8 // 3-bit generator type
	Source uint8 // 5-bit source attribute selector
	Matrix uint8 // 6-bit texture-matrix index
}

func packTexGen(t TexGen) uint32 {
	return uint32(t.Type&0x7)<<1 | uint32(t.Source&0x1F)<<4 | uint32(t.Matrix&0x3F)<<9
}

func unpackTexGen(v uint32) TexGen {
	return TexGen{
		Type:   uint8((v >> 1) & 0x7),
		Source: uint8((v >> 4) & 0x1F),
		Matrix: uint8((v >> 9) & 0x3F),
	}
}

// GenMode is the packed gen_mode word driving the DL's variable-length
// sections: texgen count, channel count, TEV stage count, indirect
// stage count, and face-culling mode (§4.6).
type GenMode struct {
	NumTexGens   uint8
	NumChannels  uint8 // (numColorChanControls+1)/2
	NumTevStages uint8
	NumIndStages uint8
	CullMode     uint8
}

// MaterialDLData is the full set of fields a material DL's fixed-size
// pass reads and writes (§4.4). It is the low-level counterpart
// material-codec conversions (toBinMat/fromBinMat) build on top of.
type MaterialDLData struct {
	GenMode GenMode

	AlphaCompare AlphaCompare
	ZMode        ZMode
	BlendMode    BlendMode
	DstAlpha     DstAlpha

	TevRegisters [3]TevColor
	TevKonst     [4]TevColor

	IndTexScales [4]IndTexScale // indexed by indirect stage, up to NumIndStages
	IndMatrices  [3]IndMatrix

	TexGens []TexGen // len == GenMode.NumTexGens
}

// DefaultMaterialDLData returns the conventional default material
// state: blending disabled, alpha-compare always-true, depth test and
// depth write both enabled — the state exercised by the concrete
// single-stage/single-sampler/single-texgen scenario (§8 scenario 4).
func DefaultMaterialDLData() MaterialDLData {
	return MaterialDLData{
		GenMode: GenMode{NumTexGens: 1, NumChannels: 1, NumTevStages: 1, NumIndStages: 0},
		AlphaCompare: AlphaCompare{
			Comp0: CompareAlways, Comp1: CompareAlways, Op: AlphaOpAnd,
		},
		ZMode: ZMode{Enable: true, Func: CompareLEqual, UpdateEnable: true},
		BlendMode: BlendMode{Type: BlendNone},
		TexGens:   []TexGen{{Type: 0, Source: 0, Matrix: 0x3C}}, // identity texture matrix slot
	}
}

// EncodeMaterialDL writes m as the fixed 0x180-byte material display
// list (§4.4 "Encoder sections").
func EncodeMaterialDL(m MaterialDLData) []byte {

	w := rstream.NewWriter()

	// 1. Pixel block (0x00-0x20).
	writeBP(w, bpAlphaCompare, packAlphaCompare(m.AlphaCompare))
	writeBP(w, bpZMode, packZMode(m.ZMode))
	writeBP(w, bpBlendMode, packBlendMode(m.BlendMode))
	writeBP(w, bpConstAlpha, packDstAlpha(m.DstAlpha))
	w.PadTo(0x20)

	// 2. Register colors (0x20-0xa0): 3 registers x 5 writes (1 RA + 4
	// redundant BG, masking a documented hardware race, §9), then 4
	// konst colors x 2 writes (RA, BG).
	for reg := 0; reg < 3; reg++ {
		ra := packTevColorRA(m.TevRegisters[reg])
		bg := packTevColorBG(m.TevRegisters[reg])
		writeBP(w, bpTevRegisterL0+byte(reg*2), ra)
		for i := 0; i < 4; i++ {
			writeBP(w, bpTevRegisterH0+byte(reg*2), bg)
		}
	}
	for k := 0; k < 4; k++ {
		ra := packTevColorRA(m.TevKonst[k])
		bg := packTevColorBG(m.TevKonst[k])
		writeBP(w, bpTevRegisterL0+byte(6+k*2), ra)
		writeBP(w, bpTevRegisterH0+byte(6+k*2), bg)
	}
	w.PadTo(0xa0)

	// 3. Indirect block (0xa0-0xe0): 2 IndTexScale writes (4 stages),
	// then 3 indirect matrices x 3 BP writes each.
	writeBP(w, bpIndTexScale0, packIndTexScalePair(m.IndTexScales[0], m.IndTexScales[1]))
	writeBP(w, bpIndTexScale1, packIndTexScalePair(m.IndTexScales[2], m.IndTexScales[3]))
	for mtx := 0; mtx < 3; mtx++ {
		words := EncodeIndMatrix(m.IndMatrices[mtx])
		for col := 0; col < 3; col++ {
			writeBP(w, bpIndMtxA0+byte(mtx*3+col), words[col])
		}
	}
	w.PadTo(0xe0)

	// 4. Texgen block (0xe0-0x180).
	for i, tg := range m.TexGens {
		writeXF(w, xfTexGen0+uint16(i), packTexGen(tg))
	}
	w.PadTo(MaterialDLSize)

	return w.Bytes()
}

// DecodeMaterialDL parses a material display list, failing if fewer
// than MaterialDLSize bytes can be consumed or an unsupported BP
// register id is encountered (§4.4 "Failure model").
func DecodeMaterialDL(buf []byte, numTexGens int) (MaterialDLData, error) {

	if len(buf) < MaterialDLSize {
		return MaterialDLData{}, &DecodeError{Reason: "material display list shorter than 0x180 bytes"}
	}

	r := rstream.NewReader(buf)
	var m MaterialDLData

	if err := func() error {
		defer r.Jump(0)()
		for i := 0; i < 4; i++ {
			_, reg, val, err := readCommand(r)
			if err != nil {
				return err
			}
			switch byte(reg) {
			case bpAlphaCompare:
				m.AlphaCompare = unpackAlphaCompare(val)
			case bpZMode:
				m.ZMode = unpackZMode(val)
			case bpBlendMode:
				m.BlendMode = unpackBlendMode(val)
			case bpConstAlpha:
				m.DstAlpha = unpackDstAlpha(val)
			}
		}
		return nil
	}(); err != nil {
		return MaterialDLData{}, err
	}

	if err := func() error {
		defer r.Jump(0x20)()
		for reg := 0; reg < 3; reg++ {
			_, _, ra, err := readCommand(r)
			if err != nil {
				return err
			}
			var bg uint32
			for i := 0; i < 4; i++ {
				_, _, v, err := readCommand(r)
				if err != nil {
					return err
				}
				bg = v
			}
			m.TevRegisters[reg] = unpackTevColor(ra, bg)
		}
		for k := 0; k < 4; k++ {
			_, _, ra, err := readCommand(r)
			if err != nil {
				return err
			}
			_, _, bg, err := readCommand(r)
			if err != nil {
				return err
			}
			m.TevKonst[k] = unpackTevColor(ra, bg)
		}
		return nil
	}(); err != nil {
		return MaterialDLData{}, err
	}

	if err := func() error {
		defer r.Jump(0xa0)()
		_, _, v0, err := readCommand(r)
		if err != nil {
			return err
		}
		s0, s1 := unpackIndTexScalePair(v0)
		m.IndTexScales[0], m.IndTexScales[1] = s0, s1

		_, _, v1, err := readCommand(r)
		if err != nil {
			return err
		}
		s2, s3 := unpackIndTexScalePair(v1)
		m.IndTexScales[2], m.IndTexScales[3] = s2, s3

		for mtx := 0; mtx < 3; mtx++ {
			var words [3]uint32
			for col := 0; col < 3; col++ {
				_, _, v, err := readCommand(r)
				if err != nil {
					return err
				}
				words[col] = v
			}
			decoded, err := DecodeIndMatrix(words)
			if err != nil {
				return err
			}
			m.IndMatrices[mtx] = decoded
		}
		return nil
	}(); err != nil {
		return MaterialDLData{}, err
	}

	if err := func() error {
		defer r.Jump(0xe0)()
		for i := 0; i < numTexGens; i++ {
			_, _, v, err := readCommand(r)
			if err != nil {
				return err
			}
			m.TexGens = append(m.TexGens, unpackTexGen(v))
		}
		return nil
	}(); err != nil {
		return MaterialDLData{}, err
	}

	return m, nil
}
