package gx

// ColorArg is a TEV color combiner operand selector (the a/b/c/d
// selector set for ColorStage, §3).
type ColorArg uint8

const (
	ColorArgCPrev ColorArg = iota
	ColorArgAPrev
	ColorArgC0
	ColorArgA0
	ColorArgC1
	ColorArgA1
	ColorArgC2
	ColorArgA2
	ColorArgTexColor
	ColorArgTexAlpha
	ColorArgRasColor
	ColorArgRasAlpha
	ColorArgOne
	ColorArgHalf
	ColorArgKonst
	ColorArgZero
)

// AlphaArg is a TEV alpha combiner operand selector. The alpha
// pipeline has no texture/raster *color* component, so its selector
// set is narrower than ColorArg's (§3).
type AlphaArg uint8

const (
	AlphaArgAPrev AlphaArg = iota
	AlphaArgA0
	AlphaArgA1
	AlphaArgA2
	AlphaArgTexAlpha
	AlphaArgRasAlpha
	AlphaArgKonst
	AlphaArgZero
)

// Formula is the combiner operation selected by a stage: add/sub, or
// one of the masked comparison family (§3, §4.4).
type Formula uint8

const (
	FormulaAdd Formula = iota
	FormulaSub
	FormulaCompR8GT
	FormulaCompR8EQ
	FormulaCompGR16GT
	FormulaCompGR16EQ
	FormulaCompBGR24GT
	FormulaCompBGR24EQ
	FormulaCompRGB8GT
	FormulaCompRGB8EQ
	// Alpha-only compare variant occupying the same encoded slot as
	// FormulaCompRGB8{GT,EQ} for the color pipeline.
	FormulaCompA8GT
	FormulaCompA8EQ
)

func (f Formula) isCompare() bool { return f >= FormulaCompR8GT }

// Bias is the TEV combiner bias field. CompareMode reuses the encoded
// value 3 and repurposes the op/shift fields to carry the compare
// subtype (§4.4).
type Bias uint8

const (
	BiasZero Bias = iota
	BiasAddHalf
	BiasSubHalf
	BiasCompare
)

// Scale is the TEV combiner output scale (ignored in compare mode,
// where the field instead holds half of the compare subtype id).
type Scale uint8

const (
	ScaleOne Scale = iota
	ScaleTwo
	ScaleFour
	ScaleDivTwo
)

// Dest names the TEV output register a stage writes to.
type Dest uint8

const (
	DestPrev Dest = iota
	DestReg0
	DestReg1
	DestReg2
)

// ColorStage is the color-channel half of a TEV stage's combiner
// (§3). Compare-family formulas ignore Bias/Scale/Clamp as
// independent fields — see packColor.
type ColorStage struct {
	A, B, C, D ColorArg
	Formula    Formula
	Bias       Bias
	Scale      Scale
	Clamp      bool
	Dest       Dest
}

// AlphaStage is the alpha-channel half of a TEV stage's combiner,
// plus the raster-swap / texmap-swap nibbles that only the alpha word
// carries (§3).
type AlphaStage struct {
	A, B, C, D     AlphaArg
	Formula        Formula
	Bias           Bias
	Scale          Scale
	Clamp          bool
	Dest           Dest
	RasSwap        uint8 // 2-bit swap-table index
	TexSwap        uint8 // 2-bit swap-table index
}

// packColor encodes a ColorStage into the 24-bit TEV color combiner
// value carried by a BP write. Non-compare formulas write Bias and
// Scale directly; compare formulas encode Bias=3 (BiasCompare), pack
// the real formula's low bit into the 1-bit op field, and pack the
// compare subtype (R8/GR16/BGR24/RGB8) into the 2-bit field that
// otherwise holds Scale (§4.4).
func packColor(s ColorStage) uint32 {

	var bias, op, shift uint32
	if s.Formula.isCompare() {
		bias = uint32(BiasCompare)
		subtype := (uint32(s.Formula) - uint32(FormulaCompR8GT)) / 2
		op = (uint32(s.Formula) - uint32(FormulaCompR8GT)) & 1
		shift = subtype
	} else {
		bias = uint32(s.Bias)
		op = uint32(s.Formula) // 0 = add, 1 = sub
		shift = uint32(s.Scale)
	}

	clamp := uint32(0)
	if s.Clamp {
		clamp = 1
	}

	v := uint32(s.D) | uint32(s.C)<<4 | uint32(s.B)<<8 | uint32(s.A)<<12
	v |= bias << 16
	v |= op << 18
	v |= clamp << 19
	v |= shift << 20
	v |= uint32(s.Dest) << 22
	return v
}

func unpackColor(v uint32) ColorStage {

	var s ColorStage
	s.D = ColorArg(v & 0xF)
	s.C = ColorArg((v >> 4) & 0xF)
	s.B = ColorArg((v >> 8) & 0xF)
	s.A = ColorArg((v >> 12) & 0xF)
	bias := Bias((v >> 16) & 0x3)
	op := (v >> 18) & 0x1
	s.Clamp = (v>>19)&0x1 != 0
	shift := (v >> 20) & 0x3
	s.Dest = Dest((v >> 22) & 0x3)

	if bias == BiasCompare {
		s.Bias = BiasCompare
		s.Formula = Formula(uint32(FormulaCompR8GT) + shift*2 + op)
	} else {
		s.Bias = bias
		s.Scale = Scale(shift)
		s.Formula = Formula(op)
	}
	return s
}

// packAlpha encodes an AlphaStage into the 24-bit TEV alpha combiner
// value. It follows the same bias/op/shift layout as packColor and
// additionally carries the raster-swap and tex-swap nibbles in the
// low bits (§3, §4.4).
func packAlpha(s AlphaStage) uint32 {

	var bias, op, shift uint32
	if s.Formula.isCompare() {
		bias = uint32(BiasCompare)
		switch s.Formula {
		case FormulaCompA8GT:
			// A8 reuses the RGB8 compare-subtype slot: alpha has a
			// single component, so "per-channel" RGB8 compare and "A8"
			// compare are the same hardware bit pattern.
			offset := uint32(FormulaCompRGB8GT - FormulaCompR8GT)
			op, shift = offset&1, offset/2
		case FormulaCompA8EQ:
			offset := uint32(FormulaCompRGB8EQ - FormulaCompR8GT)
			op, shift = offset&1, offset/2
		default:
			offset := uint32(s.Formula) - uint32(FormulaCompR8GT)
			op, shift = offset&1, offset/2
		}
	} else {
		bias = uint32(s.Bias)
		op = uint32(s.Formula)
		shift = uint32(s.Scale)
	}

	clamp := uint32(0)
	if s.Clamp {
		clamp = 1
	}

	v := uint32(s.RasSwap&0x3) | uint32(s.TexSwap&0x3)<<2
	v |= uint32(s.D) << 4
	v |= uint32(s.C) << 7
	v |= uint32(s.B) << 10
	v |= uint32(s.A) << 13
	v |= bias << 16
	v |= op << 18
	v |= clamp << 19
	v |= shift << 20
	v |= uint32(s.Dest) << 22
	return v
}

func unpackAlpha(v uint32) AlphaStage {

	var s AlphaStage
	s.RasSwap = uint8(v & 0x3)
	s.TexSwap = uint8((v >> 2) & 0x3)
	s.D = AlphaArg((v >> 4) & 0x7)
	s.C = AlphaArg((v >> 7) & 0x7)
	s.B = AlphaArg((v >> 10) & 0x7)
	s.A = AlphaArg((v >> 13) & 0x7)
	bias := Bias((v >> 16) & 0x3)
	op := (v >> 18) & 0x1
	s.Clamp = (v>>19)&0x1 != 0
	shift := (v >> 20) & 0x3
	s.Dest = Dest((v >> 22) & 0x3)

	if bias == BiasCompare {
		s.Bias = BiasCompare
		if shift == uint32(FormulaCompRGB8GT-FormulaCompR8GT)/2 {
			s.Formula = FormulaCompA8GT + Formula(op)
		} else {
			s.Formula = Formula(uint32(FormulaCompR8GT) + shift*2 + op)
		}
	} else {
		s.Bias = bias
		s.Scale = Scale(shift)
		s.Formula = Formula(op)
	}
	return s
}
