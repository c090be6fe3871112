package gx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMaterialDLIsExactly0x180Bytes(t *testing.T) {

	m := DefaultMaterialDLData()
	buf := EncodeMaterialDL(m)
	require.Len(t, buf, MaterialDLSize)

	pixelBlock := buf[:0x20]
	assert.Equal(t, byte(OpBP), pixelBlock[0])
	assert.Equal(t, byte(bpAlphaCompare), pixelBlock[1])

	decoded, err := DecodeMaterialDL(buf, len(m.TexGens))
	require.NoError(t, err)
	assert.Equal(t, CompareAlways, decoded.AlphaCompare.Comp0)
	assert.Equal(t, CompareAlways, decoded.AlphaCompare.Comp1)
	assert.Equal(t, AlphaOpAnd, decoded.AlphaCompare.Op)
	assert.True(t, decoded.ZMode.Enable)
	assert.True(t, decoded.ZMode.UpdateEnable)
	assert.Equal(t, BlendNone, decoded.BlendMode.Type)
}

func TestMaterialDLRoundTrip(t *testing.T) {

	m := MaterialDLData{
		GenMode: GenMode{NumTexGens: 2},
		AlphaCompare: AlphaCompare{
			Comp0: CompareGEqual, Comp1: CompareLess, Ref0: 128, Ref1: 12, Op: AlphaOpOr,
		},
		ZMode:     ZMode{Enable: true, Func: CompareLEqual, UpdateEnable: false},
		BlendMode: BlendMode{Type: BlendNormal, SrcFactor: BlendFactorSrcAlpha, DstFactor: BlendFactorInvSrcAlpha},
		DstAlpha:  DstAlpha{Enable: true, Alpha: 200},
		TevRegisters: [3]TevColor{
			{R: 100, G: -50, B: 3, A: 255},
			{R: -1024, G: 1023, B: 0, A: 0},
			{},
		},
		TevKonst: [4]TevColor{
			{R: 1, G: 2, B: 3, A: 4},
			{}, {}, {},
		},
		IndTexScales: [4]IndTexScale{{ScaleS: 3, ScaleT: 5}, {}, {}, {}},
		IndMatrices: [3]IndMatrix{
			{{1, 0}, {0, 1}, {0, 0}},
			{{0.5, -0.5}, {0.25, 0.25}, {-0.1, 0.1}},
			{},
		},
		TexGens: []TexGen{
			{Type: 1, Source: 5, Matrix: 0x3C},
			{Type: 0, Source: 2, Matrix: 0x1E},
		},
	}

	buf := EncodeMaterialDL(m)
	require.Len(t, buf, MaterialDLSize)

	decoded, err := DecodeMaterialDL(buf, len(m.TexGens))
	require.NoError(t, err)

	assert.Equal(t, m.AlphaCompare, decoded.AlphaCompare)
	assert.Equal(t, m.ZMode, decoded.ZMode)
	assert.Equal(t, m.BlendMode, decoded.BlendMode)
	assert.Equal(t, m.DstAlpha, decoded.DstAlpha)
	assert.Equal(t, m.TevRegisters, decoded.TevRegisters)
	assert.Equal(t, m.TevKonst, decoded.TevKonst)
	assert.Equal(t, m.IndTexScales, decoded.IndTexScales)
	assert.Equal(t, m.TexGens, decoded.TexGens)

	for mtx := 0; mtx < 3; mtx++ {
		for col := 0; col < 3; col++ {
			for row := 0; row < 2; row++ {
				assert.InDelta(t, m.IndMatrices[mtx][col][row], decoded.IndMatrices[mtx][col][row], 1.0/1024)
			}
		}
	}
}

func TestMaterialDLDecodeRejectsShortBuffer(t *testing.T) {

	_, err := DecodeMaterialDL(make([]byte, 10), 1)
	require.Error(t, err)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
}

func TestTevDLRoundTrip(t *testing.T) {

	stage0 := TevStage{
		RasOrder: 1, TexMap: 2, TexCoord: 3, RasSwap: 1, TexSwap: 2,
		Color: ColorStage{A: ColorArgTexColor, B: ColorArgCPrev, C: ColorArgKonst, D: ColorArgZero, Formula: FormulaAdd, Bias: BiasAddHalf, Scale: ScaleTwo, Clamp: true, Dest: DestPrev},
		Alpha: AlphaStage{A: AlphaArgTexAlpha, B: AlphaArgAPrev, C: AlphaArgKonst, D: AlphaArgZero, Formula: FormulaSub, Bias: BiasZero, Scale: ScaleOne, Clamp: false, Dest: DestReg0, RasSwap: 1, TexSwap: 2},
		Indirect: IndirectStage{TexCoord: 1, TexMap: 0, Method: IndMethodNormalMap, RefLight: 2}, HasIndirect: true,
	}
	stage1 := TevStage{
		RasOrder: 0, TexMap: 0, TexCoord: 0,
		Color: ColorStage{Formula: FormulaCompRGB8GT, Dest: DestPrev},
		Alpha: AlphaStage{Formula: FormulaCompA8EQ, Dest: DestPrev},
	}

	tev := TevDLData{
		SwapTables: [4]SwapTable{
			{R: 0, G: 1, B: 2, A: 3},
			{}, {}, {},
		},
		IndOrders: [4]uint32{1, 2, 3, 4},
		Stages:    []TevStage{stage0, stage1},
	}

	buf := EncodeTevDL(tev)
	require.Len(t, buf, TevDLSize)

	decoded, err := DecodeTevDL(buf, len(tev.Stages))
	require.NoError(t, err)
	require.Len(t, decoded.Stages, 2)

	assert.Equal(t, tev.SwapTables, decoded.SwapTables)
	assert.Equal(t, tev.IndOrders, decoded.IndOrders)
	assert.Equal(t, stage0.Color, decoded.Stages[0].Color)
	assert.Equal(t, stage0.Alpha, decoded.Stages[0].Alpha)
	assert.Equal(t, stage0.Indirect, decoded.Stages[0].Indirect)
	assert.True(t, decoded.Stages[0].HasIndirect)
	assert.Equal(t, stage1.Color.Formula, decoded.Stages[1].Color.Formula)
	assert.Equal(t, stage1.Alpha.Formula, decoded.Stages[1].Alpha.Formula)
	assert.False(t, decoded.Stages[1].HasIndirect)
}

func TestColorStageCompareFormulaRoundTrip(t *testing.T) {

	for _, f := range []Formula{
		FormulaAdd, FormulaSub,
		FormulaCompR8GT, FormulaCompR8EQ,
		FormulaCompGR16GT, FormulaCompGR16EQ,
		FormulaCompBGR24GT, FormulaCompBGR24EQ,
		FormulaCompRGB8GT, FormulaCompRGB8EQ,
	} {
		s := ColorStage{A: ColorArgOne, B: ColorArgZero, C: ColorArgHalf, D: ColorArgCPrev, Formula: f, Dest: DestReg2, Clamp: true}
		back := unpackColor(packColor(s))
		assert.Equal(t, f, back.Formula, "formula %v", f)
		assert.Equal(t, s.Clamp, back.Clamp)
		assert.Equal(t, s.A, back.A)
	}
}

func TestAlphaStageCompareFormulaRoundTrip(t *testing.T) {

	for _, f := range []Formula{
		FormulaAdd, FormulaSub,
		FormulaCompR8GT, FormulaCompR8EQ,
		FormulaCompGR16GT, FormulaCompGR16EQ,
		FormulaCompBGR24GT, FormulaCompBGR24EQ,
		FormulaCompA8GT, FormulaCompA8EQ,
	} {
		s := AlphaStage{A: AlphaArgAPrev, B: AlphaArgZero, C: AlphaArgKonst, D: AlphaArgA0, Formula: f, Dest: DestReg1, RasSwap: 2, TexSwap: 3}
		back := unpackAlpha(packAlpha(s))
		assert.Equal(t, f, back.Formula, "formula %v", f)
		assert.Equal(t, s.RasSwap, back.RasSwap)
		assert.Equal(t, s.TexSwap, back.TexSwap)
	}
}
