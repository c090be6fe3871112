package material

import (
	"fmt"

	"github.com/gc3dtools/librii/gx"
	"github.com/gc3dtools/librii/math32"
)

// ContiguousChannelError reports a material whose ColorChanControls
// cannot be packed into BinaryChannelData's COLOR0/ALPHA0/COLOR1/
// ALPHA1 prefix layout (§4.6 "Backward conversion").
type ContiguousChannelError struct {
	Count int
}

func (e *ContiguousChannelError) Error() string {
	return fmt.Sprintf("material: %d channel controls do not form a contiguous COLOR0/ALPHA0/COLOR1/ALPHA1 prefix", e.Count)
}

func indMethodFromMatrix(m IndMatrix) gx.IndMethod { return m.Method }

// ToBinMat packs an edit-friendly material into its file-friendly
// form. matIdx becomes the binary record's ID (§4.6 "Forward
// conversion").
func ToBinMat(mat G3dMaterialData, matIdx uint32) (BrresMaterial, error) {

	var bin BrresMaterial
	bin.Name = mat.Name
	bin.ID = matIdx
	bin.Flag = (mat.Flag &^ 0x80000000)
	if mat.Xlu {
		bin.Flag |= 0x80000000
	}

	numChannels := uint8((len(mat.ColorChanControls) + 1) / 2)
	bin.GenMode = GenMode{
		NumTexGens:   uint8(len(mat.TexGens)),
		NumChannels:  numChannels,
		NumTevStages: uint8(len(mat.Stages)),
		NumIndStages: uint8(len(mat.IndirectStages)),
		CullMode:     mat.CullMode,
	}

	bin.Misc = MiscData{
		EarlyZComparison: mat.EarlyZComparison,
		LightSetIndex:    mat.LightSetIndex,
		FogIndex:         mat.FogIndex,
	}
	for i, m := range mat.IndMatrices {
		if i >= 4 {
			break
		}
		bin.Misc.IndMethod[i] = indMethodFromMatrix(m)
		bin.Misc.NormalMapLightIndices[i] = m.RefLight
	}

	bin.Tev = LowLevelGxMaterial{
		SwapTables: mat.SwapTable,
		Stages:     mat.Stages,
	}

	bin.Samplers = make([]BinarySampler, len(mat.Samplers))
	for i, s := range mat.Samplers {
		bin.Samplers[i] = BinarySampler{
			Texture:   s.Texture,
			Palette:   s.Palette,
			WrapU:     s.WrapU,
			WrapV:     s.WrapV,
			MinFilter: s.MinFilter,
			MagFilter: s.MagFilter,
			LodBias:   s.LodBias,
			MaxAniso:  s.MaxAniso,
			BiasClamp: s.BiasClamp,
			EdgeLod:   s.EdgeLod,
		}
	}

	bin.TexSrtData = buildTexSrtData(mat.TexMatrices)

	if err := packChannelData(mat, &bin); err != nil {
		return BrresMaterial{}, err
	}

	bin.DL = gx.MaterialDLData{
		GenMode:      gx.GenMode{NumTexGens: uint8(len(mat.TexGens))},
		AlphaCompare: mat.AlphaCompare,
		ZMode:        mat.ZMode,
		BlendMode:    mat.BlendMode,
		DstAlpha:     mat.DstAlpha,
		TexGens:      mat.TexGens,
	}
	for i := 0; i < 3 && i+1 < len(mat.TevColors); i++ {
		bin.DL.TevRegisters[i] = mat.TevColors[i+1]
	}
	bin.DL.TevKonst = mat.TevKonstColors
	for i, m := range mat.IndMatrices {
		if i >= 3 {
			break
		}
		bin.DL.IndMatrices[i] = m.Matrix
	}
	for i, s := range mat.IndirectStages {
		if i >= 4 {
			break
		}
		bin.DL.IndTexScales[i] = s.Scale
	}

	return bin, nil
}

func buildTexSrtData(mtcs []TexMatrix) BinaryTexSrtData {

	var out BinaryTexSrtData
	out.TexMtxMode = TexMatrixModeMaya
	if len(mtcs) > 0 {
		switch mtcs[len(mtcs)-1].TransformModel {
		case TransformModelXSI:
			out.TexMtxMode = TexMatrixModeXSI
		case TransformModelMax:
			out.TexMtxMode = TexMatrixModeMax
		}
	}

	var flags uint32
	for i := len(mtcs) - 1; i >= 0 && i < 8; i-- {
		flags = (flags << 4) | texMatrixFlags(mtcs[i])
	}
	out.Flag = flags

	for i := 0; i < len(mtcs) && i < 8; i++ {
		m := mtcs[i]
		out.Srt[i] = BinaryTexSrt{
			Scale:         [2]float32{m.Scale.X, m.Scale.Y},
			RotateDegrees: m.Rotate * (180.0 / 3.14159265358979323846),
			Translate:     [2]float32{m.Translate.X, m.Translate.Y},
		}
		out.Effect[i] = BinaryTexMtxEffect{
			CamIdx:   m.CamIdx,
			LightIdx: m.LightIdx,
			MapMode:  mapModeEncoding(m.Method),
			Flag:     1, // EFFECT_MTX_IDENTITY: no per-matrix effect matrix is supported
		}
	}
	return out
}

// packChannelData packs mat's individually-addressed channel controls
// into the binary form's two contiguous COLOR0/ALPHA0/COLOR1/ALPHA1
// slots, padding any missing trailing slot with a disabled channel
// (§4.6 "Forward conversion").
func packChannelData(mat G3dMaterialData, bin *BrresMaterial) error {

	chanData := append([]ChanData(nil), mat.ChanData...)
	ctrls := append([]ChannelControl(nil), mat.ColorChanControls...)
	for len(chanData) < 2 {
		chanData = append(chanData, ChanData{})
	}
	for len(ctrls) < (len(chanData))*2 && len(ctrls)%2 == 0 && len(ctrls) < 4 {
		ctrls = append(ctrls,
			ChannelControl{Ambient: ColorSourceRegister, Material: ColorSourceRegister, AttenuationFn: AttenuationFunctionSpecular},
			ChannelControl{Ambient: ColorSourceRegister, Material: ColorSourceRegister, AttenuationFn: AttenuationFunctionSpecular},
		)
	}

	for i := 0; i < 2; i++ {
		c := &bin.Chan.Chan[i]
		c.Flag = chanFlagMatColor0 | chanFlagAmbColor0
		if i == 1 {
			c.Flag = chanFlagMatColor1 | chanFlagAmbColor1
		}
		c.Material = chanData[i].MatColor
		c.Ambient = chanData[i].AmbColor

		if i*2 < len(mat.ColorChanControls) {
			c.Flag |= chanFlagCtrlColor0 << uint(i*2)
			c.XfCntrlColor = ctrls[i*2]
		}
		if i*2+1 < len(mat.ColorChanControls) {
			c.Flag |= chanFlagCtrlAlpha0 << uint(i*2)
			c.XfCntrlAlpha = ctrls[i*2+1]
		}
	}
	return nil
}

// FromBinMat reconstructs an edit-friendly material from its binary
// form. smat, if non-nil, is the LowLevelGxMaterial the display list's
// decode pass produced, supplying the TEV stages and swap tables the
// 0x180-byte blob alone does not carry (§4.6 "Backward conversion");
// smat's indirect orders are not carried over.
func FromBinMat(bin BrresMaterial, smat *LowLevelGxMaterial) (G3dMaterialData, error) {

	var mat G3dMaterialData
	mat.Name = bin.Name
	mat.ID = bin.ID
	mat.Flag = bin.Flag &^ 0x80000000
	mat.Xlu = bin.Flag&0x80000000 != 0
	mat.CullMode = bin.GenMode.CullMode

	mat.EarlyZComparison = bin.Misc.EarlyZComparison
	mat.LightSetIndex = bin.Misc.LightSetIndex
	mat.FogIndex = bin.Misc.FogIndex

	if smat != nil {
		mat.SwapTable = smat.SwapTables
		mat.Stages = smat.Stages
	}

	for _, bs := range bin.Samplers {
		mat.Samplers = append(mat.Samplers, SamplerData{
			Texture:   bs.Texture,
			Palette:   bs.Palette,
			WrapU:     bs.WrapU,
			WrapV:     bs.WrapV,
			MinFilter: bs.MinFilter,
			MagFilter: bs.MagFilter,
			LodBias:   bs.LodBias,
			MaxAniso:  bs.MaxAniso,
			BiasClamp: bs.BiasClamp,
			EdgeLod:   bs.EdgeLod,
		})
	}

	mat.AlphaCompare = bin.DL.AlphaCompare
	mat.ZMode = bin.DL.ZMode
	mat.BlendMode = bin.DL.BlendMode
	mat.DstAlpha = bin.DL.DstAlpha

	mat.TevColors[0] = gx.TevColor{R: 255, G: 255, B: 255, A: 255}
	for i := 0; i < 3; i++ {
		mat.TevColors[i+1] = bin.DL.TevRegisters[i]
	}
	mat.TevKonstColors = bin.DL.TevKonst

	for i := 0; i < int(bin.GenMode.NumIndStages) && i < 4; i++ {
		mat.IndirectStages = append(mat.IndirectStages, IndirectStage{Scale: bin.DL.IndTexScales[i]})
	}
	for i := 0; i < len(bin.DL.IndMatrices) && i < int(bin.GenMode.NumIndStages); i++ {
		mat.IndMatrices = append(mat.IndMatrices, IndMatrix{
			Matrix:   bin.DL.IndMatrices[i],
			Method:   bin.Misc.IndMethod[i],
			RefLight: bin.Misc.NormalMapLightIndices[i],
		})
	}

	mat.TexGens = append(mat.TexGens, bin.DL.TexGens...)

	xfModel := [3]CommonTransformModel{TransformModelMaya, TransformModelXSI, TransformModelMax}[bin.TexSrtData.TexMtxMode]
	for i := 0; i < len(bin.Samplers); i++ {
		srt := bin.TexSrtData.Srt[i]
		eff := bin.TexSrtData.Effect[i]
		tm := TexMatrix{
			Scale:          mkVec2(srt.Scale),
			Rotate:         srt.RotateDegrees * (3.14159265358979323846 / 180.0),
			Translate:      mkVec2(srt.Translate),
			CamIdx:         eff.CamIdx,
			LightIdx:       eff.LightIdx,
			TransformModel: xfModel,
			Method:         mappingMethodFromEncoding(eff.MapMode),
		}
		if i < len(bin.DL.TexGens) {
			tm.Projection = bin.DL.TexGens[i].Type
		}
		mat.TexMatrices = append(mat.TexMatrices, tm)
	}

	seenMissing := false
	written := 0
	// slot 0 carries COLOR0/ALPHA0 at bits 4/5, slot 1 carries
	// COLOR1/ALPHA1 at bits 6/7, mirroring the forward pack.
	for i, c := range bin.Chan.Chan {
		mat.ChanData = append(mat.ChanData, ChanData{MatColor: c.Material, AmbColor: c.Ambient})
		colorBit := chanFlagCtrlColor0 << uint(i*2)
		alphaBit := chanFlagCtrlAlpha0 << uint(i*2)
		if c.Flag&colorBit != 0 {
			if !seenMissing {
				written++
			}
			mat.ColorChanControls = append(mat.ColorChanControls, c.XfCntrlColor)
		} else {
			seenMissing = true
		}
		if c.Flag&alphaBit != 0 {
			if !seenMissing {
				written++
			}
			mat.ColorChanControls = append(mat.ColorChanControls, c.XfCntrlAlpha)
		} else {
			seenMissing = true
		}
	}
	if written != len(mat.ColorChanControls) {
		return G3dMaterialData{}, &ContiguousChannelError{Count: len(mat.ColorChanControls)}
	}

	return mat, nil
}

func mkVec2(v [2]float32) math32.Vector2 { return math32.Vector2{X: v[0], Y: v[1]} }
