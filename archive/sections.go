package archive

import (
	"github.com/gc3dtools/librii/bone"
	"github.com/gc3dtools/librii/gx"
	"github.com/gc3dtools/librii/material"
	"github.com/gc3dtools/librii/mesh"
	"github.com/gc3dtools/librii/names"
	"github.com/gc3dtools/librii/rstream"
)

// writeMaterial emits one BrresMaterial's body: name, id, flag, the
// gen-mode/misc counts, the channel and texture-matrix blocks, the
// sampler list, and the embedded 0x180-byte display list (MatIO.cpp's
// writeBody). The DL offset is linked through a named reloc from the
// material's own start the same way the original links a material to
// its (potentially shared, here always inline) shader body.
func writeMaterial(w *rstream.Writer, linker *RelocWriter, pool *names.Pool, mat material.BrresMaterial) error {
	matStart := w.Pos()
	pool.WriteNameForward(w, matStart, mat.Name)
	w.WriteU32(mat.ID)
	w.WriteU32(mat.Flag)

	w.WriteU8(mat.GenMode.NumTexGens)
	w.WriteU8(mat.GenMode.NumChannels)
	w.WriteU8(mat.GenMode.NumTevStages)
	w.WriteU8(mat.GenMode.NumIndStages)
	w.WriteU32(mat.GenMode.CullMode)

	w.WriteU8(boolByte(mat.Misc.EarlyZComparison))
	w.WriteS8(mat.Misc.LightSetIndex)
	w.WriteS8(mat.Misc.FogIndex)
	for _, im := range mat.Misc.IndMethod {
		w.WriteU8(uint8(im))
	}
	for _, lt := range mat.Misc.NormalMapLightIndices {
		w.WriteU8(lt)
	}

	for _, ch := range mat.Chan.Chan {
		w.WriteU32(ch.Flag)
		writeRGBA32(w, ch.Material)
		writeRGBA32(w, ch.Ambient)
		writeChannelControl(w, ch.XfCntrlColor)
		writeChannelControl(w, ch.XfCntrlAlpha)
	}

	w.WriteU32(mat.TexSrtData.Flag)
	w.WriteU8(uint8(mat.TexSrtData.TexMtxMode))
	for _, srt := range mat.TexSrtData.Srt {
		w.WriteF32(srt.Scale[0])
		w.WriteF32(srt.Scale[1])
		w.WriteF32(srt.RotateDegrees)
		w.WriteF32(srt.Translate[0])
		w.WriteF32(srt.Translate[1])
	}
	for _, eff := range mat.TexSrtData.Effect {
		w.WriteS8(eff.CamIdx)
		w.WriteS8(eff.LightIdx)
		w.WriteU8(eff.MapMode)
		w.WriteU32(eff.Flag)
	}

	w.WriteU32(uint32(len(mat.Samplers)))
	for _, s := range mat.Samplers {
		sStart := w.Pos()
		pool.WriteNameForward(w, sStart, s.Texture)
		pool.WriteNameForward(w, sStart, s.Palette)
		w.WriteU32(uint32(s.WrapU))
		w.WriteU32(uint32(s.WrapV))
		w.WriteU32(uint32(s.MinFilter))
		w.WriteU32(uint32(s.MagFilter))
		w.WriteF32(s.LodBias)
		w.WriteU8(s.MaxAniso)
		w.WriteU8(boolByte(s.BiasClamp))
		w.WriteU8(boolByte(s.EdgeLod))
		w.Pad(4)
	}

	w.Pad(32)
	linker.WriteReloc(w, "Mat:"+mat.Name, "Shader:"+mat.Name)
	linker.Label(w, "Shader:"+mat.Name)
	w.WriteBytes(gx.EncodeMaterialDL(mat.DL))
	return nil
}

func writeChannelControl(w *rstream.Writer, c material.ChannelControl) {
	w.WriteU8(boolByte(c.Enabled))
	w.WriteU8(uint8(c.Ambient))
	w.WriteU8(uint8(c.Material))
	w.WriteU8(uint8(c.LightMask))
	w.WriteU8(uint8(c.DiffuseFn))
	w.WriteU8(uint8(c.AttenuationFn))
}

func writeRGBA32(w *rstream.Writer, c material.RGBA32) {
	w.WriteU8(c.R)
	w.WriteU8(c.G)
	w.WriteU8(c.B)
	w.WriteU8(c.A)
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// writeMesh emits one Mesh's VCD and every matrix-primitive's draw
// command stream (§4.8).
func writeMesh(w *rstream.Writer, pool *names.Pool, m *mesh.Mesh) error {
	meshStart := w.Pos()
	pool.WriteNameForward(w, meshStart, m.Name)
	w.WriteU32(uint32(boolByte(m.Visible)))
	w.WriteU32(m.VCD.Bitfield)

	w.WriteU32(uint32(len(m.MatrixPrimitives)))
	for _, mp := range m.MatrixPrimitives {
		w.WriteS16(mp.CurrentMatrix)
		w.WriteU16(uint16(len(mp.DrawMatrixIndices)))
		for _, idx := range mp.DrawMatrixIndices {
			w.WriteS16(idx)
		}
		if err := mesh.WritePrimitives(w, m.VCD, mp.Primitives); err != nil {
			return err
		}
	}
	return nil
}

// writeSkeleton emits every bone's parent index, transform, local
// bounding volume, billboard mode, display flags, and draw-call list,
// in flat-vector order (§9 "Cyclic bone graphs": children are never
// stored, only recomputed on read).
func writeSkeleton(w *rstream.Writer, pool *names.Pool, sk *bone.Skeleton) {
	w.WriteU32(uint32(len(sk.Bones)))
	for _, b := range sk.Bones {
		boneStart := w.Pos()
		pool.WriteNameForward(w, boneStart, b.Name)
		w.WriteS32(int32(b.ParentIndex))
		w.WriteF32(b.Position.X)
		w.WriteF32(b.Position.Y)
		w.WriteF32(b.Position.Z)
		w.WriteF32(b.Rotation.X)
		w.WriteF32(b.Rotation.Y)
		w.WriteF32(b.Rotation.Z)
		w.WriteF32(b.Scale.X)
		w.WriteF32(b.Scale.Y)
		w.WriteF32(b.Scale.Z)
		w.WriteF32(b.Volume.Min.X)
		w.WriteF32(b.Volume.Min.Y)
		w.WriteF32(b.Volume.Min.Z)
		w.WriteF32(b.Volume.Max.X)
		w.WriteF32(b.Volume.Max.Y)
		w.WriteF32(b.Volume.Max.Z)
		w.WriteU32(uint32(b.Billboard))
		w.WriteU8(boolByte(b.SegmentScaleCompensate))
		w.WriteU8(boolByte(b.Visible))
		w.WriteU8(boolByte(b.ForceDisplayMatrix))
		w.WriteU8(boolByte(b.OmitFromNodeMix))
		w.WriteU16(uint16(len(b.DrawCalls)))
		for _, dc := range b.DrawCalls {
			w.WriteU32(dc.MaterialIndex)
			w.WriteU32(dc.PolyIndex)
			w.WriteU8(dc.Priority)
		}
		w.Pad(4)
	}
}
