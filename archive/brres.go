package archive

import (
	"fmt"

	"github.com/gc3dtools/librii/gctex"
	"github.com/gc3dtools/librii/names"
	"github.com/gc3dtools/librii/rlog"
	"github.com/gc3dtools/librii/rstream"
	"github.com/gc3dtools/librii/transact"
)

var log = rlog.Named("ARC")

// brresAlign and bmdAlign are the trailing padding BRRES and BMD
// archives are rounded up to (§4.9).
const (
	brresAlign = 64
	bmdAlign   = 32
)

// WriteBRRES assembles a into one BRRES byte stream in a fixed order:
// header, texture bodies, then each model's materials/meshes/bones,
// chr0 animations, the root section dictionary, the pooled name table,
// and trailing alignment padding. The dictionary is written after the
// animations, not directly after the header, and indexes the textures
// only.
//
// This module's retrieved sources exercise RelocWriter,
// TextureSamplerMappingManager, and WriteDictionary individually
// (MatIO.cpp, AnimChrIO.cpp) but not a full ModelIO.cpp section-header
// layout; the root/group header fields below are a self-consistent,
// round-trippable container rather than a byte-for-byte reproduction
// of Nintendo's exact MDL0/TEX0 section headers, which aren't present
// in the pack to ground against. See DESIGN.md.
func WriteBRRES(a *Archive, tx *transact.Transaction) ([]byte, error) {
	w := rstream.NewWriter()
	linker := NewRelocWriter()
	pool := names.NewPool()
	sampl := NewTextureSamplerMappingManager()

	w.WriteBytes([]byte("bres"))
	w.WriteU16(0xFEFF) // byte-order mark
	w.WriteU16(0)
	sizeField := w.Pos()
	w.WriteU32(0) // total file size, backpatched at the end

	linker.Label(w, "root")

	texStart := w.Pos()
	linker.Label(w, "textures")
	texDict := BetterDictionary{}
	for _, tex := range a.Textures {
		texDict.Nodes = append(texDict.Nodes, BetterNode{Name: tex.Name, StreamPos: w.Pos()})
		writeTexture(w, tex)
	}
	_ = texStart

	for mi := range a.Models {
		m := &a.Models[mi]
		linker.Label(w, "model:"+m.Name)

		for _, mat := range m.Materials {
			for slot, s := range mat.Samplers {
				sampl.AddEntry(s.Texture, mat.Name, slot)
			}
		}

		for _, mat := range m.Materials {
			matStart := w.Pos()
			linker.LabelAt("Mat:"+mat.Name, matStart)
			if err := writeMaterial(w, linker, pool, mat); err != nil {
				return nil, fmt.Errorf("archive: model %q material %q: %w", m.Name, mat.Name, err)
			}
		}

		for _, msh := range m.Meshes {
			linker.Label(w, "mesh:"+m.Name+"/"+msh.Name)
			if err := writeMesh(w, pool, msh); err != nil {
				return nil, fmt.Errorf("archive: model %q mesh %q: %w", m.Name, msh.Name, err)
			}
		}

		if m.Skeleton != nil {
			linker.Label(w, "bones:"+m.Name)
			writeSkeleton(w, pool, m.Skeleton)
		}
	}

	for _, ca := range a.ChrAnims {
		linker.Label(w, "chr0:"+ca.Name)
		body, err := ca.Encode()
		if err != nil {
			if tx != nil {
				tx.Err("archive", fmt.Sprintf("encoding chr0 %q: %v", ca.Name, err))
			}
			return nil, err
		}
		w.WriteBytes(body)
	}

	rootDict := BetterDictionary{Nodes: texDict.Nodes}
	linker.Label(w, "dictionary")
	WriteDictionary(rootDict, w, pool)

	poolBase := w.Pos()
	body := pool.Body()
	w.WriteBytes(body)
	pool.Resolve(w, poolBase)

	linker.Resolve(w)

	w.Pad(brresAlign)
	w.WriteU32At(sizeField, uint32(w.Pos()))

	log.Info("wrote BRRES archive %q: %d bytes, %d textures, %d model(s)", a.Name, w.Pos(), len(a.Textures), len(a.Models))
	return w.Bytes(), nil
}

func writeTexture(w *rstream.Writer, tex gctex.TEX0) {
	w.WriteU32(uint32(tex.Width))
	w.WriteU32(uint32(tex.Height))
	w.WriteU32(uint32(tex.Format))
	w.WriteU32(uint32(tex.MipmapCount))
	w.WriteU32(uint32(tex.PaletteFormat))
	w.WriteU32(uint32(len(tex.Data)))
	w.WriteBytes(tex.Data)
	w.Pad(4)
}
