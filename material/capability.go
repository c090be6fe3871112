package material

import (
	"fmt"

	"github.com/gc3dtools/librii/gx"
)

// IGCMaterial is the capability trait spanning BrresMaterial and
// BmdMaterial (§9 design note: "the source layers an 'IGCMaterial'
// interface over concrete BRRES/BMD materials... a thin capability
// trait for the few operations that are format-polymorphic: shader
// generation, texture lookup"). Callers that only need to identify a
// material, enumerate its bound textures, or derive a shader-sharing
// key don't need to know which on-disk shape backs it.
type IGCMaterial interface {
	MaterialName() string
	SamplerCount() int
	// TextureAt names the texture bound to sampler slot i, or ""
	// if i is out of range. BrresMaterial names it directly;
	// BmdMaterial, which only keeps a shared-pool index at this
	// layer, reports that index instead (see BmdMaterial.TextureAt).
	TextureAt(i int) string
	// ShaderKey derives a deterministic identity for the material's
	// shader-relevant state (tex-gens, TEV stages, swap tables) so
	// two materials — of either format — that would generate the
	// same shader program can be recognized as equivalent without
	// comparing their full on-disk records.
	ShaderKey() string
}

var _ IGCMaterial = (*BrresMaterial)(nil)
var _ IGCMaterial = (*BmdMaterial)(nil)

func shaderKey(numTexGens, numTevStages uint8, texGens []gx.TexGen, stages []gx.TevStage, swap [4]gx.SwapTable) string {
	return fmt.Sprintf("tg%d:st%d:%+v:%+v:%+v", numTexGens, numTevStages, texGens, stages, swap)
}

// MaterialName implements IGCMaterial.
func (m *BrresMaterial) MaterialName() string { return m.Name }

// SamplerCount implements IGCMaterial.
func (m *BrresMaterial) SamplerCount() int { return len(m.Samplers) }

// TextureAt implements IGCMaterial.
func (m *BrresMaterial) TextureAt(i int) string {
	if i < 0 || i >= len(m.Samplers) {
		return ""
	}
	return m.Samplers[i].Texture
}

// ShaderKey implements IGCMaterial.
func (m *BrresMaterial) ShaderKey() string {
	return shaderKey(m.GenMode.NumTexGens, m.GenMode.NumTevStages, m.DL.TexGens, m.Tev.Stages, m.Tev.SwapTables)
}

// MaterialName implements IGCMaterial.
func (m *BmdMaterial) MaterialName() string { return m.Name }

// SamplerCount implements IGCMaterial.
func (m *BmdMaterial) SamplerCount() int { return len(m.TextureRemapIndices) }

// TextureAt implements IGCMaterial. BmdMaterial only carries the
// shared texture pool index at this layer (resolving it to a name
// requires the owning archive's texture pool), so it reports the
// index rather than leaving the capability unimplemented.
func (m *BmdMaterial) TextureAt(i int) string {
	if i < 0 || i >= len(m.TextureRemapIndices) {
		return ""
	}
	return fmt.Sprintf("#%d", m.TextureRemapIndices[i])
}

// ShaderKey implements IGCMaterial.
func (m *BmdMaterial) ShaderKey() string {
	return shaderKey(m.GenMode.NumTexGens, m.GenMode.NumTevStages, m.TexGens, m.Stages, m.SwapTable)
}
