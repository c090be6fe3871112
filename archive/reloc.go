// Package archive implements the BRRES/BMD/.rspreset assemblers (C9):
// composing the sub-codecs built elsewhere in this module into one
// ordered byte stream, with a RelocWriter resolving cross-structure
// offsets and a TextureSamplerMappingManager linking material sampler
// slots back to the texture bodies that back them.
//
// Grounded on librii/g3d/io/MatIO.cpp's writeBody, the only retrieved
// source that exercises RelocWriter and TextureSamplerMappingManager
// end to end (linker.writeReloc / tex_sampler_mappings.from_mat).
package archive

import (
	"fmt"

	"github.com/gc3dtools/librii/rstream"
)

// RelocWriter resolves named cross-structure offsets once every
// label's final position is known: a material body labels itself
// ("Mat0") while it is written, then asks for a reloc to a shader body
// that hasn't been written yet ("Shader0"); once the shader is
// written and labeled, Resolve back-patches every outstanding reloc to
// target - from.
type RelocWriter struct {
	labels map[string]int
	relocs []reloc
}

type reloc struct {
	placeholder int
	from, to    string
}

// NewRelocWriter returns an empty linker. One RelocWriter serves a
// single archive write and is discarded on completion (§5).
func NewRelocWriter() *RelocWriter {
	return &RelocWriter{labels: make(map[string]int)}
}

// Label records name as referring to the writer's current position.
func (r *RelocWriter) Label(w *rstream.Writer, name string) {
	r.labels[name] = w.Pos()
}

// LabelAt records name as referring to an already-known absolute
// offset, for callers that computed a struct's start earlier than the
// call to Label.
func (r *RelocWriter) LabelAt(name string, offset int) {
	r.labels[name] = offset
}

// WriteReloc stamps a 32-bit placeholder at the writer's current
// position and registers a pending relocation: once both from and to
// are labeled, the placeholder is rewritten to labels[to] - labels[from].
func (r *RelocWriter) WriteReloc(w *rstream.Writer, from, to string) {
	placeholder := w.Pos()
	w.WriteU32(0)
	r.relocs = append(r.relocs, reloc{placeholder: placeholder, from: from, to: to})
}

// Resolve back-patches every pending relocation. A relocation whose
// label never got registered is an internal-invariant violation
// (§7: "dead reloc slot") and panics rather than returning an error,
// since it can only happen from a programming mistake in the
// assembler itself, never from untrusted input.
func (r *RelocWriter) Resolve(w *rstream.Writer) {
	for _, rl := range r.relocs {
		from, ok := r.labels[rl.from]
		if !ok {
			panic(fmt.Sprintf("archive: dead reloc slot: label %q was never written", rl.from))
		}
		to, ok := r.labels[rl.to]
		if !ok {
			panic(fmt.Sprintf("archive: dead reloc slot: label %q was never written", rl.to))
		}
		w.WriteU32At(rl.placeholder, uint32(int32(to-from)))
	}
}
