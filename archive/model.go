package archive

import (
	"github.com/gc3dtools/librii/anim"
	"github.com/gc3dtools/librii/bone"
	"github.com/gc3dtools/librii/gctex"
	"github.com/gc3dtools/librii/material"
	"github.com/gc3dtools/librii/mesh"
)

// Model is one BRRES MDL0-equivalent: a named skeleton, its materials,
// and the meshes drawn against them (§3 data model; §4.9 "each model
// in the order textures, materials, meshes, bones").
type Model struct {
	Name      string
	Skeleton  *bone.Skeleton
	Materials []material.BrresMaterial
	Meshes    []*mesh.Mesh
}

// Archive is a full BRRES (or BMD/crate) container: a name, the
// shared texture pool every model's materials reference by name, and
// the models themselves. Bone-SRT/material/color/pattern animations
// attach by name, one list per kind, mirroring TEX0/CHR0/SRT0/CLR0/
// PAT0's place in the glossary.
type Archive struct {
	Name     string
	Textures []gctex.TEX0
	Models   []Model
	ChrAnims []anim.Anim
}
