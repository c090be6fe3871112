package rhst

import (
	"fmt"

	"github.com/gc3dtools/librii/bone"
	"github.com/gc3dtools/librii/gx"
	"github.com/gc3dtools/librii/material"
	"github.com/gc3dtools/librii/math32"
	"github.com/gc3dtools/librii/mesh"
)

// ModelBuffers is the model-wide shared attribute storage ToModel
// builds while converting: a scene tree carries one un-indexed Vertex
// per facepoint (RHST.hpp's flat Vertex array), while the binary mesh
// codec (C8) expects small indices into buffers shared across every
// mesh in the model (IndexedVertex.hpp). internPosition/internNormal/
// internColor/internTexCoord do the dedup, the mirror image of
// mesh.Propagate's buffers.Position/Normal/Color/TexCoord lookups.
type ModelBuffers struct {
	Positions []math32.Vector3
	Normals   []math32.Vector3
	Colors    [2][]math32.Vector4
	TexCoords [8][]math32.Vector2

	posIndex map[math32.Vector3]uint16
	nrmIndex map[math32.Vector3]uint16
	clrIndex [2]map[math32.Vector4]uint16
	uvIndex  [8]map[math32.Vector2]uint16
}

func newModelBuffers() *ModelBuffers {
	b := &ModelBuffers{
		posIndex: make(map[math32.Vector3]uint16),
		nrmIndex: make(map[math32.Vector3]uint16),
	}
	for i := range b.clrIndex {
		b.clrIndex[i] = make(map[math32.Vector4]uint16)
	}
	for i := range b.uvIndex {
		b.uvIndex[i] = make(map[math32.Vector2]uint16)
	}
	return b
}

func (b *ModelBuffers) internPosition(v math32.Vector3) uint16 {
	if idx, ok := b.posIndex[v]; ok {
		return idx
	}
	idx := uint16(len(b.Positions))
	b.posIndex[v] = idx
	b.Positions = append(b.Positions, v)
	return idx
}

func (b *ModelBuffers) internNormal(v math32.Vector3) uint16 {
	if idx, ok := b.nrmIndex[v]; ok {
		return idx
	}
	idx := uint16(len(b.Normals))
	b.nrmIndex[v] = idx
	b.Normals = append(b.Normals, v)
	return idx
}

func (b *ModelBuffers) internColor(channel int, v math32.Vector4) uint16 {
	if idx, ok := b.clrIndex[channel][v]; ok {
		return idx
	}
	idx := uint16(len(b.Colors[channel]))
	b.clrIndex[channel][v] = idx
	b.Colors[channel] = append(b.Colors[channel], v)
	return idx
}

func (b *ModelBuffers) internTexCoord(channel int, v math32.Vector2) uint16 {
	if idx, ok := b.uvIndex[channel][v]; ok {
		return idx
	}
	idx := uint16(len(b.TexCoords[channel]))
	b.uvIndex[channel][v] = idx
	b.TexCoords[channel] = append(b.TexCoords[channel], v)
	return idx
}

// Position, Normal, Color, and TexCoord implement mesh.ModelBuffers,
// letting the buffers ToModel fills also back mesh.Propagate — the
// same shared storage a converted mesh's indices resolve against at
// either end of the round trip.
func (b *ModelBuffers) Position(i uint16) (math32.Vector3, error) {
	if int(i) >= len(b.Positions) {
		return math32.Vector3{}, fmt.Errorf("rhst: position index %d out of range", i)
	}
	return b.Positions[i], nil
}

func (b *ModelBuffers) Normal(i uint16) (math32.Vector3, error) {
	if int(i) >= len(b.Normals) {
		return math32.Vector3{}, fmt.Errorf("rhst: normal index %d out of range", i)
	}
	return b.Normals[i], nil
}

func (b *ModelBuffers) Color(channel int, i uint16) (math32.Vector4, error) {
	if int(i) >= len(b.Colors[channel]) {
		return math32.Vector4{}, fmt.Errorf("rhst: color channel %d index %d out of range", channel, i)
	}
	return b.Colors[channel][i], nil
}

func (b *ModelBuffers) TexCoord(channel int, i uint16) (math32.Vector2, error) {
	if int(i) >= len(b.TexCoords[channel]) {
		return math32.Vector2{}, fmt.Errorf("rhst: texcoord channel %d index %d out of range", channel, i)
	}
	return b.TexCoords[channel][i], nil
}

// ToModel converts a decoded (and typically Optimize'd) Scene into the
// skeleton, meshes, and shared attribute buffers archive.Model needs,
// closing the gap RHST.cpp never had to: the original reader feeds
// straight into the editor's in-memory document, while this port's
// ingestion contract (§6) ends at Scene, so ToModel is the missing
// last leg into C8's indexed mesh representation. Texture-matrix-index
// attributes (VCD bits 1-8) are never resolved, since a scene tree
// never carries per-facepoint matrix-index data for them (decodeFacepoint
// does not populate them either) — a mesh requesting one gets it left
// at EncodingNone.
func ToModel(scn *Scene) (*bone.Skeleton, []*mesh.Mesh, *ModelBuffers, error) {
	skel, err := bone.NewSkeleton(convertBones(scn.Bones))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("rhst: converting bones: %w", err)
	}

	buffers := newModelBuffers()
	meshes := make([]*mesh.Mesh, 0, len(scn.Meshes))
	for _, m := range scn.Meshes {
		converted, err := convertMesh(m, buffers)
		if err != nil {
			return nil, nil, nil, err
		}
		meshes = append(meshes, converted)
	}
	return skel, meshes, buffers, nil
}

func convertBones(bones []Bone) []bone.Bone {
	out := make([]bone.Bone, len(bones))
	for i, b := range bones {
		converted := bone.Bone{
			Name:        b.Name,
			ParentIndex: int(b.Parent),
			Position:    b.Translate,
			Rotation:    b.Rotate,
			Scale:       b.Scale,
			Volume:      math32.Box3{Min: b.Min, Max: b.Max},
			Visible:     true,
		}
		for _, dc := range b.DrawCalls {
			converted.DrawCalls = append(converted.DrawCalls, bone.DrawCall{
				MaterialIndex: uint32(dc.MatIndex),
				PolyIndex:     uint32(dc.PolyIndex),
				Priority:      uint8(dc.Prio),
			})
		}
		out[i] = converted
	}
	return out
}

// meshVCD builds the VCD this mesh's converted IndexedVertex slots
// honor: every position/normal/color/texcoord bit the scene tree
// enables (bits 9-20, the same bit layout decodeFacepoint already
// assumes), each resolved against buffers with a 16-bit (Short)
// index — the conservative encoding, since an interned attribute
// buffer shared across every mesh in the model can easily outgrow a
// byte index.
func meshVCD(vertexDescriptor uint32) *mesh.VertexDescriptor {
	vcd := mesh.NewVertexDescriptor()
	for bit := mesh.Position; bit <= mesh.TexCoord7; bit++ {
		if vertexDescriptor&(1<<uint(bit)) != 0 {
			vcd.SetAttribute(bit, mesh.EncodingShort)
		}
	}
	return vcd
}

func convertMesh(m Mesh, buffers *ModelBuffers) (*mesh.Mesh, error) {
	vcd := meshVCD(m.VertexDescriptor)

	out := &mesh.Mesh{Name: m.Name, Visible: true, VCD: vcd}
	for _, mp := range m.MatrixPrimitives {
		converted := mesh.MatrixPrimitive{CurrentMatrix: int16(m.CurrentMatrix)}
		for _, dm := range mp.DrawMatrices {
			if dm < 0 {
				continue
			}
			converted.DrawMatrixIndices = append(converted.DrawMatrixIndices, int16(dm))
		}
		for _, p := range mp.Primitives {
			prim, err := convertPrimitive(m.Name, p, vcd, buffers)
			if err != nil {
				return nil, err
			}
			converted.Primitives = append(converted.Primitives, prim)
		}
		out.MatrixPrimitives = append(out.MatrixPrimitives, converted)
	}
	return out, nil
}

func convertPrimitive(meshName string, p Primitive, vcd *mesh.VertexDescriptor, buffers *ModelBuffers) (mesh.Primitive, error) {
	topo, ok := map[Topology]mesh.Topology{
		Triangles:     mesh.Triangles,
		TriangleStrip: mesh.TriangleStrip,
		TriangleFan:   mesh.TriangleFan,
	}[p.Topology]
	if !ok {
		return mesh.Primitive{}, fmt.Errorf("rhst: mesh %q: unknown topology %v", meshName, p.Topology)
	}

	out := mesh.Primitive{Topology: topo}
	for _, v := range p.Vertices {
		var iv mesh.IndexedVertex
		if vcd.Has(mesh.Position) {
			iv.Set(mesh.Position, buffers.internPosition(v.Position))
		}
		if vcd.Has(mesh.Normal) {
			iv.Set(mesh.Normal, buffers.internNormal(v.Normal))
		}
		for ch, attr := range [2]mesh.Attribute{mesh.Color0, mesh.Color1} {
			if vcd.Has(attr) {
				iv.Set(attr, buffers.internColor(ch, v.Colors[ch]))
			}
		}
		for ch := 0; ch < 8; ch++ {
			attr := mesh.TexCoord0 + mesh.Attribute(ch)
			if vcd.Has(attr) {
				iv.Set(attr, buffers.internTexCoord(ch, v.UVs[ch]))
			}
		}
		out.Vertices = append(out.Vertices, iv)
	}
	return out, nil
}

// ConvertMaterial builds a minimal BrresMaterial from a scene tree's
// material record: a single texgen/sampler referencing TextureName, a
// default-shaped display list (no TEV/sampler/fog detail survives the
// scene tree's material JSON — the preset path named by
// PresetPathMdl0Mat is where an importer would normally layer that on,
// out of scope here same as cmd/rspreset's flag-driven material). Xlu
// follows Mode; CullMode follows ShowFront/ShowBack.
func ConvertMaterial(m Material) material.BrresMaterial {
	cullMode := cullModeFromVisibility(m.ShowFront, m.ShowBack)

	mat := material.BrresMaterial{
		Name:    m.Name,
		GenMode: material.GenMode{NumChannels: 1, CullMode: cullMode},
		Misc:    material.MiscData{LightSetIndex: int8(m.LightsetIndex), FogIndex: int8(m.FogIndex)},
		DL:      gx.DefaultMaterialDLData(),
	}
	if m.Mode == AlphaTranslucent {
		mat.Flag |= 0x80000000 // Xlu bit, as material.ToBinMat sets it
	}
	if m.TextureName != "" {
		mat.GenMode.NumTexGens = 1
		mat.GenMode.NumTevStages = 1
		mat.Samplers = []material.BinarySampler{{
			Texture:   m.TextureName,
			WrapU:     convertWrapMode(m.WrapU),
			WrapV:     convertWrapMode(m.WrapV),
			MinFilter: convertFilter(m.MinFilter, m.MipFilter),
			MagFilter: convertFilter(m.MagFilter, m.MipFilter),
			LodBias:   m.LodBias,
		}}
	}
	return mat
}

func cullModeFromVisibility(front, back bool) uint32 {
	switch {
	case front && back:
		return 0 // GX_CULL_NONE
	case front:
		return 2 // GX_CULL_BACK
	case back:
		return 1 // GX_CULL_FRONT
	default:
		return 2
	}
}

func convertWrapMode(w WrapMode) material.WrapMode {
	switch w {
	case WrapMirror:
		return material.WrapMirror
	case WrapClamp:
		return material.WrapClamp
	default:
		return material.WrapRepeat
	}
}

func convertFilter(enabled, mip bool) material.FilterMode {
	if !enabled {
		return material.FilterNear
	}
	if mip {
		return material.FilterLinMipLin
	}
	return material.FilterLinear
}
