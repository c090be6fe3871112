package rhst

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gc3dtools/librii/math32"
	"github.com/gc3dtools/librii/transact"
)

// wantFormat is the only scene-tree format tag this reader accepts
// (RHST.cpp: `out.meta_data.format != "JMDL2"` rejection).
const wantFormat = "JMDL2"

// Decode parses a scene-tree JSON document into a Scene, reporting a
// validation error through tx (and returning it) for anything other
// than the JMDL2 format tag or a malformed facepoint stream
// (RHST.cpp's JsonSceneTreeReader::read).
func Decode(data []byte, tx *transact.Transaction) (*Scene, error) {
	var doc struct {
		Head map[string]json.RawMessage `json:"head"`
		Body map[string]json.RawMessage `json:"body"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		err = fmt.Errorf("rhst: malformed scene tree: %w", err)
		tx.Err("rhst", err.Error())
		return nil, err
	}

	scn := &Scene{}
	if doc.Head != nil {
		scn.MetaData.Exporter = getString(doc.Head, "generator", "?")
		scn.MetaData.Format = getString(doc.Head, "type", "?")
		scn.MetaData.ExporterVersion = getString(doc.Head, "version", "?")
		if scn.MetaData.Format != wantFormat {
			err := fmt.Errorf("rhst: Blender plugin out of date. Please update.")
			tx.Err("rhst", err.Error())
			return nil, err
		}
	}

	if doc.Body == nil {
		return scn, nil
	}
	scn.Name = getString(doc.Body, "name", "course")

	if raw, ok := doc.Body["bones"]; ok {
		var bones []map[string]json.RawMessage
		if err := json.Unmarshal(raw, &bones); err != nil {
			return nil, fmt.Errorf("rhst: decoding bones: %w", err)
		}
		for _, b := range bones {
			scn.Bones = append(scn.Bones, decodeBone(b))
		}
	}
	recomputeChildren(scn.Bones)

	if raw, ok := doc.Body["polygons"]; ok {
		var polys []map[string]json.RawMessage
		if err := json.Unmarshal(raw, &polys); err != nil {
			return nil, fmt.Errorf("rhst: decoding polygons: %w", err)
		}
		for _, p := range polys {
			mesh, err := decodeMesh(p)
			if err != nil {
				tx.Err("rhst", err.Error())
				return nil, err
			}
			scn.Meshes = append(scn.Meshes, mesh)
		}
	}

	if raw, ok := doc.Body["weights"]; ok {
		var groups [][][2]int32
		if err := json.Unmarshal(raw, &groups); err != nil {
			return nil, fmt.Errorf("rhst: decoding weights: %w", err)
		}
		for _, g := range groups {
			wm := WeightMatrix{}
			for _, pair := range g {
				wm.Weights = append(wm.Weights, Weight{BoneIndex: pair[0], Influence: pair[1]})
			}
			scn.Weights = append(scn.Weights, wm)
		}
	}

	if raw, ok := doc.Body["materials"]; ok {
		var mats []map[string]json.RawMessage
		if err := json.Unmarshal(raw, &mats); err != nil {
			return nil, fmt.Errorf("rhst: decoding materials: %w", err)
		}
		for _, m := range mats {
			scn.Materials = append(scn.Materials, decodeMaterial(m))
		}
	}

	return scn, nil
}

func decodeBone(b map[string]json.RawMessage) Bone {
	bone := Bone{
		Name:      getString(b, "name", "?"),
		Parent:    getInt32(b, "parent", -1),
		Scale:     getVec3(b, "scale", math32.Vector3{X: 1, Y: 1, Z: 1}),
		Rotate:    getVec3(b, "rotate", math32.Vector3{}),
		Translate: getVec3(b, "translate", math32.Vector3{}),
		Min:       getVec3(b, "min", math32.Vector3{}),
		Max:       getVec3(b, "max", math32.Vector3{}),
	}
	if raw, ok := b["draws"]; ok {
		var draws [][3]int32
		if json.Unmarshal(raw, &draws) == nil {
			for _, d := range draws {
				bone.DrawCalls = append(bone.DrawCalls, DrawCall{MatIndex: d[0], PolyIndex: d[1], Prio: d[2]})
			}
		}
	}
	return bone
}

// recomputeChildren rebuilds every bone's Children list from the
// decoded Parent fields, mirroring RHST.cpp's "Recompute child links"
// pass rather than trusting any legacy child field on the wire.
func recomputeChildren(bones []Bone) {
	for i := range bones {
		bones[i].Children = nil
	}
	for i, b := range bones {
		if b.Parent >= 0 && int(b.Parent) < len(bones) {
			bones[b.Parent].Children = append(bones[b.Parent].Children, int32(i))
		}
	}
}

func decodeMaterial(m map[string]json.RawMessage) Material {
	return Material{
		Name:              getString(m, "name", "?"),
		TextureName:       getString(m, "texture", "?"),
		WrapU:             parseWrapMode(getString(m, "wrap_u", "Repeat")),
		WrapV:             parseWrapMode(getString(m, "wrap_v", "Repeat")),
		ShowFront:         getBool(m, "display_front", true),
		ShowBack:          getBool(m, "display_back", false),
		Mode:              parseAlphaMode(getString(m, "pe", "Opaque")),
		LightsetIndex:     getInt32(m, "lightset", -1),
		FogIndex:          getInt32(m, "fog", 0),
		PresetPathMdl0Mat: getString(m, "preset_path_mdl0mat", ""),
		MinFilter:         getBool(m, "min_filter", true),
		MagFilter:         getBool(m, "mag_filter", true),
		EnableMip:         getBool(m, "enable_mip", true),
		MipFilter:         getBool(m, "mip_filter", true),
		LodBias:           getFloat32(m, "lod_bias", -1.0),
	}
}

func parseWrapMode(s string) WrapMode {
	switch strings.ToLower(s) {
	case "mirror":
		return WrapMirror
	case "clamp":
		return WrapClamp
	default:
		return WrapRepeat
	}
}

func parseAlphaMode(s string) AlphaMode {
	switch strings.ToLower(s) {
	case "clip":
		return AlphaClip
	case "translucent":
		return AlphaTranslucent
	default:
		return AlphaOpaque
	}
}

func decodeMesh(p map[string]json.RawMessage) (Mesh, error) {
	mesh := Mesh{
		Name:          getString(p, "name", "?"),
		CurrentMatrix: getInt32(p, "current_matrix", -1),
	}

	var format [21]bool
	if raw, ok := p["facepoint_format"]; ok {
		if err := json.Unmarshal(raw, &format); err != nil {
			return Mesh{}, fmt.Errorf("rhst: mesh %q: malformed facepoint_format: %w", mesh.Name, err)
		}
	}
	for i, on := range format {
		if on {
			mesh.VertexDescriptor |= 1 << uint(i)
		}
	}

	raw, ok := p["matrix_primitives"]
	if !ok {
		return mesh, nil
	}
	var mps []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &mps); err != nil {
		return Mesh{}, fmt.Errorf("rhst: mesh %q: malformed matrix_primitives: %w", mesh.Name, err)
	}
	for _, mp := range mps {
		decoded, err := decodeMatrixPrimitive(mesh.Name, mesh.VertexDescriptor, mp)
		if err != nil {
			return Mesh{}, err
		}
		mesh.MatrixPrimitives = append(mesh.MatrixPrimitives, decoded)
	}
	return mesh, nil
}

func decodeMatrixPrimitive(meshName string, vcd uint32, mp map[string]json.RawMessage) (MatrixPrimitive, error) {
	out := MatrixPrimitive{}
	for i := range out.DrawMatrices {
		out.DrawMatrices[i] = -1
	}
	if raw, ok := mp["matrix"]; ok {
		var vals []int32
		if err := json.Unmarshal(raw, &vals); err != nil {
			return MatrixPrimitive{}, fmt.Errorf("rhst: mesh %q: malformed matrix: %w", meshName, err)
		}
		for i := 0; i < len(vals) && i < len(out.DrawMatrices); i++ {
			out.DrawMatrices[i] = vals[i]
		}
	}

	raw, ok := mp["primitives"]
	if !ok {
		return out, nil
	}
	var prims []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &prims); err != nil {
		return MatrixPrimitive{}, fmt.Errorf("rhst: mesh %q: malformed primitives: %w", meshName, err)
	}
	for _, p := range prims {
		prim, err := decodePrimitive(meshName, vcd, p)
		if err != nil {
			return MatrixPrimitive{}, err
		}
		out.Primitives = append(out.Primitives, prim)
	}
	return out, nil
}

func decodePrimitive(meshName string, vcd uint32, p map[string]json.RawMessage) (Primitive, error) {
	topoName := getString(p, "primitive_type", "triangles")
	var topo Topology
	switch topoName {
	case "triangles":
		topo = Triangles
	case "triangle_strips":
		topo = TriangleStrip
	case "triangle_fans":
		topo = TriangleFan
	default:
		return Primitive{}, fmt.Errorf("rhst: mesh %q: unknown topology %q", meshName, topoName)
	}

	prim := Primitive{Topology: topo}
	raw, ok := p["facepoints"]
	if !ok {
		return prim, nil
	}
	var rows []json.RawMessage
	if err := json.Unmarshal(raw, &rows); err != nil {
		return Primitive{}, fmt.Errorf("rhst: mesh %q: malformed facepoints: %w", meshName, err)
	}
	for _, row := range rows {
		v, err := decodeFacepoint(vcd, row)
		if err != nil {
			return Primitive{}, fmt.Errorf("rhst: mesh %q: %w", meshName, err)
		}
		prim.Vertices = append(prim.Vertices, v)
	}
	return prim, nil
}

// decodeFacepoint walks vcd's enabled bits in ascending order,
// consuming exactly one array slot per bit (a straightforward fix of
// RHST.cpp's matrix-index branch, which reads v[P] without advancing
// P, silently misaligning every later attribute whenever PNMIDX is
// enabled alongside other attributes — there is nothing to preserve in
// that behavior, so this port always advances).
func decodeFacepoint(vcd uint32, row json.RawMessage) (Vertex, error) {
	var slots []json.RawMessage
	if err := json.Unmarshal(row, &slots); err != nil {
		return Vertex{}, fmt.Errorf("malformed facepoint: %w", err)
	}

	var v Vertex
	p := 0
	for bit := 0; bit < 21; bit++ {
		if vcd&(1<<uint(bit)) == 0 {
			continue
		}
		if p >= len(slots) {
			return Vertex{}, fmt.Errorf("missing vertex data for attribute %d", bit)
		}
		slot := slots[p]
		p++

		switch {
		case bit == 0:
			// PNMIDX: position-normal-matrix index, not modeled on Vertex.
		case bit >= 1 && bit <= 8:
			// Texture-matrix indices: added by the binary converter, never
			// resolved against a Vertex field here.
		case bit == 9:
			v.Position = decodeVec3(slot)
		case bit == 10:
			v.Normal = decodeVec3(slot)
		case bit >= 11 && bit <= 12:
			v.Colors[bit-11] = decodeVec4(slot)
		case bit >= 13 && bit <= 20:
			v.UVs[bit-13] = decodeVec2(slot)
		}
	}
	return v, nil
}

func decodeVec2(raw json.RawMessage) math32.Vector2 {
	var a [2]float32
	_ = json.Unmarshal(raw, &a)
	return math32.Vector2{X: a[0], Y: a[1]}
}

func decodeVec3(raw json.RawMessage) math32.Vector3 {
	var a [3]float32
	_ = json.Unmarshal(raw, &a)
	return math32.Vector3{X: a[0], Y: a[1], Z: a[2]}
}

func decodeVec4(raw json.RawMessage) math32.Vector4 {
	var a [4]float32
	_ = json.Unmarshal(raw, &a)
	return math32.Vector4{X: a[0], Y: a[1], Z: a[2], W: a[3]}
}

func getString(m map[string]json.RawMessage, key, def string) string {
	raw, ok := m[key]
	if !ok {
		return def
	}
	var s string
	if json.Unmarshal(raw, &s) != nil {
		return def
	}
	return s
}

func getInt32(m map[string]json.RawMessage, key string, def int32) int32 {
	raw, ok := m[key]
	if !ok {
		return def
	}
	var i int32
	if json.Unmarshal(raw, &i) != nil {
		return def
	}
	return i
}

func getBool(m map[string]json.RawMessage, key string, def bool) bool {
	raw, ok := m[key]
	if !ok {
		return def
	}
	var b bool
	if json.Unmarshal(raw, &b) != nil {
		return def
	}
	return b
}

func getFloat32(m map[string]json.RawMessage, key string, def float32) float32 {
	raw, ok := m[key]
	if !ok {
		return def
	}
	var f float32
	if json.Unmarshal(raw, &f) != nil {
		return def
	}
	return f
}

func getVec3(m map[string]json.RawMessage, key string, def math32.Vector3) math32.Vector3 {
	raw, ok := m[key]
	if !ok {
		return def
	}
	var a [3]float32
	if json.Unmarshal(raw, &a) != nil {
		return def
	}
	return math32.Vector3{X: a[0], Y: a[1], Z: a[2]}
}
