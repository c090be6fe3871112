package mesh

// IndexedVertex holds one per-attribute index into the model's shared
// buffers, one u16 slot per VCD attribute (IndexedVertex.hpp).
type IndexedVertex [AttributeCount]uint16

// Get returns the index stored for attr.
func (v IndexedVertex) Get(attr Attribute) uint16 { return v[attr] }

// Set stores idx for attr.
func (v *IndexedVertex) Set(attr Attribute, idx uint16) { v[attr] = idx }

// Topology is a primitive's GPU draw mode (PrimitiveType).
type Topology int

const (
	Triangles Topology = iota
	TriangleStrip
	TriangleFan
)

func (t Topology) String() string {
	switch t {
	case Triangles:
		return "Triangles"
	case TriangleStrip:
		return "TriangleStrip"
	case TriangleFan:
		return "TriangleFan"
	default:
		return "Unknown"
	}
}

// Primitive is one draw call's ordered vertex list under a topology
// (IndexedPrimitive).
type Primitive struct {
	Topology Topology
	Vertices []IndexedVertex
}

func (p Primitive) clone() Primitive {
	out := Primitive{Topology: p.Topology}
	out.Vertices = append(out.Vertices, p.Vertices...)
	return out
}

// MatrixPrimitive binds up to ten draw matrices and groups the
// primitives drawn under them (MatrixPrimitive, IndexedPolygon.hpp).
type MatrixPrimitive struct {
	CurrentMatrix     int16
	DrawMatrixIndices []int16
	Primitives        []Primitive
}

func (m MatrixPrimitive) clone() MatrixPrimitive {
	out := MatrixPrimitive{CurrentMatrix: m.CurrentMatrix}
	out.DrawMatrixIndices = append(out.DrawMatrixIndices, m.DrawMatrixIndices...)
	for _, p := range m.Primitives {
		out.Primitives = append(out.Primitives, p.clone())
	}
	return out
}

// Mesh is a named, indexed polygon: a VCD plus the matrix-primitive
// groups drawn under it (Mesh / IndexedPolygon, RHST.hpp). Invariant:
// every primitive's vertices reference only attributes v.VCD enables.
type Mesh struct {
	Name             string
	Visible          bool
	VCD              *VertexDescriptor
	MatrixPrimitives []MatrixPrimitive
}

// Clone deep-copies m.
func (m *Mesh) Clone() *Mesh {
	out := &Mesh{Name: m.Name, Visible: m.Visible, VCD: m.VCD}
	for _, mp := range m.MatrixPrimitives {
		out.MatrixPrimitives = append(out.MatrixPrimitives, mp.clone())
	}
	return out
}

// VertexCount sums every primitive's vertex count across all
// matrix-primitive groups.
func (m *Mesh) VertexCount() int {
	n := 0
	for _, mp := range m.MatrixPrimitives {
		for _, p := range mp.Primitives {
			n += len(p.Vertices)
		}
	}
	return n
}
