package mesh

import (
	"fmt"

	"github.com/gc3dtools/librii/math32"
)

// ModelBuffers is the shared, model-level attribute storage propagate
// resolves per-attribute indices against: positions, normals, up to
// two color channels, and up to eight UV channels (getPos/getNrm/getClr/getUv,
// IndexedPolygon.cpp).
type ModelBuffers interface {
	Position(index uint16) (math32.Vector3, error)
	Normal(index uint16) (math32.Vector3, error)
	Color(channel int, index uint16) (math32.Vector4, error)
	TexCoord(channel int, index uint16) (math32.Vector2, error)
}

// Vertex is one fully unpacked vertex pushed into a VertexBuffer
// during propagation.
type Vertex struct {
	Position    math32.Vector3
	Normal      math32.Vector3
	MatrixIndex uint16
	Colors      [2]math32.Vector4
	HasColor    [2]bool
	TexCoords   [8]math32.Vector2
	HasTexCoord [8]bool
}

// VertexBuffer receives vertices and the flat triangle index list
// propagation produces (VBOBuilder).
type VertexBuffer interface {
	PushVertex(v Vertex) uint32
	PushIndex(i uint32)
}

// Propagate walks every primitive of mp, resolving each IndexedVertex
// against buffers and pushing a fully unpacked Vertex plus its flat
// triangle index into out. Triangle strips and fans are re-triangulated
// on the way using the standard strip-walk and fan rules (§4.8,
// IndexedPolygon::propagate): strips emit (v-1,v-2,v) for odd v and
// (v-2,v-1,v) for even v; fans emit (0,v-1,v).
func Propagate(m *Mesh, mp *MatrixPrimitive, buffers ModelBuffers, out VertexBuffer) error {
	if m.VCD.Degenerate() {
		return fmt.Errorf("mesh: %q has no attributes beyond the position-normal-matrix index", m.Name)
	}

	push := func(vtx IndexedVertex) error {
		v, err := unpack(m.VCD, vtx, buffers)
		if err != nil {
			return err
		}
		idx := out.PushVertex(v)
		out.PushIndex(idx)
		return nil
	}

	for _, prim := range mp.Primitives {
		switch prim.Topology {
		case Triangles:
			for _, vtx := range prim.Vertices {
				if err := push(vtx); err != nil {
					return err
				}
			}
		case TriangleStrip:
			if len(prim.Vertices) < 3 {
				continue
			}
			for i := 0; i < 3; i++ {
				if err := push(prim.Vertices[i]); err != nil {
					return err
				}
			}
			for v := 3; v < len(prim.Vertices); v++ {
				var a, b int
				if v&1 != 0 {
					a, b = v-1, v-2
				} else {
					a, b = v-2, v-1
				}
				if err := push(prim.Vertices[a]); err != nil {
					return err
				}
				if err := push(prim.Vertices[b]); err != nil {
					return err
				}
				if err := push(prim.Vertices[v]); err != nil {
					return err
				}
			}
		case TriangleFan:
			if len(prim.Vertices) < 3 {
				continue
			}
			for i := 0; i < 3; i++ {
				if err := push(prim.Vertices[i]); err != nil {
					return err
				}
			}
			for v := 3; v < len(prim.Vertices); v++ {
				if err := push(prim.Vertices[0]); err != nil {
					return err
				}
				if err := push(prim.Vertices[v-1]); err != nil {
					return err
				}
				if err := push(prim.Vertices[v]); err != nil {
					return err
				}
			}
		default:
			return fmt.Errorf("mesh: unexpected primitive topology %v", prim.Topology)
		}
	}
	return nil
}

func unpack(vcd *VertexDescriptor, vtx IndexedVertex, buffers ModelBuffers) (Vertex, error) {
	var out Vertex
	if vcd.Has(PositionNormalMatrixIndex) {
		out.MatrixIndex = vtx.Get(PositionNormalMatrixIndex)
	}
	if vcd.Has(Position) {
		p, err := buffers.Position(vtx.Get(Position))
		if err != nil {
			return Vertex{}, err
		}
		out.Position = p
	}
	if vcd.Has(Normal) {
		n, err := buffers.Normal(vtx.Get(Normal))
		if err != nil {
			return Vertex{}, err
		}
		out.Normal = n
	}
	for channel, attr := range [2]Attribute{Color0, Color1} {
		if !vcd.Has(attr) {
			continue
		}
		c, err := buffers.Color(channel, vtx.Get(attr))
		if err != nil {
			return Vertex{}, err
		}
		out.Colors[channel] = c
		out.HasColor[channel] = true
	}
	for channel := 0; channel < 8; channel++ {
		attr := TexCoord0 + Attribute(channel)
		if !vcd.Has(attr) {
			continue
		}
		uv, err := buffers.TexCoord(channel, vtx.Get(attr))
		if err != nil {
			return Vertex{}, err
		}
		out.TexCoords[channel] = uv
		out.HasTexCoord[channel] = true
	}
	return out, nil
}
