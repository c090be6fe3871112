// Package strip implements the triangle-strip driver (C5): a
// multi-algorithm primitive encoder that compiles triangle soup into
// a mix of triangle strips, fans, and a trailing triangle batch,
// racing several stripifiers and keeping the one with fewest
// facepoints.
//
// Grounded on librii/rhst/RHST.hpp, RHSTOptimizer.{hpp,cpp},
// MeshUtils.{hpp,cpp} and IndexBuffer.hpp. The original operates on a
// single concrete Vertex type; this port keeps the algorithms generic
// over any comparable vertex representation so the driver can be
// exercised directly by package tests without depending on C8's mesh
// vertex layout.
package strip

import "github.com/gc3dtools/librii/rlog"

var log = rlog.Named("STRIP")

// Topology is a primitive's GPU draw mode.
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

// Primitive is one draw call's worth of vertices under a topology.
type Primitive[V any] struct {
	Topology Topology
	Vertices []V
}

func (p Primitive[V]) clone() Primitive[V] {
	out := Primitive[V]{Topology: p.Topology}
	out.Vertices = append(out.Vertices, p.Vertices...)
	return out
}

// MatrixPrimitive is a set of primitives sharing up to ten bound draw
// matrices (RHST.hpp's MatrixPrimitive). The strip driver treats
// DrawMatrices as opaque passenger data: it is copied verbatim into
// every experiment and never consulted when stripifying.
type MatrixPrimitive[V any] struct {
	DrawMatrices [10]int32
	Primitives   []Primitive[V]
}

// Clone deep-copies m so an experiment can mutate its own primitive
// list without affecting the baseline or other experiments
// (MeshOptimizerExperimentHolder::CreateExperiment relies on the same
// copy-on-create guarantee).
func (m MatrixPrimitive[V]) Clone() MatrixPrimitive[V] {
	out := MatrixPrimitive[V]{DrawMatrices: m.DrawMatrices}
	for _, p := range m.Primitives {
		out.Primitives = append(out.Primitives, p.clone())
	}
	return out
}

// VertexCount is the "facepoint" count the spec scores experiments
// by: the sum of every primitive's vertex count (RHSTOptimizer.cpp's
// use of VertexCount as the MeshOptimizerExperimentHolder score).
func VertexCount[V any](m MatrixPrimitive[V]) int {
	n := 0
	for _, p := range m.Primitives {
		n += len(p.Vertices)
	}
	return n
}

// FaceCount counts triangles across all primitives, including
// degenerates, matching MeshOptimizerStats::after_faces.
func FaceCount[V any](m MatrixPrimitive[V]) int {
	n := 0
	for _, p := range m.Primitives {
		switch p.Topology {
		case Triangles:
			n += len(p.Vertices) / 3
		case TriangleStrip, TriangleFan:
			if len(p.Vertices) >= 3 {
				n += len(p.Vertices) - 2
			}
		}
	}
	return n
}

// asTriangles expands one primitive into flat [3]V triangles, using
// the strip-walk and fan re-triangulation rules shared with C8's
// propagate operation (MeshUtils::AsTrianglesIdx): strips emit
// (v-1,v-2,v) for odd v and (v-2,v-1,v) for even v; fans emit
// (0,v-1,v).
func asTriangles[V any](p Primitive[V]) [][3]V {
	var out [][3]V
	switch p.Topology {
	case Triangles:
		for i := 0; i+2 < len(p.Vertices); i += 3 {
			out = append(out, [3]V{p.Vertices[i], p.Vertices[i+1], p.Vertices[i+2]})
		}
	case TriangleStrip:
		if len(p.Vertices) < 3 {
			return nil
		}
		out = append(out, [3]V{p.Vertices[0], p.Vertices[1], p.Vertices[2]})
		for v := 3; v < len(p.Vertices); v++ {
			var a, b int
			if v&1 != 0 {
				a, b = v-1, v-2
			} else {
				a, b = v-2, v-1
			}
			out = append(out, [3]V{p.Vertices[a], p.Vertices[b], p.Vertices[v]})
		}
	case TriangleFan:
		if len(p.Vertices) < 3 {
			return nil
		}
		out = append(out, [3]V{p.Vertices[0], p.Vertices[1], p.Vertices[2]})
		for v := 3; v < len(p.Vertices); v++ {
			out = append(out, [3]V{p.Vertices[0], p.Vertices[v-1], p.Vertices[v]})
		}
	}
	return out
}

// AsTriangles expands every primitive of m into one flat triangle
// soup, discarding the strip/fan structure.
func AsTriangles[V any](m MatrixPrimitive[V]) []V {
	var out []V
	for _, p := range m.Primitives {
		for _, tri := range asTriangles(p) {
			out = append(out, tri[0], tri[1], tri[2])
		}
	}
	return out
}
