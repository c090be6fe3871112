package rhst

import (
	"fmt"

	"github.com/gc3dtools/librii/math32"
	"github.com/gc3dtools/librii/rlog"
	"github.com/gc3dtools/librii/strip"
	"github.com/gc3dtools/librii/transact"
)

var log = rlog.Named("RHST")

// vertexLess gives strip.StripifyTriangles a total order over Vertex
// for canonicalization, the Go-native equivalent of rhst::Vertex's
// defaulted operator<=> (lexicographic position, normal, uvs, colors).
func vertexLess(a, b Vertex) bool {
	if a.Position != b.Position {
		return vec3Less(a.Position, b.Position)
	}
	if a.Normal != b.Normal {
		return vec3Less(a.Normal, b.Normal)
	}
	for i := range a.UVs {
		if a.UVs[i] != b.UVs[i] {
			return vec2Less(a.UVs[i], b.UVs[i])
		}
	}
	for i := range a.Colors {
		if a.Colors[i] != b.Colors[i] {
			return vec4Less(a.Colors[i], b.Colors[i])
		}
	}
	return false
}

func vec2Less(a, b math32.Vector2) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	return a.Y < b.Y
}

func vec3Less(a, b math32.Vector3) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.Z < b.Z
}

func vec4Less(a, b math32.Vector4) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	if a.Z != b.Z {
		return a.Z < b.Z
	}
	return a.W < b.W
}

// Optimize runs the stripifier race (C5) over every mesh's matrix
// primitives that are still plain triangle soup (one Triangles
// primitive each, the shape a freshly decoded scene tree carries),
// replacing each with the winning, typically smaller, draw-command
// mix. Vertex deduplication happens inside the race itself
// (strip.BuildIndexBuffer, called by every named algorithm) rather
// than as a separate pass here — RHSTOptimizer.cpp performs no
// dedication step of its own either, only the per-algorithm index
// buffer construction already does this (RHSTOptimizer.cpp's
// StripifyTriangles entry point). A matrix primitive already holding
// more than one primitive, or a non-Triangles one, is left untouched
// and reported through tx rather than treated as an error, since
// re-optimizing already-stripped geometry isn't this operation's job.
func Optimize(scn *Scene, tx *transact.Transaction) {
	for mi := range scn.Meshes {
		mesh := &scn.Meshes[mi]
		for pi := range mesh.MatrixPrimitives {
			optimizeMatrixPrimitive(mesh.Name, &mesh.MatrixPrimitives[pi], tx)
		}
	}
}

func optimizeMatrixPrimitive(meshName string, mp *MatrixPrimitive, tx *transact.Transaction) {
	if len(mp.Primitives) != 1 || mp.Primitives[0].Topology != Triangles {
		tx.Info("rhst", fmt.Sprintf("mesh %q: matrix primitive is not triangle soup, skipping optimization", meshName))
		return
	}

	baseline := toStripMP(*mp)
	result, algo, err := strip.StripifyTriangles(baseline, vertexLess, -1)
	if err != nil {
		tx.Warn("rhst", fmt.Sprintf("mesh %q: stripify failed, keeping triangle soup: %v", meshName, err))
		return
	}
	log.Info("mesh %q: stripified with %s", meshName, algo)
	mp.Primitives = fromStripMP(result)
}

func toStripMP(mp MatrixPrimitive) strip.MatrixPrimitive[Vertex] {
	out := strip.MatrixPrimitive[Vertex]{DrawMatrices: mp.DrawMatrices}
	for _, p := range mp.Primitives {
		out.Primitives = append(out.Primitives, strip.Primitive[Vertex]{
			Topology: strip.Topology(p.Topology),
			Vertices: append([]Vertex(nil), p.Vertices...),
		})
	}
	return out
}

func fromStripMP(mp strip.MatrixPrimitive[Vertex]) []Primitive {
	out := make([]Primitive, 0, len(mp.Primitives))
	for _, p := range mp.Primitives {
		out = append(out, Primitive{
			Topology: Topology(p.Topology),
			Vertices: append([]Vertex(nil), p.Vertices...),
		})
	}
	return out
}
