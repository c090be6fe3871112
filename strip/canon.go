package strip

import (
	"fmt"
	"sort"
)

// Less compares two vertices for canonicalization ordering. Callers
// supply one appropriate to their vertex type (position/normal/uv/color
// lexicographic comparison in the original's Vertex::operator<=>).
type Less[V any] func(a, b V) bool

func normalizeTriInplace[V any](tri *[3]V, less Less[V]) {
	minPos := 0
	for i := 1; i < 3; i++ {
		if less(tri[i], tri[minPos]) {
			minPos = i
		}
	}
	// Rotate so the minimum-ordered vertex comes first, preserving winding
	// (NormalizeTriInplace, RHSTOptimizer.cpp).
	rotated := *tri
	for i := 0; i < 3; i++ {
		rotated[i] = tri[(i+minPos)%3]
	}
	*tri = rotated
}

func triLess[V comparable](less Less[V], a, b [3]V) bool {
	if a[0] != b[0] {
		return less(a[0], b[0])
	}
	if a[1] != b[1] {
		return less(a[1], b[1])
	}
	return less(a[2], b[2])
}

// canonicalTriangleSet sorts m's triangle multiset (strips/fans
// re-triangulated first) into a stable, winding-preserving canonical
// form: duplicates are allowed, degenerates (two equal vertices) are
// dropped. Grounded on TriList::SetFromMPrim.
func canonicalTriangleSet[V comparable](m MatrixPrimitive[V], less Less[V]) [][3]V {
	var tris [][3]V
	for _, p := range m.Primitives {
		for _, tri := range asTriangles(p) {
			if tri[0] == tri[1] || tri[0] == tri[2] || tri[1] == tri[2] {
				continue
			}
			normalizeTriInplace(&tri, less)
			tris = append(tris, tri)
		}
	}
	sort.Slice(tris, func(i, j int) bool { return triLess(less, tris[i], tris[j]) })
	return tris
}

// ValidateMeshesEqual reports whether l and r have the same canonical
// triangle multiset (degenerates ignored), the invariant every
// stripifier experiment must preserve (ValidateMeshesEqualImpl).
func ValidateMeshesEqual[V comparable](less Less[V], l, r MatrixPrimitive[V]) error {
	ll := canonicalTriangleSet(l, less)
	rl := canonicalTriangleSet(r, less)
	if len(ll) != len(rl) {
		return fmt.Errorf("strip: triangle count does not match (l: %d, r: %d)", len(ll), len(rl))
	}
	for i := range ll {
		if ll[i] != rl[i] {
			return fmt.Errorf("strip: mismatch at triangle %d/%d", i, len(ll)-1)
		}
	}
	return nil
}
