package strip

import "fmt"

// IndexBuffer is a deduplicated vertex array plus a flat triangle
// index list referencing it. Grounded on IndexBuffer<u32>::create: as
// RHST-level primitives aren't indexed, this performs the dedup and
// index assignment stripifiers actually operate on.
type IndexBuffer[V comparable] struct {
	Vertices  []V
	IndexData []uint32
}

// BuildIndexBuffer dedups m's single Triangles primitive into an
// index buffer. The strip driver's input contract (§4.5) is triangle
// soup, i.e. exactly one Triangles primitive; anything else is a
// caller error.
func BuildIndexBuffer[V comparable](m MatrixPrimitive[V]) (IndexBuffer[V], error) {
	if len(m.Primitives) != 1 {
		return IndexBuffer[V]{}, fmt.Errorf("strip: expected exactly one primitive, got %d", len(m.Primitives))
	}
	if m.Primitives[0].Topology != Triangles {
		return IndexBuffer[V]{}, fmt.Errorf("strip: expected Triangles topology, got %s", m.Primitives[0].Topology)
	}

	ib := IndexBuffer[V]{}
	seen := make(map[V]uint32, len(m.Primitives[0].Vertices))
	for _, v := range m.Primitives[0].Vertices {
		if idx, ok := seen[v]; ok {
			ib.IndexData = append(ib.IndexData, idx)
			continue
		}
		idx := uint32(len(ib.Vertices))
		seen[v] = idx
		ib.Vertices = append(ib.Vertices, v)
		ib.IndexData = append(ib.IndexData, idx)
	}
	return ib, nil
}
