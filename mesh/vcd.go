// Package mesh implements the indexed-polygon codec (C8): the vertex
// descriptor, the packed GPU vertex draw command stream it governs,
// and the propagate operation that unpacks a mesh's primitives
// against a model's shared attribute buffers.
//
// Grounded on plugins/gc/Export/{IndexedVertex,IndexedPolygon,VertexDescriptor}.hpp
// and IndexedPolygon.cpp, plus the VCD bit layout documented in
// plugins/gc/GPU/DLBuilder.hpp's calcVtxDescv/setVtxDescv.
package mesh

import "fmt"

// Attribute is one of the 21 GPU vertex attribute slots a VCD can
// describe (VertexAttribute, VertexDescriptor.hpp). The declaration
// order matches calcVtxDescv's switch: the eight texture-matrix
// indices immediately follow the position-normal-matrix index, then
// position, normal, the two color channels, and the eight texture
// coordinate channels.
type Attribute int

const (
	PositionNormalMatrixIndex Attribute = iota
	Texture0MatrixIndex
	Texture1MatrixIndex
	Texture2MatrixIndex
	Texture3MatrixIndex
	Texture4MatrixIndex
	Texture5MatrixIndex
	Texture6MatrixIndex
	Texture7MatrixIndex
	Position
	Normal
	Color0
	Color1
	TexCoord0
	TexCoord1
	TexCoord2
	TexCoord3
	TexCoord4
	TexCoord5
	TexCoord6
	TexCoord7
	attributeMax
)

// AttributeCount is the width of the VCD bitfield and of an
// IndexedVertex's index array (VertexAttribute::Max).
const AttributeCount = int(attributeMax)

func (a Attribute) String() string {
	names := [...]string{
		"PositionNormalMatrixIndex",
		"Texture0MatrixIndex", "Texture1MatrixIndex", "Texture2MatrixIndex", "Texture3MatrixIndex",
		"Texture4MatrixIndex", "Texture5MatrixIndex", "Texture6MatrixIndex", "Texture7MatrixIndex",
		"Position", "Normal", "Color0", "Color1",
		"TexCoord0", "TexCoord1", "TexCoord2", "TexCoord3",
		"TexCoord4", "TexCoord5", "TexCoord6", "TexCoord7",
	}
	if int(a) < 0 || int(a) >= len(names) {
		return "Unknown"
	}
	return names[a]
}

// IsTextureMatrixIndex reports whether a names one of the eight
// informational texture-matrix-index attributes (propagate never
// resolves these against a shared buffer).
func (a Attribute) IsTextureMatrixIndex() bool {
	return a >= Texture0MatrixIndex && a <= Texture7MatrixIndex
}

// EncodingType is how an attribute's per-vertex value is carried in
// the GPU command stream (VertexAttributeType: None/Direct/Byte/Short).
// Numeric values match the hardware's GX_NONE/GX_DIRECT/GX_INDEX8/GX_INDEX16.
type EncodingType int

const (
	EncodingNone EncodingType = iota
	EncodingDirect
	EncodingByte
	EncodingShort
)

func (t EncodingType) String() string {
	switch t {
	case EncodingNone:
		return "None"
	case EncodingDirect:
		return "Direct"
	case EncodingByte:
		return "Byte"
	case EncodingShort:
		return "Short"
	default:
		return "Unknown"
	}
}

// VertexDescriptor is the per-mesh bitfield plus per-attribute
// encoding-type table (VertexDescriptor.hpp). Invariant: bit i is set
// iff Attributes[i] is a non-None entry.
type VertexDescriptor struct {
	Bitfield   uint32
	Attributes map[Attribute]EncodingType
}

// NewVertexDescriptor returns an empty descriptor ready for SetAttribute calls.
func NewVertexDescriptor() *VertexDescriptor {
	return &VertexDescriptor{Attributes: make(map[Attribute]EncodingType)}
}

// SetAttribute installs typ for attr and recomputes the bitfield
// (calcVertexDescriptorFromAttributeList).
func (v *VertexDescriptor) SetAttribute(attr Attribute, typ EncodingType) {
	if typ == EncodingNone {
		delete(v.Attributes, attr)
	} else {
		v.Attributes[attr] = typ
	}
	v.recalc()
}

func (v *VertexDescriptor) recalc() {
	v.Bitfield = 0
	for attr, typ := range v.Attributes {
		if typ != EncodingNone {
			v.Bitfield |= 1 << uint(attr)
		}
	}
}

// Has reports whether attr is enabled (VertexDescriptor::operator[]).
func (v *VertexDescriptor) Has(attr Attribute) bool {
	return v.Bitfield&(1<<uint(attr)) != 0
}

// EncodingOf returns the encoding type registered for attr, or
// EncodingNone if it is not present.
func (v *VertexDescriptor) EncodingOf(attr Attribute) EncodingType {
	return v.Attributes[attr]
}

// Validate reports whether the bitfield invariant holds: bit i is set
// iff Attributes has a non-None entry at i.
func (v *VertexDescriptor) Validate() error {
	var want uint32
	for attr, typ := range v.Attributes {
		if typ != EncodingNone {
			want |= 1 << uint(attr)
		}
	}
	if want != v.Bitfield {
		return fmt.Errorf("mesh: vertex descriptor bitfield %#x does not match attribute map (want %#x)", v.Bitfield, want)
	}
	return nil
}

// Degenerate reports whether v carries no attributes beyond the
// position-normal-matrix index (§4.8: such a mesh is rejected).
func (v *VertexDescriptor) Degenerate() bool {
	for attr, typ := range v.Attributes {
		if attr != PositionNormalMatrixIndex && typ != EncodingNone {
			return false
		}
	}
	return true
}
