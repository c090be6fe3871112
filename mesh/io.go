package mesh

import (
	"fmt"

	"github.com/gc3dtools/librii/rlog"
	"github.com/gc3dtools/librii/rstream"
)

var log = rlog.Named("G3D")

// Vertex draw opcodes. Each begins a run of vertices under one
// topology, followed by a 16-bit vertex count and then, for every
// vertex, one index per enabled VCD attribute (sized by its encoding
// type). These are the publicly documented GameCube/Wii GX primitive
// opcodes; the pack's sources reference the vertex-descriptor command
// stream (plugins/gc/GPU/DLBuilder.hpp's setVtxDescv) without spelling
// out the draw opcodes themselves.
const (
	OpDrawTriangles     byte = 0x90
	OpDrawTriangleStrip byte = 0x98
	OpDrawTriangleFan   byte = 0xA0
)

func topologyOp(t Topology) (byte, error) {
	switch t {
	case Triangles:
		return OpDrawTriangles, nil
	case TriangleStrip:
		return OpDrawTriangleStrip, nil
	case TriangleFan:
		return OpDrawTriangleFan, nil
	default:
		return 0, fmt.Errorf("mesh: invalid topology %v", t)
	}
}

func opTopology(op byte) (Topology, bool) {
	switch op {
	case OpDrawTriangles:
		return Triangles, true
	case OpDrawTriangleStrip:
		return TriangleStrip, true
	case OpDrawTriangleFan:
		return TriangleFan, true
	default:
		return 0, false
	}
}

// DecodeError reports a vertex command stream that could not be
// parsed: an unrecognized draw opcode, or an index read that ran past
// the buffer (§7 decode-integrity).
type DecodeError struct {
	Reason string
}

func (e *DecodeError) Error() string { return fmt.Sprintf("mesh: %s", e.Reason) }

// orderedAttributes returns the VCD's enabled attributes in
// declaration order, the fixed per-vertex field order both
// ReadPrimitives and WritePrimitives use.
func orderedAttributes(vcd *VertexDescriptor) []Attribute {
	var out []Attribute
	for i := 0; i < AttributeCount; i++ {
		attr := Attribute(i)
		if vcd.Has(attr) {
			out = append(out, attr)
		}
	}
	return out
}

func readIndex(r *rstream.Reader, typ EncodingType) (uint16, error) {
	switch typ {
	case EncodingDirect, EncodingByte:
		v, err := r.U8()
		return uint16(v), err
	case EncodingShort:
		return r.U16()
	default:
		return 0, fmt.Errorf("mesh: cannot read a None-encoded attribute")
	}
}

func writeIndex(w *rstream.Writer, typ EncodingType, idx uint16) error {
	switch typ {
	case EncodingDirect, EncodingByte:
		w.WriteU8(uint8(idx))
		return nil
	case EncodingShort:
		w.WriteU16(idx)
		return nil
	default:
		return fmt.Errorf("mesh: cannot write a None-encoded attribute")
	}
}

// ReadPrimitives parses a run of GPU vertex draw commands against vcd
// until the reader is exhausted, returning the decoded primitives.
func ReadPrimitives(r *rstream.Reader, vcd *VertexDescriptor) ([]Primitive, error) {
	attrs := orderedAttributes(vcd)
	var out []Primitive
	for r.Pos() < r.Len() {
		op, err := r.U8()
		if err != nil {
			return nil, err
		}
		topo, ok := opTopology(op)
		if !ok {
			return nil, &DecodeError{Reason: fmt.Sprintf("unsupported vertex draw opcode 0x%02x", op)}
		}
		count, err := r.U16()
		if err != nil {
			return nil, err
		}
		prim := Primitive{Topology: topo}
		for i := 0; i < int(count); i++ {
			var vtx IndexedVertex
			for _, attr := range attrs {
				idx, err := readIndex(r, vcd.EncodingOf(attr))
				if err != nil {
					return nil, err
				}
				vtx.Set(attr, idx)
			}
			prim.Vertices = append(prim.Vertices, vtx)
		}
		out = append(out, prim)
	}
	return out, nil
}

// WritePrimitives emits prims as a run of GPU vertex draw commands
// against vcd.
func WritePrimitives(w *rstream.Writer, vcd *VertexDescriptor, prims []Primitive) error {
	attrs := orderedAttributes(vcd)
	for _, prim := range prims {
		op, err := topologyOp(prim.Topology)
		if err != nil {
			return err
		}
		w.WriteU8(op)
		w.WriteU16(uint16(len(prim.Vertices)))
		for _, vtx := range prim.Vertices {
			for _, attr := range attrs {
				if err := writeIndex(w, vcd.EncodingOf(attr), vtx.Get(attr)); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
