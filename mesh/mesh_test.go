package mesh

import (
	"testing"

	"github.com/gc3dtools/librii/math32"
	"github.com/gc3dtools/librii/rstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func basicVCD() *VertexDescriptor {
	vcd := NewVertexDescriptor()
	vcd.SetAttribute(PositionNormalMatrixIndex, EncodingDirect)
	vcd.SetAttribute(Position, EncodingShort)
	vcd.SetAttribute(Normal, EncodingByte)
	return vcd
}

func TestVertexDescriptorBitfieldInvariant(t *testing.T) {
	vcd := basicVCD()
	require.NoError(t, vcd.Validate())

	assert.True(t, vcd.Has(Position))
	assert.True(t, vcd.Has(Normal))
	assert.False(t, vcd.Has(Color0))

	vcd.SetAttribute(Normal, EncodingNone)
	assert.False(t, vcd.Has(Normal))
	require.NoError(t, vcd.Validate())
}

func TestVertexDescriptorDegenerate(t *testing.T) {
	onlyMatrixIndex := NewVertexDescriptor()
	onlyMatrixIndex.SetAttribute(PositionNormalMatrixIndex, EncodingDirect)
	assert.True(t, onlyMatrixIndex.Degenerate())

	withPosition := basicVCD()
	assert.False(t, withPosition.Degenerate())
}

func TestReadWritePrimitivesRoundTrip(t *testing.T) {
	vcd := basicVCD()

	var a, b IndexedVertex
	a.Set(PositionNormalMatrixIndex, 0)
	a.Set(Position, 10)
	a.Set(Normal, 2)
	b.Set(PositionNormalMatrixIndex, 0)
	b.Set(Position, 11)
	b.Set(Normal, 3)

	prims := []Primitive{
		{Topology: TriangleStrip, Vertices: []IndexedVertex{a, b, a, b, a}},
	}

	w := rstream.NewWriter()
	require.NoError(t, WritePrimitives(w, vcd, prims))

	r := rstream.NewReader(w.Bytes())
	decoded, err := ReadPrimitives(r, vcd)
	require.NoError(t, err)

	require.Len(t, decoded, 1)
	assert.Equal(t, TriangleStrip, decoded[0].Topology)
	assert.Equal(t, prims[0].Vertices, decoded[0].Vertices)
}

// fakeBuffers is a minimal ModelBuffers returning the index as a
// position's X coordinate, for traceable propagate assertions.
type fakeBuffers struct{}

func (fakeBuffers) Position(index uint16) (math32.Vector3, error) {
	return math32.Vector3{X: float32(index)}, nil
}
func (fakeBuffers) Normal(index uint16) (math32.Vector3, error) {
	return math32.Vector3{Z: 1}, nil
}
func (fakeBuffers) Color(channel int, index uint16) (math32.Vector4, error) {
	return math32.Vector4{X: 1, Y: 1, Z: 1, W: 1}, nil
}
func (fakeBuffers) TexCoord(channel int, index uint16) (math32.Vector2, error) {
	return math32.Vector2{}, nil
}

// recordingBuffer collects the X-coordinate of every pushed vertex's
// position, in push order, so strip/fan re-triangulation can be
// checked against the expected vertex sequence.
type recordingBuffer struct {
	xs []float32
}

func (b *recordingBuffer) PushVertex(v Vertex) uint32 {
	b.xs = append(b.xs, v.Position.X)
	return uint32(len(b.xs) - 1)
}
func (b *recordingBuffer) PushIndex(i uint32) {}

func vertexAt(idx uint16) IndexedVertex {
	var v IndexedVertex
	v.Set(Position, idx)
	return v
}

func TestPropagateRetriangulatesStrip(t *testing.T) {
	vcd := NewVertexDescriptor()
	vcd.SetAttribute(Position, EncodingShort)

	m := &Mesh{Name: "strip", VCD: vcd}
	mp := MatrixPrimitive{Primitives: []Primitive{
		{Topology: TriangleStrip, Vertices: []IndexedVertex{
			vertexAt(0), vertexAt(1), vertexAt(2), vertexAt(3), vertexAt(4),
		}},
	}}

	out := &recordingBuffer{}
	require.NoError(t, Propagate(m, &mp, fakeBuffers{}, out))

	// Strip [0,1,2,3,4] decodes to triangles (0,1,2), (2,1,3), (2,3,4).
	assert.Equal(t, []float32{0, 1, 2, 2, 1, 3, 2, 3, 4}, out.xs)
}

func TestPropagateRetriangulatesFan(t *testing.T) {
	vcd := NewVertexDescriptor()
	vcd.SetAttribute(Position, EncodingShort)

	m := &Mesh{Name: "fan", VCD: vcd}
	mp := MatrixPrimitive{Primitives: []Primitive{
		{Topology: TriangleFan, Vertices: []IndexedVertex{
			vertexAt(0), vertexAt(1), vertexAt(2), vertexAt(3),
		}},
	}}

	out := &recordingBuffer{}
	require.NoError(t, Propagate(m, &mp, fakeBuffers{}, out))

	// Fan [0,1,2,3] decodes to triangles (0,1,2), (0,2,3).
	assert.Equal(t, []float32{0, 1, 2, 0, 2, 3}, out.xs)
}

func TestPropagateRejectsDegenerateMesh(t *testing.T) {
	vcd := NewVertexDescriptor()
	vcd.SetAttribute(PositionNormalMatrixIndex, EncodingDirect)

	m := &Mesh{Name: "degenerate", VCD: vcd}
	mp := MatrixPrimitive{Primitives: []Primitive{
		{Topology: Triangles, Vertices: []IndexedVertex{{}, {}, {}}},
	}}

	out := &recordingBuffer{}
	err := Propagate(m, &mp, fakeBuffers{}, out)
	require.Error(t, err)
}
