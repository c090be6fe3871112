package rhst

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gc3dtools/librii/transact"
)

const sampleScene = `{
  "head": {"generator": "blender-plugin", "type": "JMDL2", "version": "1.0"},
  "body": {
    "name": "course",
    "bones": [
      {"name": "root", "parent": -1},
      {"name": "child", "parent": 0}
    ],
    "polygons": [
      {
        "name": "mesh0",
        "current_matrix": 0,
        "facepoint_format": [false,false,false,false,false,false,false,false,false,true,false,false,false,false,false,false,false,false,false,false,false],
        "matrix_primitives": [
          {
            "matrix": [0],
            "primitives": [
              {
                "primitive_type": "triangles",
                "facepoints": [
                  [[0,0,0]],
                  [[1,0,0]],
                  [[1,1,0]],
                  [[0,0,0]],
                  [[1,1,0]],
                  [[0,1,0]]
                ]
              }
            ]
          }
        ]
      }
    ],
    "materials": [
      {"name": "mat0", "texture": "tex_a", "wrap_u": "Repeat", "wrap_v": "Clamp", "pe": "Opaque"}
    ]
  }
}`

func TestDecodeAcceptsJMDL2(t *testing.T) {
	scn, err := Decode([]byte(sampleScene), nil)
	require.NoError(t, err)
	require.Len(t, scn.Bones, 2)
	assert.Equal(t, int32(-1), scn.Bones[0].Parent)
	assert.Equal(t, []int32{1}, scn.Bones[0].Children)
	require.Len(t, scn.Meshes, 1)
	assert.Equal(t, uint32(1<<9), scn.Meshes[0].VertexDescriptor)
	require.Len(t, scn.Meshes[0].MatrixPrimitives, 1)
	require.Len(t, scn.Meshes[0].MatrixPrimitives[0].Primitives, 1)
	assert.Len(t, scn.Meshes[0].MatrixPrimitives[0].Primitives[0].Vertices, 6)
	require.Len(t, scn.Materials, 1)
	assert.Equal(t, WrapClamp, scn.Materials[0].WrapV)
}

func TestDecodeRejectsWrongFormatTag(t *testing.T) {
	data := []byte(`{"head": {"type": "JMDL"}, "body": {}}`)
	var reported []transact.Message
	tx := transact.New("", func(m transact.Message) { reported = append(reported, m) })
	_, err := Decode(data, tx)
	require.Error(t, err)
	assert.True(t, tx.Errored)
	require.NotEmpty(t, reported)
	assert.Equal(t, transact.Error, reported[0].Class)
}

func TestDecodeRejectsUnknownTopology(t *testing.T) {
	data := []byte(`{"body": {"polygons": [{"name":"m","facepoint_format":[],"matrix_primitives":[{"primitives":[{"primitive_type":"quads","facepoints":[]}]}]}]}}`)
	_, err := Decode(data, nil)
	require.Error(t, err)
}

func TestOptimizeStripifiesTriangleSoup(t *testing.T) {
	scn, err := Decode([]byte(sampleScene), nil)
	require.NoError(t, err)

	Optimize(scn, nil)

	prims := scn.Meshes[0].MatrixPrimitives[0].Primitives
	require.NotEmpty(t, prims)
	total := 0
	for _, p := range prims {
		total += len(p.Vertices)
	}
	assert.GreaterOrEqual(t, total, 4) // a welded quad needs at least 4 distinct vertices
}

func TestOptimizeSkipsAlreadyStrippedPrimitives(t *testing.T) {
	scn := &Scene{Meshes: []Mesh{{
		Name: "m",
		MatrixPrimitives: []MatrixPrimitive{{
			Primitives: []Primitive{{Topology: TriangleStrip, Vertices: []Vertex{{}, {}, {}}}},
		}},
	}}}
	var reported []transact.Message
	tx := transact.New("", func(m transact.Message) { reported = append(reported, m) })
	Optimize(scn, tx)
	assert.Len(t, scn.Meshes[0].MatrixPrimitives[0].Primitives, 1)
	assert.False(t, tx.Errored)
}
