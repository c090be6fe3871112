package rhst_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gc3dtools/librii/archive"
	"github.com/gc3dtools/librii/bone"
	"github.com/gc3dtools/librii/material"
	"github.com/gc3dtools/librii/mesh"
	"github.com/gc3dtools/librii/rhst"
)

const convertScene = `{
  "head": {"generator": "blender-plugin", "type": "JMDL2", "version": "1.0"},
  "body": {
    "name": "course",
    "bones": [
      {"name": "root", "parent": -1, "min": [-1,-1,-1], "max": [1,1,1]}
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
                  [[0,0,0]], [[1,0,0]], [[1,1,0]],
                  [[0,0,0]], [[1,1,0]], [[0,1,0]]
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

// TestToModelConvertsSceneIntoSkeletonAndMesh exercises the full
// rhst.Scene -> bone.Skeleton/mesh.Mesh/material.BrresMaterial path
// and proves the result is accepted by the BRRES writer itself, the
// one remaining leg between the scene-tree ingestion contract and
// the archive codec.
func TestToModelConvertsSceneIntoSkeletonAndMesh(t *testing.T) {
	scn, err := rhst.Decode([]byte(convertScene), nil)
	require.NoError(t, err)

	rhst.Optimize(scn, nil)

	skel, meshes, buffers, err := rhst.ToModel(scn)
	require.NoError(t, err)

	require.Len(t, skel.Bones, 1)
	assert.Equal(t, bone.NoParent, skel.Bones[0].ParentIndex)
	assert.True(t, skel.Bones[0].Visible)
	assert.Equal(t, float32(1), skel.Bones[0].Volume.Max.X)

	require.Len(t, meshes, 1)
	m := meshes[0]
	assert.True(t, m.VCD.Has(mesh.Position))
	require.NotEmpty(t, m.MatrixPrimitives)
	assert.NotEmpty(t, buffers.Positions)
	// The quad should have welded down to 4 distinct positions, not 6.
	assert.Len(t, buffers.Positions, 4)

	require.Len(t, scn.Materials, 1)
	mat := rhst.ConvertMaterial(scn.Materials[0])
	assert.Equal(t, "mat0", mat.Name)
	require.Len(t, mat.Samplers, 1)
	assert.Equal(t, "tex_a", mat.Samplers[0].Texture)
	assert.Equal(t, material.WrapClamp, mat.Samplers[0].WrapV)

	arc := archive.Archive{
		Name: "course",
		Models: []archive.Model{{
			Name:      "course",
			Skeleton:  skel,
			Materials: []material.BrresMaterial{mat},
			Meshes:    meshes,
		}},
	}
	out, err := archive.WriteBRRES(&arc, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
