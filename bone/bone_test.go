package bone

import (
	"testing"

	"github.com/gc3dtools/librii/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vec3One() math32.Vector3 { return math32.Vector3{X: 1, Y: 1, Z: 1} }

func TestNewSkeletonRecomputesChildren(t *testing.T) {

	bones := []Bone{
		{Name: "root", ParentIndex: NoParent},
		{Name: "upper_arm", ParentIndex: 0},
		{Name: "lower_arm", ParentIndex: 1},
		{Name: "hand", ParentIndex: 1},
		// Precomputed (and now-stale) children the source file might carry.
	}
	bones[0].Children = []int{99}

	skel, err := NewSkeleton(bones)
	require.NoError(t, err)

	assert.Equal(t, []int{1}, skel.Bones[0].Children)
	assert.ElementsMatch(t, []int{2, 3}, skel.Bones[1].Children)
	assert.Equal(t, []int{0}, skel.Roots())
}

func TestNewSkeletonRejectsCycle(t *testing.T) {

	bones := []Bone{
		{Name: "a", ParentIndex: 1},
		{Name: "b", ParentIndex: 0},
	}

	_, err := NewSkeleton(bones)
	require.Error(t, err)
	var cycleErr *CycleError
	require.ErrorAs(t, err, &cycleErr)
}

func TestNewSkeletonRejectsOutOfRangeParent(t *testing.T) {

	bones := []Bone{{Name: "a", ParentIndex: 5}}
	_, err := NewSkeleton(bones)
	require.Error(t, err)
}

func TestBoneCarriesVolumeBillboardFlagsAndDrawCalls(t *testing.T) {

	b := Bone{
		Name:               "helper",
		ParentIndex:        NoParent,
		Volume:             math32.Box3{Min: math32.Vector3{X: -1, Y: -1, Z: -1}, Max: vec3One()},
		Billboard:          BillboardYFace,
		Visible:            true,
		ForceDisplayMatrix: true,
		OmitFromNodeMix:    true,
		DrawCalls: []DrawCall{
			{MaterialIndex: 2, PolyIndex: 0, Priority: 1},
			{MaterialIndex: 2, PolyIndex: 1, Priority: 0},
		},
	}

	skel, err := NewSkeleton([]Bone{b})
	require.NoError(t, err)

	got := skel.Bones[0]
	assert.Equal(t, BillboardYFace, got.Billboard)
	assert.True(t, got.Visible)
	assert.True(t, got.ForceDisplayMatrix)
	assert.True(t, got.OmitFromNodeMix)
	assert.Equal(t, vec3One(), got.Volume.Max)
	assert.Len(t, got.DrawCalls, 2)
	assert.Equal(t, uint32(1), got.DrawCalls[1].PolyIndex)
}

func TestWorldMatrixComposesThroughParentChain(t *testing.T) {

	bones := []Bone{
		{Name: "root", ParentIndex: NoParent, Scale: vec3One()},
		{Name: "child", ParentIndex: 0, Scale: vec3One()},
	}
	bones[0].Position.Set(1, 0, 0)
	bones[1].Position.Set(0, 2, 0)

	skel, err := NewSkeleton(bones)
	require.NoError(t, err)

	world := skel.WorldMatrix(1)
	var pos [3]float32
	pos[0], pos[1], pos[2] = world[12], world[13], world[14]
	assert.InDelta(t, 1.0, pos[0], 1e-5)
	assert.InDelta(t, 2.0, pos[1], 1e-5)
	assert.InDelta(t, 0.0, pos[2], 1e-5)
}
